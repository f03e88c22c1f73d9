package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/memory/deliveryrepo"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioConfig() Config {
	return Config{
		ServiceRole:          string(RoleAll),
		Broker:               BrokerInproc,
		KafkaConsumerGroup:   "scenario",
		TickInterval:         5 * time.Millisecond,
		SimulationSpeedKmh:   1_000_000,
		ArrivalPause:         150 * time.Millisecond,
		CityLatitude:         35.6762,
		CityLongitude:        139.6503,
		CityRadiusDeg:        0.05,
		GeocoderFallback:     "random",
		OverdueCheckSchedule: "@every 1h",
		ShutdownTimeout:      time.Second,
	}
}

func call(t *testing.T, svc *Service, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	svc.HTTP.ServeHTTP(rec, req)
	return rec
}

func readJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// deliverySnapshot is a delivery as it was right after one write.
type deliverySnapshot struct {
	status   delivery.Status
	progress float64
}

// recordingDeliveries keeps every state the dispatch service stores, so
// short-lived states such as ASSIGNED can be checked after the run.
type recordingDeliveries struct {
	ports.DeliveryRepository

	mu    sync.Mutex
	trail []deliverySnapshot
}

func (r *recordingDeliveries) record(d *delivery.Delivery) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trail = append(r.trail, deliverySnapshot{status: d.Status(), progress: d.ProgressPercentage()})
}

func (r *recordingDeliveries) Add(ctx context.Context, d *delivery.Delivery) error {
	if err := r.DeliveryRepository.Add(ctx, d); err != nil {
		return err
	}
	r.record(d)
	return nil
}

func (r *recordingDeliveries) Modify(
	ctx context.Context,
	id kernel.UUID,
	fn func(*delivery.Delivery) error,
) (*delivery.Delivery, error) {
	d, err := r.DeliveryRepository.Modify(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	r.record(d)
	return d, nil
}

// firstProgress returns the progress of the first stored state with status.
func (r *recordingDeliveries) firstProgress(status delivery.Status) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, snap := range r.trail {
		if snap.status == status {
			return snap.progress, true
		}
	}
	return 0, false
}

func (r *recordingDeliveries) statuses() []delivery.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []delivery.Status
	for _, snap := range r.trail {
		if len(out) == 0 || out[len(out)-1] != snap.status {
			out = append(out, snap.status)
		}
	}
	return out
}

// orderStatus is safe to call from Eventually conditions.
func orderStatus(svc *Service, id string) string {
	rec := httptest.NewRecorder()
	svc.HTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/"+id, nil))
	if rec.Code != http.StatusOK {
		return ""
	}
	var o httpadapter.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &o); err != nil {
		return ""
	}
	return o.Status
}

// TestOrderLifecycle runs the three services over the in-process broker and
// follows one order from placement to drop-off.
func TestOrderLifecycle(t *testing.T) {
	cfg := scenarioConfig()
	require.NoError(t, cfg.Validate())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root, err := NewCompositionRoot(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(root.Close)

	recorder := &recordingDeliveries{DeliveryRepository: deliveryrepo.NewRepository()}
	root.newDeliveryRepository = func() ports.DeliveryRepository { return recorder }

	ctx, cancel := context.WithCancel(t.Context())
	services := make(map[Role]*Service)
	for _, role := range RoleAll.Expand() {
		svc, buildErr := root.Build(ctx, role)
		require.NoError(t, buildErr)
		services[role] = svc
	}

	done := make(chan struct{}, len(services))
	for _, svc := range services {
		go func() {
			_ = svc.Channel.Start(ctx)
			done <- struct{}{}
		}()
	}
	t.Cleanup(func() {
		cancel()
		for range services {
			<-done
		}
		for _, svc := range services {
			_ = svc.Stop()
		}
	})

	ordering := services[RoleOrder]
	kitchen := services[RoleRestaurant]
	dispatch := services[RoleDelivery]

	rec := call(t, ordering, http.MethodPost, "/api/orders", `{
		"customerId": "cust-1",
		"restaurantId": "rest-1",
		"items": [
			{"itemId": "ramen", "name": "Tonkotsu Ramen", "quantity": 1, "price": 1200},
			{"itemId": "karaage", "name": "Karaage", "quantity": 1, "price": 600}
		]
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	placed := readJSON[httpadapter.Order](t, rec)
	assert.InDelta(t, 1800, placed.TotalPrice, 1e-9)
	assert.Equal(t, "CREATED", placed.Status)

	require.Eventually(t, func() bool {
		return orderStatus(kitchen, placed.ID) == "CREATED"
	}, 5*time.Second, 5*time.Millisecond, "kitchen never received the order")

	for _, step := range []string{"accept", "prepare", "ready"} {
		rec = call(t, kitchen, http.MethodPost, "/api/orders/"+placed.ID+"/"+step, "")
		require.Equal(t, http.StatusOK, rec.Code, step)
	}

	require.Eventually(t, func() bool {
		return orderStatus(ordering, placed.ID) == "PICKED_UP"
	}, 10*time.Second, 2*time.Millisecond, "ordering never saw the pickup")

	require.Eventually(t, func() bool {
		return orderStatus(ordering, placed.ID) == "DELIVERED"
	}, 10*time.Second, 10*time.Millisecond, "order never reached DELIVERED")

	assert.Equal(t, []delivery.Status{
		delivery.Assigned,
		delivery.EnRouteToRestaurant,
		delivery.AtRestaurant,
		delivery.PickedUp,
		delivery.EnRouteToCustomer,
		delivery.Delivered,
	}, recorder.statuses())
	for status, want := range map[delivery.Status]float64{
		delivery.Assigned:     5,
		delivery.AtRestaurant: 45,
		delivery.PickedUp:     50,
		delivery.Delivered:    100,
	} {
		got, ok := recorder.firstProgress(status)
		require.True(t, ok, status.String())
		assert.InDelta(t, want, got, 1e-9, status.String())
	}

	rec = call(t, dispatch, http.MethodGet, "/api/deliveries/order/"+placed.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	delivered := readJSON[httpadapter.Delivery](t, rec)
	assert.Equal(t, "DELIVERED", delivered.Status)
	assert.InDelta(t, 100, delivered.ProgressPercentage, 1e-9)
	require.NotNil(t, delivered.PickedUpAt)
	require.NotNil(t, delivered.DeliveredAt)
	assert.False(t, delivered.DeliveredAt.Before(*delivered.PickedUpAt))

	require.Eventually(t, func() bool {
		return orderStatus(kitchen, placed.ID) == "DELIVERED"
	}, 5*time.Second, 5*time.Millisecond, "kitchen never saw the drop-off")

	require.Eventually(t, func() bool {
		rec := httptest.NewRecorder()
		dispatch.HTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
		var stats httpadapter.DeliveryStats
		if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
			return false
		}
		return stats.Total == 1 && stats.AvailableDrivers == 3
	}, 5*time.Second, 5*time.Millisecond, "driver was never released")
}
