// Package simulation drives assigned deliveries to completion. Each delivery
// runs in its own goroutine with its own cancellable context: the driver moves
// to the restaurant, picks the order up, moves to the customer and completes
// the delivery, publishing a location fix on every tick and a status report on
// pickup and completion.
package simulation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

const (
	// RestaurantArrivalKm is the distance under which the driver is at the restaurant.
	RestaurantArrivalKm = 0.05
	// CustomerArrivalKm is the distance under which the driver is at the customer.
	CustomerArrivalKm = 0.02
)

var (
	ErrSimulatorStopped = errors.New("simulator is stopped")

	errDeliveryFinished = errors.New("delivery already finished")
)

// Config tunes the simulation. Zero fields take the defaults of DefaultConfig.
type Config struct {
	TickInterval time.Duration
	SpeedKmh     float64
	ArrivalPause time.Duration
	Jitter       kernel.Jitter
}

// DefaultConfig moves drivers at demo speed: one tick per second at 1000 km/h
// with a half-second stop at each end.
func DefaultConfig() Config {
	return Config{
		TickInterval: time.Second,
		SpeedKmh:     1000,
		ArrivalPause: 500 * time.Millisecond,
		Jitter:       kernel.UniformJitter(kernel.MaxJitterDeg),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.SpeedKmh <= 0 {
		c.SpeedKmh = def.SpeedKmh
	}
	if c.ArrivalPause < 0 {
		c.ArrivalPause = 0
	}
	if c.Jitter == nil {
		c.Jitter = def.Jitter
	}
	return c
}

// Simulator owns every running delivery simulation.
type Simulator struct {
	deliveries ports.DeliveryRepository
	drivers    ports.DriverRepository
	publisher  ports.EventPublisher
	cfg        Config
	logger     *slog.Logger

	mu      sync.Mutex
	root    context.Context
	stop    context.CancelFunc
	running map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// NewSimulator returns a simulator writing to deliveries and drivers and
// announcing progress on publisher.
func NewSimulator(
	deliveries ports.DeliveryRepository,
	drivers ports.DriverRepository,
	publisher ports.EventPublisher,
	cfg Config,
	logger *slog.Logger,
) *Simulator {
	root, stop := context.WithCancel(context.Background())
	return &Simulator{
		deliveries: deliveries,
		drivers:    drivers,
		publisher:  publisher,
		cfg:        cfg.withDefaults(),
		logger:     logger.With("component", "delivery-simulator"),
		root:       root,
		stop:       stop,
		running:    make(map[string]context.CancelFunc),
	}
}

// Start launches the simulation of d. Starting a delivery that is already
// running is a no-op.
func (s *Simulator) Start(d *delivery.Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root.Err() != nil {
		return ErrSimulatorStopped
	}
	id := d.ID().String()
	if _, ok := s.running[id]; ok {
		return nil
	}

	ctx, cancel := context.WithCancel(s.root)
	s.running[id] = cancel
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer s.forget(id)
		s.run(ctx, d.Clone())
	}()
	return nil
}

// Cancel aborts one simulation. It reports whether the delivery was running.
func (s *Simulator) Cancel(deliveryID kernel.UUID) bool {
	s.mu.Lock()
	cancel, ok := s.running[deliveryID.String()]
	s.mu.Unlock()

	if ok {
		cancel()
	}
	return ok
}

// Active returns the number of running simulations.
func (s *Simulator) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.running)
}

// Stop cancels every simulation and waits for them to return.
func (s *Simulator) Stop() {
	s.mu.Lock()
	s.stop()
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Simulator) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.running[id]; ok {
		cancel()
		delete(s.running, id)
	}
}

func (s *Simulator) run(ctx context.Context, d *delivery.Delivery) {
	log := s.logger.With("deliveryId", d.ID().String(), "orderId", d.OrderID().String())
	log.InfoContext(ctx, "delivery simulation started")

	d, err := s.travel(ctx, d.ID(), (*delivery.Delivery).StartToRestaurant,
		d.RestaurantLocation(), RestaurantArrivalKm, (*delivery.Delivery).ArriveAtRestaurant)
	if err == nil {
		log.InfoContext(ctx, "driver arrived at restaurant")
		err = s.pause(ctx)
	}
	if err == nil {
		d, err = s.pickUp(ctx, d)
	}
	if err == nil {
		d, err = s.travel(ctx, d.ID(), (*delivery.Delivery).StartToCustomer,
			d.CustomerLocation(), CustomerArrivalKm, nil)
	}
	if err == nil {
		log.InfoContext(ctx, "driver arrived at customer")
		err = s.pause(ctx)
	}
	if err == nil {
		err = s.complete(ctx, d)
	}

	switch {
	case err == nil:
		log.InfoContext(ctx, "order delivered")
	case errors.Is(err, errDeliveryFinished):
		log.InfoContext(ctx, "delivery finished elsewhere, simulation stopped")
	case errors.Is(err, context.Canceled):
		log.InfoContext(context.WithoutCancel(ctx), "delivery simulation cancelled")
	default:
		log.ErrorContext(context.WithoutCancel(ctx), "delivery simulation failed", "error", err)
	}
}

// travel moves the driver toward destination one tick at a time until it is
// within arrivalKm. begin enters the moving status; arrive, when set, leaves it.
func (s *Simulator) travel(
	ctx context.Context,
	id kernel.UUID,
	begin func(*delivery.Delivery) error,
	destination kernel.Location,
	arrivalKm float64,
	arrive func(*delivery.Delivery) error,
) (*delivery.Delivery, error) {
	d, err := s.deliveries.Modify(ctx, id, func(stored *delivery.Delivery) error {
		if stored.Status().IsTerminal() {
			return errDeliveryFinished
		}
		return begin(stored)
	})
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case now := <-ticker.C:
			arrived := false
			d, err = s.deliveries.Modify(ctx, id, func(stored *delivery.Delivery) error {
				if stored.Status().IsTerminal() {
					return errDeliveryFinished
				}
				next := kernel.MoveToward(stored.CurrentLocation(), destination,
					s.cfg.SpeedKmh, s.cfg.TickInterval, now.UTC(), s.cfg.Jitter)
				if err := stored.MoveTo(next); err != nil {
					return err
				}
				arrived = kernel.DistanceKm(next, destination) < arrivalKm
				return nil
			})
			if err != nil {
				return nil, err
			}

			s.publishLocation(ctx, d)

			if !arrived {
				continue
			}
			if arrive != nil {
				return s.deliveries.Modify(ctx, id, arrive)
			}
			return d, nil
		}
	}
}

func (s *Simulator) pause(ctx context.Context) error {
	if s.cfg.ArrivalPause == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.cfg.ArrivalPause)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Simulator) pickUp(ctx context.Context, d *delivery.Delivery) (*delivery.Delivery, error) {
	now := time.Now().UTC()
	d, err := s.deliveries.Modify(ctx, d.ID(), func(stored *delivery.Delivery) error {
		return stored.PickUp(now)
	})
	if err != nil {
		return nil, err
	}

	s.publishStatus(ctx, events.OrderStatusEvent{
		OrderID:   d.OrderID().String(),
		Status:    order.PickedUp.String(),
		Timestamp: now,
		ServiceID: events.DeliveryService,
		Metadata: &events.StatusMetadata{
			DeliveryID: d.ID().String(),
			DriverID:   d.DriverID(),
		},
	})
	return d, nil
}

func (s *Simulator) complete(ctx context.Context, d *delivery.Delivery) error {
	now := time.Now().UTC()
	d, err := s.deliveries.Modify(ctx, d.ID(), func(stored *delivery.Delivery) error {
		return stored.Complete(now)
	})
	if err != nil {
		return err
	}

	s.publishStatus(ctx, events.OrderStatusEvent{
		OrderID:   d.OrderID().String(),
		Status:    order.Delivered.String(),
		Timestamp: now,
		ServiceID: events.DeliveryService,
		Metadata: &events.StatusMetadata{
			DeliveryID:  d.ID().String(),
			DriverID:    d.DriverID(),
			DeliveredAt: d.DeliveredAt(),
		},
	})

	_, err = s.drivers.Release(ctx, d.DriverID(), d.CurrentLocation())
	return err
}

func (s *Simulator) publishLocation(ctx context.Context, d *delivery.Delivery) {
	loc := d.CurrentLocation()
	event := events.DeliveryLocationEvent{
		DeliveryID: d.ID().String(),
		OrderID:    d.OrderID().String(),
		DriverID:   d.DriverID(),
		Latitude:   loc.Latitude(),
		Longitude:  loc.Longitude(),
		Timestamp:  loc.CapturedAt(),
		Metadata:   events.SyntheticLocationMetadata(d.Status().String()),
	}
	if err := s.publisher.Publish(ctx, events.TopicDeliveryLocation, event); err != nil {
		s.logger.WarnContext(ctx, "location update not published",
			"deliveryId", event.DeliveryID, "error", err)
	}
}

func (s *Simulator) publishStatus(ctx context.Context, event events.OrderStatusEvent) {
	if err := s.publisher.Publish(ctx, events.TopicOrderStatus, event); err != nil {
		s.logger.ErrorContext(ctx, "status update not published",
			"orderId", event.OrderID, "status", event.Status, "error", err)
	}
}
