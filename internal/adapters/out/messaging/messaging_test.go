package messaging_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/core/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noop(context.Context, []byte) error { return nil }

func TestRegistry_Subscribe(t *testing.T) {
	t.Run("should accept one handler per topic", func(t *testing.T) {
		r := messaging.NewRegistry(discardLogger())

		require.NoError(t, r.Subscribe("orders", noop))
		require.NoError(t, r.Subscribe("order-status", noop))

		err := r.Subscribe("orders", noop)
		require.ErrorIs(t, err, messaging.ErrDuplicateSubscription)
	})

	t.Run("should refuse subscriptions after Seal", func(t *testing.T) {
		r := messaging.NewRegistry(discardLogger())
		require.NoError(t, r.Subscribe("orders", noop))

		topics, err := r.Seal()
		require.NoError(t, err)
		assert.Equal(t, []string{"orders"}, topics)

		require.ErrorIs(t, r.Subscribe("order-status", noop), messaging.ErrLateSubscription)
		_, err = r.Seal()
		require.ErrorIs(t, err, messaging.ErrAlreadyStarted)
	})
}

func TestRegistry_Dispatch(t *testing.T) {
	t.Run("should pass the payload to the handler", func(t *testing.T) {
		r := messaging.NewRegistry(discardLogger())
		var got []byte
		require.NoError(t, r.Subscribe("orders", func(_ context.Context, p []byte) error {
			got = p
			return nil
		}))

		ok := r.Dispatch(t.Context(), "orders", []byte(`{"id":"1"}`))

		assert.True(t, ok)
		assert.JSONEq(t, `{"id":"1"}`, string(got))
	})

	t.Run("should survive handler errors and panics", func(t *testing.T) {
		r := messaging.NewRegistry(discardLogger())
		require.NoError(t, r.Subscribe("a", func(context.Context, []byte) error { return errors.New("boom") }))
		require.NoError(t, r.Subscribe("b", func(context.Context, []byte) error { panic("boom") }))

		assert.False(t, r.Dispatch(t.Context(), "a", nil))
		assert.NotPanics(t, func() {
			assert.False(t, r.Dispatch(t.Context(), "b", nil))
		})
	})

	t.Run("should ignore topics without handler", func(t *testing.T) {
		r := messaging.NewRegistry(discardLogger())

		assert.False(t, r.Dispatch(t.Context(), "unknown", nil))
		assert.False(t, r.Handles("unknown"))
	})
}

func TestEncode(t *testing.T) {
	t.Run("should use MessageKey when available", func(t *testing.T) {
		key, payload, err := messaging.Encode(events.OrderStatusEvent{OrderID: "o-1", Status: "READY"})

		require.NoError(t, err)
		assert.Equal(t, "o-1", key)
		assert.Contains(t, string(payload), `"orderId":"o-1"`)
	})

	t.Run("should prefer id, then orderId, then deliveryId", func(t *testing.T) {
		tests := []struct {
			msg  map[string]string
			want string
		}{
			{map[string]string{"id": "a", "orderId": "b", "deliveryId": "c"}, "a"},
			{map[string]string{"orderId": "b", "deliveryId": "c"}, "b"},
			{map[string]string{"deliveryId": "c"}, "c"},
			{map[string]string{"other": "x"}, ""},
		}

		for _, tt := range tests {
			key, _, err := messaging.Encode(tt.msg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
		}
	})

	t.Run("should pass raw payloads through", func(t *testing.T) {
		raw := json.RawMessage(`{"orderId":"o-9"}`)

		key, payload, err := messaging.Encode(raw)

		require.NoError(t, err)
		assert.Equal(t, "o-9", key)
		assert.Equal(t, []byte(raw), payload)
	})

	t.Run("should fail on unencodable messages", func(t *testing.T) {
		_, _, err := messaging.Encode(make(chan int))

		require.Error(t, err)
	})
}

func TestPublishFailureError(t *testing.T) {
	cause := errors.New("broker down")
	err := error(messaging.NewPublishFailureError("orders", cause))

	require.ErrorIs(t, err, messaging.ErrPublishFailure)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "publish failed: topic orders: broker down", err.Error())

	var pf *messaging.PublishFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, "orders", pf.Topic)
}
