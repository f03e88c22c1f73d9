package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrderInStatus(t *testing.T, restaurantID string, status order.Status) *order.Order {
	t.Helper()

	item, err := order.NewItem("ramen-1", "Tonkotsu Ramen", 1, decimal.NewFromInt(1200))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", restaurantID, []order.Item{item}, placedAt)
	require.NoError(t, err)
	require.NoError(t, o.ApplyStatus(status, placedAt))
	return o
}
