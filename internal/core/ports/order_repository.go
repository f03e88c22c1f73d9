// Package ports defines the contracts between the application core and its
// adapters: repositories for each aggregate, the event channel and the geocoder.
package ports

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// ErrAlreadyExists is returned by Add when the aggregate is already stored.
var ErrAlreadyExists = errors.New("aggregate already exists")

// OrderFilter narrows List results. Zero fields match everything.
type OrderFilter struct {
	CustomerID   string
	RestaurantID string

	// ActiveOnly drops delivered orders.
	ActiveOnly bool
}

// OrderRepository stores order aggregates. The ordering service keeps the
// authoritative orders here; the kitchen keeps its projection in its own instance.
type OrderRepository interface {
	// Add stores a new order. Returns ErrAlreadyExists for a known ID.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns a snapshot of the order or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Modify applies fn to the stored order atomically and returns the result.
	// If fn fails nothing is written and its error is returned unchanged.
	Modify(ctx context.Context, id kernel.UUID, fn func(*order.Order) error) (*order.Order, error)

	// List returns snapshots matching filter, oldest first.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
