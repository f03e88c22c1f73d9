package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
)

// DeliveryRepository stores deliveries of the dispatch service.
type DeliveryRepository interface {
	// Add stores a new delivery. At most one delivery may reference an order;
	// a second one is rejected with ErrAlreadyExists.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrder returns the delivery carrying orderID or an errs.ObjectNotFoundError.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// Modify applies fn to the stored delivery atomically.
	Modify(ctx context.Context, id kernel.UUID, fn func(*delivery.Delivery) error) (*delivery.Delivery, error)

	// Remove drops a delivery and its order index entry. It undoes an
	// assignment whose simulation never started.
	Remove(ctx context.Context, id kernel.UUID) error

	// List returns every delivery, oldest assignment first.
	List(ctx context.Context) ([]*delivery.Delivery, error)
}
