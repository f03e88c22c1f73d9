// Package deliveryrepo is the in-memory delivery store of the dispatch service.
package deliveryrepo

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// Repository is an in-memory ports.DeliveryRepository with an order index.
type Repository struct {
	mu         sync.RWMutex
	deliveries map[kernel.UUID]*delivery.Delivery
	byOrder    map[kernel.UUID]kernel.UUID
	seq        []kernel.UUID
}

var _ ports.DeliveryRepository = (*Repository)(nil)

// NewRepository returns an empty store.
func NewRepository() *Repository {
	return &Repository{
		deliveries: make(map[kernel.UUID]*delivery.Delivery),
		byOrder:    make(map[kernel.UUID]kernel.UUID),
	}
}

// Add stores a copy of aggregate. A second delivery for the same order is
// rejected with ports.ErrAlreadyExists.
func (r *Repository) Add(_ context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deliveries[aggregate.ID()]; ok {
		return fmt.Errorf("delivery %s: %w", aggregate.ID(), ports.ErrAlreadyExists)
	}
	if existing, ok := r.byOrder[aggregate.OrderID()]; ok {
		return fmt.Errorf("order %s already carried by delivery %s: %w", aggregate.OrderID(), existing, ports.ErrAlreadyExists)
	}

	r.deliveries[aggregate.ID()] = aggregate.Clone()
	r.byOrder[aggregate.OrderID()] = aggregate.ID()
	r.seq = append(r.seq, aggregate.ID())
	return nil
}

// Get returns a copy of the delivery.
func (r *Repository) Get(_ context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.deliveries[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", id.String())
	}
	return d.Clone(), nil
}

// GetByOrder looks the delivery up through the order index.
func (r *Repository) GetByOrder(_ context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery for order", orderID.String())
	}
	return r.deliveries[id].Clone(), nil
}

// Modify runs fn on a working copy under the write lock and stores the copy
// only if fn succeeds.
func (r *Repository) Modify(
	_ context.Context,
	id kernel.UUID,
	fn func(*delivery.Delivery) error,
) (*delivery.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.deliveries[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", id.String())
	}

	working := stored.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}

	r.deliveries[id] = working
	return working.Clone(), nil
}

// Remove drops the delivery and its order index entry.
func (r *Repository) Remove(_ context.Context, id kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.deliveries[id]
	if !ok {
		return errs.NewObjectNotFoundError("delivery", id.String())
	}

	delete(r.deliveries, id)
	delete(r.byOrder, d.OrderID())
	r.seq = slices.DeleteFunc(r.seq, func(seqID kernel.UUID) bool { return seqID == id })
	return nil
}

// List returns copies in assignment order.
func (r *Repository) List(_ context.Context) ([]*delivery.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*delivery.Delivery, 0, len(r.seq))
	for _, id := range r.seq {
		out = append(out, r.deliveries[id].Clone())
	}
	return out, nil
}
