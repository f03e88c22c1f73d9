// Package orderrepo is the in-memory order store. It guards its map with a
// sync.RWMutex and hands out clones, so readers see the state of the last
// completed write.
package orderrepo

import (
	"context"
	"fmt"
	"sync"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// Repository is an in-memory ports.OrderRepository.
type Repository struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
	seq    []kernel.UUID
}

var _ ports.OrderRepository = (*Repository)(nil)

// NewRepository returns an empty store.
func NewRepository() *Repository {
	return &Repository{orders: make(map[kernel.UUID]*order.Order)}
}

// Add stores a copy of aggregate.
func (r *Repository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[aggregate.ID()]; ok {
		return fmt.Errorf("order %s: %w", aggregate.ID(), ports.ErrAlreadyExists)
	}
	r.orders[aggregate.ID()] = aggregate.Clone()
	r.seq = append(r.seq, aggregate.ID())
	return nil
}

// Get returns a copy of the order.
func (r *Repository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o.Clone(), nil
}

// Modify runs fn on a working copy under the write lock and stores the copy
// only if fn succeeds.
func (r *Repository) Modify(_ context.Context, id kernel.UUID, fn func(*order.Order) error) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	working := stored.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}

	r.orders[id] = working
	return working.Clone(), nil
}

// List returns copies matching filter, oldest first.
func (r *Repository) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*order.Order, 0, len(r.seq))
	for _, id := range r.seq {
		o := r.orders[id]
		if filter.CustomerID != "" && o.CustomerID() != filter.CustomerID {
			continue
		}
		if filter.RestaurantID != "" && o.RestaurantID() != filter.RestaurantID {
			continue
		}
		if filter.ActiveOnly && o.Status().IsTerminal() {
			continue
		}
		out = append(out, o.Clone())
	}
	return out, nil
}
