// Package driverrepo is the in-memory fleet store of the dispatch service.
// Reservation runs under the write lock, which makes driver assignment atomic.
package driverrepo

import (
	"context"
	"fmt"
	"sync"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// Repository is an in-memory ports.DriverRepository.
type Repository struct {
	mu      sync.RWMutex
	drivers map[string]*driver.Driver
	seq     []string
}

var _ ports.DriverRepository = (*Repository)(nil)

// NewRepository returns an empty fleet.
func NewRepository() *Repository {
	return &Repository{drivers: make(map[string]*driver.Driver)}
}

// Add stores a copy of aggregate.
func (r *Repository) Add(_ context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drivers[aggregate.ID()]; ok {
		return fmt.Errorf("driver %s: %w", aggregate.ID(), ports.ErrAlreadyExists)
	}
	r.drivers[aggregate.ID()] = aggregate.Clone()
	r.seq = append(r.seq, aggregate.ID())
	return nil
}

// Get returns a copy of the driver.
func (r *Repository) Get(_ context.Context, id string) (*driver.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drivers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id)
	}
	return d.Clone(), nil
}

// List returns copies in roster order.
func (r *Repository) List(_ context.Context) ([]*driver.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*driver.Driver, 0, len(r.seq))
	for _, id := range r.seq {
		out = append(out, r.drivers[id].Clone())
	}
	return out, nil
}

// Reserve hands pick working copies of the fleet and stores the one it returns.
func (r *Repository) Reserve(_ context.Context, pick ports.DriverPicker) (*driver.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fleet := make([]*driver.Driver, 0, len(r.seq))
	for _, id := range r.seq {
		fleet = append(fleet, r.drivers[id].Clone())
	}

	chosen, err := pick(fleet)
	if err != nil {
		return nil, err
	}
	if err = chosen.Validate(); err != nil {
		return nil, err
	}
	if _, ok := r.drivers[chosen.ID()]; !ok {
		return nil, errs.NewObjectNotFoundError("driver", chosen.ID())
	}

	r.drivers[chosen.ID()] = chosen.Clone()
	return chosen.Clone(), nil
}

// Release makes the driver available again at location.
func (r *Repository) Release(_ context.Context, id string, location kernel.Location) (*driver.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.drivers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id)
	}

	working := stored.Clone()
	if err := working.Release(location); err != nil {
		return nil, err
	}

	r.drivers[id] = working
	return working.Clone(), nil
}
