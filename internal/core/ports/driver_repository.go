package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
)

// DriverPicker chooses a driver from the fleet and reserves it in place.
type DriverPicker func(fleet []*driver.Driver) (*driver.Driver, error)

// DriverRepository stores the dispatch fleet.
type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error

	Get(ctx context.Context, id string) (*driver.Driver, error)

	// List returns the fleet in registration order.
	List(ctx context.Context) ([]*driver.Driver, error)

	// Reserve runs pick against the live fleet, in registration order, while
	// holding the store's write lock, and persists the driver it returns.
	// Two concurrent calls can never reserve the same driver.
	Reserve(ctx context.Context, pick DriverPicker) (*driver.Driver, error)

	// Release makes the driver available again at location.
	Release(ctx context.Context, id string, location kernel.Location) (*driver.Driver, error)
}
