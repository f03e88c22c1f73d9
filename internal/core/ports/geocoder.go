package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Geocoder resolves a restaurant or customer identifier to a waypoint.
type Geocoder interface {
	Locate(ctx context.Context, entityID string) (kernel.Location, error)
}
