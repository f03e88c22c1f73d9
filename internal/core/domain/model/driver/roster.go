package driver

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

type rosterEntry struct {
	id      string
	name    string
	phone   string
	vehicle VehicleType
}

var defaultRoster = []rosterEntry{
	{id: "driver-1", name: "Tanaka San", phone: "090-1234-5678", vehicle: Motorcycle},
	{id: "driver-2", name: "Suzuki San", phone: "090-2345-6789", vehicle: Bike},
	{id: "driver-3", name: "Sato San", phone: "090-3456-7890", vehicle: Car},
}

// DefaultRoster builds the seeded fleet, each driver parked at a random point
// within spanDeg of center.
func DefaultRoster(center kernel.Location, spanDeg float64, now time.Time) ([]*Driver, error) {
	drivers := make([]*Driver, 0, len(defaultRoster))
	var joined error

	for _, e := range defaultRoster {
		loc, err := kernel.NewRandomLocationAround(center, spanDeg, now)
		if err != nil {
			joined = errors.Join(joined, err)
			continue
		}

		d, err := NewDriver(e.id, e.name, e.phone, e.vehicle, loc)
		if err != nil {
			joined = errors.Join(joined, err)
			continue
		}
		drivers = append(drivers, d)
	}

	if joined != nil {
		return nil, joined
	}
	return drivers, nil
}
