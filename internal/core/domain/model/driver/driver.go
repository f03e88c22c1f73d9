package driver

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrIDIsRequired   = errs.NewValueIsRequiredError("id")
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrDriverIsNotConstructed is returned when a Driver was not created via NewDriver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

	// ErrDriverIsBusy is returned when reserving a driver that already carries a delivery.
	ErrDriverIsBusy = errors.New("driver is not available")
)

// Driver is a member of the dispatch fleet.
//
// Invariant: available is false exactly while a non-terminal delivery references
// the driver. Reserve and Release are the only ways to flip it.
type Driver struct {
	id        string
	name      string
	phone     string
	vehicle   VehicleType
	available bool
	location  kernel.Location
	guard     guard.ConstructorGuard
}

// NewDriver registers an available driver at location.
func NewDriver(id, name, phone string, vehicle VehicleType, location kernel.Location) (*Driver, error) {
	d := &Driver{
		phone:     phone,
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		vehicle.Validate(),
		location.Validate(),
	); err != nil {
		return nil, err
	}

	d.vehicle = vehicle
	d.location = location
	return d, nil
}

// Validate reports ErrDriverIsNotConstructed for a nil or zero-value Driver.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the roster identifier, such as "driver-1".
func (d *Driver) ID() string {
	return d.id
}

// Name returns the display name.
func (d *Driver) Name() string {
	return d.name
}

// Phone returns the contact number.
func (d *Driver) Phone() string {
	return d.phone
}

// Vehicle returns what the driver rides.
func (d *Driver) Vehicle() VehicleType {
	return d.vehicle
}

// IsAvailable reports whether the driver can take a new delivery.
func (d *Driver) IsAvailable() bool {
	return d.available
}

// Location returns the last known position of the driver.
func (d *Driver) Location() kernel.Location {
	return d.location
}

// Clone returns an independent copy.
func (d *Driver) Clone() *Driver {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// Reserve marks the driver busy. It fails with ErrDriverIsBusy if the driver
// is already reserved.
func (d *Driver) Reserve() error {
	if !d.available {
		return ErrDriverIsBusy
	}
	d.available = false
	return nil
}

// Release makes the driver available again, parked at location.
func (d *Driver) Release(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.available = true
	d.location = location
	return nil
}

func (d *Driver) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDIsRequired
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}
