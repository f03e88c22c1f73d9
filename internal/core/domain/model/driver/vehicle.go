package driver

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// VehicleType is what a driver rides. It only affects presentation; every
// vehicle moves at the configured simulation speed.
type VehicleType string

const (
	Bike       VehicleType = "bike"
	Motorcycle VehicleType = "motorcycle"
	Car        VehicleType = "car"
)

// Validate accepts bike, motorcycle and car.
func (v VehicleType) Validate() error {
	switch v {
	case Bike, Motorcycle, Car:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicle is invalid", fmt.Errorf("%q is not a known vehicle", string(v)))
	}
}

// String returns the wire name of the vehicle.
func (v VehicleType) String() string {
	return string(v)
}
