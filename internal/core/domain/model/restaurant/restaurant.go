package restaurant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// ErrRestaurantIsNotConstructed is returned for a zero-value Restaurant.
var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant is a kitchen served by the restaurant service. The catalogue is
// static; it only decides which ORDER_CREATED events the kitchen projects.
type Restaurant struct {
	id              string
	name            string
	address         string
	phone           string
	location        kernel.Location
	preparationTime time.Duration

	isConstructed bool
}

// NewRestaurant validates and builds a catalog entry. The preparation time
// may be zero but not negative.
func NewRestaurant(id, name, address, phone string, location kernel.Location, preparationTime time.Duration) (*Restaurant, error) {
	r := &Restaurant{
		id:              id,
		name:            name,
		address:         address,
		phone:           phone,
		location:        location,
		preparationTime: preparationTime,
		isConstructed:   true,
	}

	var idErr, nameErr, prepErr error
	if strings.TrimSpace(id) == "" {
		idErr = errs.NewValueIsRequiredError("id")
	}
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if preparationTime < 0 {
		prepErr = errs.NewValueIsInvalidErrorWithCause("preparation time", fmt.Errorf("%s is negative", preparationTime))
	}

	if err := errors.Join(idErr, nameErr, location.Validate(), prepErr); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate reports ErrRestaurantIsNotConstructed for a nil or zero-value
// Restaurant.
func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

// ID returns the catalog identifier, such as "rest-1".
func (r *Restaurant) ID() string {
	return r.id
}

// Name returns the display name.
func (r *Restaurant) Name() string {
	return r.name
}

// Address returns the street address.
func (r *Restaurant) Address() string {
	return r.address
}

// Phone returns the contact number.
func (r *Restaurant) Phone() string {
	return r.phone
}

// Location returns where drivers pick orders up.
func (r *Restaurant) Location() kernel.Location {
	return r.location
}

// PreparationTime is the usual time the kitchen needs for one order.
func (r *Restaurant) PreparationTime() time.Duration {
	return r.preparationTime
}

// Clone returns an independent copy.
func (r *Restaurant) Clone() *Restaurant {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
