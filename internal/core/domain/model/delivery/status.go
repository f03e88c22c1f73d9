package delivery

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// ErrTransitionNotAllowed is returned when a lifecycle step is attempted from
// the wrong status.
var ErrTransitionNotAllowed = errors.New("delivery status transition is not allowed")

// Status is the delivery lifecycle state.
//
//	Assigned ──> EnRouteToRestaurant ──> AtRestaurant ──> PickedUp ──> EnRouteToCustomer ──> Delivered
type Status int

const (
	Unknown Status = iota
	Assigned
	EnRouteToRestaurant
	AtRestaurant
	PickedUp
	EnRouteToCustomer
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "UNKNOWN",
		Assigned:            "ASSIGNED",
		EnRouteToRestaurant: "EN_ROUTE_TO_RESTAURANT",
		AtRestaurant:        "AT_RESTAURANT",
		PickedUp:            "PICKED_UP",
		EnRouteToCustomer:   "EN_ROUTE_TO_CUSTOMER",
		Delivered:           "DELIVERED",
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Assigned, EnRouteToRestaurant, AtRestaurant, PickedUp, EnRouteToCustomer, Delivered}
}

// ParseStatus converts the wire form to a Status.
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses() {
		if status.String() == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid delivery status", s))
}

// Validate rejects Unknown and values outside the enum.
func (s Status) Validate() error {
	if s < Assigned || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the wire name, e.g. "EN_ROUTE_TO_CUSTOMER".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the delivery is finished.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// IsMoving reports whether ticks may move the driver.
func (s Status) IsMoving() bool {
	return s == EnRouteToRestaurant || s == EnRouteToCustomer
}

func (s Status) advance(from, to Status) (Status, error) {
	if s != from {
		return Unknown, fmt.Errorf("%w: %s to %s requires %s", ErrTransitionNotAllowed, s, to, from)
	}
	return to, nil
}
