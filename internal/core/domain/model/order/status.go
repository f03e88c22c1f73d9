package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// ErrTransitionNotAllowed is returned by the guarded kitchen transitions when
// the order is not in the required source status.
var ErrTransitionNotAllowed = errors.New("status transition is not allowed")

// Status represents the lifecycle state of an order as seen by every service.
//
// State transitions:
//
//	Created ──> Accepted ──> Preparing ──> Ready ──> PickedUp ──> Delivered
//	└──────── kitchen ───────────────────────┘   └──── dispatch ────┘
//
// The kitchen drives the first three transitions through Accept, StartPreparation
// and MarkReady. The last two are reported by the dispatch service and are
// applied without a precondition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is the status of a freshly placed order.
	Created

	// Accepted means the restaurant has taken the order.
	Accepted

	// Preparing means the kitchen is cooking.
	Preparing

	// Ready means the food is waiting for a driver. Dispatch assigns one on this event.
	Ready

	// PickedUp means the driver has collected the food.
	PickedUp

	// Delivered is terminal.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Created:   "CREATED",
		Accepted:  "ACCEPTED",
		Preparing: "PREPARING",
		Ready:     "READY",
		PickedUp:  "PICKED_UP",
		Delivered: "DELIVERED",
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Created, Accepted, Preparing, Ready, PickedUp, Delivered}
}

// ParseStatus converts the wire form ("CREATED", "PICKED_UP", ...) to a Status.
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses() {
		if getStatusStrings()[status] == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the six lifecycle statuses.
func (s Status) Validate() error {
	if s < Created || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire form of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are expected.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Accept transitions Created to Accepted.
func (s Status) Accept() (Status, error) {
	return s.advance(Created, Accepted)
}

// StartPreparation transitions Accepted to Preparing.
func (s Status) StartPreparation() (Status, error) {
	return s.advance(Accepted, Preparing)
}

// MarkReady transitions Preparing to Ready.
func (s Status) MarkReady() (Status, error) {
	return s.advance(Preparing, Ready)
}

func (s Status) advance(from, to Status) (Status, error) {
	if s != from {
		return Unknown, fmt.Errorf("%w: %s to %s requires %s", ErrTransitionNotAllowed, s, to, from)
	}
	return to, nil
}
