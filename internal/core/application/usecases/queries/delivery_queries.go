package queries

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrListDeliveriesQueryIsNotConstructed = errors.New(
		"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
	)
	ErrGetDeliveryQueryIsNotConstructed = errors.New(
		"GetDeliveryQuery must be created via NewGetDeliveryQuery or NewGetDeliveryByOrderQuery constructor",
	)
	ErrListDriversQueryIsNotConstructed = errors.New(
		"ListDriversQuery must be created via NewListDriversQuery constructor",
	)
	ErrGetDriverQueryIsNotConstructed = errors.New(
		"GetDriverQuery must be created via NewGetDriverQuery constructor",
	)
	ErrGetDeliveryStatsQueryIsNotConstructed = errors.New(
		"GetDeliveryStatsQuery must be created via NewGetDeliveryStatsQuery constructor",
	)
	ErrListOverdueDeliveriesQueryIsNotConstructed = errors.New(
		"ListOverdueDeliveriesQuery must be created via NewListOverdueDeliveriesQuery constructor",
	)
)

// ListDeliveriesQuery asks for every delivery.
type ListDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery returns the query.
func NewListDeliveriesQuery() ListDeliveriesQuery {
	return ListDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate reports a zero-value query.
func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

// GetDeliveryQuery looks a delivery up either by its own ID or by the order it serves.
type GetDeliveryQuery struct {
	id      kernel.UUID
	byOrder bool

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery looks a delivery up by its own id.
func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{id: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

// NewGetDeliveryByOrderQuery looks a delivery up by the order it carries.
func NewGetDeliveryByOrderQuery(orderID kernel.UUID) (GetDeliveryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{id: orderID, byOrder: true, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports a zero-value query.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// ListDriversQuery asks for the whole fleet.
type ListDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewListDriversQuery returns the query.
func NewListDriversQuery() ListDriversQuery {
	return ListDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate reports a zero-value query.
func (q ListDriversQuery) Validate() error {
	return q.guard.Validate(ErrListDriversQueryIsNotConstructed)
}

// GetDriverQuery asks for one driver.
type GetDriverQuery struct {
	driverID string

	guard guard.ConstructorGuard
}

// NewGetDriverQuery requires a non-empty driver id.
func NewGetDriverQuery(driverID string) (GetDriverQuery, error) {
	if strings.TrimSpace(driverID) == "" {
		return GetDriverQuery{}, errs.NewValueIsRequiredError("driverID")
	}
	return GetDriverQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports a zero-value query.
func (q GetDriverQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverQueryIsNotConstructed)
}

// GetDeliveryStatsQuery asks for delivery counts and free drivers.
type GetDeliveryStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeliveryStatsQuery returns the query.
func NewGetDeliveryStatsQuery() GetDeliveryStatsQuery {
	return GetDeliveryStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate reports a zero-value query.
func (q GetDeliveryStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatsQueryIsNotConstructed)
}

// ListOverdueDeliveriesQuery lists unfinished deliveries whose estimated
// delivery time is before now.
type ListOverdueDeliveriesQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewListOverdueDeliveriesQuery asks for unfinished deliveries past their
// ETA at now.
func NewListOverdueDeliveriesQuery(now time.Time) (ListOverdueDeliveriesQuery, error) {
	if now.IsZero() {
		return ListOverdueDeliveriesQuery{}, errs.NewValueIsRequiredError("now")
	}
	return ListOverdueDeliveriesQuery{now: now, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports a zero-value query.
func (q ListOverdueDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListOverdueDeliveriesQueryIsNotConstructed)
}

// DeliveryStatsResponse counts deliveries by status.
type DeliveryStatsResponse struct {
	Total            int
	ByStatus         map[string]int
	AvailableDrivers int
}
