package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidOrder marks a rejected order placement: no items, a non-positive
	// quantity or a negative price. It is a caller error.
	ErrInvalidOrder = errors.New("invalid order")
)

// Order is the aggregate root of the order lifecycle. The ordering service owns
// the authoritative copy; the kitchen keeps a projection built from the
// ORDER_CREATED event and mutates it through the guarded transitions.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Has at least one item, every item valid
//   - totalPrice is the sum of item subtotals, computed once at creation
//   - updatedAt is never before createdAt on locally generated transitions
type Order struct {
	id           kernel.UUID
	customerID   string
	restaurantID string
	items        []Item
	totalPrice   decimal.Decimal
	status       Status
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewOrder places a new order in the Created status and computes its total.
//
// Every validation failure wraps ErrInvalidOrder, so callers can map the whole
// family to a single client error:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "cust-1", "rest-1", items, time.Now())
//	if errors.Is(err, order.ErrInvalidOrder) {
//	    // 400
//	}
func NewOrder(id kernel.UUID, customerID, restaurantID string, items []Item, now time.Time) (*Order, error) {
	o := &Order{
		customerID:    customerID,
		restaurantID:  restaurantID,
		status:        Created,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(o.setID(id), o.setItems(items)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	o.totalPrice = sumSubtotals(o.items)
	return o, nil
}

// RestoreOrder rebuilds an Order from a snapshot received from another service.
// The total is taken as given and not recomputed.
func RestoreOrder(
	id kernel.UUID,
	customerID, restaurantID string,
	items []Item,
	totalPrice decimal.Decimal,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		customerID:    customerID,
		restaurantID:  restaurantID,
		totalPrice:    totalPrice,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(o.setID(id), o.setItems(items), o.setStatus(status)); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identity.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns who placed the order.
func (o *Order) CustomerID() string {
	return o.customerID
}

// RestaurantID returns the kitchen that prepares the order.
func (o *Order) RestaurantID() string {
	return o.restaurantID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// TotalPrice is the sum of price times quantity over the items, fixed at
// creation.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.totalPrice
}

// Status returns the last status stored for the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last applied status.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Clone returns a deep copy so stores can hand out snapshots.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.items = slices.Clone(o.items)
	return &c
}

// ApplyStatus overwrites status and updatedAt with the values reported by
// another service. No precondition is checked: events are trusted and applied
// in arrival order, backward moves included.
func (o *Order) ApplyStatus(status Status, at time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	o.status = status
	o.updatedAt = at
	return nil
}

// Accept moves Created to Accepted. Any other source status returns
// ErrTransitionNotAllowed and leaves the order untouched.
func (o *Order) Accept(at time.Time) error {
	return o.transition(o.status.Accept, at)
}

// StartPreparation moves Accepted to Preparing.
func (o *Order) StartPreparation(at time.Time) error {
	return o.transition(o.status.StartPreparation, at)
}

// MarkReady moves Preparing to Ready.
func (o *Order) MarkReady(at time.Time) error {
	return o.transition(o.status.MarkReady, at)
}

func (o *Order) transition(next func() (Status, error), at time.Time) error {
	status, err := next()
	if err != nil {
		return err
	}

	o.status = status
	o.updatedAt = at
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}

	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func sumSubtotals(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
