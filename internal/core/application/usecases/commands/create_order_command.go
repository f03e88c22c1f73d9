package commands

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ItemID   string
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// CreateOrderCommand places a new order with a restaurant on behalf of a customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("customer-1", "rest-1", []OrderItemInput{
//	    {ItemID: "ramen-1", Name: "Tonkotsu Ramen", Quantity: 1, Price: decimal.NewFromInt(1200)},
//	})
//	if errors.Is(err, order.ErrInvalidOrder) {
//	    // reject the request
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   string
	restaurantID string
	items        []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the request. Every failure wraps order.ErrInvalidOrder.
func NewCreateOrderCommand(customerID, restaurantID string, items []OrderItemInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, fmt.Errorf("%w: %w", order.ErrInvalidOrder, err)
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID is who places the order.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// RestaurantID is the kitchen the order goes to.
func (c CreateOrderCommand) RestaurantID() string {
	return c.restaurantID
}

// Items returns the validated order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID string) error {
	if strings.TrimSpace(restaurantID) == "" {
		return errs.NewValueIsRequiredError("restaurantId")
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setItems(inputs []OrderItemInput) error {
	if len(inputs) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(inputs))
	var itemErrs []error
	for i, in := range inputs {
		item, err := order.NewItem(in.ItemID, in.Name, in.Quantity, in.Price)
		if err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	c.items = items
	return nil
}
