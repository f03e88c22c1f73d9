package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one order line. It is an immutable value object; the zero value is invalid.
type Item struct {
	itemID   string
	name     string
	quantity int
	price    decimal.Decimal

	isConstructed bool
}

// NewItem validates an order line. Quantity must be positive and the unit
// price must not be negative.
func NewItem(itemID, name string, quantity int, price decimal.Decimal) (Item, error) {
	item := Item{
		itemID:        itemID,
		name:          name,
		isConstructed: true,
	}

	if err := errors.Join(item.setQuantity(quantity), item.setPrice(price)); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate reports whether the Item was built by NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return errs.NewValueIsRequiredError("item must be created via NewItem constructor")
	}
	return nil
}

// ItemID returns the menu identifier.
func (i Item) ItemID() string {
	return i.itemID
}

// Name returns the menu name.
func (i Item) Name() string {
	return i.name
}

// Quantity is always positive for a constructed Item.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the unit price.
func (i Item) Price() decimal.Decimal {
	return i.price
}

// Subtotal returns quantity × unit price.
func (i Item) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%s is negative", price))
	}
	i.price = price
	return nil
}
