// Package cart holds the cart state reducer and the storefront price summary.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flicky/carcare-storefront/internal/model"
)

var (
	FreeShippingThreshold = decimal.NewFromInt(100)
	ShippingFee           = decimal.RequireFromString("9.99")
	TaxRate               = decimal.RequireFromString("0.08")
)

type State struct {
	Items   []model.CartItem
	Loading bool
	Err     string
}

type Action interface{ apply(State) State }

type SetCart struct{ Items []model.CartItem }

type SetLoading struct{ Loading bool }

// AddItem merges into an existing line for the same product.
type AddItem struct{ Item model.CartItem }

// UpdateQuantity sets a line's quantity; zero or less removes the line.
type UpdateQuantity struct {
	ItemID   uuid.UUID
	Quantity int
}

type RemoveItem struct{ ItemID uuid.UUID }

type Clear struct{}

type SetError struct{ Err string }

// Reduce returns the state after applying a. The input state is not modified.
func Reduce(s State, a Action) State {
	return a.apply(s)
}

func (a SetCart) apply(s State) State {
	s.Items = cloneItems(a.Items)
	s.Loading = false
	return s
}

func (a SetLoading) apply(s State) State {
	s.Loading = a.Loading
	return s
}

func (a AddItem) apply(s State) State {
	items := cloneItems(s.Items)
	for i := range items {
		if items[i].ProductID == a.Item.ProductID {
			items[i].Quantity += a.Item.Quantity
			s.Items = items
			return s
		}
	}
	s.Items = append(items, a.Item)
	return s
}

func (a UpdateQuantity) apply(s State) State {
	if a.Quantity <= 0 {
		return RemoveItem{ItemID: a.ItemID}.apply(s)
	}
	items := cloneItems(s.Items)
	for i := range items {
		if items[i].ID == a.ItemID {
			items[i].Quantity = a.Quantity
		}
	}
	s.Items = items
	return s
}

func (a RemoveItem) apply(s State) State {
	items := make([]model.CartItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ID != a.ItemID {
			items = append(items, item)
		}
	}
	s.Items = items
	return s
}

func (Clear) apply(s State) State {
	s.Items = []model.CartItem{}
	return s
}

func (a SetError) apply(s State) State {
	s.Err = a.Err
	s.Loading = false
	return s
}

func cloneItems(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}

func Subtotal(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func ItemCount(items []model.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

type Summary struct {
	Subtotal              decimal.Decimal
	Shipping              decimal.Decimal
	Tax                   decimal.Decimal
	Total                 decimal.Decimal
	FreeShippingRemaining decimal.Decimal
	ItemCount             int
}

// Price computes the cart page totals. Shipping is free strictly above the
// threshold.
func Price(items []model.CartItem) Summary {
	subtotal := Subtotal(items)
	shipping := ShippingFee
	remaining := FreeShippingThreshold.Sub(subtotal)
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
		remaining = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return Summary{
		Subtotal:              subtotal,
		Shipping:              shipping,
		Tax:                   tax,
		Total:                 subtotal.Add(shipping).Add(tax),
		FreeShippingRemaining: remaining,
		ItemCount:             ItemCount(items),
	}
}
