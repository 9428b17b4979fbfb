package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/flicky/carcare-storefront/internal/cart"
	"github.com/flicky/carcare-storefront/internal/catalog"
	"github.com/flicky/carcare-storefront/internal/model"
	"github.com/flicky/carcare-storefront/internal/repository"
)

var (
	ErrLoginRequired    = errors.New("login required")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrCartItemNotFound = errors.New("cart item not found")
)

type CartView struct {
	State   cart.State
	Summary cart.Summary
}

func newCartView(state cart.State) *CartView {
	return &CartView{State: state, Summary: cart.Price(state.Items)}
}

type CartService struct {
	cartRepo repository.CartRepository
}

func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// refreshFailed is shown when a write succeeded but the cart could not be
// read back.
const refreshFailed = "cart could not be refreshed"

func (s *CartService) load(ctx context.Context, userID uuid.UUID) (cart.State, error) {
	st := cart.Reduce(cart.State{}, cart.SetLoading{Loading: true})
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return cart.Reduce(st, cart.SetError{Err: err.Error()}), fmt.Errorf("list cart items: %w", err)
	}
	return cart.Reduce(st, cart.SetCart{Items: items}), nil
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newCartView(state), nil
}

// AddToCart merges into an existing row for the product and returns the
// reloaded cart. An anonymous caller gets ErrLoginRequired. When the reload
// fails after a successful write, the item is merged into the cart read
// before the write and the view carries the error.
func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, productRef string, quantity int) (*CartView, error) {
	if userID == uuid.Nil {
		return nil, ErrLoginRequired
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	product, ok := catalog.Lookup(productRef)
	if !ok {
		return nil, ErrProductNotFound
	}

	prior, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	item := &model.CartItem{
		UserID:       userID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		ProductImage: product.ImageURL,
		Quantity:     quantity,
	}
	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	view, err := s.GetCart(ctx, userID)
	if err != nil {
		added := *item
		added.Quantity = quantity
		st := cart.Reduce(prior, cart.AddItem{Item: added})
		return newCartView(cart.Reduce(st, cart.SetError{Err: refreshFailed})), nil
	}
	return view, nil
}

// UpdateQuantity removes the row when quantity is zero or less.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, userID, itemID)
	}
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !containsItem(state.Items, itemID) {
		return nil, ErrCartItemNotFound
	}

	updated, err := s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	if updated == nil {
		return nil, ErrCartItemNotFound
	}
	return newCartView(cart.Reduce(state, cart.UpdateQuantity{ItemID: itemID, Quantity: quantity})), nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID uuid.UUID) (*CartView, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	deleted, err := s.cartRepo.DeleteItem(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("delete cart item: %w", err)
	}
	if !deleted {
		return nil, ErrCartItemNotFound
	}
	return newCartView(cart.Reduce(state, cart.RemoveItem{ItemID: itemID})), nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	return newCartView(cart.Reduce(cart.State{}, cart.Clear{})), nil
}

func containsItem(items []model.CartItem, id uuid.UUID) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
