package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/carcare-storefront/internal/cart"
	"github.com/flicky/carcare-storefront/internal/model"
	"github.com/flicky/carcare-storefront/internal/repository"
)

const (
	nodiShine = "1"
	starGold  = "550e8400-e29b-41d4-a716-446655440004"
)

func TestCartService_AddRequiresLogin(t *testing.T) {
	svc := NewCartService(repository.NewMemoryStore().Carts)
	_, err := svc.AddToCart(context.Background(), uuid.Nil, nodiShine, 1)
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestCartService_AddValidates(t *testing.T) {
	svc := NewCartService(repository.NewMemoryStore().Carts)
	ctx := context.Background()
	user := uuid.New()

	_, err := svc.AddToCart(ctx, user, "no-such-product", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.AddToCart(ctx, user, nodiShine, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_AddMergesAndPrices(t *testing.T) {
	svc := NewCartService(repository.NewMemoryStore().Carts)
	ctx := context.Background()
	user := uuid.New()

	_, err := svc.AddToCart(ctx, user, nodiShine, 1)
	require.NoError(t, err)
	view, err := svc.AddToCart(ctx, user, nodiShine, 1)
	require.NoError(t, err)

	require.Len(t, view.State.Items, 1)
	item := view.State.Items[0]
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "Nodi Shine Dashboard Shiner", item.ProductName)
	assert.True(t, decimal.NewFromInt(900).Equal(item.ProductPrice))
	assert.True(t, decimal.NewFromInt(1800).Equal(view.Summary.Subtotal))
	assert.True(t, view.Summary.Shipping.IsZero())
	assert.Equal(t, 2, view.Summary.ItemCount)
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	svc := NewCartService(repository.NewMemoryStore().Carts)
	ctx := context.Background()
	user := uuid.New()

	view, err := svc.AddToCart(ctx, user, starGold, 1)
	require.NoError(t, err)
	itemID := view.State.Items[0].ID

	view, err = svc.UpdateQuantity(ctx, user, itemID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.State.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(7497).Equal(view.Summary.Subtotal))

	_, err = svc.UpdateQuantity(ctx, uuid.New(), itemID, 5)
	assert.ErrorIs(t, err, ErrCartItemNotFound, "another user's item")

	view, err = svc.UpdateQuantity(ctx, user, itemID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.State.Items)

	_, err = svc.RemoveFromCart(ctx, user, itemID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_SubtotalMatchesStoredRows(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewCartService(store.Carts)
	ctx := context.Background()
	user := uuid.New()
	rng := rand.New(rand.NewSource(7))
	refs := []string{nodiShine, starGold}

	var view *CartView
	for step := 0; step < 60; step++ {
		current, err := svc.GetCart(ctx, user)
		require.NoError(t, err)
		switch op := rng.Intn(3); {
		case op == 0 || len(current.State.Items) == 0:
			view, err = svc.AddToCart(ctx, user, refs[rng.Intn(len(refs))], 1+rng.Intn(3))
		case op == 1:
			target := current.State.Items[rng.Intn(len(current.State.Items))]
			view, err = svc.UpdateQuantity(ctx, user, target.ID, rng.Intn(5)-1)
		default:
			target := current.State.Items[rng.Intn(len(current.State.Items))]
			view, err = svc.RemoveFromCart(ctx, user, target.ID)
		}
		require.NoError(t, err)

		stored, err := store.Carts.ListByUser(ctx, user)
		require.NoError(t, err)
		require.True(t, cart.Subtotal(stored).Equal(view.Summary.Subtotal), "step %d", step)
	}
}

func TestCartService_Clear(t *testing.T) {
	svc := NewCartService(repository.NewMemoryStore().Carts)
	ctx := context.Background()
	user := uuid.New()

	_, err := svc.AddToCart(ctx, user, nodiShine, 2)
	require.NoError(t, err)
	cleared, err := svc.ClearCart(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, cleared.State.Items)
	assert.Equal(t, 0, cleared.Summary.ItemCount)

	view, err := svc.GetCart(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, view.State.Items)
	assert.True(t, view.Summary.Total.Equal(cart.ShippingFee))
}

func TestCartService_BackendErrorsAreWrapped(t *testing.T) {
	svc := NewCartService(failingCartRepo{})
	ctx := context.Background()

	_, err := svc.GetCart(ctx, uuid.New())
	assert.ErrorIs(t, err, errBackend)
	_, err = svc.AddToCart(ctx, uuid.New(), nodiShine, 1)
	assert.ErrorIs(t, err, errBackend)
	_, err = svc.ClearCart(ctx, uuid.New())
	assert.ErrorIs(t, err, errBackend)
}

// listFailsAfterWrite serves reads until the first write, then fails them.
type listFailsAfterWrite struct {
	repository.CartRepository
	wrote bool
}

func (r *listFailsAfterWrite) AddItem(ctx context.Context, item *model.CartItem) error {
	r.wrote = true
	return r.CartRepository.AddItem(ctx, item)
}

func (r *listFailsAfterWrite) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	if r.wrote {
		return nil, errBackend
	}
	return r.CartRepository.ListByUser(ctx, userID)
}

func TestCartService_AddToCart_RefreshFailureKeepsWrite(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	user := uuid.New()
	_, err := NewCartService(store.Carts).AddToCart(ctx, user, nodiShine, 2)
	require.NoError(t, err)

	svc := NewCartService(&listFailsAfterWrite{CartRepository: store.Carts})
	view, err := svc.AddToCart(ctx, user, nodiShine, 1)
	require.NoError(t, err)
	require.Len(t, view.State.Items, 1)
	assert.Equal(t, 3, view.State.Items[0].Quantity)
	assert.Equal(t, "cart could not be refreshed", view.State.Err)
	assert.False(t, view.State.Loading)
	assert.Equal(t, 3, view.Summary.ItemCount)

	view, err = svc.AddToCart(ctx, user, starGold, 1)
	assert.ErrorIs(t, err, errBackend, "the cart must be readable before writing")
	assert.Nil(t, view)

	stored, err := store.Carts.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 3, stored[0].Quantity)
}
