package repository

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/carcare-storefront/internal/model"
)

// stores yields the memory store and, when a database is available, a clean
// postgres store so every behavior is checked against both.
func stores(t *testing.T) map[string]*Store {
	t.Helper()
	out := map[string]*Store{"memory": NewMemoryStore()}
	if testPool != nil {
		cleanupTable(t, "order_items", "orders", "cart_items", "users")
		out["postgres"] = NewPostgresStore(testPool)
	}
	return out
}

func newUser(t *testing.T, s *Store, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, FullName: "Test User", PasswordHash: "hashed"}
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func cartItem(userID uuid.UUID, productID uuid.UUID, qty int) *model.CartItem {
	return &model.CartItem{
		UserID: userID, ProductID: productID, ProductName: "Nodi Shine Dashboard Shiner",
		ProductPrice: decimal.NewFromInt(900), ProductImage: "/products/nodi.png", Quantity: qty,
	}
}

func TestStore_Users(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			u := newUser(t, s, "sita@example.com")
			assert.NotEqual(t, uuid.Nil, u.ID)

			found, err := s.Users.GetByEmail(ctx, "sita@example.com")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, u.ID, found.ID)
			assert.False(t, found.IsAdmin)

			missing, err := s.Users.GetByID(ctx, uuid.New())
			require.NoError(t, err)
			assert.Nil(t, missing)

			updated, err := s.Users.SetAdmin(ctx, u.ID, true)
			require.NoError(t, err)
			require.NotNil(t, updated)
			assert.True(t, updated.IsAdmin)

			none, err := s.Users.SetAdmin(ctx, uuid.New(), true)
			require.NoError(t, err)
			assert.Nil(t, none)

			newUser(t, s, "ram@example.com")
			users, err := s.Users.List(ctx)
			require.NoError(t, err)
			assert.Len(t, users, 2)
		})
	}
}

func TestStore_CartScopedToUser(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			alice := newUser(t, s, "alice@example.com")
			bob := newUser(t, s, "bob@example.com")
			product := uuid.New()

			first := cartItem(alice.ID, product, 1)
			require.NoError(t, s.Carts.AddItem(ctx, first))
			again := cartItem(alice.ID, product, 2)
			require.NoError(t, s.Carts.AddItem(ctx, again))
			assert.Equal(t, first.ID, again.ID)
			assert.Equal(t, 3, again.Quantity)

			require.NoError(t, s.Carts.AddItem(ctx, cartItem(bob.ID, product, 1)))

			items, err := s.Carts.ListByUser(ctx, alice.ID)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, 3, items[0].Quantity)
			assert.True(t, decimal.NewFromInt(900).Equal(items[0].ProductPrice))

			stolen, err := s.Carts.UpdateQuantity(ctx, bob.ID, first.ID, 9)
			require.NoError(t, err)
			assert.Nil(t, stolen)

			deleted, err := s.Carts.DeleteItem(ctx, bob.ID, first.ID)
			require.NoError(t, err)
			assert.False(t, deleted)

			updated, err := s.Carts.UpdateQuantity(ctx, alice.ID, first.ID, 5)
			require.NoError(t, err)
			require.NotNil(t, updated)
			assert.Equal(t, 5, updated.Quantity)

			require.NoError(t, s.Carts.Clear(ctx, alice.ID))
			items, err = s.Carts.ListByUser(ctx, alice.ID)
			require.NoError(t, err)
			assert.Empty(t, items)

			items, err = s.Carts.ListByUser(ctx, bob.ID)
			require.NoError(t, err)
			assert.Len(t, items, 1)
		})
	}
}

func TestStore_DeleteItemsKeepsOtherRows(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			alice := newUser(t, s, "alice@example.com")
			bob := newUser(t, s, "bob@example.com")

			ordered := cartItem(alice.ID, uuid.New(), 1)
			require.NoError(t, s.Carts.AddItem(ctx, ordered))
			later := cartItem(alice.ID, uuid.New(), 2)
			require.NoError(t, s.Carts.AddItem(ctx, later))
			bobs := cartItem(bob.ID, uuid.New(), 1)
			require.NoError(t, s.Carts.AddItem(ctx, bobs))

			require.NoError(t, s.Carts.DeleteItems(ctx, alice.ID, []uuid.UUID{ordered.ID, bobs.ID}))
			require.NoError(t, s.Carts.DeleteItems(ctx, alice.ID, nil))

			items, err := s.Carts.ListByUser(ctx, alice.ID)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, later.ID, items[0].ID)

			items, err = s.Carts.ListByUser(ctx, bob.ID)
			require.NoError(t, err)
			assert.Len(t, items, 1, "ids from another user are ignored")
		})
	}
}

func newOrder(userID uuid.UUID) *model.Order {
	return &model.Order{
		UserID: userID, CustomerName: "Sita Sharma", CustomerEmail: "sita@example.com", CustomerPhone: "9812345678",
		DeliveryAddress: model.DeliveryAddress{Province: "Bagmati Province", District: "Kathmandu",
			Municipality: "Kathmandu Metropolitan", Ward: "10", Tole: "Baneshwor"},
		Subtotal: decimal.NewFromInt(1800), DeliveryCharge: decimal.NewFromInt(150), TotalAmount: decimal.NewFromInt(1950),
		PaymentMethod: model.PaymentMethodCOD, Status: model.OrderStatusPending,
		Items: []model.OrderItem{{
			ProductID: uuid.New(), ProductName: "Nodi Shine Dashboard Shiner",
			ProductPrice: decimal.NewFromInt(900), Quantity: 2, TotalPrice: decimal.NewFromInt(1800),
		}},
	}
}

func TestStore_Orders(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			u := newUser(t, s, "sita@example.com")

			first := newOrder(u.ID)
			require.NoError(t, s.Orders.CreateWithItems(ctx, first))
			assert.NotEqual(t, uuid.Nil, first.ID)
			assert.Equal(t, first.ID, first.Items[0].OrderID)
			second := newOrder(u.ID)
			require.NoError(t, s.Orders.CreateWithItems(ctx, second))

			found, err := s.Orders.GetByID(ctx, first.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "Baneshwor", found.DeliveryAddress.Tole)
			assert.True(t, found.Subtotal.Add(found.DeliveryCharge).Equal(found.TotalAmount))
			require.Len(t, found.Items, 1)

			mine, err := s.Orders.ListByUser(ctx, u.ID)
			require.NoError(t, err)
			require.Len(t, mine, 2)

			all, err := s.Orders.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, second.ID, all[0].ID)
			assert.Equal(t, "sita@example.com", all[0].UserEmail)
			assert.Equal(t, "Test User", all[0].UserFullName)
			assert.Len(t, all[0].Items, 1)

			shipped, err := s.Orders.UpdateStatus(ctx, first.ID, model.OrderStatusShipped)
			require.NoError(t, err)
			require.NotNil(t, shipped)
			assert.Equal(t, model.OrderStatusShipped, shipped.Status)

			missing, err := s.Orders.UpdateStatus(ctx, uuid.New(), model.OrderStatusShipped)
			require.NoError(t, err)
			assert.Nil(t, missing)

			require.NoError(t, s.Ping(ctx))
		})
	}
}

func TestPostgresOrders_RollbackOnItemFailure(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "order_items", "orders", "cart_items", "users")
	s := NewPostgresStore(testPool)
	ctx := context.Background()
	u := newUser(t, s, "sita@example.com")

	order := newOrder(u.ID)
	order.Items = append(order.Items, model.OrderItem{
		ProductID: uuid.New(), ProductName: strings.Repeat("x", 300),
		ProductPrice: decimal.NewFromInt(100), Quantity: 1, TotalPrice: decimal.NewFromInt(100),
	})
	require.Error(t, s.Orders.CreateWithItems(ctx, order))

	var orders, items int
	require.NoError(t, testPool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, u.ID).Scan(&orders))
	require.NoError(t, testPool.QueryRow(ctx, `SELECT COUNT(*) FROM order_items`).Scan(&items))
	assert.Zero(t, orders)
	assert.Zero(t, items)

	mine, err := s.Orders.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestMemoryStore_ConcurrentAdds(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := newUser(t, s, "busy@example.com")
	product := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Carts.AddItem(ctx, cartItem(u.ID, product, 1))
		}()
	}
	wg.Wait()

	items, err := s.Carts.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	newUser(t, s, "dup@example.com")
	err := s.Users.Create(context.Background(), &model.User{Email: "DUP@example.com"})
	assert.Error(t, err)
}

func TestMockSession_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	session := NewMockSession(filepath.Join(t.TempDir(), "session.json"), s.Carts)

	loaded, err := session.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	u := newUser(t, s, "mock@example.com")
	require.NoError(t, s.Carts.AddItem(ctx, cartItem(u.ID, uuid.New(), 1)))
	require.NoError(t, session.Save(*u))

	restarted := NewMockSession(session.Path(), s.Carts)
	loaded, err = restarted.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, u.ID, loaded.ID)
	assert.Empty(t, loaded.PasswordHash)

	require.NoError(t, restarted.Clear(ctx, uuid.New()))
	loaded, err = restarted.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded, "another user's logout keeps the session")
	items, err := s.Carts.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, restarted.Clear(ctx, u.ID))
	loaded, err = restarted.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	items, err = s.Carts.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
