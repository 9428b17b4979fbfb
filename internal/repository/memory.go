package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flicky/carcare-storefront/internal/model"
)

type memory struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]model.User
	carts  []model.CartItem
	orders []model.Order
}

func newMemory() *memory {
	return &memory{users: make(map[uuid.UUID]model.User)}
}

type memUserRepo struct{ m *memory }

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("create user: email %q already exists", user.Email)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.m.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context) ([]model.User, error) {
	r.m.mu.RLock()
	users := make([]model.User, 0, len(r.m.users))
	for _, u := range r.m.users {
		users = append(users, u)
	}
	r.m.mu.RUnlock()
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *memUserRepo) SetAdmin(_ context.Context, id uuid.UUID, isAdmin bool) (*model.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, nil
	}
	u.IsAdmin = isAdmin
	u.UpdatedAt = time.Now()
	r.m.users[id] = u
	return &u, nil
}

type memCartRepo struct{ m *memory }

func (r *memCartRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var items []model.CartItem
	for _, it := range r.m.carts {
		if it.UserID == userID {
			items = append(items, it)
		}
	}
	return items, nil
}

func (r *memCartRepo) AddItem(_ context.Context, item *model.CartItem) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, it := range r.m.carts {
		if it.UserID == item.UserID && it.ProductID == item.ProductID {
			r.m.carts[i].Quantity += item.Quantity
			*item = r.m.carts[i]
			return nil
		}
	}
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	r.m.carts = append(r.m.carts, *item)
	return nil
}

func (r *memCartRepo) UpdateQuantity(_ context.Context, userID, itemID uuid.UUID, quantity int) (*model.CartItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, it := range r.m.carts {
		if it.ID == itemID && it.UserID == userID {
			r.m.carts[i].Quantity = quantity
			updated := r.m.carts[i]
			return &updated, nil
		}
	}
	return nil, nil
}

func (r *memCartRepo) DeleteItem(_ context.Context, userID, itemID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, it := range r.m.carts {
		if it.ID == itemID && it.UserID == userID {
			r.m.carts = append(r.m.carts[:i], r.m.carts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memCartRepo) DeleteItems(_ context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	kept := r.m.carts[:0]
	for _, it := range r.m.carts {
		if _, ok := drop[it.ID]; ok && it.UserID == userID {
			continue
		}
		kept = append(kept, it)
	}
	r.m.carts = kept
	return nil
}

func (r *memCartRepo) Clear(_ context.Context, userID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	kept := r.m.carts[:0]
	for _, it := range r.m.carts {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	r.m.carts = kept
	return nil
}

type memOrderRepo struct{ m *memory }

func cloneOrder(o model.Order) model.Order {
	o.Items = append([]model.OrderItem(nil), o.Items...)
	return o
}

func (r *memOrderRepo) CreateWithItems(_ context.Context, order *model.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	order.ID = uuid.New()
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	r.m.orders = append(r.m.orders, cloneOrder(*order))
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, o := range r.m.orders {
		if o.ID == id {
			c := cloneOrder(o)
			return &c, nil
		}
	}
	return nil, nil
}

// newestFirst walks orders from the most recently appended one.
func (r *memOrderRepo) newestFirst(keep func(model.Order) bool) []model.Order {
	var out []model.Order
	for i := len(r.m.orders) - 1; i >= 0; i-- {
		if keep(r.m.orders[i]) {
			out = append(out, cloneOrder(r.m.orders[i]))
		}
	}
	return out
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return r.newestFirst(func(o model.Order) bool { return o.UserID == userID }), nil
}

func (r *memOrderRepo) ListAll(_ context.Context) ([]model.AdminOrder, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	orders := r.newestFirst(func(model.Order) bool { return true })
	out := make([]model.AdminOrder, len(orders))
	for i, o := range orders {
		out[i] = model.AdminOrder{Order: o}
		if u, ok := r.m.users[o.UserID]; ok {
			out[i].UserEmail, out[i].UserFullName = u.Email, u.FullName
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.orders {
		if r.m.orders[i].ID == id {
			r.m.orders[i].Status = status
			r.m.orders[i].UpdatedAt = time.Now()
			c := cloneOrder(r.m.orders[i])
			return &c, nil
		}
	}
	return nil, nil
}
