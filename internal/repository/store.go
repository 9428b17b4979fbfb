package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the repositories of one backend, live or mock.
type Store struct {
	Users  UserRepository
	Carts  CartRepository
	Orders OrderRepository
	ping   func(ctx context.Context) error
}

func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Users:  NewUserRepository(pool),
		Carts:  NewCartRepository(pool),
		Orders: NewOrderRepository(pool),
		ping:   pool.Ping,
	}
}

// NewMemoryStore returns fixture-backed repositories that share one lock.
func NewMemoryStore() *Store {
	m := newMemory()
	return &Store{
		Users:  &memUserRepo{m},
		Carts:  &memCartRepo{m},
		Orders: &memOrderRepo{m},
		ping:   func(context.Context) error { return nil },
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}
