package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flicky/carcare-storefront/internal/model"
)

// CartRepository stores cart rows. Every method is scoped to a user so one
// user can never read or change another user's rows.
type CartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)
	// AddItem inserts the row, or adds its quantity to the existing row for
	// the same (user, product). item is updated with the stored row.
	AddItem(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.CartItem, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error)
	// DeleteItems removes the listed rows only. Rows added after the ids were
	// read are kept.
	DeleteItems(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type pgCartRepo struct{ pool *pgxpool.Pool }

func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &pgCartRepo{pool: pool}
}

const cartColumns = `id, user_id, product_id, product_name, product_price, product_image, quantity, created_at`

func scanCartItem(row pgx.Row) (*model.CartItem, error) {
	item := &model.CartItem{}
	err := row.Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.ProductName,
		&item.ProductPrice, &item.ProductImage, &item.Quantity, &item.CreatedAt,
	)
	return item, err
}

func (r *pgCartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+cartColumns+` FROM cart_items WHERE user_id = $1 ORDER BY created_at`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *pgCartRepo) AddItem(ctx context.Context, item *model.CartItem) error {
	item.ID = uuid.New()
	query := `INSERT INTO cart_items (id, user_id, product_id, product_name, product_price, product_image, quantity, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
			  ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
			  RETURNING ` + cartColumns
	stored, err := scanCartItem(r.pool.QueryRow(ctx, query,
		item.ID, item.UserID, item.ProductID, item.ProductName, item.ProductPrice, item.ProductImage, item.Quantity,
	))
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	*item = *stored
	return nil
}

func (r *pgCartRepo) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.CartItem, error) {
	item, err := scanCartItem(r.pool.QueryRow(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE id = $1 AND user_id = $2 RETURNING `+cartColumns,
		itemID, userID, quantity,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return item, nil
}

func (r *pgCartRepo) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	ct, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgCartRepo) DeleteItems(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}
	return nil
}

func (r *pgCartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
