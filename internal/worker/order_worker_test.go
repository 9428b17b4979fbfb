package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/carcare-storefront/internal/model"
	"github.com/flicky/carcare-storefront/internal/repository"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateDashboard(context.Context) error {
	c.calls++
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandle_InvalidatesDashboard(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	order := &model.Order{
		UserID: uuid.New(), CustomerPhone: "9812345678",
		TotalAmount: decimal.NewFromInt(1050), Status: model.OrderStatusPending,
	}
	require.NoError(t, store.Orders.CreateWithItems(ctx, order))

	inv := &countingInvalidator{}
	w := NewOrderWorker(nil, store.Orders, nil, inv, discardLogger())

	err := w.Handle(ctx, model.OrderMessage{OrderID: order.ID, UserID: order.UserID, Phone: "9812345678"})
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)
}

func TestHandle_UnknownOrderIsPermanent(t *testing.T) {
	store := repository.NewMemoryStore()
	inv := &countingInvalidator{}
	w := NewOrderWorker(nil, store.Orders, nil, inv, discardLogger())

	err := w.Handle(context.Background(), model.OrderMessage{OrderID: uuid.New()})
	require.ErrorIs(t, err, ErrOrderNotFound)

	var retry errRetry
	assert.False(t, errors.As(err, &retry))
	assert.Zero(t, inv.calls)
}
