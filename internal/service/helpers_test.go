package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flicky/carcare-storefront/internal/checkout"
	"github.com/flicky/carcare-storefront/internal/model"
)

var errBackend = errors.New("connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validForm() checkout.DeliveryForm {
	return checkout.DeliveryForm{
		FullName: "Sita Sharma", Phone: "9812345678", Email: "sita@example.com",
		Province: "Bagmati Province", District: "Kathmandu", Municipality: "Kathmandu Metropolitan",
		Ward: "10", Tole: "Baneshwor", Landmark: "Near the temple",
	}
}

type failingOrderRepo struct{}

func (failingOrderRepo) CreateWithItems(context.Context, *model.Order) error { return errBackend }
func (failingOrderRepo) GetByID(context.Context, uuid.UUID) (*model.Order, error) {
	return nil, errBackend
}
func (failingOrderRepo) ListByUser(context.Context, uuid.UUID) ([]model.Order, error) {
	return nil, errBackend
}
func (failingOrderRepo) ListAll(context.Context) ([]model.AdminOrder, error) { return nil, errBackend }
func (failingOrderRepo) UpdateStatus(context.Context, uuid.UUID, model.OrderStatus) (*model.Order, error) {
	return nil, errBackend
}

type failingCartRepo struct{}

func (failingCartRepo) ListByUser(context.Context, uuid.UUID) ([]model.CartItem, error) {
	return nil, errBackend
}
func (failingCartRepo) AddItem(context.Context, *model.CartItem) error { return errBackend }
func (failingCartRepo) UpdateQuantity(context.Context, uuid.UUID, uuid.UUID, int) (*model.CartItem, error) {
	return nil, errBackend
}
func (failingCartRepo) DeleteItem(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, errBackend
}
func (failingCartRepo) DeleteItems(context.Context, uuid.UUID, []uuid.UUID) error {
	return errBackend
}

func (failingCartRepo) Clear(context.Context, uuid.UUID) error { return errBackend }

type recordingPublisher struct {
	msgs []model.OrderMessage
	err  error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, msg model.OrderMessage) error {
	p.msgs = append(p.msgs, msg)
	return p.err
}
