package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/flicky/carcare-storefront/internal/checkout"
	"github.com/flicky/carcare-storefront/internal/events"
	"github.com/flicky/carcare-storefront/internal/model"
	"github.com/flicky/carcare-storefront/internal/repository"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderAccessDenied = errors.New("access denied")
)

type Confirmation struct {
	Order   model.Order
	Message string
}

type OrderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	publisher events.Publisher
	log       *slog.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	publisher events.Publisher,
	log *slog.Logger,
) *OrderService {
	return &OrderService{orderRepo: orderRepo, cartRepo: cartRepo, publisher: publisher, log: log}
}

// PlaceOrder validates the form, prices the caller's stored cart and writes
// the order with its items in one step. The ordered rows are then removed
// from the cart; rows added meanwhile stay.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, form checkout.DeliveryForm) (*Confirmation, error) {
	if userID == uuid.Nil {
		return nil, ErrLoginRequired
	}
	if err := checkout.Validate(form); err != nil {
		return nil, err
	}

	cartItems, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal, charge, total := checkout.Totals(cartItems)
	items := make([]model.OrderItem, 0, len(cartItems))
	ordered := make([]uuid.UUID, 0, len(cartItems))
	for _, ci := range cartItems {
		ordered = append(ordered, ci.ID)
		items = append(items, model.OrderItem{
			ProductID:    ci.ProductID,
			ProductName:  ci.ProductName,
			ProductPrice: ci.ProductPrice,
			Quantity:     ci.Quantity,
			TotalPrice:   ci.LineTotal(),
		})
	}

	order := &model.Order{
		UserID:          userID,
		CustomerName:    strings.TrimSpace(form.FullName),
		CustomerEmail:   strings.TrimSpace(form.Email),
		CustomerPhone:   strings.TrimSpace(form.Phone),
		DeliveryAddress: form.Address(),
		Subtotal:        subtotal,
		DeliveryCharge:  charge,
		TotalAmount:     total,
		PaymentMethod:   model.PaymentMethodCOD,
		Status:          model.OrderStatusPending,
		Items:           items,
	}
	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	log := s.log.With("order_id", order.ID, "user_id", userID)
	if err := s.cartRepo.DeleteItems(ctx, userID, ordered); err != nil {
		log.Warn("clear cart after order", "error", err)
	}
	if s.publisher != nil {
		msg := model.OrderMessage{OrderID: order.ID, UserID: userID, Phone: order.CustomerPhone}
		if err := s.publisher.PublishOrderPlaced(ctx, msg); err != nil {
			log.Error("publish order placed", "error", err)
		}
	}

	return &Confirmation{
		Order:   *order,
		Message: fmt.Sprintf("We'll contact you at %s to confirm delivery details.", order.CustomerPhone),
	}, nil
}

func (s *OrderService) GetMyOrder(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
