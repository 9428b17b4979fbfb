package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/flicky/carcare-storefront/internal/checkout"
	"github.com/flicky/carcare-storefront/internal/dto"
	"github.com/flicky/carcare-storefront/internal/middleware"
	"github.com/flicky/carcare-storefront/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout places a cash-on-delivery order from the caller's cart.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var form checkout.DeliveryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBindError(c, err)
		return
	}

	conf, err := h.orderService.PlaceOrder(c.Request.Context(), middleware.GetUserID(c), form)
	if err != nil {
		var fields checkout.FieldErrors
		switch {
		case errors.As(err, &fields):
			respondFieldErrors(c, fields)
		case errors.Is(err, service.ErrEmptyCart):
			fail(c, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, service.ErrLoginRequired):
			fail(c, http.StatusUnauthorized, "unauthorized")
		default:
			internalError(c, err)
		}
		return
	}

	respond(c, http.StatusCreated, dto.ConfirmationResponse{
		Order:   toOrderResponse(&conf.Order),
		Message: conf.Message,
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListMyOrders(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.orderService.GetMyOrder(c.Request.Context(), orderID, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			fail(c, http.StatusNotFound, "order not found")
			return
		}
		if errors.Is(err, service.ErrOrderAccessDenied) {
			fail(c, http.StatusForbidden, "access denied")
			return
		}
		internalError(c, err)
		return
	}

	respond(c, http.StatusOK, toOrderResponse(order))
}
