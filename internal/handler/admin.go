package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/flicky/carcare-storefront/internal/analytics"
	"github.com/flicky/carcare-storefront/internal/checkout"
	"github.com/flicky/carcare-storefront/internal/dto"
	"github.com/flicky/carcare-storefront/internal/model"
	"github.com/flicky/carcare-storefront/internal/service"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListOrders returns every order, newest first, joined with its owner.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	var req dto.ListAdminOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Status != "" && req.Status != analytics.FilterAll && !model.OrderStatus(req.Status).Valid() {
		respondFieldErrors(c, checkout.FieldErrors{"status": "status is invalid"})
		return
	}

	orders, err := h.svc.ListOrders(c.Request.Context(), analytics.OrderFilter{
		Search: req.Search, Status: req.Status, Date: req.Date,
	})
	if err != nil {
		internalError(c, err)
		return
	}

	out := make([]dto.AdminOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toAdminOrderResponse(&orders[i]))
	}
	respond(c, http.StatusOK, out)
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid order ID")
		return
	}
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.svc.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			respondFieldErrors(c, checkout.FieldErrors{"status": "status is invalid"})
		case errors.Is(err, service.ErrOrderNotFound):
			fail(c, http.StatusNotFound, "order not found")
		default:
			internalError(c, err)
		}
		return
	}
	respond(c, http.StatusOK, toOrderResponse(order))
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	respond(c, http.StatusOK, out)
}

func (h *AdminHandler) ToggleAdmin(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid user ID")
		return
	}
	user, err := h.svc.ToggleAdmin(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "user not found")
			return
		}
		internalError(c, err)
		return
	}
	respond(c, http.StatusOK, toUserResponse(user))
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	view, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, http.StatusOK, toDashboardResponse(view))
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	view, err := h.svc.Analytics(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, http.StatusOK, toAnalyticsResponse(view))
}
