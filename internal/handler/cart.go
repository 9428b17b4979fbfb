package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/flicky/carcare-storefront/internal/dto"
	"github.com/flicky/carcare-storefront/internal/middleware"
	"github.com/flicky/carcare-storefront/internal/service"
)

const loginPath = "/login"

type CartHandler struct {
	svc *service.CartService
}

func NewCartHandler(svc *service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.svc.GetCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.cartError(c, err)
		return
	}
	respond(c, http.StatusOK, toCartResponse(view))
}

// AddItem is reachable anonymously so the client learns to send the
// shopper to the login page.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.svc.AddToCart(c.Request.Context(), middleware.GetUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		h.cartError(c, err)
		return
	}
	respond(c, http.StatusCreated, toCartResponse(view))
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.svc.UpdateQuantity(c.Request.Context(), middleware.GetUserID(c), itemID, *req.Quantity)
	if err != nil {
		h.cartError(c, err)
		return
	}
	respond(c, http.StatusOK, toCartResponse(view))
}

func (h *CartHandler) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	view, err := h.svc.RemoveFromCart(c.Request.Context(), middleware.GetUserID(c), itemID)
	if err != nil {
		h.cartError(c, err)
		return
	}
	respond(c, http.StatusOK, toCartResponse(view))
}

func (h *CartHandler) Clear(c *gin.Context) {
	view, err := h.svc.ClearCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.cartError(c, err)
		return
	}
	respond(c, http.StatusOK, toCartResponse(view))
}

func (h *CartHandler) cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLoginRequired):
		env := dto.Fail("please sign in to add items to your cart")
		env.Redirect = loginPath
		c.JSON(http.StatusUnauthorized, env)
	case errors.Is(err, service.ErrProductNotFound):
		fail(c, http.StatusNotFound, "product not found")
	case errors.Is(err, service.ErrCartItemNotFound):
		fail(c, http.StatusNotFound, "cart item not found")
	case errors.Is(err, service.ErrInvalidQuantity):
		fail(c, http.StatusUnprocessableEntity, "quantity must be at least 1")
	default:
		internalError(c, err)
	}
}
