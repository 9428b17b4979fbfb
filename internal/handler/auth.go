package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/carcare-storefront/internal/dto"
	"github.com/flicky/carcare-storefront/internal/middleware"
	"github.com/flicky/carcare-storefront/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	access *service.AccessService
}

func NewAuthHandler(auth *service.AuthService, access *service.AccessService) *AuthHandler {
	return &AuthHandler{auth: auth, access: access}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		h.authError(c, err)
		return
	}
	respond(c, http.StatusCreated, dto.AuthResponse{Token: res.Token, User: toUserResponse(&res.User)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.authError(c, err)
		return
	}
	respond(c, http.StatusOK, dto.AuthResponse{Token: res.Token, User: toUserResponse(&res.User)})
}

func (h *AuthHandler) authError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrTooManyAttempts):
		status = http.StatusTooManyRequests
	default:
		_ = c.Error(err)
	}
	fail(c, status, service.UserMessage(err))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Profile(c.Request.Context(), middleware.GetUserID(c))
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

// Access reports the admin gate state for the bearer, if any.
func (h *AuthHandler) Access(c *gin.Context) {
	a := h.access.Resolve(c.Request.Context(), middleware.BearerToken(c))
	resp := dto.AccessResponse{State: a.State, Redirect: a.Redirect}
	if a.User != nil {
		u := toUserResponse(a.User)
		resp.User = &u
	}
	respond(c, http.StatusOK, resp)
}
