package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/flicky/carcare-storefront/internal/middleware"
)

type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Products *ProductHandler
	Cart     *CartHandler
	Orders   *OrderHandler
	Admin    *AdminHandler
}

type RouterConfig struct {
	AllowedOrigin string
	Tokens        middleware.TokenParser
	Profiles      middleware.ProfileWaiter
	Log           *slog.Logger
}

func NewRouter(h Handlers, cfg RouterConfig) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(cfg.Log), middleware.CORS(cfg.AllowedOrigin))

	router.GET("/healthz", h.Health.Healthz)
	router.GET("/readyz", h.Health.Readyz)

	requireAuth := middleware.Auth(cfg.Tokens)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", requireAuth, h.Auth.Logout)
		auth.GET("/me", requireAuth, h.Auth.Me)
		auth.GET("/access", h.Auth.Access)

		products := v1.Group("/products")
		products.GET("", h.Products.List)
		products.GET("/:ref", h.Products.Get)

		v1.POST("/cart/items", middleware.OptionalAuth(cfg.Tokens), h.Cart.AddItem)
		cart := v1.Group("/cart", requireAuth)
		cart.GET("", h.Cart.GetCart)
		cart.DELETE("", h.Cart.Clear)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.DeleteItem)

		v1.POST("/checkout", requireAuth, h.Orders.Checkout)

		orders := v1.Group("/orders", requireAuth)
		orders.GET("", h.Orders.ListOrders)
		orders.GET("/:id", h.Orders.GetOrder)
	}

	admin := router.Group("/api/admin", requireAuth, middleware.AdminOnly(cfg.Profiles))
	{
		admin.GET("/orders", h.Admin.ListOrders)
		admin.PATCH("/orders/:id/status", h.Admin.UpdateOrderStatus)
		admin.GET("/users", h.Admin.ListUsers)
		admin.PATCH("/users/:id/admin", h.Admin.ToggleAdmin)
		admin.GET("/dashboard", h.Admin.Dashboard)
		admin.GET("/analytics", h.Admin.Analytics)
	}

	return router
}
