package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flicky/carcare-storefront/internal/model"
)

// Envelope is the body of every API response: data on success, error otherwise.
type Envelope struct {
	Data     any               `json:"data"`
	Error    *string           `json:"error"`
	Fields   map[string]string `json:"fields,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

func OK(data any) Envelope { return Envelope{Data: data} }

func Fail(msg string) Envelope { return Envelope{Error: &msg} }

// --- Auth ---

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type AccessResponse struct {
	State    model.AccessState `json:"state"`
	Redirect string            `json:"redirect,omitempty"`
	User     *UserResponse     `json:"user,omitempty"`
}

// --- Product ---

type ProductResponse struct {
	ID             uuid.UUID         `json:"id"`
	ShortID        string            `json:"short_id"`
	Slug           string            `json:"slug"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	OriginalPrice  *decimal.Decimal  `json:"original_price,omitempty"`
	Category       model.Category    `json:"category"`
	StockCount     int               `json:"stock_count"`
	InStock        bool              `json:"in_stock"`
	ImageURL       string            `json:"image_url"`
	Images         []string          `json:"images"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	IsCombo        bool              `json:"is_combo"`
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest allows zero, which removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type CartItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	ProductImage string          `json:"product_image"`
	Quantity     int             `json:"quantity"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

type CartSummaryResponse struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	Tax                   decimal.Decimal `json:"tax"`
	Total                 decimal.Decimal `json:"total"`
	FreeShippingRemaining decimal.Decimal `json:"free_shipping_remaining"`
	ItemCount             int             `json:"item_count"`
}

type CartResponse struct {
	Items   []CartItemResponse  `json:"items"`
	Summary CartSummaryResponse `json:"summary"`
	Loading bool                `json:"loading"`
	Error   string              `json:"error,omitempty"`
}

// --- Order ---

type OrderItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type OrderResponse struct {
	ID              uuid.UUID             `json:"id"`
	UserID          uuid.UUID             `json:"user_id"`
	CustomerName    string                `json:"customer_name"`
	CustomerEmail   string                `json:"customer_email"`
	CustomerPhone   string                `json:"customer_phone"`
	DeliveryAddress model.DeliveryAddress `json:"delivery_address"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	DeliveryCharge  decimal.Decimal       `json:"delivery_charge"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	PaymentMethod   string                `json:"payment_method"`
	Status          model.OrderStatus     `json:"status"`
	Items           []OrderItemResponse   `json:"items"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

type OrderUserResponse struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type AdminOrderResponse struct {
	OrderResponse
	User OrderUserResponse `json:"user"`
}

type ConfirmationResponse struct {
	Order   OrderResponse `json:"order"`
	Message string        `json:"message"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListAdminOrdersRequest struct {
	Status string `form:"status"`
	Search string `form:"search"`
	Date   string `form:"date" binding:"omitempty,oneof=all today week month"`
}

// --- Admin views ---

type ProductSalesResponse struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type DashboardResponse struct {
	TotalRevenue  decimal.Decimal        `json:"total_revenue"`
	TotalOrders   int                    `json:"total_orders"`
	TotalUsers    int                    `json:"total_users"`
	TotalProducts int                    `json:"total_products"`
	RevenueChange float64                `json:"revenue_change"`
	OrdersChange  float64                `json:"orders_change"`
	UsersChange   float64                `json:"users_change"`
	RecentOrders  []OrderResponse        `json:"recent_orders"`
	TopProducts   []ProductSalesResponse `json:"top_products"`
	Degraded      bool                   `json:"degraded"`
}

type MonthResponse struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

type MonthStatsResponse struct {
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

type MonthOverMonthResponse struct {
	Current  MonthStatsResponse `json:"current"`
	Previous MonthStatsResponse `json:"previous"`
	Growth   float64            `json:"growth"`
}

type CategoryResponse struct {
	Name  string `json:"name"`
	Units int    `json:"units"`
}

type AnalyticsResponse struct {
	Monthly        []MonthResponse           `json:"monthly"`
	MonthOverMonth MonthOverMonthResponse    `json:"month_over_month"`
	TopProducts    []ProductSalesResponse    `json:"top_products"`
	Categories     []CategoryResponse        `json:"categories"`
	StatusCounts   map[model.OrderStatus]int `json:"status_counts"`
	Degraded       bool                      `json:"degraded"`
}
