package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	IsAdmin      bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Category string

const (
	CategoryShiner  Category = "shiner"
	CategoryCoating Category = "coating"
	CategoryCleaner Category = "cleaner"
	CategoryCombo   Category = "combo"
)

// Product is catalog data compiled into the binary; it is never persisted.
type Product struct {
	ID             uuid.UUID
	ShortID        string
	Slug           string
	Name           string
	Description    string
	Price          decimal.Decimal
	OriginalPrice  *decimal.Decimal
	Category       Category
	StockCount     int
	ImageURL       string
	Images         []string
	Features       []string
	Specifications map[string]string
	Rating         float64
	Reviews        int
	IsCombo        bool
}

// CartItem carries a denormalized copy of the product name, price and image.
type CartItem struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	ProductPrice decimal.Decimal
	ProductImage string
	Quantity     int
	CreatedAt    time.Time
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

const PaymentMethodCOD = "cod"

// DeliveryAddress follows the Nepali administrative hierarchy.
type DeliveryAddress struct {
	Province     string `json:"province"`
	District     string `json:"district"`
	Municipality string `json:"municipality"`
	Ward         string `json:"ward"`
	Tole         string `json:"tole"`
	Landmark     string `json:"landmark,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress DeliveryAddress
	Subtotal        decimal.Decimal
	DeliveryCharge  decimal.Decimal
	TotalAmount     decimal.Decimal
	PaymentMethod   string
	Status          OrderStatus
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	ProductPrice decimal.Decimal
	Quantity     int
	TotalPrice   decimal.Decimal
}

// AdminOrder is an order joined with the owning user's contact fields.
type AdminOrder struct {
	Order
	UserEmail    string
	UserFullName string
}

type OrderMessage struct {
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
	Phone   string    `json:"phone"`
}

// AccessState is the outcome of the admin gate.
type AccessState string

const (
	AccessLoading         AccessState = "loading"
	AccessUnauthenticated AccessState = "unauthenticated"
	AccessNonAdmin        AccessState = "authenticated-non-admin"
	AccessAdmin           AccessState = "authenticated-admin"
)
