package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest agrega un producto al carrito (se suma si ya existe la línea).
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	BranchID  string `json:"branchId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// ChangeCartQuantityRequest nueva cantidad de una línea.
type ChangeCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartItemResponse línea del carrito.
type CartItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	BranchID  string           `json:"branchId"`
	Quantity  int              `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// CheckoutRequest convierte el carrito de una sucursal en una orden.
type CheckoutRequest struct {
	BranchID string `json:"branchId" validate:"required,uuid"`
	Address  string `json:"address" validate:"required,max=500"`
}

// AgentOrderLine línea de venta en tienda.
type AgentOrderLine struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// AgentOrderCustomer cliente de la venta en tienda: por ID, o por email (se crea si no existe).
type AgentOrderCustomer struct {
	ID          string `json:"id" validate:"omitempty,uuid"`
	Name        string `json:"name" validate:"max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=30"`
}

// AgentOrderRequest cuerpo de POST /agent/orders.
type AgentOrderRequest struct {
	Customer      AgentOrderCustomer `json:"customer"`
	Items         []AgentOrderLine   `json:"items" validate:"required,min=1,dive"`
	Address       string             `json:"address" validate:"omitempty,max=500"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,oneof=CASH CARD BANK_TRANSFER"`
	AmountPaid    decimal.Decimal    `json:"amountPaid"`
}

// ChangeOrderStatusRequest cambio de estado (admin).
type ChangeOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING ACCEPTED OUT_FOR_DELIVERY DELIVERED CANCELLED PAYMENT_DONE"`
}

// OrderProductResponse línea de la orden.
type OrderProductResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderEventResponse hito de la línea de tiempo.
type OrderEventResponse struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID            string                 `json:"id"`
	UserID        string                 `json:"userId"`
	BranchID      string                 `json:"branchId"`
	NetAmount     decimal.Decimal        `json:"netAmount"`
	Address       string                 `json:"address,omitempty"`
	Status        string                 `json:"status"`
	Channel       string                 `json:"channel"`
	PaymentMethod string                 `json:"paymentMethod,omitempty"`
	AmountPaid    decimal.Decimal        `json:"amountPaid"`
	Products      []OrderProductResponse `json:"products"`
	Events        []OrderEventResponse   `json:"events,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}
