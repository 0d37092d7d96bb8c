package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden.
const (
	OrderPending        = "PENDING"
	OrderAccepted       = "ACCEPTED"
	OrderOutForDelivery = "OUT_FOR_DELIVERY"
	OrderDelivered      = "DELIVERED"
	OrderCancelled      = "CANCELLED"
	OrderPaymentDone    = "PAYMENT_DONE"
)

// Canales de venta.
const (
	ChannelOnline  = "ONLINE"
	ChannelInStore = "IN_STORE"
)

// Métodos de pago en tienda.
const (
	PaymentCash         = "CASH"
	PaymentCard         = "CARD"
	PaymentBankTransfer = "BANK_TRANSFER"
)

// Order orden de compra. Las líneas y eventos son inmutables tras el checkout.
type Order struct {
	ID            string
	UserID        string
	BranchID      string
	NetAmount     decimal.Decimal
	Address       string
	Status        string
	Channel       string
	PaymentMethod string
	AmountPaid    decimal.Decimal
	CreatedByID   string
	Products      []*OrderProduct
	Events        []*OrderEvent
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderProduct línea de la orden con el precio unitario vigente al momento del checkout.
type OrderProduct struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
}

// Subtotal precio unitario por cantidad.
func (p *OrderProduct) Subtotal() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// OrderEvent registro de la línea de tiempo de estados.
type OrderEvent struct {
	ID        string
	OrderID   string
	Status    string
	CreatedAt time.Time
}
