package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MasonBass cuadrilla de maestros de obra con un código de descuento propio (código único).
type MasonBass struct {
	ID          string
	BassName    string
	Location    string
	PhoneNumber string
	Description string
	Code        string
	Discount    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
