package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MasonBassRequest alta o reemplazo de una cuadrilla.
type MasonBassRequest struct {
	BassName    string          `json:"bassName" validate:"required,max=200"`
	Location    string          `json:"location" validate:"omitempty,max=200"`
	PhoneNumber string          `json:"phoneNumber" validate:"omitempty,max=30"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	Code        string          `json:"code" validate:"required,max=50"`
	Discount    decimal.Decimal `json:"bassDiscount"`
}

// MasonBassResponse salida de una cuadrilla.
type MasonBassResponse struct {
	ID          string          `json:"id"`
	BassName    string          `json:"bassName"`
	Location    string          `json:"location,omitempty"`
	PhoneNumber string          `json:"phoneNumber,omitempty"`
	Description string          `json:"description,omitempty"`
	Code        string          `json:"code"`
	Discount    decimal.Decimal `json:"bassDiscount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
