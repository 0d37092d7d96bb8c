package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. AdminStock es el inventario central aún no distribuido.
type Product struct {
	ID                string
	Name              string
	NameKey           string // nombre normalizado (sin tildes, minúsculas) para unicidad y búsqueda
	Mixing            string
	ApplicationMethod string
	Storage           string
	Volume            string
	Price             decimal.Decimal
	AdminStock        int
	ProductImageURL   string
	UsageImageURL     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
