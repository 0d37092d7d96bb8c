package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Mixing            string          `json:"mixing"`
	ApplicationMethod string          `json:"applicationMethod"`
	Storage           string          `json:"storage"`
	Volume            string          `json:"volume"`
	Price             decimal.Decimal `json:"price"`
	AdminStock        int             `json:"adminStock" validate:"min=0"`
	ProductImageURL   string          `json:"productImage" validate:"omitempty,url"`
	UsageImageURL     string          `json:"usageImage" validate:"omitempty,url"`
}

// UpdateProductRequest actualización parcial (sin AdminStock: el stock central cambia vía Restock).
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Mixing            *string          `json:"mixing"`
	ApplicationMethod *string          `json:"applicationMethod"`
	Storage           *string          `json:"storage"`
	Volume            *string          `json:"volume"`
	Price             *decimal.Decimal `json:"price"`
	ProductImageURL   *string          `json:"productImage" validate:"omitempty,url"`
	UsageImageURL     *string          `json:"usageImage" validate:"omitempty,url"`
}

// RestockRequest ingreso de unidades al depósito central.
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Mixing            string          `json:"mixing,omitempty"`
	ApplicationMethod string          `json:"applicationMethod,omitempty"`
	Storage           string          `json:"storage,omitempty"`
	Volume            string          `json:"volume,omitempty"`
	Price             decimal.Decimal `json:"price"`
	AdminStock        int             `json:"adminStock"`
	ProductImageURL   string          `json:"productImage,omitempty"`
	UsageImageURL     string          `json:"usageImage,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse mapea la entidad a su DTO.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Mixing:            p.Mixing,
		ApplicationMethod: p.ApplicationMethod,
		Storage:           p.Storage,
		Volume:            p.Volume,
		Price:             p.Price,
		AdminStock:        p.AdminStock,
		ProductImageURL:   p.ProductImageURL,
		UsageImageURL:     p.UsageImageURL,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
