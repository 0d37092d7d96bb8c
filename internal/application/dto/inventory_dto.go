package dto

import "time"

// BranchStockRequest asignación o recarga de un producto en una sucursal.
type BranchStockRequest struct {
	BranchID  string `json:"branchId" validate:"required,uuid"`
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// RemoveBranchStockRequest retiro de un producto de la sucursal.
type RemoveBranchStockRequest struct {
	BranchID  string `json:"branchId" validate:"required,uuid"`
	ProductID string `json:"productId" validate:"required,uuid"`
}

// BranchProductResponse línea de stock de una sucursal.
type BranchProductResponse struct {
	ID        string           `json:"id"`
	BranchID  string           `json:"branchId"`
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// StockMovementResponse asiento del libro de stock.
type StockMovementResponse struct {
	ID          string    `json:"id"`
	ReferenceID string    `json:"referenceId,omitempty"`
	ProductID   string    `json:"productId"`
	BranchID    *string   `json:"branchId"`
	Kind        string    `json:"kind"`
	AdminDelta  int       `json:"adminDelta"`
	BranchDelta int       `json:"branchDelta"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}
