package dto

import "time"

// StockRequestItemInput ítem solicitado. ID solo se usa en actualizaciones (vacío = ítem nuevo).
type StockRequestItemInput struct {
	ID                string `json:"id,omitempty" validate:"omitempty,uuid"`
	ProductID         string `json:"productId" validate:"required,uuid"`
	RequestedQuantity int    `json:"requestedQuantity" validate:"required,min=1"`
}

// CreateStockRequestRequest cuerpo de POST /stock/create.
type CreateStockRequestRequest struct {
	BranchID string                  `json:"branchId" validate:"required,uuid"`
	Items    []StockRequestItemInput `json:"items" validate:"required,min=1,dive"`
	Note     string                  `json:"note" validate:"omitempty,max=1000"`
}

// UpdateStockRequestRequest reemplaza el conjunto de ítems de una solicitud pendiente.
type UpdateStockRequestRequest struct {
	Items []StockRequestItemInput `json:"items" validate:"required,min=1,dive"`
	Note  *string                 `json:"note" validate:"omitempty,max=1000"`
}

// ApprovalDecision cantidad aprobada para un ítem.
type ApprovalDecision struct {
	ItemID           string `json:"itemId" validate:"required,uuid"`
	ApprovedQuantity int    `json:"approvedQuantity" validate:"min=0"`
}

// ApproveStockRequestRequest cuerpo de POST /stock/:id/approve. Items se ignora al rechazar.
type ApproveStockRequestRequest struct {
	Items []ApprovalDecision `json:"items" validate:"omitempty,dive"`
	Note  string             `json:"note" validate:"omitempty,max=1000"`
}

// ReceiptLine cantidad recibida para un ítem.
type ReceiptLine struct {
	ItemID           string `json:"itemId" validate:"required,uuid"`
	ReceivedQuantity int    `json:"receivedQuantity" validate:"min=0"`
}

// ReceiveStockRequestRequest cuerpo de POST /stock/:id/receive.
type ReceiveStockRequestRequest struct {
	Items []ReceiptLine `json:"items" validate:"required,min=1,dive"`
	Note  string        `json:"note" validate:"omitempty,max=1000"`
}

// DeliverStockRequestRequest cuerpo opcional de POST /stock/:id/deliver.
type DeliverStockRequestRequest struct {
	Note string `json:"note" validate:"omitempty,max=1000"`
}

// StockRequestItemResponse ítem de la solicitud.
type StockRequestItemResponse struct {
	ID                string `json:"id"`
	ProductID         string `json:"productId"`
	RequestedQuantity int    `json:"requestedQuantity"`
	ApprovedQuantity  int    `json:"approvedQuantity"`
	ReceivedQuantity  int    `json:"receivedQuantity"`
}

// StockRequestResponse salida de una solicitud.
type StockRequestResponse struct {
	ID           string                     `json:"id"`
	BranchID     string                     `json:"branchId"`
	CreatedByID  string                     `json:"createdById"`
	Status       string                     `json:"status"`
	Note         string                     `json:"note,omitempty"`
	ApprovedByID *string                    `json:"approvedById"`
	Items        []StockRequestItemResponse `json:"items"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}
