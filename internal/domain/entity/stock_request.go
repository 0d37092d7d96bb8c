package entity

import "time"

// Estados de una solicitud de reposición.
const (
	StockRequestPending   = "PENDING"
	StockRequestApproved  = "APPROVED"
	StockRequestRejected  = "REJECTED"
	StockRequestDelivered = "DELIVERED"
	StockRequestCompleted = "COMPLETED"
)

// StockRequest solicitud de una sucursal para mover stock desde el inventario central.
type StockRequest struct {
	ID           string
	BranchID     string
	CreatedByID  string
	Status       string
	Note         string
	ApprovedByID *string
	Items        []*StockRequestItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockRequestItem línea de la solicitud.
type StockRequestItem struct {
	ID                string
	StockRequestID    string
	ProductID         string
	RequestedQuantity int
	ApprovedQuantity  int
	ReceivedQuantity  int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Item busca un ítem por ID dentro de la solicitud.
func (r *StockRequest) Item(itemID string) *StockRequestItem {
	for _, it := range r.Items {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}
