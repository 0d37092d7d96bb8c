package dto

import "time"

// VisitRequest alta o reemplazo de una visita comercial.
type VisitRequest struct {
	BranchID             string    `json:"branchId" validate:"required,uuid"`
	OrderID              *string   `json:"orderId" validate:"omitempty,uuid"`
	CustomerName         string    `json:"customerName" validate:"required,max=200"`
	Address              string    `json:"address" validate:"required,max=500"`
	ContactNumber        string    `json:"contactNumber" validate:"required,max=30"`
	PurposeOfVisit       string    `json:"purposeOfVisit" validate:"required,max=1000"`
	CustomerSignatureURL string    `json:"customerSignature" validate:"omitempty,url"`
	VisitDate            time.Time `json:"visitDate" validate:"required"`
}

// VisitResponse salida de una visita.
type VisitResponse struct {
	ID                   string    `json:"id"`
	BranchID             string    `json:"branchId"`
	SalesRepID           string    `json:"salesRepId"`
	OrderID              *string   `json:"orderId"`
	CustomerName         string    `json:"customerName"`
	Address              string    `json:"address"`
	ContactNumber        string    `json:"contactNumber"`
	PurposeOfVisit       string    `json:"purposeOfVisit"`
	CustomerSignatureURL string    `json:"customerSignature,omitempty"`
	VisitDate            time.Time `json:"visitDate"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
