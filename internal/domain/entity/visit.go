package entity

import "time"

// Visit visita de un representante comercial a un cliente.
type Visit struct {
	ID                   string
	BranchID             string
	SalesRepID           string
	OrderID              *string
	CustomerName         string
	Address              string
	ContactNumber        string
	PurposeOfVisit       string
	CustomerSignatureURL string
	VisitDate            time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
