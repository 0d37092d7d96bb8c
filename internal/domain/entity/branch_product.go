package entity

import "time"

// BranchProduct línea de stock de un producto en una sucursal. Única por (BranchID, ProductID).
type BranchProduct struct {
	ID        string
	BranchID  string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time

	// Product se carga en listados; nil en lecturas puntuales.
	Product *Product
}
