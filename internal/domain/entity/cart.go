package entity

import "time"

// CartItem línea del carrito de un usuario, por sucursal. Única por (UserID, ProductID, BranchID).
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	BranchID  string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product
}
