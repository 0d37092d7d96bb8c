package entity

import "time"

// Review reseña de un producto comprado. Única por (ProductID, OrderID, UserID).
type Review struct {
	ID        string
	ProductID string
	OrderID   string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
