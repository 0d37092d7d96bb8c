package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// StockMovementFilter filtros opcionales para consultar el libro de stock.
type StockMovementFilter struct {
	ProductID   string
	BranchID    string
	ReferenceID string
}

// StockMovementRepository define el puerto de persistencia del libro de stock (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter StockMovementFilter, limit, offset int) ([]*entity.StockMovement, error)
}
