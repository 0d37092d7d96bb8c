package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// BranchProductRepository define el puerto para las líneas de stock por sucursal.
// Usado dentro de transacciones para garantizar consistencia.
type BranchProductRepository interface {
	Get(ctx context.Context, branchID, productID string) (*entity.BranchProduct, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, branchID, productID string) (*entity.BranchProduct, error)
	Create(ctx context.Context, bp *entity.BranchProduct) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	// ListByBranch incluye el Product de cada línea; onlyAvailable filtra quantity > 0.
	ListByBranch(ctx context.Context, branchID string, onlyAvailable bool) ([]*entity.BranchProduct, error)
}
