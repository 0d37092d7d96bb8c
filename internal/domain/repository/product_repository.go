package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene efecto dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByNameKey(ctx context.Context, nameKey string) (*entity.Product, error)
	// Update no modifica AdminStock; ese campo solo cambia vía UpdateAdminStock.
	Update(ctx context.Context, product *entity.Product) error
	UpdateAdminStock(ctx context.Context, productID string, adminStock int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	SearchByNameKey(ctx context.Context, fragment string, limit int) ([]*entity.Product, error)
	// ListNotInBranch productos que aún no tienen línea de stock en la sucursal.
	ListNotInBranch(ctx context.Context, branchID string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
