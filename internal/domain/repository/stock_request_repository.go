package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// StockRequestFilter filtros opcionales para listar solicitudes.
type StockRequestFilter struct {
	Status   string
	BranchID string
}

// StockRequestRepository define el puerto de persistencia para solicitudes de reposición.
// GetByID y GetForUpdate cargan los ítems.
type StockRequestRepository interface {
	Create(ctx context.Context, req *entity.StockRequest) error
	GetByID(ctx context.Context, id string) (*entity.StockRequest, error)
	// GetForUpdate bloquea la cabecera de la solicitud (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockRequest, error)
	// UpdateHeader persiste Status, Note, ApprovedByID y UpdatedAt.
	UpdateHeader(ctx context.Context, req *entity.StockRequest) error
	CreateItem(ctx context.Context, item *entity.StockRequestItem) error
	// UpdateItem persiste ProductID y las tres cantidades.
	UpdateItem(ctx context.Context, item *entity.StockRequestItem) error
	DeleteItem(ctx context.Context, itemID string) error
	// Delete elimina los ítems y luego la cabecera.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter StockRequestFilter) ([]*entity.StockRequest, error)
}
