package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// VisitRepository define el puerto de persistencia para visitas comerciales.
type VisitRepository interface {
	Create(ctx context.Context, v *entity.Visit) error
	GetByID(ctx context.Context, id string) (*entity.Visit, error)
	Update(ctx context.Context, v *entity.Visit) error
	Delete(ctx context.Context, id string) error
	ListByBranch(ctx context.Context, branchID string) ([]*entity.Visit, error)
	ListBySalesRep(ctx context.Context, salesRepID string) ([]*entity.Visit, error)
}
