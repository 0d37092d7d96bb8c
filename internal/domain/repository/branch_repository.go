package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	// GetByAgentID devuelve la sucursal atendida por el agente, o nil si no tiene.
	GetByAgentID(ctx context.Context, agentID string) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	List(ctx context.Context, limit, offset int) ([]*entity.Branch, error)
	Delete(ctx context.Context, id string) error
}
