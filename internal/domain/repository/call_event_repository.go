package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// CallEventRepository define el puerto de persistencia para registros de llamadas.
type CallEventRepository interface {
	Create(ctx context.Context, ev *entity.CallEvent) error
	GetByID(ctx context.Context, id string) (*entity.CallEvent, error)
	Update(ctx context.Context, ev *entity.CallEvent) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.CallEvent, error)
	Count(ctx context.Context) (int, error)
}
