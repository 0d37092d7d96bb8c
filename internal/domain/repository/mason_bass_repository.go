package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// MasonBassRepository define el puerto de persistencia para cuadrillas.
type MasonBassRepository interface {
	Create(ctx context.Context, b *entity.MasonBass) error
	GetByID(ctx context.Context, id string) (*entity.MasonBass, error)
	GetByCode(ctx context.Context, code string) (*entity.MasonBass, error)
	Update(ctx context.Context, b *entity.MasonBass) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.MasonBass, error)
}
