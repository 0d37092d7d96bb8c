package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// AddressRepository puerto de persistencia para direcciones de usuario.
type AddressRepository interface {
	Create(ctx context.Context, a *entity.Address) error
	GetByID(ctx context.Context, id string) (*entity.Address, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Address, error)
}
