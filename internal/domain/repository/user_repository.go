package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas devuelven (nil, nil) si el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, role string, limit, offset int) ([]*entity.User, error)
	// Delete falla con ErrInvalidState si el usuario tiene órdenes, solicitudes o visitas.
	Delete(ctx context.Context, id string) error
}
