package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// ReviewRepository define el puerto de persistencia para reseñas.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	Find(ctx context.Context, productID, orderID, userID string) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Review, error)
}
