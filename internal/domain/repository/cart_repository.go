package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// CartRepository define el puerto de persistencia para el carrito.
type CartRepository interface {
	GetByID(ctx context.Context, id string) (*entity.CartItem, error)
	GetByKey(ctx context.Context, userID, productID, branchID string) (*entity.CartItem, error)
	Create(ctx context.Context, item *entity.CartItem) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	// ListByUser incluye el Product de cada línea. branchID vacío = todas las sucursales.
	ListByUser(ctx context.Context, userID, branchID string) ([]*entity.CartItem, error)
	DeleteByUserAndBranch(ctx context.Context, userID, branchID string) error
}
