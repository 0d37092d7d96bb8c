package repository

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/entity"
)

// OrderFilter filtros opcionales para listar órdenes.
type OrderFilter struct {
	UserID   string
	BranchID string
	Status   string
}

// OrderRepository define el puerto de persistencia para órdenes.
type OrderRepository interface {
	// Create persiste la cabecera, sus Products y sus Events.
	Create(ctx context.Context, order *entity.Order) error
	// GetByID carga Products y Events.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera y carga Products.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	AddEvent(ctx context.Context, event *entity.OrderEvent) error
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]*entity.Order, error)
}
