// Package orders implementa el carrito, el checkout, la venta en tienda y el ciclo de vida de
// las órdenes. Todo movimiento de stock pasa por el libro de inventario.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

// CartUseCase casos de uso del carrito.
type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository, branchRepo repository.BranchRepository) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, productRepo: productRepo, branchRepo: branchRepo}
}

// Add agrega el producto al carrito del usuario en la sucursal; si la línea existe suma la cantidad.
func (uc *CartUseCase) Add(ctx context.Context, userID string, in dto.AddCartItemRequest) (*dto.CartItemResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
	}
	branch, err := uc.branchRepo.GetByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("sucursal %s: %w", in.BranchID, domain.ErrNotFound)
	}

	item, err := uc.cartRepo.GetByKey(ctx, userID, in.ProductID, in.BranchID)
	if err != nil {
		return nil, err
	}
	if item != nil {
		item.Quantity += in.Quantity
		if err := uc.cartRepo.UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
			return nil, err
		}
	} else {
		now := time.Now()
		item = &entity.CartItem{
			ID:        uuid.New().String(),
			UserID:    userID,
			ProductID: in.ProductID,
			BranchID:  in.BranchID,
			Quantity:  in.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.cartRepo.Create(ctx, item); err != nil {
			return nil, err
		}
	}
	item.Product = product
	return toCartItemResponse(item), nil
}

// ChangeQuantity fija la cantidad de una línea del usuario.
func (uc *CartUseCase) ChangeQuantity(ctx context.Context, userID, itemID string, qty int) (*dto.CartItemResponse, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	item, err := uc.owned(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	item.Quantity = qty
	if err := uc.cartRepo.UpdateQuantity(ctx, item.ID, qty); err != nil {
		return nil, err
	}
	return toCartItemResponse(item), nil
}

// Remove elimina una línea del usuario. Las líneas de otros usuarios se reportan como inexistentes.
func (uc *CartUseCase) Remove(ctx context.Context, userID, itemID string) error {
	item, err := uc.owned(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return uc.cartRepo.Delete(ctx, item.ID)
}

// List carrito completo del usuario (todas las sucursales).
func (uc *CartUseCase) List(ctx context.Context, userID string) ([]dto.CartItemResponse, error) {
	items, err := uc.cartRepo.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	out := make([]dto.CartItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toCartItemResponse(it))
	}
	return out, nil
}

func (uc *CartUseCase) owned(ctx context.Context, userID, itemID string) (*entity.CartItem, error) {
	item, err := uc.cartRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, fmt.Errorf("línea de carrito %s: %w", itemID, domain.ErrNotFound)
	}
	return item, nil
}

func toCartItemResponse(it *entity.CartItem) *dto.CartItemResponse {
	out := &dto.CartItemResponse{
		ID:        it.ID,
		ProductID: it.ProductID,
		BranchID:  it.BranchID,
		Quantity:  it.Quantity,
	}
	if it.Product != nil {
		out.Product = dto.ToProductResponse(it.Product)
	}
	return out
}
