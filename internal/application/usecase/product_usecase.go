package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
	"github.com/masonbass/retail-api/pkg/textkey"
)

const maxSearchResults = 50

// ProductUseCase casos de uso CRUD del catálogo. AdminStock solo cambia vía el libro de stock.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. El nombre plegado (sin tildes ni mayúsculas) debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := policy.Check(actor, policy.ManageProducts); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() || in.AdminStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	key := textkey.Key(in.Name)
	if key == "" {
		return nil, fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByNameKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("producto %q: %w", in.Name, domain.ErrAlreadyExists)
	}
	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(in.Name),
		NameKey:           key,
		Mixing:            in.Mixing,
		ApplicationMethod: in.ApplicationMethod,
		Storage:           in.Storage,
		Volume:            in.Volume,
		Price:             in.Price,
		AdminStock:        in.AdminStock,
		ProductImageURL:   in.ProductImageURL,
		UsageImageURL:     in.UsageImageURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Update actualización parcial. No modifica AdminStock.
func (uc *ProductUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := policy.Check(actor, policy.ManageProducts); err != nil {
		return nil, err
	}
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		key := textkey.Key(*in.Name)
		if key == "" {
			return nil, fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
		}
		if key != product.NameKey {
			other, err := uc.repo.GetByNameKey(ctx, key)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, fmt.Errorf("producto %q: %w", *in.Name, domain.ErrAlreadyExists)
			}
		}
		product.Name = strings.TrimSpace(*in.Name)
		product.NameKey = key
	}
	if in.Mixing != nil {
		product.Mixing = *in.Mixing
	}
	if in.ApplicationMethod != nil {
		product.ApplicationMethod = *in.ApplicationMethod
	}
	if in.Storage != nil {
		product.Storage = *in.Storage
	}
	if in.Volume != nil {
		product.Volume = *in.Volume
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.ProductImageURL != nil {
		product.ProductImageURL = *in.ProductImageURL
	}
	if in.UsageImageURL != nil {
		product.UsageImageURL = *in.UsageImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// List lista productos con paginación y total.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Search busca por nombre ignorando tildes y mayúsculas.
func (uc *ProductUseCase) Search(ctx context.Context, q string) ([]dto.ProductResponse, error) {
	key := textkey.Key(q)
	if key == "" {
		return []dto.ProductResponse{}, nil
	}
	list, err := uc.repo.SearchByNameKey(ctx, key, maxSearchResults)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *dto.ToProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto. Falla con ErrInvalidState si tiene stock en sucursales u órdenes.
func (uc *ProductUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if err := policy.Check(actor, policy.ManageProducts); err != nil {
		return err
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) find(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return product, nil
}
