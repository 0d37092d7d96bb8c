package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

// ReviewUseCase reseñas de productos comprados.
type ReviewUseCase struct {
	repo      repository.ReviewRepository
	orderRepo repository.OrderRepository
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(repo repository.ReviewRepository, orderRepo repository.OrderRepository) *ReviewUseCase {
	return &ReviewUseCase{repo: repo, orderRepo: orderRepo}
}

// Create reseña un producto de una orden entregada del usuario. Una reseña por (producto, orden, usuario).
func (uc *ReviewUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("calificación %d: %w", in.Rating, domain.ErrInvalidInput)
	}
	order, err := uc.orderRepo.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("orden %s: %w", in.OrderID, domain.ErrNotFound)
	}
	if order.UserID != actor.UserID {
		return nil, fmt.Errorf("la orden no pertenece al usuario: %w", domain.ErrForbidden)
	}
	found := false
	for _, p := range order.Products {
		if p.ProductID == in.ProductID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("producto %s no está en la orden: %w", in.ProductID, domain.ErrNotFound)
	}
	if order.Status != entity.OrderDelivered {
		return nil, fmt.Errorf("orden en estado %s: %w", order.Status, domain.ErrInvalidState)
	}
	existing, err := uc.repo.Find(ctx, in.ProductID, in.OrderID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}
	now := time.Now()
	r := &entity.Review{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		OrderID:   in.OrderID,
		UserID:    actor.UserID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toReviewResponse(r), nil
}

// Update modifica una reseña propia.
func (uc *ReviewUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	r, err := uc.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, fmt.Errorf("calificación %d: %w", *in.Rating, domain.ErrInvalidInput)
		}
		r.Rating = *in.Rating
	}
	if in.Comment != nil {
		r.Comment = *in.Comment
	}
	r.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toReviewResponse(r), nil
}

// Delete elimina una reseña propia.
func (uc *ReviewUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	r, err := uc.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, r.ID)
}

// ListByOrder reseñas de una orden propia.
func (uc *ReviewUseCase) ListByOrder(ctx context.Context, actor policy.Actor, orderID string) ([]dto.ReviewResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (order.UserID != actor.UserID && !actor.IsAdmin()) {
		return nil, fmt.Errorf("orden %s: %w", orderID, domain.ErrNotFound)
	}
	list, err := uc.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(list), nil
}

// ListByProduct reseñas públicas de un producto.
func (uc *ReviewUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.ReviewResponse, error) {
	list, err := uc.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(list), nil
}

// ListAll todas las reseñas paginadas.
func (uc *ReviewUseCase) ListAll(ctx context.Context, page dto.PageRequest) ([]dto.ReviewResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(list), nil
}

// owned las reseñas ajenas se reportan como inexistentes.
func (uc *ReviewUseCase) owned(ctx context.Context, actor policy.Actor, id string) (*entity.Review, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || r.UserID != actor.UserID {
		return nil, fmt.Errorf("reseña %s: %w", id, domain.ErrNotFound)
	}
	return r, nil
}

func toReviewResponse(r *entity.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		OrderID:   r.OrderID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toReviewResponses(list []*entity.Review) []dto.ReviewResponse {
	out := make([]dto.ReviewResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReviewResponse(r))
	}
	return out
}
