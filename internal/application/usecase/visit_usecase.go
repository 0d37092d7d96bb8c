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

// VisitUseCase visitas de representantes comerciales.
type VisitUseCase struct {
	repo       repository.VisitRepository
	branchRepo repository.BranchRepository
}

// NewVisitUseCase construye el caso de uso.
func NewVisitUseCase(repo repository.VisitRepository, branchRepo repository.BranchRepository) *VisitUseCase {
	return &VisitUseCase{repo: repo, branchRepo: branchRepo}
}

// Create registra una visita a nombre del representante autenticado.
func (uc *VisitUseCase) Create(ctx context.Context, actor policy.Actor, in dto.VisitRequest) (*dto.VisitResponse, error) {
	if err := policy.Check(actor, policy.LogVisits); err != nil {
		return nil, err
	}
	if err := uc.requireBranch(ctx, in.BranchID); err != nil {
		return nil, err
	}
	now := time.Now()
	v := &entity.Visit{ID: uuid.New().String(), SalesRepID: actor.UserID, CreatedAt: now}
	applyVisit(v, in)
	v.UpdatedAt = now
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVisitResponse(v), nil
}

func (uc *VisitUseCase) Get(ctx context.Context, actor policy.Actor, id string) (*dto.VisitResponse, error) {
	v, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toVisitResponse(v), nil
}

// Update reemplaza los datos de la visita (su representante o un admin).
func (uc *VisitUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.VisitRequest) (*dto.VisitResponse, error) {
	v, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.BranchID != v.BranchID {
		if err := uc.requireBranch(ctx, in.BranchID); err != nil {
			return nil, err
		}
	}
	applyVisit(v, in)
	v.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return toVisitResponse(v), nil
}

func (uc *VisitUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	v, err := uc.visible(ctx, actor, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, v.ID)
}

func (uc *VisitUseCase) ListByBranch(ctx context.Context, actor policy.Actor, branchID string) ([]dto.VisitResponse, error) {
	if err := policy.Check(actor, policy.LogVisits); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return toVisitResponses(list), nil
}

// ListBySalesRep visitas de un representante; vacío = el autenticado.
func (uc *VisitUseCase) ListBySalesRep(ctx context.Context, actor policy.Actor, salesRepID string) ([]dto.VisitResponse, error) {
	if err := policy.Check(actor, policy.LogVisits); err != nil {
		return nil, err
	}
	if salesRepID == "" {
		salesRepID = actor.UserID
	}
	if salesRepID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.ListBySalesRep(ctx, salesRepID)
	if err != nil {
		return nil, err
	}
	return toVisitResponses(list), nil
}

func (uc *VisitUseCase) visible(ctx context.Context, actor policy.Actor, id string) (*entity.Visit, error) {
	if err := policy.Check(actor, policy.LogVisits); err != nil {
		return nil, err
	}
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("visita %s: %w", id, domain.ErrNotFound)
	}
	if err := policy.Check(actor, policy.LogVisits, policy.AnyOf(policy.Admin(), policy.Owner(v.SalesRepID))); err != nil {
		return nil, err
	}
	return v, nil
}

func (uc *VisitUseCase) requireBranch(ctx context.Context, branchID string) error {
	b, err := uc.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("sucursal %s: %w", branchID, domain.ErrNotFound)
	}
	return nil
}

func applyVisit(v *entity.Visit, in dto.VisitRequest) {
	v.BranchID = in.BranchID
	v.OrderID = in.OrderID
	v.CustomerName = in.CustomerName
	v.Address = in.Address
	v.ContactNumber = in.ContactNumber
	v.PurposeOfVisit = in.PurposeOfVisit
	v.CustomerSignatureURL = in.CustomerSignatureURL
	v.VisitDate = in.VisitDate
}

func toVisitResponse(v *entity.Visit) *dto.VisitResponse {
	return &dto.VisitResponse{
		ID:                   v.ID,
		BranchID:             v.BranchID,
		SalesRepID:           v.SalesRepID,
		OrderID:              v.OrderID,
		CustomerName:         v.CustomerName,
		Address:              v.Address,
		ContactNumber:        v.ContactNumber,
		PurposeOfVisit:       v.PurposeOfVisit,
		CustomerSignatureURL: v.CustomerSignatureURL,
		VisitDate:            v.VisitDate,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
}

func toVisitResponses(list []*entity.Visit) []dto.VisitResponse {
	out := make([]dto.VisitResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *toVisitResponse(v))
	}
	return out
}
