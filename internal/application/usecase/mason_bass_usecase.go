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
)

// MasonBassUseCase cuadrillas de maestros con código de descuento.
type MasonBassUseCase struct {
	repo repository.MasonBassRepository
}

// NewMasonBassUseCase construye el caso de uso.
func NewMasonBassUseCase(repo repository.MasonBassRepository) *MasonBassUseCase {
	return &MasonBassUseCase{repo: repo}
}

// Create registra una cuadrilla. El código es único (sin distinguir mayúsculas).
func (uc *MasonBassUseCase) Create(ctx context.Context, actor policy.Actor, in dto.MasonBassRequest) (*dto.MasonBassResponse, error) {
	if err := policy.Check(actor, policy.ManageMasonBass); err != nil {
		return nil, err
	}
	code, err := uc.checkCode(ctx, in, "")
	if err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.MasonBass{ID: uuid.New().String(), CreatedAt: now}
	applyMasonBass(b, in, code)
	b.UpdatedAt = now
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toMasonBassResponse(b), nil
}

func (uc *MasonBassUseCase) Get(ctx context.Context, id string) (*dto.MasonBassResponse, error) {
	b, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMasonBassResponse(b), nil
}

func (uc *MasonBassUseCase) List(ctx context.Context) ([]dto.MasonBassResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MasonBassResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toMasonBassResponse(b))
	}
	return out, nil
}

func (uc *MasonBassUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.MasonBassRequest) (*dto.MasonBassResponse, error) {
	if err := policy.Check(actor, policy.ManageMasonBass); err != nil {
		return nil, err
	}
	b, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	code, err := uc.checkCode(ctx, in, b.ID)
	if err != nil {
		return nil, err
	}
	applyMasonBass(b, in, code)
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toMasonBassResponse(b), nil
}

func (uc *MasonBassUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if err := policy.Check(actor, policy.ManageMasonBass); err != nil {
		return err
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// checkCode normaliza el código y verifica que no lo use otra cuadrilla distinta de selfID.
func (uc *MasonBassUseCase) checkCode(ctx context.Context, in dto.MasonBassRequest, selfID string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return "", fmt.Errorf("código vacío: %w", domain.ErrInvalidInput)
	}
	if in.Discount.IsNegative() {
		return "", fmt.Errorf("descuento negativo: %w", domain.ErrInvalidInput)
	}
	other, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return "", err
	}
	if other != nil && other.ID != selfID {
		return "", fmt.Errorf("código %s: %w", code, domain.ErrAlreadyExists)
	}
	return code, nil
}

func (uc *MasonBassUseCase) find(ctx context.Context, id string) (*entity.MasonBass, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("cuadrilla %s: %w", id, domain.ErrNotFound)
	}
	return b, nil
}

func applyMasonBass(b *entity.MasonBass, in dto.MasonBassRequest, code string) {
	b.BassName = in.BassName
	b.Location = in.Location
	b.PhoneNumber = in.PhoneNumber
	b.Description = in.Description
	b.Code = code
	b.Discount = in.Discount
}

func toMasonBassResponse(b *entity.MasonBass) *dto.MasonBassResponse {
	return &dto.MasonBassResponse{
		ID:          b.ID,
		BassName:    b.BassName,
		Location:    b.Location,
		PhoneNumber: b.PhoneNumber,
		Description: b.Description,
		Code:        b.Code,
		Discount:    b.Discount,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
