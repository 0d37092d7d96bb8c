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

// AddressUseCase libreta de direcciones del usuario autenticado.
type AddressUseCase struct {
	repo repository.AddressRepository
}

// NewAddressUseCase construye el caso de uso.
func NewAddressUseCase(repo repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{repo: repo}
}

// Add guarda una dirección del actor.
func (uc *AddressUseCase) Add(ctx context.Context, actor policy.Actor, in dto.AddressRequest) (*dto.AddressResponse, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	a := &entity.Address{
		ID:        uuid.New().String(),
		UserID:    actor.UserID,
		LineOne:   strings.TrimSpace(in.LineOne),
		PinCode:   strings.TrimSpace(in.PinCode),
		City:      strings.TrimSpace(in.City),
		Country:   strings.TrimSpace(in.Country),
		CreatedAt: time.Now(),
	}
	if in.LineTwo != nil {
		if two := strings.TrimSpace(*in.LineTwo); two != "" {
			a.LineTwo = &two
		}
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAddressResponse(a), nil
}

// Delete borra una dirección propia; la de otro usuario se reporta como inexistente.
func (uc *AddressUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil || a.UserID != actor.UserID {
		return fmt.Errorf("dirección %s: %w", id, domain.ErrNotFound)
	}
	return uc.repo.Delete(ctx, id)
}

// List direcciones del actor.
func (uc *AddressUseCase) List(ctx context.Context, actor policy.Actor) ([]dto.AddressResponse, error) {
	list, err := uc.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AddressResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAddressResponse(a))
	}
	return out, nil
}

func toAddressResponse(a *entity.Address) *dto.AddressResponse {
	return &dto.AddressResponse{
		ID:        a.ID,
		LineOne:   a.LineOne,
		LineTwo:   a.LineTwo,
		PinCode:   a.PinCode,
		City:      a.City,
		Country:   a.Country,
		CreatedAt: a.CreatedAt,
	}
}
