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

// CallEventUseCase registro de llamadas del call center.
type CallEventUseCase struct {
	repo repository.CallEventRepository
}

// NewCallEventUseCase construye el caso de uso.
func NewCallEventUseCase(repo repository.CallEventRepository) *CallEventUseCase {
	return &CallEventUseCase{repo: repo}
}

func (uc *CallEventUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CallEventRequest) (*dto.CallEventResponse, error) {
	if err := policy.Check(actor, policy.LogCalls); err != nil {
		return nil, err
	}
	if err := validateFollowUp(in); err != nil {
		return nil, err
	}
	now := time.Now()
	ev := &entity.CallEvent{ID: uuid.New().String(), CreatedAt: now}
	applyCallEvent(ev, in)
	ev.UpdatedAt = now
	if err := uc.repo.Create(ctx, ev); err != nil {
		return nil, err
	}
	return toCallEventResponse(ev), nil
}

func (uc *CallEventUseCase) Get(ctx context.Context, actor policy.Actor, id string) (*dto.CallEventResponse, error) {
	if err := policy.Check(actor, policy.LogCalls); err != nil {
		return nil, err
	}
	ev, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCallEventResponse(ev), nil
}

// Update reemplaza los datos del registro.
func (uc *CallEventUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.CallEventRequest) (*dto.CallEventResponse, error) {
	if err := policy.Check(actor, policy.LogCalls); err != nil {
		return nil, err
	}
	if err := validateFollowUp(in); err != nil {
		return nil, err
	}
	ev, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCallEvent(ev, in)
	ev.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return toCallEventResponse(ev), nil
}

// ChangeStatus actualiza sólo callStatus.
func (uc *CallEventUseCase) ChangeStatus(ctx context.Context, actor policy.Actor, id, status string) (*dto.CallEventResponse, error) {
	if err := policy.Check(actor, policy.LogCalls); err != nil {
		return nil, err
	}
	ev, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	ev.CallStatus = status
	ev.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return toCallEventResponse(ev), nil
}

func (uc *CallEventUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if err := policy.Check(actor, policy.LogCalls); err != nil {
		return err
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List registros paginados, del más reciente al más antiguo, con total.
func (uc *CallEventUseCase) List(ctx context.Context, actor policy.Actor, page dto.PageRequest) (*dto.CallEventListResponse, error) {
	if err := policy.Check(actor, policy.LogCalls); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CallEventResponse, 0, len(list))
	for _, ev := range list {
		items = append(items, *toCallEventResponse(ev))
	}
	return &dto.CallEventListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *CallEventUseCase) find(ctx context.Context, id string) (*entity.CallEvent, error) {
	ev, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, fmt.Errorf("llamada %s: %w", id, domain.ErrNotFound)
	}
	return ev, nil
}

func validateFollowUp(in dto.CallEventRequest) error {
	if in.FollowUpNeeded && in.FollowUpDate == nil {
		return fmt.Errorf("falta la fecha de seguimiento: %w", domain.ErrInvalidInput)
	}
	return nil
}

func applyCallEvent(ev *entity.CallEvent, in dto.CallEventRequest) {
	ev.AgentName = in.AgentName
	ev.CallerName = in.CallerName
	ev.CallerNumber = in.CallerNumber
	ev.CallSource = in.CallSource
	ev.ProductOfInterest = in.ProductOfInterest
	ev.CustomerLocation = in.CustomerLocation
	ev.ReasonForCall = in.ReasonForCall
	ev.Action = in.Action
	ev.FollowUpNeeded = in.FollowUpNeeded
	ev.FollowUpDate = in.FollowUpDate
	if !in.FollowUpNeeded {
		ev.FollowUpDate = nil
	}
	ev.CallStatus = in.CallStatus
	ev.FollowUpStage = in.FollowUpStage
}

func toCallEventResponse(ev *entity.CallEvent) *dto.CallEventResponse {
	return &dto.CallEventResponse{
		ID:                ev.ID,
		AgentName:         ev.AgentName,
		CallerName:        ev.CallerName,
		CallerNumber:      ev.CallerNumber,
		CallSource:        ev.CallSource,
		ProductOfInterest: ev.ProductOfInterest,
		CustomerLocation:  ev.CustomerLocation,
		ReasonForCall:     ev.ReasonForCall,
		Action:            ev.Action,
		FollowUpNeeded:    ev.FollowUpNeeded,
		FollowUpDate:      ev.FollowUpDate,
		CallStatus:        ev.CallStatus,
		FollowUpStage:     ev.FollowUpStage,
		CreatedAt:         ev.CreatedAt,
		UpdatedAt:         ev.UpdatedAt,
	}
}
