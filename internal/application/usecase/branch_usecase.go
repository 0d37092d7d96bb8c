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

// BranchUseCase CRUD de sucursales y asignación de agente y representante.
type BranchUseCase struct {
	repo     repository.BranchRepository
	userRepo repository.UserRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository, userRepo repository.UserRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo, userRepo: userRepo}
}

// Create crea una sucursal sin agente ni representante.
func (uc *BranchUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if err := policy.Check(actor, policy.ManageBranches); err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.Branch{
		ID:          uuid.New().String(),
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, b)
}

// Get sucursal con su agente y representante.
func (uc *BranchUseCase) Get(ctx context.Context, id string) (*dto.BranchResponse, error) {
	b, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, b)
}

// List sucursales paginadas.
func (uc *BranchUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.BranchResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBranchResponse(b))
	}
	return out, nil
}

// Update actualización parcial de datos de contacto.
func (uc *BranchUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	if err := policy.Check(actor, policy.ManageBranches); err != nil {
		return nil, err
	}
	b, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.PhoneNumber != nil {
		b.PhoneNumber = *in.PhoneNumber
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	return uc.save(ctx, b)
}

// Delete elimina la sucursal. Falla con ErrInvalidState si todavía tiene stock u órdenes.
func (uc *BranchUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if err := policy.Check(actor, policy.ManageBranches); err != nil {
		return err
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// AssignAgent asigna un usuario AGENT a la sucursal. Un agente atiende una sola sucursal.
func (uc *BranchUseCase) AssignAgent(ctx context.Context, actor policy.Actor, in dto.AssignUserRequest) (*dto.BranchResponse, error) {
	if err := policy.Check(actor, policy.ManageBranches); err != nil {
		return nil, err
	}
	b, err := uc.find(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.userWithRole(ctx, in.UserID, entity.RoleAgent); err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByAgentID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.ID != b.ID {
		return nil, fmt.Errorf("el agente ya atiende la sucursal %s: %w", current.ID, domain.ErrAlreadyExists)
	}
	agentID := in.UserID
	b.AgentID = &agentID
	return uc.save(ctx, b)
}

// RemoveAgent deja la sucursal sin agente.
func (uc *BranchUseCase) RemoveAgent(ctx context.Context, actor policy.Actor, branchID string) (*dto.BranchResponse, error) {
	if err := policy.Check(actor, policy.ManageBranches); err != nil {
		return nil, err
	}
	b, err := uc.find(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if b.AgentID == nil {
		return nil, fmt.Errorf("la sucursal no tiene agente: %w", domain.ErrInvalidState)
	}
	b.AgentID = nil
	return uc.save(ctx, b)
}

// AssignRep asigna un representante comercial (rol REP).
func (uc *BranchUseCase) AssignRep(ctx context.Context, actor policy.Actor, in dto.AssignUserRequest) (*dto.BranchResponse, error) {
	if err := policy.Check(actor, policy.ManageBranches); err != nil {
		return nil, err
	}
	b, err := uc.find(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if b.SalesRepID != nil {
		return nil, fmt.Errorf("la sucursal ya tiene representante: %w", domain.ErrAlreadyExists)
	}
	if _, err := uc.userWithRole(ctx, in.UserID, entity.RoleRep); err != nil {
		return nil, err
	}
	repID := in.UserID
	b.SalesRepID = &repID
	return uc.save(ctx, b)
}

// RemoveRep deja la sucursal sin representante.
func (uc *BranchUseCase) RemoveRep(ctx context.Context, actor policy.Actor, branchID string) (*dto.BranchResponse, error) {
	if err := policy.Check(actor, policy.ManageBranches); err != nil {
		return nil, err
	}
	b, err := uc.find(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if b.SalesRepID == nil {
		return nil, fmt.Errorf("la sucursal no tiene representante: %w", domain.ErrInvalidState)
	}
	b.SalesRepID = nil
	return uc.save(ctx, b)
}

func (uc *BranchUseCase) save(ctx context.Context, b *entity.Branch) (*dto.BranchResponse, error) {
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, b)
}

func (uc *BranchUseCase) find(ctx context.Context, id string) (*entity.Branch, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("sucursal %s: %w", id, domain.ErrNotFound)
	}
	return b, nil
}

func (uc *BranchUseCase) userWithRole(ctx context.Context, userID, role string) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.Role != role {
		return nil, fmt.Errorf("el usuario tiene rol %s, se esperaba %s: %w", u.Role, role, domain.ErrInvalidInput)
	}
	return u, nil
}

func (uc *BranchUseCase) toResponse(ctx context.Context, b *entity.Branch) (*dto.BranchResponse, error) {
	out := toBranchResponse(b)
	if b.AgentID != nil {
		u, err := uc.userRepo.GetByID(ctx, *b.AgentID)
		if err != nil {
			return nil, err
		}
		out.Agent = ToUserResponse(u)
	}
	if b.SalesRepID != nil {
		u, err := uc.userRepo.GetByID(ctx, *b.SalesRepID)
		if err != nil {
			return nil, err
		}
		out.SalesRep = ToUserResponse(u)
	}
	return out, nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:          b.ID,
		Name:        b.Name,
		PhoneNumber: b.PhoneNumber,
		Address:     b.Address,
		AgentID:     b.AgentID,
		SalesRepID:  b.SalesRepID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
