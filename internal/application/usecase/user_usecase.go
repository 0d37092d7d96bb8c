package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Me perfil del usuario autenticado.
func (uc *UserUseCase) Me(ctx context.Context, actor policy.Actor) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID (admin).
func (uc *UserUseCase) GetByID(ctx context.Context, actor policy.Actor, id string) (*dto.UserResponse, error) {
	if err := policy.Check(actor, policy.ManageUsers); err != nil {
		return nil, err
	}
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List usuarios, con filtro opcional de rol (admin).
func (uc *UserUseCase) List(ctx context.Context, actor policy.Actor, role string, page dto.PageRequest) ([]dto.UserResponse, error) {
	if err := policy.Check(actor, policy.ManageUsers); err != nil {
		return nil, err
	}
	if role != "" && !entity.ValidRole(role) {
		return nil, fmt.Errorf("rol %q: %w", role, domain.ErrInvalidInput)
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, role, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// UpdateProfile cambia nombre y teléfono del propio usuario.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, actor policy.Actor, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ChangeRole asigna un rol (admin). Un admin no puede quitarse su propio rol.
func (uc *UserUseCase) ChangeRole(ctx context.Context, actor policy.Actor, id, role string) (*dto.UserResponse, error) {
	if err := policy.Check(actor, policy.ManageUsers); err != nil {
		return nil, err
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("rol %q: %w", role, domain.ErrInvalidInput)
	}
	if id == actor.UserID && role != entity.RoleAdmin {
		return nil, fmt.Errorf("no puede quitarse el rol de administrador: %w", domain.ErrForbidden)
	}
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (uc *UserUseCase) find(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// ToUserResponse mapea un usuario a su DTO (sin hash de contraseña).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
