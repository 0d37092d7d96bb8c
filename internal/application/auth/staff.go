package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/application/usecase"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
)

// ChangePassword cambia la contraseña del propio usuario si currentPassword coincide.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, actor policy.Actor, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// CreateStaff da de alta un AGENT o REP con contraseña inicial (admin).
func (uc *AuthUseCase) CreateStaff(ctx context.Context, actor policy.Actor, role string, in dto.CreateStaffRequest) (*dto.UserResponse, error) {
	if err := policy.Check(actor, policy.ManageUsers); err != nil {
		return nil, err
	}
	if err := staffRole(role); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  in.PhoneNumber,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return usecase.ToUserResponse(user), nil
}

// UpdateStaff edita un AGENT o REP. Un id con otro rol se trata como inexistente.
func (uc *AuthUseCase) UpdateStaff(ctx context.Context, actor policy.Actor, role, id string, in dto.UpdateStaffRequest) (*dto.UserResponse, error) {
	if err := policy.Check(actor, policy.ManageUsers); err != nil {
		return nil, err
	}
	user, err := uc.staff(ctx, role, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != user.Email {
			existing, err := uc.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return usecase.ToUserResponse(user), nil
}

// DeleteStaff elimina un AGENT o REP (admin).
func (uc *AuthUseCase) DeleteStaff(ctx context.Context, actor policy.Actor, role, id string) error {
	if err := policy.Check(actor, policy.ManageUsers); err != nil {
		return err
	}
	if _, err := uc.staff(ctx, role, id); err != nil {
		return err
	}
	return uc.userRepo.Delete(ctx, id)
}

// RemoveAccount elimina cualquier cuenta (admin). Un admin no puede eliminarse a sí mismo.
func (uc *AuthUseCase) RemoveAccount(ctx context.Context, actor policy.Actor, id string) error {
	if err := policy.Check(actor, policy.ManageUsers); err != nil {
		return err
	}
	if id == actor.UserID {
		return fmt.Errorf("no puede eliminar su propia cuenta: %w", domain.ErrForbidden)
	}
	return uc.userRepo.Delete(ctx, id)
}

func (uc *AuthUseCase) staff(ctx context.Context, role, id string) (*entity.User, error) {
	if err := staffRole(role); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != role {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func staffRole(role string) error {
	if role != entity.RoleAgent && role != entity.RoleRep {
		return fmt.Errorf("rol %q no es de personal: %w", role, domain.ErrInvalidInput)
	}
	return nil
}
