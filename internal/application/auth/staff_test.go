package auth_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonbass/retail-api/internal/application/apptest"
	"github.com/masonbass/retail-api/internal/application/auth"
	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
)

func newAuth(s *apptest.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
}

func strPtr(s string) *string { return &s }

func TestChangePassword(t *testing.T) {
	s := apptest.NewStore()
	uc := newAuth(s)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	actor := policy.Actor{UserID: u.ID, Role: entity.RoleUser}

	err = uc.ChangePassword(ctx, actor, dto.ChangePasswordRequest{CurrentPassword: "equivocada", NewPassword: "nuevaclave1"})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	require.NoError(t, uc.ChangePassword(ctx, actor, dto.ChangePasswordRequest{CurrentPassword: "secreto123", NewPassword: "nuevaclave1"}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "nuevaclave1"})
	assert.NoError(t, err)

	err = uc.ChangePassword(ctx, policy.Actor{UserID: "borrado", Role: entity.RoleUser}, dto.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "nuevaclave1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStaff_AltaEdicionYBaja(t *testing.T) {
	s := apptest.NewStore()
	uc := newAuth(s)
	ctx := context.Background()
	admin := s.SeedUser("admin", entity.RoleAdmin)
	adminActor := policy.Actor{UserID: admin.ID, Role: entity.RoleAdmin}

	agent, err := uc.CreateStaff(ctx, adminActor, entity.RoleAgent, dto.CreateStaffRequest{
		Name: "Luis", Email: " Luis@Example.com ", Password: "agente123", PhoneNumber: "300",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAgent, agent.Role)
	assert.Equal(t, "luis@example.com", agent.Email)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "luis@example.com", Password: "agente123"})
	require.NoError(t, err)

	_, err = uc.CreateStaff(ctx, adminActor, entity.RoleRep, dto.CreateStaffRequest{Name: "Otro", Email: "luis@example.com", Password: "agente123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.CreateStaff(ctx, adminActor, entity.RoleAdmin, dto.CreateStaffRequest{Name: "Jefe", Email: "jefe@example.com", Password: "agente123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateStaff(ctx, policy.Actor{UserID: agent.ID, Role: entity.RoleAgent}, entity.RoleRep,
		dto.CreateStaffRequest{Name: "Rep", Email: "rep@example.com", Password: "agente123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Sin password no se toca el hash.
	upd, err := uc.UpdateStaff(ctx, adminActor, entity.RoleAgent, agent.ID, dto.UpdateStaffRequest{Name: strPtr("Luis P."), Email: strPtr("lp@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Luis P.", upd.Name)
	assert.Equal(t, "300", upd.PhoneNumber)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "lp@example.com", Password: "agente123"})
	require.NoError(t, err)

	_, err = uc.UpdateStaff(ctx, adminActor, entity.RoleAgent, agent.ID, dto.UpdateStaffRequest{Password: strPtr("otraclave9")})
	require.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "lp@example.com", Password: "otraclave9"})
	require.NoError(t, err)

	// Un agente no se edita ni se borra por la ruta de representantes.
	_, err = uc.UpdateStaff(ctx, adminActor, entity.RoleRep, agent.ID, dto.UpdateStaffRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, uc.DeleteStaff(ctx, adminActor, entity.RoleRep, agent.ID), domain.ErrUserNotFound)

	_, err = uc.UpdateStaff(ctx, adminActor, entity.RoleAgent, agent.ID, dto.UpdateStaffRequest{Email: strPtr("admin@example.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	require.NoError(t, uc.DeleteStaff(ctx, adminActor, entity.RoleAgent, agent.ID))
	u, err := s.Users().GetByID(ctx, agent.ID)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestDeleteStaff_LiberaLaSucursal(t *testing.T) {
	s := apptest.NewStore()
	uc := newAuth(s)
	ctx := context.Background()
	admin := s.SeedUser("admin", entity.RoleAdmin)
	agent := s.SeedUser("agente", entity.RoleAgent)
	branch := s.SeedBranch("Centro", agent.ID)

	require.NoError(t, uc.DeleteStaff(ctx, policy.Actor{UserID: admin.ID, Role: entity.RoleAdmin}, entity.RoleAgent, agent.ID))
	b, err := s.Branches().GetByID(ctx, branch.ID)
	require.NoError(t, err)
	assert.Nil(t, b.AgentID)
}

func TestRemoveAccount(t *testing.T) {
	s := apptest.NewStore()
	uc := newAuth(s)
	ctx := context.Background()
	admin := s.SeedUser("admin", entity.RoleAdmin)
	adminActor := policy.Actor{UserID: admin.ID, Role: entity.RoleAdmin}
	buyer := s.SeedUser("cliente", entity.RoleUser)
	agent := s.SeedUser("agente", entity.RoleAgent)
	branch := s.SeedBranch("Centro", agent.ID)
	prod := s.SeedProduct("Pegante", decimal.NewFromInt(10), 5)
	require.NoError(t, s.Cart().Create(ctx, &entity.CartItem{ID: "c1", UserID: buyer.ID, ProductID: prod.ID, BranchID: branch.ID, Quantity: 1}))

	assert.ErrorIs(t, uc.RemoveAccount(ctx, adminActor, admin.ID), domain.ErrForbidden)
	assert.ErrorIs(t, uc.RemoveAccount(ctx, policy.Actor{UserID: buyer.ID, Role: entity.RoleUser}, agent.ID), domain.ErrUnauthorized)

	require.NoError(t, uc.RemoveAccount(ctx, adminActor, buyer.ID))
	assert.Equal(t, 0, s.CartSize(buyer.ID))
	assert.ErrorIs(t, uc.RemoveAccount(ctx, adminActor, buyer.ID), domain.ErrUserNotFound)
}
