package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonbass/retail-api/internal/application/apptest"
	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/application/usecase"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
)

func TestMasonBass_CodigoUnico(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewMasonBassUseCase(s.MasonBass())
	agent := s.SeedUser("agente", entity.RoleAgent)
	actor := policy.Actor{UserID: agent.ID, Role: agent.Role}
	ctx := context.Background()

	a, err := uc.Create(ctx, actor, dto.MasonBassRequest{BassName: "Los Andes", Code: " andes10 ", Discount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, "ANDES10", a.Code)

	_, err = uc.Create(ctx, actor, dto.MasonBassRequest{BassName: "Otra", Code: "ANDES10"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Conservar el propio código al actualizar no es un duplicado.
	out, err := uc.Update(ctx, actor, a.ID, dto.MasonBassRequest{BassName: "Los Andes Sur", Code: "andes10"})
	require.NoError(t, err)
	assert.Equal(t, "Los Andes Sur", out.BassName)

	user := s.SeedUser("cliente", entity.RoleUser)
	_, err = uc.Create(ctx, policy.Actor{UserID: user.ID, Role: user.Role}, dto.MasonBassRequest{BassName: "X", Code: "X"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
