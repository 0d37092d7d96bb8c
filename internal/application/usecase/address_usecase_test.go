package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonbass/retail-api/internal/application/apptest"
	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/application/usecase"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
)

func TestAddress_SoloLasPropias(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewAddressUseCase(s.Addresses())
	ana := s.SeedUser("ana", entity.RoleUser)
	beto := s.SeedUser("beto", entity.RoleUser)
	anaActor := policy.Actor{UserID: ana.ID, Role: ana.Role}
	betoActor := policy.Actor{UserID: beto.ID, Role: beto.Role}
	ctx := context.Background()

	blank := "  "
	a, err := uc.Add(ctx, anaActor, dto.AddressRequest{LineOne: " Cra 5 # 10-20 ", LineTwo: &blank, PinCode: "110111", City: "Bogotá", Country: "CO"})
	require.NoError(t, err)
	assert.Equal(t, "Cra 5 # 10-20", a.LineOne)
	assert.Nil(t, a.LineTwo)

	apto := "Apto 301"
	_, err = uc.Add(ctx, anaActor, dto.AddressRequest{LineOne: "Cll 80", LineTwo: &apto, PinCode: "110221", City: "Bogotá", Country: "CO"})
	require.NoError(t, err)

	list, err := uc.List(ctx, anaActor)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	others, err := uc.List(ctx, betoActor)
	require.NoError(t, err)
	assert.Empty(t, others)

	assert.ErrorIs(t, uc.Delete(ctx, betoActor, a.ID), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, anaActor, a.ID))
	assert.ErrorIs(t, uc.Delete(ctx, anaActor, a.ID), domain.ErrNotFound)

	list, err = uc.List(ctx, anaActor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].LineTwo)
	assert.Equal(t, "Apto 301", *list[0].LineTwo)
}
