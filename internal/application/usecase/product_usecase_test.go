package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonbass/retail-api/internal/application/apptest"
	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/usecase"
	"github.com/masonbass/retail-api/internal/domain"
)

func TestProduct_NombreUnicoPlegado(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewProductUseCase(s.Products())
	admin := adminActor(s)
	ctx := context.Background()

	p, err := uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Pegante Cerámico", Price: decimal.NewFromInt(10), AdminStock: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, p.AdminStock)

	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{Name: "  PEGANTE ceramico ", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Boquilla", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_BusquedaSinTildes(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewProductUseCase(s.Products())
	admin := adminActor(s)
	ctx := context.Background()
	_, err := uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Impermeabilizante Acrílico"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Boquilla"})
	require.NoError(t, err)

	found, err := uc.Search(ctx, "ACRILICO")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Impermeabilizante Acrílico", found[0].Name)

	list, err := uc.List(ctx, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 2, list.Page.Total)
}

func TestProduct_UpdateNoTocaStock(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewProductUseCase(s.Products())
	admin := adminActor(s)
	ctx := context.Background()
	p, err := uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Pegante", AdminStock: 7})
	require.NoError(t, err)

	price := decimal.NewFromInt(15)
	out, err := uc.Update(ctx, admin, p.ID, dto.UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(out.Price))
	assert.Equal(t, 7, s.AdminStock(p.ID))

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
