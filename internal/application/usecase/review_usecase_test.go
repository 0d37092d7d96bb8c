package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
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

func seedOrder(t *testing.T, s *apptest.Store, userID, productID, status string) *entity.Order {
	t.Helper()
	id := uuid.New().String()
	o := &entity.Order{
		ID:        id,
		UserID:    userID,
		BranchID:  "b-1",
		Status:    status,
		Channel:   entity.ChannelOnline,
		CreatedAt: time.Now(),
		Products: []*entity.OrderProduct{{
			ID: uuid.New().String(), OrderID: id, ProductID: productID, Quantity: 1, UnitPrice: decimal.NewFromInt(1),
		}},
	}
	require.NoError(t, s.Orders().Create(context.Background(), o))
	return o
}

func TestReview_Reglas(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewReviewUseCase(s.Reviews(), s.Orders())
	ctx := context.Background()
	buyer := s.SeedUser("cliente", entity.RoleUser)
	stranger := s.SeedUser("otro", entity.RoleUser)
	actor := policy.Actor{UserID: buyer.ID, Role: buyer.Role}

	pending := seedOrder(t, s, buyer.ID, "p-1", entity.OrderPending)
	delivered := seedOrder(t, s, buyer.ID, "p-1", entity.OrderDelivered)

	_, err := uc.Create(ctx, actor, dto.CreateReviewRequest{ProductID: "p-1", OrderID: pending.ID, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = uc.Create(ctx, actor, dto.CreateReviewRequest{ProductID: "p-2", OrderID: delivered.ID, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, policy.Actor{UserID: stranger.ID, Role: stranger.Role},
		dto.CreateReviewRequest{ProductID: "p-1", OrderID: delivered.ID, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	r, err := uc.Create(ctx, actor, dto.CreateReviewRequest{ProductID: "p-1", OrderID: delivered.ID, Rating: 4, Comment: "bueno"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, actor, dto.CreateReviewRequest{ProductID: "p-1", OrderID: delivered.ID, Rating: 3})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Solo el autor edita o borra.
	rating := 2
	_, err = uc.Update(ctx, policy.Actor{UserID: stranger.ID, Role: stranger.Role}, r.ID, dto.UpdateReviewRequest{Rating: &rating})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	byProduct, err := uc.ListByProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Len(t, byProduct, 1)

	require.NoError(t, uc.Delete(ctx, actor, r.ID))
}
