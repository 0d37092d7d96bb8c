package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonbass/retail-api/internal/application/apptest"
	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/application/usecase"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
)

func TestCallEvent_Seguimiento(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewCallEventUseCase(s.CallEvents())
	rep := s.SeedUser("rep", entity.RoleRep)
	actor := policy.Actor{UserID: rep.ID, Role: rep.Role}
	ctx := context.Background()
	in := dto.CallEventRequest{AgentName: "Luis", CallerName: "Ana", CallerNumber: "300", FollowUpNeeded: true}

	_, err := uc.Create(ctx, actor, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	in.FollowUpDate = &when
	ev, err := uc.Create(ctx, actor, in)
	require.NoError(t, err)
	require.NotNil(t, ev.FollowUpDate)

	list, err := uc.List(ctx, actor, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)

	user := s.SeedUser("cliente", entity.RoleUser)
	_, err = uc.List(ctx, policy.Actor{UserID: user.ID, Role: user.Role}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVisit_SoloSuRepresentante(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewVisitUseCase(s.Visits(), s.Branches())
	rep := s.SeedUser("rep", entity.RoleRep)
	other := s.SeedUser("rep2", entity.RoleRep)
	b := s.SeedBranch("Centro", "")
	ctx := context.Background()
	actor := policy.Actor{UserID: rep.ID, Role: rep.Role}

	v, err := uc.Create(ctx, actor, dto.VisitRequest{
		BranchID: b.ID, CustomerName: "Obra 12", Address: "Cra 5", ContactNumber: "300",
		PurposeOfVisit: "demo", VisitDate: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, rep.ID, v.SalesRepID)

	_, err = uc.Get(ctx, policy.Actor{UserID: other.ID, Role: other.Role}, v.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	mine, err := uc.ListBySalesRep(ctx, actor, "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = uc.Create(ctx, actor, dto.VisitRequest{BranchID: "nope", VisitDate: time.Now()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCallEvent_ChangeStatus(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewCallEventUseCase(s.CallEvents())
	agent := s.SeedUser("agente", entity.RoleAgent)
	actor := policy.Actor{UserID: agent.ID, Role: agent.Role}
	ctx := context.Background()

	ev, err := uc.Create(ctx, actor, dto.CallEventRequest{
		AgentName: "Luis", CallerName: "Ana", CallerNumber: "300", ReasonForCall: "cotización", CallStatus: "ABIERTA",
	})
	require.NoError(t, err)

	got, err := uc.ChangeStatus(ctx, actor, ev.ID, "CERRADA")
	require.NoError(t, err)
	assert.Equal(t, "CERRADA", got.CallStatus)
	assert.Equal(t, "cotización", got.ReasonForCall)

	stored, err := uc.Get(ctx, actor, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "CERRADA", stored.CallStatus)

	_, err = uc.ChangeStatus(ctx, actor, "no-existe", "CERRADA")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	user := s.SeedUser("cliente", entity.RoleUser)
	_, err = uc.ChangeStatus(ctx, policy.Actor{UserID: user.ID, Role: user.Role}, ev.ID, "ABIERTA")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
