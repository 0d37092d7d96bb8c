package stockrequest_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonbass/retail-api/internal/application/apptest"
	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/inventory"
	"github.com/masonbass/retail-api/internal/application/notify"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/application/stockrequest"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (p *recordingPublisher) Publish(ev notify.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	store  *apptest.Store
	uc     *stockrequest.WorkflowUseCase
	pub    *recordingPublisher
	admin  policy.Actor
	agent  policy.Actor
	other  policy.Actor
	branch *entity.Branch
	prod   *entity.Product
}

// newFixture: central 20 unidades, sucursal con 5.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := apptest.NewStore()
	admin := s.SeedUser("admin", entity.RoleAdmin)
	agent := s.SeedUser("agente", entity.RoleAgent)
	other := s.SeedUser("otro", entity.RoleAgent)
	branch := s.SeedBranch("Centro", agent.ID)
	s.SeedBranch("Norte", other.ID)
	prod := s.SeedProduct("Pegante", decimal.NewFromInt(10), 20)
	s.SeedLine(branch.ID, prod.ID, 5)

	pub := &recordingPublisher{}
	uc := stockrequest.NewWorkflowUseCase(apptest.NewTxRunner(s), inventory.NewLedger(nil),
		s.Branches(), s.StockRequests(), pub, nil, nil)
	return &fixture{
		store:  s,
		uc:     uc,
		pub:    pub,
		admin:  policy.Actor{UserID: admin.ID, Role: entity.RoleAdmin},
		agent:  policy.Actor{UserID: agent.ID, Role: entity.RoleAgent},
		other:  policy.Actor{UserID: other.ID, Role: entity.RoleAgent},
		branch: branch,
		prod:   prod,
	}
}

func (f *fixture) create(t *testing.T, qty int) *dto.StockRequestResponse {
	t.Helper()
	req, err := f.uc.Create(context.Background(), f.agent, dto.CreateStockRequestRequest{
		BranchID: f.branch.ID,
		Items:    []dto.StockRequestItemInput{{ProductID: f.prod.ID, RequestedQuantity: qty}},
	})
	require.NoError(t, err)
	return req
}

func (f *fixture) approve(t *testing.T, req *dto.StockRequestResponse, qty int) {
	t.Helper()
	_, err := f.uc.Approve(context.Background(), f.admin, req.ID, dto.ApproveStockRequestRequest{
		Items: []dto.ApprovalDecision{{ItemID: req.Items[0].ID, ApprovedQuantity: qty}},
	})
	require.NoError(t, err)
}

func TestWorkflow_CicloCompleto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.create(t, 10)
	assert.Equal(t, entity.StockRequestPending, req.Status)

	f.approve(t, req, 8)
	assert.Equal(t, 20, f.store.AdminStock(f.prod.ID), "aprobar no reserva stock")

	delivered, err := f.uc.MarkDelivered(ctx, f.admin, req.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StockRequestDelivered, delivered.Status)
	assert.Equal(t, 5, f.store.LineQuantity(f.branch.ID, f.prod.ID))

	done, err := f.uc.Receive(ctx, f.agent, req.ID, dto.ReceiveStockRequestRequest{
		Items: []dto.ReceiptLine{{ItemID: req.Items[0].ID, ReceivedQuantity: 8}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StockRequestCompleted, done.Status)
	assert.Equal(t, 8, done.Items[0].ReceivedQuantity)
	assert.Equal(t, 12, f.store.AdminStock(f.prod.ID))
	assert.Equal(t, 13, f.store.LineQuantity(f.branch.ID, f.prod.ID))

	movs := f.store.MovementLog()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementReceipt, movs[0].Kind)
	assert.Equal(t, req.ID, movs[0].ReferenceID)

	assert.Equal(t, []string{
		notify.EventStockRequestCreated,
		notify.EventStockRequestApproved,
		notify.EventStockRequestDelivered,
		notify.EventStockRequestCompleted,
	}, f.pub.types())
}

func TestCreate_AgenteDeOtraSucursal(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), f.other, dto.CreateStockRequestRequest{
		BranchID: f.branch.ID,
		Items:    []dto.StockRequestItemInput{{ProductID: f.prod.ID, RequestedQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreate_ProductoNoAsignado(t *testing.T) {
	f := newFixture(t)
	loose := f.store.SeedProduct("Boquilla", decimal.NewFromInt(3), 50)

	_, err := f.uc.Create(context.Background(), f.agent, dto.CreateStockRequestRequest{
		BranchID: f.branch.ID,
		Items:    []dto.StockRequestItemInput{{ProductID: loose.ID, RequestedQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_SucursalInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), f.agent, dto.CreateStockRequestRequest{
		BranchID: "no-existe",
		Items:    []dto.StockRequestItemInput{{ProductID: f.prod.ID, RequestedQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_ExcedeStockCentral(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, 30)

	_, err := f.uc.Approve(context.Background(), f.admin, req.ID, dto.ApproveStockRequestRequest{
		Items: []dto.ApprovalDecision{{ItemID: req.Items[0].ID, ApprovedQuantity: 25}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.uc.Get(context.Background(), f.admin, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StockRequestPending, got.Status)
	assert.Zero(t, got.Items[0].ApprovedQuantity)
}

func TestApprove_MayorQueSolicitado(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, 2)

	_, err := f.uc.Approve(context.Background(), f.admin, req.ID, dto.ApproveStockRequestRequest{
		Items: []dto.ApprovalDecision{{ItemID: req.Items[0].ID, ApprovedQuantity: 3}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestApprove_ItemAjeno(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, 2)

	_, err := f.uc.Approve(context.Background(), f.admin, req.ID, dto.ApproveStockRequestRequest{
		Items: []dto.ApprovalDecision{{ItemID: "otro-item", ApprovedQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestApprove_SoloAdmin(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, 2)

	_, err := f.uc.Approve(context.Background(), f.agent, req.ID, dto.ApproveStockRequestRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestReject(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, 2)

	out, err := f.uc.Reject(context.Background(), f.admin, req.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StockRequestRejected, out.Status)
	assert.Equal(t, "Solicitud rechazada por el administrador", out.Note)

	_, err = f.uc.Approve(context.Background(), f.admin, req.ID, dto.ApproveStockRequestRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestMarkDelivered_DosVeces(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, 2)
	f.approve(t, req, 2)

	_, err := f.uc.MarkDelivered(context.Background(), f.admin, req.ID, "")
	require.NoError(t, err)
	_, err = f.uc.MarkDelivered(context.Background(), f.admin, req.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReceive_AntesDeDespachar(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, 2)
	f.approve(t, req, 2)

	_, err := f.uc.Receive(context.Background(), f.agent, req.ID, dto.ReceiveStockRequestRequest{
		Items: []dto.ReceiptLine{{ItemID: req.Items[0].ID, ReceivedQuantity: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReceive_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, 4)
	f.approve(t, req, 3)
	_, err := f.uc.MarkDelivered(ctx, f.admin, req.ID, "")
	require.NoError(t, err)

	_, err = f.uc.Receive(ctx, f.other, req.ID, dto.ReceiveStockRequestRequest{
		Items: []dto.ReceiptLine{{ItemID: req.Items[0].ID, ReceivedQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Receive(ctx, f.agent, req.ID, dto.ReceiveStockRequestRequest{
		Items: []dto.ReceiptLine{{ItemID: req.Items[0].ID, ReceivedQuantity: 4}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.Receive(ctx, f.agent, req.ID, dto.ReceiveStockRequestRequest{
		Items: []dto.ReceiptLine{{ItemID: "ajeno", ReceivedQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	assert.Equal(t, 20, f.store.AdminStock(f.prod.ID))
	assert.Equal(t, 5, f.store.LineQuantity(f.branch.ID, f.prod.ID))
}

func TestReceive_StockCentralConsumidoEntreAprobacionYRecepcion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, 10)
	f.approve(t, req, 10)
	_, err := f.uc.MarkDelivered(ctx, f.admin, req.ID, "")
	require.NoError(t, err)

	// Otra operación consume el central después de aprobar.
	runner := apptest.NewTxRunner(f.store)
	require.NoError(t, runner.Run(ctx, func(repos inventory.TxRepos) error {
		return repos.Products.UpdateAdminStock(ctx, f.prod.ID, 4)
	}))

	_, err = f.uc.Receive(ctx, f.agent, req.ID, dto.ReceiveStockRequestRequest{
		Items: []dto.ReceiptLine{{ItemID: req.Items[0].ID, ReceivedQuantity: 10}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 4, f.store.AdminStock(f.prod.ID))

	got, err := f.uc.Get(ctx, f.agent, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StockRequestDelivered, got.Status)
}

func TestReceive_CreaLineaSiNoExiste(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, 10)
	f.approve(t, req, 8)
	_, err := f.uc.MarkDelivered(ctx, f.admin, req.ID, "")
	require.NoError(t, err)

	// La línea de la sucursal desaparece antes de la recepción.
	line, err := f.store.BranchProducts().Get(ctx, f.branch.ID, f.prod.ID)
	require.NoError(t, err)
	require.NotNil(t, line)
	require.NoError(t, f.store.BranchProducts().Delete(ctx, line.ID))

	done, err := f.uc.Receive(ctx, f.agent, req.ID, dto.ReceiveStockRequestRequest{
		Items: []dto.ReceiptLine{{ItemID: req.Items[0].ID, ReceivedQuantity: 8}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StockRequestCompleted, done.Status)

	created, err := f.store.BranchProducts().Get(ctx, f.branch.ID, f.prod.ID)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 8, created.Quantity)
	assert.Equal(t, 12, f.store.AdminStock(f.prod.ID))
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	extra := f.store.SeedProduct("Boquilla", decimal.NewFromInt(3), 50)
	f.store.SeedLine(f.branch.ID, extra.ID, 0)
	req := f.create(t, 2)

	note := "urgente"
	out, err := f.uc.Update(ctx, f.agent, req.ID, dto.UpdateStockRequestRequest{
		Items: []dto.StockRequestItemInput{
			{ID: req.Items[0].ID, ProductID: f.prod.ID, RequestedQuantity: 6},
			{ProductID: extra.ID, RequestedQuantity: 1},
		},
		Note: &note,
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "urgente", out.Note)

	// Solo el creador.
	_, err = f.uc.Update(ctx, f.other, req.ID, dto.UpdateStockRequestRequest{
		Items: []dto.StockRequestItemInput{{ProductID: f.prod.ID, RequestedQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Omitir un ítem lo elimina.
	out, err = f.uc.Update(ctx, f.agent, req.ID, dto.UpdateStockRequestRequest{
		Items: []dto.StockRequestItemInput{{ID: req.Items[0].ID, ProductID: f.prod.ID, RequestedQuantity: 6}},
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 6, out.Items[0].RequestedQuantity)

	got, err := f.uc.Get(ctx, f.agent, req.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestUpdate_NoPendiente(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, 2)
	f.approve(t, req, 2)

	_, err := f.uc.Update(context.Background(), f.agent, req.ID, dto.UpdateStockRequestRequest{
		Items: []dto.StockRequestItemInput{{ID: req.Items[0].ID, ProductID: f.prod.ID, RequestedQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	approved := f.create(t, 2)
	f.approve(t, approved, 1)
	assert.ErrorIs(t, f.uc.Delete(ctx, f.agent, approved.ID), domain.ErrInvalidState)

	delivered := f.create(t, 1)
	f.approve(t, delivered, 1)
	_, err := f.uc.MarkDelivered(ctx, f.admin, delivered.ID, "")
	require.NoError(t, err)
	assert.ErrorIs(t, f.uc.Delete(ctx, f.agent, delivered.ID), domain.ErrInvalidState)

	_, err = f.uc.Receive(ctx, f.agent, delivered.ID, dto.ReceiveStockRequestRequest{
		Items: []dto.ReceiptLine{{ItemID: delivered.Items[0].ID, ReceivedQuantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(ctx, f.agent, delivered.ID), "COMPLETED se puede borrar")
	assert.Equal(t, 6, f.store.LineQuantity(f.branch.ID, f.prod.ID), "borrar no revierte el stock recibido")

	rejected := f.create(t, 1)
	_, err = f.uc.Reject(ctx, f.admin, rejected.ID, "")
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(ctx, f.agent, rejected.ID))

	pending := f.create(t, 1)
	assert.ErrorIs(t, f.uc.Delete(ctx, f.other, pending.ID), domain.ErrUnauthorized)
	require.NoError(t, f.uc.Delete(ctx, f.admin, pending.ID))

	_, err = f.uc.Get(ctx, f.admin, pending.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, 1)
	second := f.create(t, 2)
	_, err := f.uc.Reject(ctx, f.admin, second.ID, "no")
	require.NoError(t, err)

	all, err := f.uc.ListAll(ctx, f.admin, repository.StockRequestFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := f.uc.ListAll(ctx, f.admin, repository.StockRequestFilter{Status: entity.StockRequestPending})
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = f.uc.ListAll(ctx, f.admin, repository.StockRequestFilter{Status: "OTRO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	mine, err := f.uc.ListForAgent(ctx, f.agent, "")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := f.uc.ListForAgent(ctx, f.other, "")
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = f.uc.Get(ctx, f.other, second.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
