package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonbass/retail-api/internal/application/apptest"
	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/inventory"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

type ledgerFixture struct {
	store  *apptest.Store
	uc     *inventory.LedgerUseCase
	admin  policy.Actor
	branch *entity.Branch
	prod   *entity.Product
}

func newLedgerFixture(t *testing.T, adminStock int) *ledgerFixture {
	t.Helper()
	s := apptest.NewStore()
	admin := s.SeedUser("admin", entity.RoleAdmin)
	agent := s.SeedUser("agente", entity.RoleAgent)
	return &ledgerFixture{
		store: s,
		uc: inventory.NewLedgerUseCase(apptest.NewTxRunner(s), inventory.NewLedger(nil),
			s.Branches(), s.Products(), s.BranchProducts(), s.Movements()),
		admin:  policy.Actor{UserID: admin.ID, Role: admin.Role},
		branch: s.SeedBranch("Centro", agent.ID),
		prod:   s.SeedProduct("Pegante", decimal.NewFromInt(10), adminStock),
	}
}

func TestAssignToBranch_TransfiereDelCentral(t *testing.T) {
	f := newLedgerFixture(t, 20)

	out, err := f.uc.AssignToBranch(context.Background(), f.admin, dto.BranchStockRequest{
		BranchID: f.branch.ID, ProductID: f.prod.ID, Quantity: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, out.Quantity)
	assert.Equal(t, 12, f.store.AdminStock(f.prod.ID))
	assert.Equal(t, 8, f.store.LineQuantity(f.branch.ID, f.prod.ID))

	movs := f.store.MovementLog()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementAssign, movs[0].Kind)
	assert.Equal(t, -8, movs[0].AdminDelta)
	assert.Equal(t, 8, movs[0].BranchDelta)
}

func TestAssignToBranch_YaAsignado(t *testing.T) {
	f := newLedgerFixture(t, 20)
	f.store.SeedLine(f.branch.ID, f.prod.ID, 1)

	_, err := f.uc.AssignToBranch(context.Background(), f.admin, dto.BranchStockRequest{
		BranchID: f.branch.ID, ProductID: f.prod.ID, Quantity: 2,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Equal(t, 20, f.store.AdminStock(f.prod.ID))
}

func TestTopUpBranch_StockInsuficienteNoEscribe(t *testing.T) {
	f := newLedgerFixture(t, 3)
	f.store.SeedLine(f.branch.ID, f.prod.ID, 5)

	_, err := f.uc.TopUpBranch(context.Background(), f.admin, dto.BranchStockRequest{
		BranchID: f.branch.ID, ProductID: f.prod.ID, Quantity: 4,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.store.AdminStock(f.prod.ID))
	assert.Equal(t, 5, f.store.LineQuantity(f.branch.ID, f.prod.ID))
	assert.Empty(t, f.store.MovementLog())
}

func TestTopUpBranch_SinLinea(t *testing.T) {
	f := newLedgerFixture(t, 10)

	_, err := f.uc.TopUpBranch(context.Background(), f.admin, dto.BranchStockRequest{
		BranchID: f.branch.ID, ProductID: f.prod.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveFromBranch_DevuelveAlCentral(t *testing.T) {
	f := newLedgerFixture(t, 10)
	f.store.SeedLine(f.branch.ID, f.prod.ID, 7)

	returned, err := f.uc.RemoveFromBranch(context.Background(), f.admin, f.branch.ID, f.prod.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, returned)
	assert.Equal(t, 17, f.store.AdminStock(f.prod.ID))
	assert.Equal(t, -1, f.store.LineQuantity(f.branch.ID, f.prod.ID))
}

func TestRestock(t *testing.T) {
	f := newLedgerFixture(t, 10)

	stock, err := f.uc.Restock(context.Background(), f.admin, f.prod.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, stock)

	_, err = f.uc.Restock(context.Background(), f.admin, f.prod.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestLedger_SoloAdmin(t *testing.T) {
	f := newLedgerFixture(t, 10)
	agent := policy.Actor{UserID: *f.branch.AgentID, Role: entity.RoleAgent}

	_, err := f.uc.AssignToBranch(context.Background(), agent, dto.BranchStockRequest{
		BranchID: f.branch.ID, ProductID: f.prod.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdjustBranchStockInTx_RechazaNegativo(t *testing.T) {
	f := newLedgerFixture(t, 10)
	f.store.SeedLine(f.branch.ID, f.prod.ID, 2)
	ledger := inventory.NewLedger(nil)
	runner := apptest.NewTxRunner(f.store)

	err := runner.Run(context.Background(), func(repos inventory.TxRepos) error {
		_, err := ledger.AdjustBranchStockInTx(context.Background(), repos, f.branch.ID, f.prod.ID, -3, entity.MovementSale, "o-1", "u-1")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Equal(t, 2, f.store.LineQuantity(f.branch.ID, f.prod.ID))
}

func TestLockProducts_ProductoInexistente(t *testing.T) {
	f := newLedgerFixture(t, 10)
	runner := apptest.NewTxRunner(f.store)

	err := runner.Run(context.Background(), func(repos inventory.TxRepos) error {
		_, err := inventory.NewLedger(nil).LockProducts(context.Background(), repos, []string{f.prod.ID, "nope"})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAgentStock_SoloDisponibles(t *testing.T) {
	f := newLedgerFixture(t, 10)
	other := f.store.SeedProduct("Boquilla", decimal.NewFromInt(5), 10)
	f.store.SeedLine(f.branch.ID, f.prod.ID, 3)
	f.store.SeedLine(f.branch.ID, other.ID, 0)
	agent := policy.Actor{UserID: *f.branch.AgentID, Role: entity.RoleAgent}

	lines, err := f.uc.ListAgentStock(context.Background(), agent)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, f.prod.ID, lines[0].ProductID)

	all, err := f.uc.ListAssigned(context.Background(), f.branch.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unassigned, err := f.uc.ListUnassigned(context.Background(), f.branch.ID)
	require.NoError(t, err)
	assert.Empty(t, unassigned)
}

func TestListMovements_FiltraPorSucursal(t *testing.T) {
	f := newLedgerFixture(t, 20)
	ctx := context.Background()
	_, err := f.uc.AssignToBranch(ctx, f.admin, dto.BranchStockRequest{BranchID: f.branch.ID, ProductID: f.prod.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = f.uc.Restock(ctx, f.admin, f.prod.ID, 3)
	require.NoError(t, err)

	movs, err := f.uc.ListMovements(ctx, f.admin, repository.StockMovementFilter{BranchID: f.branch.ID}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementAssign, movs[0].Kind)

	movs, err = f.uc.ListMovements(ctx, f.admin, repository.StockMovementFilter{ProductID: f.prod.ID}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, movs, 2)
}
