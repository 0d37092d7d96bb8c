package orders_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonbass/retail-api/internal/application/apptest"
	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/inventory"
	"github.com/masonbass/retail-api/internal/application/orders"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
)

type fakeReceipts struct {
	order *entity.Order
}

func (f *fakeReceipts) GenerateReceiptPDF(_ context.Context, o *entity.Order, _ *entity.Branch, _ *entity.User) ([]byte, error) {
	f.order = o
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	store    *apptest.Store
	cart     *orders.CartUseCase
	checkout *orders.CheckoutUseCase
	orders   *orders.OrderUseCase
	receipts *fakeReceipts
	admin    policy.Actor
	agent    policy.Actor
	buyer    policy.Actor
	branch   *entity.Branch
	glue     *entity.Product
	nozzle   *entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := apptest.NewStore()
	admin := s.SeedUser("admin", entity.RoleAdmin)
	agent := s.SeedUser("agente", entity.RoleAgent)
	buyer := s.SeedUser("cliente", entity.RoleUser)
	branch := s.SeedBranch("Centro", agent.ID)
	glue := s.SeedProduct("Pegante", decimal.NewFromInt(10), 100)
	nozzle := s.SeedProduct("Boquilla", decimal.RequireFromString("2.50"), 100)
	s.SeedLine(branch.ID, glue.ID, 5)
	s.SeedLine(branch.ID, nozzle.ID, 1)

	runner := apptest.NewTxRunner(s)
	ledger := inventory.NewLedger(nil)
	receipts := &fakeReceipts{}
	return &fixture{
		store:    s,
		cart:     orders.NewCartUseCase(s.Cart(), s.Products(), s.Branches()),
		checkout: orders.NewCheckoutUseCase(runner, ledger, s.Branches(), s.Users(), s.Orders(), receipts, nil, nil, nil),
		orders:   orders.NewOrderUseCase(runner, ledger, s.Orders(), s.Branches(), nil, nil, nil),
		receipts: receipts,
		admin:    policy.Actor{UserID: admin.ID, Role: entity.RoleAdmin},
		agent:    policy.Actor{UserID: agent.ID, Role: entity.RoleAgent},
		buyer:    policy.Actor{UserID: buyer.ID, Role: entity.RoleUser},
		branch:   branch,
		glue:     glue,
		nozzle:   nozzle,
	}
}

func (f *fixture) addToCart(t *testing.T, productID string, qty int) {
	t.Helper()
	_, err := f.cart.Add(context.Background(), f.buyer.UserID, dto.AddCartItemRequest{
		ProductID: productID, BranchID: f.branch.ID, Quantity: qty,
	})
	require.NoError(t, err)
}

func (f *fixture) placeOrder(t *testing.T) *dto.OrderResponse {
	t.Helper()
	f.addToCart(t, f.glue.ID, 2)
	order, err := f.checkout.Checkout(context.Background(), f.buyer, dto.CheckoutRequest{BranchID: f.branch.ID, Address: "Calle 1"})
	require.NoError(t, err)
	return order
}

func TestCart_SumaLineaExistente(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, f.glue.ID, 1)
	f.addToCart(t, f.glue.ID, 2)

	items, err := f.cart.List(context.Background(), f.buyer.UserID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	// Las líneas ajenas no existen para otro usuario.
	err = f.cart.Remove(context.Background(), f.admin.UserID, items[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.cart.ChangeQuantity(context.Background(), f.buyer.UserID, items[0].ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCheckout_UsaPrecioVigente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addToCart(t, f.glue.ID, 2)
	f.addToCart(t, f.nozzle.ID, 1)

	// Cambio de precio después de agregar al carrito.
	repriced := *f.glue
	repriced.Price = decimal.NewFromInt(12)
	require.NoError(t, f.store.Products().Update(ctx, &repriced))

	order, err := f.checkout.Checkout(ctx, f.buyer, dto.CheckoutRequest{BranchID: f.branch.ID, Address: "Calle 1"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, entity.ChannelOnline, order.Channel)
	assert.True(t, decimal.RequireFromString("26.50").Equal(order.NetAmount), order.NetAmount.String())
	require.Len(t, order.Events, 1)
	assert.Equal(t, entity.OrderPending, order.Events[0].Status)

	assert.Equal(t, 3, f.store.LineQuantity(f.branch.ID, f.glue.ID))
	assert.Equal(t, 0, f.store.LineQuantity(f.branch.ID, f.nozzle.ID))
	assert.Equal(t, 100, f.store.AdminStock(f.glue.ID))
	assert.Zero(t, f.store.CartSize(f.buyer.UserID))
}

func TestCheckout_CarritoVacio(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkout.Checkout(context.Background(), f.buyer, dto.CheckoutRequest{BranchID: f.branch.ID})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckout_SinStockNoDejaEscriturasParciales(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, f.glue.ID, 2)
	f.addToCart(t, f.nozzle.ID, 4)

	_, err := f.checkout.Checkout(context.Background(), f.buyer, dto.CheckoutRequest{BranchID: f.branch.ID})
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	assert.Equal(t, 5, f.store.LineQuantity(f.branch.ID, f.glue.ID))
	assert.Equal(t, 1, f.store.LineQuantity(f.branch.ID, f.nozzle.ID))
	assert.Equal(t, 2, f.store.CartSize(f.buyer.UserID))
	assert.Empty(t, f.store.MovementLog())

	mine, err := f.orders.ListMine(context.Background(), f.buyer, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestCreateAgentOrder_ClienteNuevo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.checkout.CreateAgentOrder(ctx, f.agent, dto.AgentOrderRequest{
		Customer:      dto.AgentOrderCustomer{Name: "Ana", Email: "Ana@Example.com"},
		Items:         []dto.AgentOrderLine{{ProductID: f.glue.ID, Quantity: 3}},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPaymentDone, order.Status)
	assert.Equal(t, entity.ChannelInStore, order.Channel)
	assert.True(t, decimal.NewFromInt(30).Equal(order.AmountPaid))
	assert.Equal(t, 2, f.store.LineQuantity(f.branch.ID, f.glue.ID))

	customer, err := f.store.Users().GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, entity.RoleUser, customer.Role)
	assert.NotEmpty(t, customer.PasswordHash)
	assert.Equal(t, customer.ID, order.UserID)

	pdf, err := f.checkout.Receipt(ctx, f.agent, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, order.ID, f.receipts.order.ID)
}

func TestCreateAgentOrder_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	line := []dto.AgentOrderLine{{ProductID: f.glue.ID, Quantity: 1}}

	_, err := f.checkout.CreateAgentOrder(ctx, f.buyer, dto.AgentOrderRequest{
		Customer: dto.AgentOrderCustomer{ID: f.buyer.UserID}, Items: line, PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.checkout.CreateAgentOrder(ctx, f.agent, dto.AgentOrderRequest{
		Customer: dto.AgentOrderCustomer{ID: f.buyer.UserID}, Items: line, PaymentMethod: "CHEQUE",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.checkout.CreateAgentOrder(ctx, f.agent, dto.AgentOrderRequest{
		Items: line, PaymentMethod: entity.PaymentCard,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.checkout.CreateAgentOrder(ctx, f.agent, dto.AgentOrderRequest{
		Customer:      dto.AgentOrderCustomer{ID: f.buyer.UserID},
		Items:         []dto.AgentOrderLine{{ProductID: f.nozzle.ID, Quantity: 2}},
		PaymentMethod: entity.PaymentCard,
	})
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestChangeStatus_TablaDeTransiciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t)

	_, err := f.orders.ChangeStatus(ctx, f.admin, order.ID, entity.OrderDelivered)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.orders.ChangeStatus(ctx, f.admin, order.ID, "ENVIADO")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.orders.ChangeStatus(ctx, f.buyer, order.ID, entity.OrderAccepted)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	for _, status := range []string{entity.OrderAccepted, entity.OrderOutForDelivery, entity.OrderDelivered} {
		_, err = f.orders.ChangeStatus(ctx, f.admin, order.ID, status)
		require.NoError(t, err, status)
	}

	got, err := f.orders.Get(ctx, f.buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, got.Status)
	assert.Len(t, got.Events, 4)

	_, err = f.orders.Cancel(ctx, f.buyer, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_DevuelveStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t)
	require.Equal(t, 3, f.store.LineQuantity(f.branch.ID, f.glue.ID))

	_, err := f.orders.Cancel(ctx, f.agent, order.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	out, err := f.orders.Cancel(ctx, f.buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, out.Status)
	assert.Equal(t, 5, f.store.LineQuantity(f.branch.ID, f.glue.ID))

	movs := f.store.MovementLog()
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementSale, movs[0].Kind)
	assert.Equal(t, entity.MovementSaleReturn, movs[1].Kind)
	assert.Equal(t, order.ID, movs[1].ReferenceID)

	_, err = f.orders.Cancel(ctx, f.buyer, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestListados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t)

	all, err := f.orders.ListAll(ctx, f.admin, entity.OrderPending, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, order.ID, all[0].ID)

	_, err = f.orders.ListAll(ctx, f.buyer, "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	byBranch, err := f.orders.ListByBranch(ctx, f.agent, f.branch.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, byBranch, 1)

	byUser, err := f.orders.ListByUser(ctx, f.admin, f.buyer.UserID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	got, err := f.orders.Get(ctx, f.agent, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, orders.CanTransition(entity.OrderPending, entity.OrderAccepted))
	assert.True(t, orders.CanTransition(entity.OrderAccepted, entity.OrderCancelled))
	assert.True(t, orders.CanTransition(entity.OrderPaymentDone, entity.OrderDelivered))
	assert.False(t, orders.CanTransition(entity.OrderOutForDelivery, entity.OrderCancelled))
	assert.False(t, orders.CanTransition(entity.OrderDelivered, entity.OrderPending))
	assert.False(t, orders.CanTransition(entity.OrderCancelled, entity.OrderAccepted))
}
