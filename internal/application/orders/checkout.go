package orders

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/inventory"
	"github.com/masonbass/retail-api/internal/application/notify"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
	"github.com/masonbass/retail-api/pkg/logger"
	"github.com/masonbass/retail-api/pkg/metrics"
)

// CheckoutUseCase convierte carritos en órdenes y registra ventas en tienda.
type CheckoutUseCase struct {
	txRunner   inventory.TxRunner
	ledger     *inventory.Ledger
	branchRepo repository.BranchRepository
	userRepo   repository.UserRepository
	orderRepo  repository.OrderRepository
	receipts   ReceiptPDFGenerator
	publisher  notify.Publisher
	metrics    *metrics.WorkflowMetrics
	log        *logger.Logger
	now        func() time.Time
}

// NewCheckoutUseCase construye el caso de uso. receipts, publisher, m y log pueden ser nil.
func NewCheckoutUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	receipts ReceiptPDFGenerator,
	publisher notify.Publisher,
	m *metrics.WorkflowMetrics,
	log *logger.Logger,
) *CheckoutUseCase {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CheckoutUseCase{
		txRunner:   txRunner,
		ledger:     ledger,
		branchRepo: branchRepo,
		userRepo:   userRepo,
		orderRepo:  orderRepo,
		receipts:   receipts,
		publisher:  publisher,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

type saleLine struct {
	productID string
	quantity  int
}

// Checkout crea una orden PENDING con el carrito del usuario en la sucursal. El total usa los
// precios vigentes al momento del checkout. En la misma transacción descuenta el stock de la
// sucursal (rechaza con ErrOutOfStock si no alcanza) y vacía esas líneas del carrito.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, actor policy.Actor, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	branch, err := uc.loadBranch(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}

	var order *entity.Order
	err = uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		items, err := repos.Cart.ListByUser(ctx, actor.UserID, branch.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptyCart
		}
		lines := make([]saleLine, 0, len(items))
		for _, it := range items {
			lines = append(lines, saleLine{productID: it.ProductID, quantity: it.Quantity})
		}
		order = uc.newOrder(actor.UserID, branch.ID, entity.OrderPending, entity.ChannelOnline)
		order.Address = in.Address
		order.CreatedByID = actor.UserID
		if err := uc.sell(ctx, repos, order, lines, actor.UserID); err != nil {
			return err
		}
		return repos.Cart.DeleteByUserAndBranch(ctx, actor.UserID, branch.ID)
	})
	if err != nil {
		return nil, err
	}
	uc.placed(order)
	return ToOrderResponse(order), nil
}

// CreateAgentOrder registra una venta en la sucursal del agente: orden PAYMENT_DONE, canal IN_STORE.
// El cliente se identifica por ID o por email; si el email no existe se crea como USER con una
// contraseña aleatoria.
func (uc *CheckoutUseCase) CreateAgentOrder(ctx context.Context, actor policy.Actor, in dto.AgentOrderRequest) (*dto.OrderResponse, error) {
	if err := policy.Check(actor, policy.CreateAgentOrder); err != nil {
		return nil, err
	}
	if !validPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("método de pago %q: %w", in.PaymentMethod, domain.ErrInvalidInput)
	}
	lines, err := agentLines(in.Items)
	if err != nil {
		return nil, err
	}
	branch, err := uc.branchRepo.GetByAgentID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("el agente no tiene sucursal asignada: %w", domain.ErrNotFound)
	}
	customer, err := uc.resolveCustomer(ctx, in.Customer)
	if err != nil {
		return nil, err
	}

	var order *entity.Order
	err = uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		order = uc.newOrder(customer.ID, branch.ID, entity.OrderPaymentDone, entity.ChannelInStore)
		order.Address = in.Address
		if order.Address == "" {
			order.Address = branch.Address
		}
		order.PaymentMethod = in.PaymentMethod
		order.AmountPaid = in.AmountPaid
		order.CreatedByID = actor.UserID
		return uc.sell(ctx, repos, order, lines, actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	uc.placed(order)
	return ToOrderResponse(order), nil
}

// Receipt genera el PDF de la orden para el agente de la sucursal o un admin.
func (uc *CheckoutUseCase) Receipt(ctx context.Context, actor policy.Actor, orderID string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, fmt.Errorf("generador de comprobantes no configurado")
	}
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("orden %s: %w", orderID, domain.ErrNotFound)
	}
	branch, err := uc.loadBranch(ctx, order.BranchID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(actor, policy.ViewBranchStock, policy.AnyOf(policy.Admin(), policy.BranchAgent(branch))); err != nil {
		return nil, err
	}
	customer, err := uc.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &entity.User{ID: order.UserID}
	}
	return uc.receipts.GenerateReceiptPDF(ctx, order, branch, customer)
}

func (uc *CheckoutUseCase) newOrder(userID, branchID, status, channel string) *entity.Order {
	now := uc.now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		BranchID:  branchID,
		Status:    status,
		Channel:   channel,
		CreatedAt: now,
		UpdatedAt: now,
	}
	order.Events = []*entity.OrderEvent{{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Status:    status,
		CreatedAt: now,
	}}
	return order
}

// sell arma las líneas con el precio vigente, calcula el total, persiste la orden y descuenta
// el stock de la sucursal. Las líneas se procesan ordenadas por producto.
func (uc *CheckoutUseCase) sell(ctx context.Context, repos inventory.TxRepos, order *entity.Order, lines []saleLine, actorID string) error {
	sort.Slice(lines, func(i, j int) bool { return lines[i].productID < lines[j].productID })
	total := decimal.Zero
	for _, l := range lines {
		if l.quantity <= 0 {
			return fmt.Errorf("producto %s: cantidad %d: %w", l.productID, l.quantity, domain.ErrInvalidQuantity)
		}
		p, err := repos.Products.GetByID(ctx, l.productID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("producto %s: %w", l.productID, domain.ErrNotFound)
		}
		op := &entity.OrderProduct{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    l.quantity,
			UnitPrice:   p.Price,
			CreatedAt:   order.CreatedAt,
		}
		order.Products = append(order.Products, op)
		total = total.Add(op.Subtotal())
	}
	order.NetAmount = total
	if order.Channel == entity.ChannelInStore && !order.AmountPaid.IsPositive() {
		order.AmountPaid = total
	}
	if err := repos.Orders.Create(ctx, order); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := uc.ledger.AdjustBranchStockInTx(ctx, repos, order.BranchID, l.productID, -l.quantity,
			entity.MovementSale, order.ID, actorID); err != nil {
			return err
		}
	}
	return nil
}

func (uc *CheckoutUseCase) placed(order *entity.Order) {
	uc.metrics.OrderTransition("", order.Status)
	uc.publisher.Publish(notify.OrderEvent(notify.EventOrderPlaced, order))
	uc.log.Info().Str("order_id", order.ID).Str("branch_id", order.BranchID).Str("channel", order.Channel).
		Str("total", order.NetAmount.StringFixed(2)).Msg("orden registrada")
}

func (uc *CheckoutUseCase) resolveCustomer(ctx context.Context, c dto.AgentOrderCustomer) (*entity.User, error) {
	if c.ID != "" {
		u, err := uc.userRepo.GetByID(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, domain.ErrUserNotFound
		}
		return u, nil
	}
	email := strings.ToLower(strings.TrimSpace(c.Email))
	if email == "" {
		return nil, fmt.Errorf("cliente sin id ni email: %w", domain.ErrInvalidInput)
	}
	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	hash, err := randomPasswordHash()
	if err != nil {
		return nil, err
	}
	name := c.Name
	if name == "" {
		name = email
	}
	now := uc.now()
	u = &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  c.PhoneNumber,
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Msg("cliente creado desde venta en tienda")
	return u, nil
}

func (uc *CheckoutUseCase) loadBranch(ctx context.Context, branchID string) (*entity.Branch, error) {
	branch, err := uc.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("sucursal %s: %w", branchID, domain.ErrNotFound)
	}
	return branch, nil
}

func agentLines(items []dto.AgentOrderLine) ([]saleLine, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("la venta no tiene ítems: %w", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(items))
	out := make([]saleLine, 0, len(items))
	for _, it := range items {
		if seen[it.ProductID] {
			return nil, fmt.Errorf("producto %s repetido: %w", it.ProductID, domain.ErrInvalidInput)
		}
		seen[it.ProductID] = true
		out = append(out, saleLine{productID: it.ProductID, quantity: it.Quantity})
	}
	return out, nil
}

func validPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentBankTransfer:
		return true
	}
	return false
}

func randomPasswordHash() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(buf)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
