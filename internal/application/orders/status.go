package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

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

// OrderUseCase ciclo de vida y consultas de órdenes.
type OrderUseCase struct {
	txRunner   inventory.TxRunner
	ledger     *inventory.Ledger
	orderRepo  repository.OrderRepository
	branchRepo repository.BranchRepository
	publisher  notify.Publisher
	metrics    *metrics.WorkflowMetrics
	log        *logger.Logger
	now        func() time.Time
}

// NewOrderUseCase construye el caso de uso. publisher, m y log pueden ser nil.
func NewOrderUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	orderRepo repository.OrderRepository,
	branchRepo repository.BranchRepository,
	publisher notify.Publisher,
	m *metrics.WorkflowMetrics,
	log *logger.Logger,
) *OrderUseCase {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{
		txRunner:   txRunner,
		ledger:     ledger,
		orderRepo:  orderRepo,
		branchRepo: branchRepo,
		publisher:  publisher,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

// ChangeStatus mueve la orden a status según la tabla de transiciones y agrega el evento.
// Pasar a CANCELLED devuelve las unidades a la sucursal.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, actor policy.Actor, orderID, status string) (*dto.OrderResponse, error) {
	if err := policy.Check(actor, policy.ChangeOrderStatus); err != nil {
		return nil, err
	}
	if !ValidStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidInput)
	}
	return uc.transition(ctx, actor, orderID, status, nil)
}

// Cancel cancela la orden a pedido de su dueño o de un admin.
func (uc *OrderUseCase) Cancel(ctx context.Context, actor policy.Actor, orderID string) (*dto.OrderResponse, error) {
	if err := policy.Check(actor, policy.CancelOrder); err != nil {
		return nil, err
	}
	return uc.transition(ctx, actor, orderID, entity.OrderCancelled, func(o *entity.Order) error {
		return policy.Check(actor, policy.CancelOrder, policy.AnyOf(policy.Admin(), policy.Owner(o.UserID)))
	})
}

func (uc *OrderUseCase) transition(ctx context.Context, actor policy.Actor, orderID, to string, authorize func(*entity.Order) error) (*dto.OrderResponse, error) {
	var (
		order *entity.Order
		from  string
	)
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		var err error
		order, err = repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("orden %s: %w", orderID, domain.ErrNotFound)
		}
		if authorize != nil {
			if err := authorize(order); err != nil {
				return err
			}
		}
		from = order.Status
		if !CanTransition(from, to) {
			return fmt.Errorf("orden %s: %s -> %s: %w", order.ID, from, to, domain.ErrInvalidTransition)
		}
		if returnsStock(to) {
			for _, p := range order.Products {
				if _, err := uc.ledger.AdjustBranchStockInTx(ctx, repos, order.BranchID, p.ProductID, p.Quantity,
					entity.MovementSaleReturn, order.ID, actor.UserID); err != nil {
					return err
				}
			}
		}
		now := uc.now()
		if err := repos.Orders.UpdateStatus(ctx, order.ID, to); err != nil {
			return err
		}
		ev := &entity.OrderEvent{ID: uuid.New().String(), OrderID: order.ID, Status: to, CreatedAt: now}
		if err := repos.Orders.AddEvent(ctx, ev); err != nil {
			return err
		}
		order.Status = to
		order.UpdatedAt = now
		order.Events = append(order.Events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.OrderTransition(from, to)
	uc.publisher.Publish(notify.OrderEvent(notify.EventOrderStatusChanged, order))
	uc.log.Info().Str("order_id", order.ID).Str("from", from).Str("status", to).Msg("estado de orden actualizado")
	return ToOrderResponse(order), nil
}

// Get devuelve la orden a su dueño, al agente de la sucursal o a un admin.
func (uc *OrderUseCase) Get(ctx context.Context, actor policy.Actor, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("orden %s: %w", orderID, domain.ErrNotFound)
	}
	if actor.IsAdmin() || actor.UserID == order.UserID {
		return ToOrderResponse(order), nil
	}
	branch, err := uc.branchRepo.GetByID(ctx, order.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || !branch.IsAgent(actor.UserID) {
		return nil, fmt.Errorf("orden %s: %w", orderID, domain.ErrUnauthorized)
	}
	return ToOrderResponse(order), nil
}

// ListMine órdenes del usuario autenticado.
func (uc *OrderUseCase) ListMine(ctx context.Context, actor policy.Actor, page dto.PageRequest) ([]dto.OrderResponse, error) {
	return uc.list(ctx, repository.OrderFilter{UserID: actor.UserID}, page)
}

// ListAll todas las órdenes (admin), con filtro opcional de estado.
func (uc *OrderUseCase) ListAll(ctx context.Context, actor policy.Actor, status string, page dto.PageRequest) ([]dto.OrderResponse, error) {
	if err := policy.Check(actor, policy.ViewAllOrders); err != nil {
		return nil, err
	}
	if status != "" && !ValidStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidInput)
	}
	return uc.list(ctx, repository.OrderFilter{Status: status}, page)
}

// ListByUser órdenes de un usuario (admin).
func (uc *OrderUseCase) ListByUser(ctx context.Context, actor policy.Actor, userID string, page dto.PageRequest) ([]dto.OrderResponse, error) {
	if err := policy.Check(actor, policy.ViewAllOrders); err != nil {
		return nil, err
	}
	return uc.list(ctx, repository.OrderFilter{UserID: userID}, page)
}

// ListByBranch órdenes de una sucursal (admin o su agente).
func (uc *OrderUseCase) ListByBranch(ctx context.Context, actor policy.Actor, branchID string, page dto.PageRequest) ([]dto.OrderResponse, error) {
	branch, err := uc.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("sucursal %s: %w", branchID, domain.ErrNotFound)
	}
	if !actor.IsAdmin() && !branch.IsAgent(actor.UserID) {
		return nil, fmt.Errorf("sucursal %s: %w", branchID, domain.ErrUnauthorized)
	}
	return uc.list(ctx, repository.OrderFilter{BranchID: branchID}, page)
}

func (uc *OrderUseCase) list(ctx context.Context, filter repository.OrderFilter, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	list, err := uc.orderRepo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOrderResponse(o))
	}
	return out, nil
}

// ToOrderResponse mapea una orden a su DTO.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		BranchID:      o.BranchID,
		NetAmount:     o.NetAmount,
		Address:       o.Address,
		Status:        o.Status,
		Channel:       o.Channel,
		PaymentMethod: o.PaymentMethod,
		AmountPaid:    o.AmountPaid,
		Products:      make([]dto.OrderProductResponse, 0, len(o.Products)),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, p := range o.Products {
		out.Products = append(out.Products, dto.OrderProductResponse{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			UnitPrice:   p.UnitPrice,
			Subtotal:    p.Subtotal(),
		})
	}
	for _, ev := range o.Events {
		out.Events = append(out.Events, dto.OrderEventResponse{Status: ev.Status, CreatedAt: ev.CreatedAt})
	}
	return out
}
