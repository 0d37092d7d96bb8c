// Package stockrequest implementa el flujo de reposición de stock desde el depósito central
// hacia una sucursal: PENDING -> APPROVED|REJECTED -> DELIVERED -> COMPLETED.
// El stock solo se mueve al recibir (COMPLETED).
package stockrequest

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

const defaultRejectNote = "Solicitud rechazada por el administrador"

// WorkflowUseCase casos de uso de solicitudes de reposición. Cada operación que escribe corre en
// una sola transacción con la solicitud y los productos afectados bloqueados.
type WorkflowUseCase struct {
	txRunner    inventory.TxRunner
	ledger      *inventory.Ledger
	branchRepo  repository.BranchRepository
	requestRepo repository.StockRequestRepository
	publisher   notify.Publisher
	metrics     *metrics.WorkflowMetrics
	log         *logger.Logger
	now         func() time.Time
}

// NewWorkflowUseCase construye el caso de uso. publisher, m y log pueden ser nil.
func NewWorkflowUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	branchRepo repository.BranchRepository,
	requestRepo repository.StockRequestRepository,
	publisher notify.Publisher,
	m *metrics.WorkflowMetrics,
	log *logger.Logger,
) *WorkflowUseCase {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &WorkflowUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		branchRepo:  branchRepo,
		requestRepo: requestRepo,
		publisher:   publisher,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

// Create registra una solicitud PENDING para la sucursal del agente. Cada producto debe tener
// ya una línea de stock en esa sucursal.
func (uc *WorkflowUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateStockRequestRequest) (*dto.StockRequestResponse, error) {
	if err := policy.Check(actor, policy.CreateStockRequest); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("la solicitud no tiene ítems: %w", domain.ErrInvalidInput)
	}
	branch, err := uc.loadBranch(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(actor, policy.CreateStockRequest, policy.BranchAgent(branch)); err != nil {
		return nil, err
	}
	if err := validateItemInputs(in.Items); err != nil {
		return nil, err
	}

	now := uc.now()
	req := &entity.StockRequest{
		ID:          uuid.New().String(),
		BranchID:    branch.ID,
		CreatedByID: actor.UserID,
		Status:      entity.StockRequestPending,
		Note:        in.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, it := range in.Items {
		req.Items = append(req.Items, &entity.StockRequestItem{
			ID:                uuid.New().String(),
			StockRequestID:    req.ID,
			ProductID:         it.ProductID,
			RequestedQuantity: it.RequestedQuantity,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	err = uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		if err := requireStocked(ctx, repos, branch.ID, req.Items); err != nil {
			return err
		}
		return repos.StockRequests.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StockRequestTransition("", entity.StockRequestPending)
	uc.publisher.Publish(notify.StockRequestEvent(notify.EventStockRequestCreated, req))
	uc.log.Info().Str("request_id", req.ID).Str("branch_id", req.BranchID).Int("items", len(req.Items)).Msg("solicitud de stock creada")
	return toStockRequestResponse(req), nil
}

// Update reemplaza el conjunto de ítems de una solicitud PENDING. Solo su creador puede hacerlo.
// Ítems con ID se actualizan, sin ID se crean y los omitidos se eliminan.
func (uc *WorkflowUseCase) Update(ctx context.Context, actor policy.Actor, requestID string, in dto.UpdateStockRequestRequest) (*dto.StockRequestResponse, error) {
	if err := policy.Check(actor, policy.UpdateStockRequest); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("la solicitud no tiene ítems: %w", domain.ErrInvalidInput)
	}
	if err := validateItemInputs(in.Items); err != nil {
		return nil, err
	}

	var req *entity.StockRequest
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		var err error
		req, err = lockRequest(ctx, repos, requestID)
		if err != nil {
			return err
		}
		if err := policy.Check(actor, policy.UpdateStockRequest, policy.Owner(req.CreatedByID)); err != nil {
			return err
		}
		if req.Status != entity.StockRequestPending {
			return fmt.Errorf("solicitud en estado %s: %w", req.Status, domain.ErrInvalidState)
		}

		now := uc.now()
		keep := make(map[string]bool, len(in.Items))
		next := make([]*entity.StockRequestItem, 0, len(in.Items))
		for _, it := range in.Items {
			if it.ID == "" {
				next = append(next, &entity.StockRequestItem{
					ID:                uuid.New().String(),
					StockRequestID:    req.ID,
					ProductID:         it.ProductID,
					RequestedQuantity: it.RequestedQuantity,
					CreatedAt:         now,
					UpdatedAt:         now,
				})
				continue
			}
			existing := req.Item(it.ID)
			if existing == nil {
				return fmt.Errorf("ítem %s: %w", it.ID, domain.ErrInvalidReference)
			}
			keep[it.ID] = true
			existing.ProductID = it.ProductID
			existing.RequestedQuantity = it.RequestedQuantity
			existing.UpdatedAt = now
			next = append(next, existing)
		}
		if err := requireStocked(ctx, repos, req.BranchID, next); err != nil {
			return err
		}

		for _, old := range req.Items {
			if !keep[old.ID] {
				if err := repos.StockRequests.DeleteItem(ctx, old.ID); err != nil {
					return err
				}
			}
		}
		for _, it := range next {
			if keep[it.ID] {
				if err := repos.StockRequests.UpdateItem(ctx, it); err != nil {
					return err
				}
				continue
			}
			if err := repos.StockRequests.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		req.Items = next
		if in.Note != nil {
			req.Note = *in.Note
		}
		req.UpdatedAt = now
		return repos.StockRequests.UpdateHeader(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return toStockRequestResponse(req), nil
}

// Approve fija la cantidad aprobada de cada ítem y pasa la solicitud a APPROVED.
// Cada cantidad se valida contra el stock central vigente, leído con la fila del producto bloqueada;
// la aprobación no reserva stock. Ítems sin decisión quedan con aprobado = 0.
func (uc *WorkflowUseCase) Approve(ctx context.Context, actor policy.Actor, requestID string, in dto.ApproveStockRequestRequest) (*dto.StockRequestResponse, error) {
	if err := policy.Check(actor, policy.DecideStockRequest); err != nil {
		return nil, err
	}
	var req *entity.StockRequest
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		var err error
		req, err = lockRequest(ctx, repos, requestID)
		if err != nil {
			return err
		}
		if err := uc.transition(req, entity.StockRequestApproved); err != nil {
			return err
		}

		seen := make(map[string]bool, len(in.Items))
		productIDs := make([]string, 0, len(in.Items))
		for _, d := range in.Items {
			item := req.Item(d.ItemID)
			if item == nil {
				return fmt.Errorf("ítem %s: %w", d.ItemID, domain.ErrInvalidReference)
			}
			if seen[d.ItemID] {
				return fmt.Errorf("ítem %s repetido: %w", d.ItemID, domain.ErrInvalidInput)
			}
			seen[d.ItemID] = true
			if d.ApprovedQuantity < 0 || d.ApprovedQuantity > item.RequestedQuantity {
				return fmt.Errorf("ítem %s: aprobado %d, solicitado %d: %w",
					d.ItemID, d.ApprovedQuantity, item.RequestedQuantity, domain.ErrInvalidQuantity)
			}
			productIDs = append(productIDs, item.ProductID)
		}

		products, err := uc.ledger.LockProducts(ctx, repos, productIDs)
		if err != nil {
			return err
		}
		// Dos ítems del mismo producto compiten por el mismo saldo.
		committed := make(map[string]int, len(products))
		now := uc.now()
		for _, d := range in.Items {
			item := req.Item(d.ItemID)
			p := products[item.ProductID]
			if committed[p.ID]+d.ApprovedQuantity > p.AdminStock {
				return fmt.Errorf("producto %s: disponible %d, aprobado %d: %w",
					p.ID, p.AdminStock-committed[p.ID], d.ApprovedQuantity, domain.ErrInsufficientStock)
			}
			committed[p.ID] += d.ApprovedQuantity
			item.ApprovedQuantity = d.ApprovedQuantity
			item.UpdatedAt = now
			if err := repos.StockRequests.UpdateItem(ctx, item); err != nil {
				return err
			}
		}

		approvedBy := actor.UserID
		req.ApprovedByID = &approvedBy
		if in.Note != "" {
			req.Note = in.Note
		}
		req.UpdatedAt = now
		return repos.StockRequests.UpdateHeader(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	uc.afterTransition(req, entity.StockRequestPending, notify.EventStockRequestApproved)
	return toStockRequestResponse(req), nil
}

// Reject pasa una solicitud PENDING a REJECTED sin mover stock.
func (uc *WorkflowUseCase) Reject(ctx context.Context, actor policy.Actor, requestID, note string) (*dto.StockRequestResponse, error) {
	if err := policy.Check(actor, policy.DecideStockRequest); err != nil {
		return nil, err
	}
	if note == "" {
		note = defaultRejectNote
	}
	req, err := uc.simpleTransition(ctx, requestID, entity.StockRequestRejected, func(req *entity.StockRequest) {
		rejectedBy := actor.UserID
		req.ApprovedByID = &rejectedBy
		req.Note = note
	})
	if err != nil {
		return nil, err
	}
	uc.afterTransition(req, entity.StockRequestPending, notify.EventStockRequestRejected)
	return toStockRequestResponse(req), nil
}

// MarkDelivered marca el despacho físico (APPROVED -> DELIVERED) sin mover stock.
func (uc *WorkflowUseCase) MarkDelivered(ctx context.Context, actor policy.Actor, requestID, note string) (*dto.StockRequestResponse, error) {
	if err := policy.Check(actor, policy.DeliverStockRequest); err != nil {
		return nil, err
	}
	req, err := uc.simpleTransition(ctx, requestID, entity.StockRequestDelivered, func(req *entity.StockRequest) {
		if note != "" {
			req.Note = note
		}
	})
	if err != nil {
		return nil, err
	}
	uc.afterTransition(req, entity.StockRequestApproved, notify.EventStockRequestDelivered)
	return toStockRequestResponse(req), nil
}

// Receive registra lo recibido por la sucursal y mueve el stock: por cada ítem descuenta
// receivedQuantity del central y lo acredita en la línea de la sucursal (creándola si hace falta).
// Termina en COMPLETED.
func (uc *WorkflowUseCase) Receive(ctx context.Context, actor policy.Actor, requestID string, in dto.ReceiveStockRequestRequest) (*dto.StockRequestResponse, error) {
	if err := policy.Check(actor, policy.ReceiveStockRequest); err != nil {
		return nil, err
	}
	var req *entity.StockRequest
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		var err error
		req, err = lockRequest(ctx, repos, requestID)
		if err != nil {
			return err
		}
		branch, err := uc.loadBranch(ctx, req.BranchID)
		if err != nil {
			return err
		}
		if err := policy.Check(actor, policy.ReceiveStockRequest, policy.BranchAgent(branch)); err != nil {
			return err
		}
		if err := uc.transition(req, entity.StockRequestCompleted); err != nil {
			return err
		}

		seen := make(map[string]bool, len(in.Items))
		productIDs := make([]string, 0, len(in.Items))
		for _, line := range in.Items {
			item := req.Item(line.ItemID)
			if item == nil {
				return fmt.Errorf("ítem %s: %w", line.ItemID, domain.ErrInvalidReference)
			}
			if seen[line.ItemID] {
				return fmt.Errorf("ítem %s repetido: %w", line.ItemID, domain.ErrInvalidInput)
			}
			seen[line.ItemID] = true
			if line.ReceivedQuantity < 0 || line.ReceivedQuantity > item.ApprovedQuantity {
				return fmt.Errorf("ítem %s: recibido %d, aprobado %d: %w",
					line.ItemID, line.ReceivedQuantity, item.ApprovedQuantity, domain.ErrInvalidQuantity)
			}
			productIDs = append(productIDs, item.ProductID)
		}

		products, err := uc.ledger.LockProducts(ctx, repos, productIDs)
		if err != nil {
			return err
		}
		now := uc.now()
		for _, line := range in.Items {
			item := req.Item(line.ItemID)
			if _, err := uc.ledger.TransferInTx(ctx, repos, inventory.Transfer{
				Product:     products[item.ProductID],
				BranchID:    req.BranchID,
				Quantity:    line.ReceivedQuantity,
				Kind:        entity.MovementReceipt,
				ReferenceID: req.ID,
				ActorID:     actor.UserID,
				CreateLine:  true,
			}); err != nil {
				return err
			}
			item.ReceivedQuantity = line.ReceivedQuantity
			item.UpdatedAt = now
			if err := repos.StockRequests.UpdateItem(ctx, item); err != nil {
				return err
			}
		}
		if in.Note != "" {
			req.Note = in.Note
		}
		req.UpdatedAt = now
		return repos.StockRequests.UpdateHeader(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	uc.afterTransition(req, entity.StockRequestDelivered, notify.EventStockRequestCompleted)
	return toStockRequestResponse(req), nil
}

// Delete elimina la solicitud (creador o admin) si está en PENDING, COMPLETED o REJECTED.
func (uc *WorkflowUseCase) Delete(ctx context.Context, actor policy.Actor, requestID string) error {
	if err := policy.Check(actor, policy.DeleteStockRequest); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		req, err := lockRequest(ctx, repos, requestID)
		if err != nil {
			return err
		}
		if err := policy.Check(actor, policy.DeleteStockRequest, policy.AnyOf(policy.Admin(), policy.Owner(req.CreatedByID))); err != nil {
			return err
		}
		if !IsDeletable(req.Status) {
			return fmt.Errorf("solicitud en estado %s: %w", req.Status, domain.ErrInvalidState)
		}
		return repos.StockRequests.Delete(ctx, req.ID)
	})
}

// Get devuelve la solicitud a un admin o al agente de la sucursal.
func (uc *WorkflowUseCase) Get(ctx context.Context, actor policy.Actor, requestID string) (*dto.StockRequestResponse, error) {
	if err := policy.Check(actor, policy.ViewStockRequest); err != nil {
		return nil, err
	}
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("solicitud %s: %w", requestID, domain.ErrNotFound)
	}
	if !actor.IsAdmin() {
		branch, err := uc.loadBranch(ctx, req.BranchID)
		if err != nil {
			return nil, err
		}
		if err := policy.Check(actor, policy.ViewStockRequest, policy.BranchAgent(branch)); err != nil {
			return nil, err
		}
	}
	return toStockRequestResponse(req), nil
}

// ListAll lista todas las solicitudes (admin), con filtros opcionales de estado y sucursal.
func (uc *WorkflowUseCase) ListAll(ctx context.Context, actor policy.Actor, filter repository.StockRequestFilter) ([]dto.StockRequestResponse, error) {
	if err := policy.Check(actor, policy.ListStockRequests); err != nil {
		return nil, err
	}
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, fmt.Errorf("estado %q: %w", filter.Status, domain.ErrInvalidInput)
	}
	list, err := uc.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toStockRequestResponses(list), nil
}

// ListForAgent lista las solicitudes de la sucursal del agente.
func (uc *WorkflowUseCase) ListForAgent(ctx context.Context, actor policy.Actor, status string) ([]dto.StockRequestResponse, error) {
	if err := policy.Check(actor, policy.ListBranchRequests); err != nil {
		return nil, err
	}
	if status != "" && !ValidStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidInput)
	}
	branch, err := uc.branchRepo.GetByAgentID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("el agente no tiene sucursal asignada: %w", domain.ErrNotFound)
	}
	list, err := uc.requestRepo.List(ctx, repository.StockRequestFilter{Status: status, BranchID: branch.ID})
	if err != nil {
		return nil, err
	}
	return toStockRequestResponses(list), nil
}

// simpleTransition cambia de estado sin tocar ítems ni stock.
func (uc *WorkflowUseCase) simpleTransition(ctx context.Context, requestID, to string, mutate func(*entity.StockRequest)) (*entity.StockRequest, error) {
	var req *entity.StockRequest
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		var err error
		req, err = lockRequest(ctx, repos, requestID)
		if err != nil {
			return err
		}
		if err := uc.transition(req, to); err != nil {
			return err
		}
		mutate(req)
		req.UpdatedAt = uc.now()
		return repos.StockRequests.UpdateHeader(ctx, req)
	})
	return req, err
}

func (uc *WorkflowUseCase) transition(req *entity.StockRequest, to string) error {
	if !CanTransition(req.Status, to) {
		return fmt.Errorf("solicitud %s: %s -> %s: %w", req.ID, req.Status, to, domain.ErrInvalidState)
	}
	req.Status = to
	return nil
}

func (uc *WorkflowUseCase) afterTransition(req *entity.StockRequest, from, eventType string) {
	uc.metrics.StockRequestTransition(from, req.Status)
	uc.publisher.Publish(notify.StockRequestEvent(eventType, req))
	uc.log.Info().Str("request_id", req.ID).Str("branch_id", req.BranchID).
		Str("from", from).Str("status", req.Status).Msg("solicitud de stock actualizada")
}

func (uc *WorkflowUseCase) loadBranch(ctx context.Context, branchID string) (*entity.Branch, error) {
	branch, err := uc.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("sucursal %s: %w", branchID, domain.ErrNotFound)
	}
	return branch, nil
}

func lockRequest(ctx context.Context, repos inventory.TxRepos, requestID string) (*entity.StockRequest, error) {
	req, err := repos.StockRequests.GetForUpdate(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("solicitud %s: %w", requestID, domain.ErrNotFound)
	}
	return req, nil
}

// requireStocked exige que cada producto tenga línea de stock en la sucursal.
func requireStocked(ctx context.Context, repos inventory.TxRepos, branchID string, items []*entity.StockRequestItem) error {
	for _, it := range items {
		line, err := repos.BranchProducts.Get(ctx, branchID, it.ProductID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("producto %s no asignado a la sucursal %s: %w", it.ProductID, branchID, domain.ErrNotFound)
		}
	}
	return nil
}

func validateItemInputs(items []dto.StockRequestItemInput) error {
	products := make(map[string]bool, len(items))
	ids := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			return fmt.Errorf("productId vacío: %w", domain.ErrInvalidInput)
		}
		if it.RequestedQuantity <= 0 {
			return fmt.Errorf("producto %s: cantidad %d: %w", it.ProductID, it.RequestedQuantity, domain.ErrInvalidQuantity)
		}
		if products[it.ProductID] {
			return fmt.Errorf("producto %s repetido: %w", it.ProductID, domain.ErrInvalidInput)
		}
		products[it.ProductID] = true
		if it.ID != "" {
			if ids[it.ID] {
				return fmt.Errorf("ítem %s repetido: %w", it.ID, domain.ErrInvalidInput)
			}
			ids[it.ID] = true
		}
	}
	return nil
}

func toStockRequestResponse(req *entity.StockRequest) *dto.StockRequestResponse {
	out := &dto.StockRequestResponse{
		ID:           req.ID,
		BranchID:     req.BranchID,
		CreatedByID:  req.CreatedByID,
		Status:       req.Status,
		Note:         req.Note,
		ApprovedByID: req.ApprovedByID,
		Items:        make([]dto.StockRequestItemResponse, 0, len(req.Items)),
		CreatedAt:    req.CreatedAt,
		UpdatedAt:    req.UpdatedAt,
	}
	for _, it := range req.Items {
		out.Items = append(out.Items, dto.StockRequestItemResponse{
			ID:                it.ID,
			ProductID:         it.ProductID,
			RequestedQuantity: it.RequestedQuantity,
			ApprovedQuantity:  it.ApprovedQuantity,
			ReceivedQuantity:  it.ReceivedQuantity,
		})
	}
	return out
}

func toStockRequestResponses(list []*entity.StockRequest) []dto.StockRequestResponse {
	out := make([]dto.StockRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toStockRequestResponse(r))
	}
	return out
}
