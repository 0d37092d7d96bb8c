package inventory

import (
	"context"
	"fmt"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

// LedgerUseCase expone las operaciones administrativas del libro de stock, cada una en su propia transacción.
type LedgerUseCase struct {
	txRunner     TxRunner
	ledger       *Ledger
	branchRepo   repository.BranchRepository
	productRepo  repository.ProductRepository
	lineRepo     repository.BranchProductRepository
	movementRepo repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	ledger *Ledger,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	lineRepo repository.BranchProductRepository,
	movementRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		branchRepo:   branchRepo,
		productRepo:  productRepo,
		lineRepo:     lineRepo,
		movementRepo: movementRepo,
	}
}

// AssignToBranch crea la línea del producto en la sucursal con qty unidades tomadas del central.
// ErrAlreadyExists si ya estaba asignado; ErrInsufficientStock si el central no alcanza.
func (uc *LedgerUseCase) AssignToBranch(ctx context.Context, actor policy.Actor, in dto.BranchStockRequest) (*dto.BranchProductResponse, error) {
	if err := policy.Check(actor, policy.ManageBranchStock); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if err := uc.requireBranch(ctx, in.BranchID); err != nil {
		return nil, err
	}
	var out *entity.BranchProduct
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		locked, err := uc.ledger.LockProducts(ctx, repos, []string{in.ProductID})
		if err != nil {
			return err
		}
		product = locked[in.ProductID]
		existing, err := repos.BranchProducts.GetForUpdate(ctx, in.BranchID, in.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("producto %s ya asignado a la sucursal: %w", in.ProductID, domain.ErrAlreadyExists)
		}
		out, err = uc.ledger.TransferInTx(ctx, repos, Transfer{
			Product:    product,
			BranchID:   in.BranchID,
			Quantity:   in.Quantity,
			Kind:       entity.MovementAssign,
			ActorID:    actor.UserID,
			CreateLine: true,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	out.Product = product
	return ToBranchProductResponse(out), nil
}

// TopUpBranch suma qty unidades del central a una línea ya existente.
func (uc *LedgerUseCase) TopUpBranch(ctx context.Context, actor policy.Actor, in dto.BranchStockRequest) (*dto.BranchProductResponse, error) {
	if err := policy.Check(actor, policy.ManageBranchStock); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var out *entity.BranchProduct
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		locked, err := uc.ledger.LockProducts(ctx, repos, []string{in.ProductID})
		if err != nil {
			return err
		}
		product = locked[in.ProductID]
		out, err = uc.ledger.TransferInTx(ctx, repos, Transfer{
			Product:  product,
			BranchID: in.BranchID,
			Quantity: in.Quantity,
			Kind:     entity.MovementTopUp,
			ActorID:  actor.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	out.Product = product
	return ToBranchProductResponse(out), nil
}

// RemoveFromBranch retira el producto de la sucursal y devuelve su saldo al central.
func (uc *LedgerUseCase) RemoveFromBranch(ctx context.Context, actor policy.Actor, branchID, productID string) (int, error) {
	if err := policy.Check(actor, policy.ManageBranchStock); err != nil {
		return 0, err
	}
	var returned int
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		locked, err := uc.ledger.LockProducts(ctx, repos, []string{productID})
		if err != nil {
			return err
		}
		returned, err = uc.ledger.ReturnToCentralInTx(ctx, repos, locked[productID], branchID, actor.UserID)
		return err
	})
	return returned, err
}

// Restock ingresa qty unidades al depósito central.
func (uc *LedgerUseCase) Restock(ctx context.Context, actor policy.Actor, productID string, qty int) (int, error) {
	if err := policy.Check(actor, policy.ManageProducts); err != nil {
		return 0, err
	}
	var stock int
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		locked, err := uc.ledger.LockProducts(ctx, repos, []string{productID})
		if err != nil {
			return err
		}
		p := locked[productID]
		if err := uc.ledger.RestockCentralInTx(ctx, repos, p, qty, actor.UserID); err != nil {
			return err
		}
		stock = p.AdminStock
		return nil
	})
	return stock, err
}

// ListAssigned líneas de stock de la sucursal (incluye las de saldo cero).
func (uc *LedgerUseCase) ListAssigned(ctx context.Context, branchID string) ([]dto.BranchProductResponse, error) {
	if err := uc.requireBranch(ctx, branchID); err != nil {
		return nil, err
	}
	lines, err := uc.lineRepo.ListByBranch(ctx, branchID, false)
	if err != nil {
		return nil, err
	}
	return toBranchProductResponses(lines), nil
}

// ListUnassigned productos del catálogo que la sucursal todavía no tiene.
func (uc *LedgerUseCase) ListUnassigned(ctx context.Context, branchID string) ([]dto.ProductResponse, error) {
	if err := uc.requireBranch(ctx, branchID); err != nil {
		return nil, err
	}
	list, err := uc.productRepo.ListNotInBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *dto.ToProductResponse(p))
	}
	return out, nil
}

// ListAgentStock productos con saldo disponible en la sucursal del agente.
func (uc *LedgerUseCase) ListAgentStock(ctx context.Context, actor policy.Actor) ([]dto.BranchProductResponse, error) {
	if err := policy.Check(actor, policy.ViewBranchStock); err != nil {
		return nil, err
	}
	branch, err := uc.branchRepo.GetByAgentID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("el agente no tiene sucursal asignada: %w", domain.ErrNotFound)
	}
	lines, err := uc.lineRepo.ListByBranch(ctx, branch.ID, true)
	if err != nil {
		return nil, err
	}
	return toBranchProductResponses(lines), nil
}

// ListMovements consulta el libro de stock.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, actor policy.Actor, filter repository.StockMovementFilter, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	if err := policy.Check(actor, policy.ManageBranchStock); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.movementRepo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:          m.ID,
			ReferenceID: m.ReferenceID,
			ProductID:   m.ProductID,
			BranchID:    m.BranchID,
			Kind:        m.Kind,
			AdminDelta:  m.AdminDelta,
			BranchDelta: m.BranchDelta,
			CreatedBy:   m.CreatedBy,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

func (uc *LedgerUseCase) requireBranch(ctx context.Context, branchID string) error {
	b, err := uc.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("sucursal %s: %w", branchID, domain.ErrNotFound)
	}
	return nil
}

// ToBranchProductResponse mapea una línea de stock a su DTO.
func ToBranchProductResponse(bp *entity.BranchProduct) *dto.BranchProductResponse {
	out := &dto.BranchProductResponse{
		ID:        bp.ID,
		BranchID:  bp.BranchID,
		ProductID: bp.ProductID,
		Quantity:  bp.Quantity,
		UpdatedAt: bp.UpdatedAt,
	}
	if bp.Product != nil {
		out.Product = dto.ToProductResponse(bp.Product)
	}
	return out
}

func toBranchProductResponses(lines []*entity.BranchProduct) []dto.BranchProductResponse {
	out := make([]dto.BranchProductResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, *ToBranchProductResponse(l))
	}
	return out
}
