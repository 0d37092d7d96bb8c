package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/pkg/metrics"
)

// Ledger mantiene los dos depósitos de stock: el central (Product.AdminStock) y el de cada
// sucursal (BranchProduct.Quantity). Todas sus operaciones reciben repos de una transacción
// abierta y bloquean las filas que modifican (SELECT FOR UPDATE). Cada cambio deja un asiento
// en stock_movements.
type Ledger struct {
	metrics *metrics.WorkflowMetrics
	now     func() time.Time
}

// NewLedger construye el libro. m puede ser nil.
func NewLedger(m *metrics.WorkflowMetrics) *Ledger {
	return &Ledger{metrics: m, now: time.Now}
}

// Transfer describe un traslado del depósito central a una sucursal.
type Transfer struct {
	Product     *entity.Product // bloqueado con LockProducts en la misma tx
	BranchID    string
	Quantity    int
	Kind        string
	ReferenceID string
	ActorID     string
	// CreateLine permite crear la línea de sucursal si no existe; si es false y no existe, ErrNotFound.
	CreateLine bool
}

// LockProducts bloquea los productos en orden ascendente de ID, para que dos transacciones
// que tocan el mismo conjunto no se bloqueen mutuamente. Devuelve ErrNotFound si alguno no existe.
func (l *Ledger) LockProducts(ctx context.Context, repos TxRepos, ids []string) (map[string]*entity.Product, error) {
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	sort.Strings(uniq)

	out := make(map[string]*entity.Product, len(uniq))
	for _, id := range uniq {
		p, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		out[id] = p
	}
	return out, nil
}

// TransferInTx descuenta del depósito central y acredita la misma cantidad en la sucursal.
// Falla con ErrInsufficientStock si el central no alcanza. Actualiza t.Product.AdminStock en memoria
// para que traslados posteriores del mismo producto en la tx vean el saldo vigente.
func (l *Ledger) TransferInTx(ctx context.Context, repos TxRepos, t Transfer) (*entity.BranchProduct, error) {
	if t.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if t.Product.AdminStock < t.Quantity {
		return nil, fmt.Errorf("producto %s: disponible %d, requerido %d: %w",
			t.Product.ID, t.Product.AdminStock, t.Quantity, domain.ErrInsufficientStock)
	}
	line, err := repos.BranchProducts.GetForUpdate(ctx, t.BranchID, t.Product.ID)
	if err != nil {
		return nil, err
	}
	if line == nil && !t.CreateLine {
		return nil, fmt.Errorf("producto %s no asignado a la sucursal %s: %w", t.Product.ID, t.BranchID, domain.ErrNotFound)
	}
	if t.Quantity == 0 && line != nil {
		return line, nil
	}

	now := l.now()
	t.Product.AdminStock -= t.Quantity
	if err := repos.Products.UpdateAdminStock(ctx, t.Product.ID, t.Product.AdminStock); err != nil {
		return nil, err
	}
	if line == nil {
		line = &entity.BranchProduct{
			ID:        uuid.New().String(),
			BranchID:  t.BranchID,
			ProductID: t.Product.ID,
			Quantity:  t.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repos.BranchProducts.Create(ctx, line); err != nil {
			return nil, err
		}
	} else {
		line.Quantity += t.Quantity
		line.UpdatedAt = now
		if err := repos.BranchProducts.UpdateQuantity(ctx, line.ID, line.Quantity); err != nil {
			return nil, err
		}
	}
	branchID := t.BranchID
	return line, l.journal(ctx, repos, &entity.StockMovement{
		ReferenceID: t.ReferenceID,
		ProductID:   t.Product.ID,
		BranchID:    &branchID,
		Kind:        t.Kind,
		AdminDelta:  -t.Quantity,
		BranchDelta: t.Quantity,
		CreatedBy:   t.ActorID,
	})
}

// AdjustBranchStockInTx suma delta (con signo) a la línea de la sucursal sin tocar el central.
// ErrNotFound si el producto no está en la sucursal; ErrOutOfStock si el saldo quedaría negativo
// (se rechaza en lugar de truncar a cero).
func (l *Ledger) AdjustBranchStockInTx(
	ctx context.Context,
	repos TxRepos,
	branchID, productID string,
	delta int,
	kind, referenceID, actorID string,
) (*entity.BranchProduct, error) {
	line, err := repos.BranchProducts.GetForUpdate(ctx, branchID, productID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, fmt.Errorf("producto %s no asignado a la sucursal %s: %w", productID, branchID, domain.ErrNotFound)
	}
	if line.Quantity+delta < 0 {
		return nil, fmt.Errorf("producto %s: disponible %d, requerido %d: %w", productID, line.Quantity, -delta, domain.ErrOutOfStock)
	}
	line.Quantity += delta
	line.UpdatedAt = l.now()
	if err := repos.BranchProducts.UpdateQuantity(ctx, line.ID, line.Quantity); err != nil {
		return nil, err
	}
	return line, l.journal(ctx, repos, &entity.StockMovement{
		ReferenceID: referenceID,
		ProductID:   productID,
		BranchID:    &branchID,
		Kind:        kind,
		BranchDelta: delta,
		CreatedBy:   actorID,
	})
}

// ReturnToCentralInTx elimina la línea de la sucursal y acredita su saldo al central.
// El producto debe estar bloqueado en la misma tx.
func (l *Ledger) ReturnToCentralInTx(ctx context.Context, repos TxRepos, product *entity.Product, branchID, actorID string) (int, error) {
	line, err := repos.BranchProducts.GetForUpdate(ctx, branchID, product.ID)
	if err != nil {
		return 0, err
	}
	if line == nil {
		return 0, fmt.Errorf("producto %s no asignado a la sucursal %s: %w", product.ID, branchID, domain.ErrNotFound)
	}
	if err := repos.BranchProducts.Delete(ctx, line.ID); err != nil {
		return 0, err
	}
	product.AdminStock += line.Quantity
	if err := repos.Products.UpdateAdminStock(ctx, product.ID, product.AdminStock); err != nil {
		return 0, err
	}
	return line.Quantity, l.journal(ctx, repos, &entity.StockMovement{
		ProductID:   product.ID,
		BranchID:    &branchID,
		Kind:        entity.MovementRemove,
		AdminDelta:  line.Quantity,
		BranchDelta: -line.Quantity,
		CreatedBy:   actorID,
	})
}

// RestockCentralInTx incrementa el depósito central (ingreso de mercancía).
func (l *Ledger) RestockCentralInTx(ctx context.Context, repos TxRepos, product *entity.Product, qty int, actorID string) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	product.AdminStock += qty
	if err := repos.Products.UpdateAdminStock(ctx, product.ID, product.AdminStock); err != nil {
		return err
	}
	return l.journal(ctx, repos, &entity.StockMovement{
		ProductID:  product.ID,
		Kind:       entity.MovementRestock,
		AdminDelta: qty,
		CreatedBy:  actorID,
	})
}

func (l *Ledger) journal(ctx context.Context, repos TxRepos, mov *entity.StockMovement) error {
	mov.ID = uuid.New().String()
	mov.CreatedAt = l.now()
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return err
	}
	if repos.AfterCommit != nil {
		kind, units := mov.Kind, mov.BranchDelta
		if units == 0 {
			units = mov.AdminDelta
		}
		repos.AfterCommit(func() { l.metrics.LedgerMovement(kind, units) })
	}
	return nil
}
