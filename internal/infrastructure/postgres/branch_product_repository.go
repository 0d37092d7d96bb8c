package postgres

import (
	"context"
	"fmt"

	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

var _ repository.BranchProductRepository = (*BranchProductRepo)(nil)

// BranchProductRepo líneas de stock por sucursal (usable con pool o tx).
type BranchProductRepo struct {
	q Querier
}

// NewBranchProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBranchProductRepository(q Querier) *BranchProductRepo {
	return &BranchProductRepo{q: q}
}

func (r *BranchProductRepo) get(ctx context.Context, branchID, productID, suffix string) (*entity.BranchProduct, error) {
	query := `
		SELECT id, branch_id, product_id, quantity, created_at, updated_at
		FROM branch_products WHERE branch_id = $1 AND product_id = $2` + suffix
	var bp entity.BranchProduct
	err := r.q.QueryRow(ctx, query, branchID, productID).Scan(
		&bp.ID, &bp.BranchID, &bp.ProductID, &bp.Quantity, &bp.CreatedAt, &bp.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch product: %w", err)
	}
	return &bp, nil
}

// Get obtiene la línea (sucursal, producto).
func (r *BranchProductRepo) Get(ctx context.Context, branchID, productID string) (*entity.BranchProduct, error) {
	return r.get(ctx, branchID, productID, "")
}

// GetForUpdate obtiene la línea y bloquea la fila (SELECT FOR UPDATE).
func (r *BranchProductRepo) GetForUpdate(ctx context.Context, branchID, productID string) (*entity.BranchProduct, error) {
	return r.get(ctx, branchID, productID, " FOR UPDATE")
}

// Create inserta la línea; UNIQUE(branch_id, product_id) garantiza una sola por par.
func (r *BranchProductRepo) Create(ctx context.Context, bp *entity.BranchProduct) error {
	query := `
		INSERT INTO branch_products (id, branch_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, bp.ID, bp.BranchID, bp.ProductID, bp.Quantity, bp.CreatedAt, bp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert branch product: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad. CHECK (quantity >= 0) en la tabla.
func (r *BranchProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE branch_products SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrOutOfStock
		}
		return fmt.Errorf("update branch product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la línea.
func (r *BranchProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM branch_products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete branch product: %w", err)
	}
	return nil
}

// ListByBranch lista las líneas de la sucursal con su producto.
func (r *BranchProductRepo) ListByBranch(ctx context.Context, branchID string, onlyAvailable bool) ([]*entity.BranchProduct, error) {
	query := `
		SELECT bp.id, bp.branch_id, bp.product_id, bp.quantity, bp.created_at, bp.updated_at,
			p.id, p.name, p.name_key, p.mixing, p.application_method, p.storage, p.volume, p.price, p.admin_stock,
			p.product_image_url, p.usage_image_url, p.created_at, p.updated_at
		FROM branch_products bp
		JOIN products p ON p.id = bp.product_id
		WHERE bp.branch_id = $1 AND (NOT $2 OR bp.quantity > 0)
		ORDER BY bp.product_id`
	rows, err := r.q.Query(ctx, query, branchID, onlyAvailable)
	if err != nil {
		return nil, fmt.Errorf("list branch products: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.BranchProduct, 0)
	for rows.Next() {
		var bp entity.BranchProduct
		var p entity.Product
		if err := rows.Scan(
			&bp.ID, &bp.BranchID, &bp.ProductID, &bp.Quantity, &bp.CreatedAt, &bp.UpdatedAt,
			&p.ID, &p.Name, &p.NameKey, &p.Mixing, &p.ApplicationMethod, &p.Storage, &p.Volume, &p.Price, &p.AdminStock,
			&p.ProductImageURL, &p.UsageImageURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan branch product: %w", err)
		}
		bp.Product = &p
		out = append(out, &bp)
	}
	return out, rows.Err()
}
