package postgres

import (
	"context"
	"fmt"

	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de stock (append-only).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un asiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, reference_id, product_id, branch_id, kind, admin_delta, branch_delta, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, nullable(m.ReferenceID), m.ProductID, m.BranchID, m.Kind, m.AdminDelta, m.BranchDelta,
		nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List devuelve los asientos más recientes primero. Los filtros vacíos no restringen.
func (r *StockMovementRepo) List(ctx context.Context, f repository.StockMovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, COALESCE(reference_id::text, ''), product_id, branch_id, kind, admin_delta, branch_delta,
			COALESCE(created_by::text, ''), created_at
		FROM stock_movements
		WHERE ($1 = '' OR product_id::text = $1)
		  AND ($2 = '' OR branch_id::text = $2)
		  AND ($3 = '' OR reference_id::text = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, f.ProductID, f.BranchID, f.ReferenceID, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ReferenceID, &m.ProductID, &m.BranchID, &m.Kind, &m.AdminDelta, &m.BranchDelta,
			&m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
