package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

var _ repository.StockRequestRepository = (*StockRequestRepo)(nil)

const stockRequestColumns = `id, branch_id, created_by_id, status, note, approved_by_id, created_at, updated_at`

// StockRequestRepo solicitudes de reposición con sus ítems (usable con pool o tx).
type StockRequestRepo struct {
	q Querier
}

// NewStockRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRequestRepository(q Querier) *StockRequestRepo {
	return &StockRequestRepo{q: q}
}

func scanStockRequest(row pgx.Row) (*entity.StockRequest, error) {
	var s entity.StockRequest
	if err := row.Scan(&s.ID, &s.BranchID, &s.CreatedByID, &s.Status, &s.Note, &s.ApprovedByID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste cabecera e ítems.
func (r *StockRequestRepo) Create(ctx context.Context, req *entity.StockRequest) error {
	query := `INSERT INTO stock_requests (` + stockRequestColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.BranchID, req.CreatedByID, req.Status, req.Note, req.ApprovedByID, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock request: %w", err)
	}
	for _, it := range req.Items {
		if err := r.CreateItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func (r *StockRequestRepo) get(ctx context.Context, id, suffix string) (*entity.StockRequest, error) {
	s, err := scanStockRequest(r.q.QueryRow(ctx, `SELECT `+stockRequestColumns+` FROM stock_requests WHERE id = $1`+suffix, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock request: %w", err)
	}
	items, err := r.itemsOf(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return s, nil
}

// GetByID obtiene la solicitud con sus ítems.
func (r *StockRequestRepo) GetByID(ctx context.Context, id string) (*entity.StockRequest, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la cabecera; los ítems solo se modifican con la cabecera bloqueada.
func (r *StockRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockRequest, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// itemsOf carga los ítems de varias solicitudes en una sola consulta.
func (r *StockRequestRepo) itemsOf(ctx context.Context, ids []string) (map[string][]*entity.StockRequestItem, error) {
	query := `
		SELECT id, stock_request_id, product_id, requested_quantity, approved_quantity, received_quantity, created_at, updated_at
		FROM stock_request_items WHERE stock_request_id = ANY($1::uuid[])
		ORDER BY created_at, product_id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list stock request items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]*entity.StockRequestItem, len(ids))
	for rows.Next() {
		var it entity.StockRequestItem
		if err := rows.Scan(
			&it.ID, &it.StockRequestID, &it.ProductID, &it.RequestedQuantity, &it.ApprovedQuantity,
			&it.ReceivedQuantity, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock request item: %w", err)
		}
		out[it.StockRequestID] = append(out[it.StockRequestID], &it)
	}
	return out, rows.Err()
}

// UpdateHeader persiste estado, nota y aprobador.
func (r *StockRequestRepo) UpdateHeader(ctx context.Context, req *entity.StockRequest) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_requests SET status = $2, note = $3, approved_by_id = $4, updated_at = $5 WHERE id = $1`,
		req.ID, req.Status, req.Note, req.ApprovedByID, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateItem agrega un ítem a una solicitud existente.
func (r *StockRequestRepo) CreateItem(ctx context.Context, it *entity.StockRequestItem) error {
	query := `
		INSERT INTO stock_request_items (id, stock_request_id, product_id, requested_quantity, approved_quantity, received_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.StockRequestID, it.ProductID, it.RequestedQuantity, it.ApprovedQuantity, it.ReceivedQuantity,
		it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock request item: %w", err)
	}
	return nil
}

// UpdateItem persiste producto y cantidades del ítem.
func (r *StockRequestRepo) UpdateItem(ctx context.Context, it *entity.StockRequestItem) error {
	query := `
		UPDATE stock_request_items
		SET product_id = $2, requested_quantity = $3, approved_quantity = $4, received_quantity = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		it.ID, it.ProductID, it.RequestedQuantity, it.ApprovedQuantity, it.ReceivedQuantity, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock request item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItem elimina un ítem.
func (r *StockRequestRepo) DeleteItem(ctx context.Context, itemID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_request_items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("delete stock request item: %w", err)
	}
	return nil
}

// Delete elimina ítems y cabecera.
func (r *StockRequestRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_request_items WHERE stock_request_id = $1`, id); err != nil {
		return fmt.Errorf("delete stock request items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_requests WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock request: %w", err)
	}
	return nil
}

// List solicitudes más recientes primero, con ítems.
func (r *StockRequestRepo) List(ctx context.Context, f repository.StockRequestFilter) ([]*entity.StockRequest, error) {
	query := `
		SELECT ` + stockRequestColumns + ` FROM stock_requests
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR branch_id::text = $2)
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, f.Status, f.BranchID)
	if err != nil {
		return nil, fmt.Errorf("list stock requests: %w", err)
	}
	out := make([]*entity.StockRequest, 0)
	ids := make([]string, 0)
	for rows.Next() {
		s, err := scanStockRequest(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan stock request: %w", err)
		}
		out = append(out, s)
		ids = append(ids, s.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock requests: %w", err)
	}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.itemsOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range out {
		s.Items = items[s.ID]
	}
	return out, nil
}
