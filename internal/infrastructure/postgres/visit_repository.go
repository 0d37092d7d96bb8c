package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

const visitColumns = `id, branch_id, sales_rep_id, order_id, customer_name, address, contact_number, purpose_of_visit,
	customer_signature_url, visit_date, created_at, updated_at`

// VisitRepo visitas comerciales.
type VisitRepo struct {
	q Querier
}

// NewVisitRepository construye el adaptador.
func NewVisitRepository(q Querier) *VisitRepo {
	return &VisitRepo{q: q}
}

func scanVisit(row pgx.Row) (*entity.Visit, error) {
	var v entity.Visit
	err := row.Scan(
		&v.ID, &v.BranchID, &v.SalesRepID, &v.OrderID, &v.CustomerName, &v.Address, &v.ContactNumber,
		&v.PurposeOfVisit, &v.CustomerSignatureURL, &v.VisitDate, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste la visita.
func (r *VisitRepo) Create(ctx context.Context, v *entity.Visit) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO visits (`+visitColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		v.ID, v.BranchID, v.SalesRepID, v.OrderID, v.CustomerName, v.Address, v.ContactNumber,
		v.PurposeOfVisit, v.CustomerSignatureURL, v.VisitDate, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("visit references: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

// GetByID obtiene una visita.
func (r *VisitRepo) GetByID(ctx context.Context, id string) (*entity.Visit, error) {
	v, err := scanVisit(r.q.QueryRow(ctx, `SELECT `+visitColumns+` FROM visits WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visit: %w", err)
	}
	return v, nil
}

// Update persiste los campos editables.
func (r *VisitRepo) Update(ctx context.Context, v *entity.Visit) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE visits SET branch_id = $2, order_id = $3, customer_name = $4, address = $5, contact_number = $6,
			purpose_of_visit = $7, customer_signature_url = $8, visit_date = $9, updated_at = $10
		WHERE id = $1`,
		v.ID, v.BranchID, v.OrderID, v.CustomerName, v.Address, v.ContactNumber,
		v.PurposeOfVisit, v.CustomerSignatureURL, v.VisitDate, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update visit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la visita.
func (r *VisitRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM visits WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete visit: %w", err)
	}
	return nil
}

func (r *VisitRepo) listBy(ctx context.Context, column, value string) ([]*entity.Visit, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+visitColumns+` FROM visits WHERE `+column+` = $1 ORDER BY visit_date DESC, id DESC`, value)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Visit, 0)
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListByBranch visitas de una sucursal.
func (r *VisitRepo) ListByBranch(ctx context.Context, branchID string) ([]*entity.Visit, error) {
	return r.listBy(ctx, "branch_id", branchID)
}

// ListBySalesRep visitas de un representante.
func (r *VisitRepo) ListBySalesRep(ctx context.Context, salesRepID string) ([]*entity.Visit, error) {
	return r.listBy(ctx, "sales_rep_id", salesRepID)
}
