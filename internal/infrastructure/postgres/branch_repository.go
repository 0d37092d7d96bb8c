package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

const branchColumns = `id, name, phone_number, address, agent_id, sales_rep_id, created_at, updated_at`

// BranchRepo sucursales. UNIQUE(agent_id) impide que un agente atienda dos sucursales.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(&b.ID, &b.Name, &b.PhoneNumber, &b.Address, &b.AgentID, &b.SalesRepID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste una sucursal.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO branches (`+branchColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.Name, b.PhoneNumber, b.Address, b.AgentID, b.SalesRepID, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

func (r *BranchRepo) one(ctx context.Context, where string, arg string) (*entity.Branch, error) {
	b, err := scanBranch(r.q.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// GetByID obtiene una sucursal.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	return r.one(ctx, `id = $1`, id)
}

// GetByAgentID devuelve la sucursal del agente.
func (r *BranchRepo) GetByAgentID(ctx context.Context, agentID string) (*entity.Branch, error) {
	return r.one(ctx, `agent_id = $1`, agentID)
}

// Update persiste todos los campos, incluidos agente y representante.
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE branches SET name = $2, phone_number = $3, address = $4, agent_id = $5, sales_rep_id = $6, updated_at = $7
		WHERE id = $1`,
		b.ID, b.Name, b.PhoneNumber, b.Address, b.AgentID, b.SalesRepID, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("update branch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List sucursales por nombre.
func (r *BranchRepo) List(ctx context.Context, limit, offset int) ([]*entity.Branch, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+branchColumns+` FROM branches ORDER BY name LIMIT $1 OFFSET $2`,
		limitOrAll(limit), offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Branch, 0)
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete elimina la sucursal; con stock, órdenes o solicitudes asociadas devuelve ErrInvalidState.
func (r *BranchRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("branch %s is referenced: %w", id, domain.ErrInvalidState)
		}
		return fmt.Errorf("delete branch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
