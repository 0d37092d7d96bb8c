package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

var _ repository.MasonBassRepository = (*MasonBassRepo)(nil)

const masonBassColumns = `id, bass_name, location, phone_number, description, code, discount, created_at, updated_at`

// MasonBassRepo cuadrillas de maestros de obra.
type MasonBassRepo struct {
	q Querier
}

// NewMasonBassRepository construye el adaptador.
func NewMasonBassRepository(q Querier) *MasonBassRepo {
	return &MasonBassRepo{q: q}
}

func scanMasonBass(row pgx.Row) (*entity.MasonBass, error) {
	var b entity.MasonBass
	err := row.Scan(&b.ID, &b.BassName, &b.Location, &b.PhoneNumber, &b.Description, &b.Code, &b.Discount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste la cuadrilla; el código es único.
func (r *MasonBassRepo) Create(ctx context.Context, b *entity.MasonBass) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO mason_bass (`+masonBassColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.BassName, b.Location, b.PhoneNumber, b.Description, b.Code, b.Discount, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert mason bass: %w", err)
	}
	return nil
}

func (r *MasonBassRepo) one(ctx context.Context, column, value string) (*entity.MasonBass, error) {
	b, err := scanMasonBass(r.q.QueryRow(ctx, `SELECT `+masonBassColumns+` FROM mason_bass WHERE `+column+` = $1`, value))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mason bass: %w", err)
	}
	return b, nil
}

// GetByID obtiene una cuadrilla.
func (r *MasonBassRepo) GetByID(ctx context.Context, id string) (*entity.MasonBass, error) {
	return r.one(ctx, "id", id)
}

// GetByCode busca por código (ya en mayúsculas).
func (r *MasonBassRepo) GetByCode(ctx context.Context, code string) (*entity.MasonBass, error) {
	return r.one(ctx, "code", code)
}

// Update persiste todos los campos.
func (r *MasonBassRepo) Update(ctx context.Context, b *entity.MasonBass) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE mason_bass SET bass_name = $2, location = $3, phone_number = $4, description = $5, code = $6,
			discount = $7, updated_at = $8
		WHERE id = $1`,
		b.ID, b.BassName, b.Location, b.PhoneNumber, b.Description, b.Code, b.Discount, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("update mason bass: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la cuadrilla.
func (r *MasonBassRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM mason_bass WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete mason bass: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List cuadrillas por nombre.
func (r *MasonBassRepo) List(ctx context.Context) ([]*entity.MasonBass, error) {
	rows, err := r.q.Query(ctx, `SELECT `+masonBassColumns+` FROM mason_bass ORDER BY bass_name`)
	if err != nil {
		return nil, fmt.Errorf("list mason bass: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.MasonBass, 0)
	for rows.Next() {
		b, err := scanMasonBass(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mason bass: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
