package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

var _ repository.AddressRepository = (*AddressRepo)(nil)

const addressColumns = `id, user_id, line_one, line_two, pin_code, city, country, created_at`

// AddressRepo direcciones de usuario.
type AddressRepo struct {
	q Querier
}

// NewAddressRepository construye el adaptador.
func NewAddressRepository(q Querier) *AddressRepo {
	return &AddressRepo{q: q}
}

func scanAddress(row pgx.Row) (*entity.Address, error) {
	var a entity.Address
	if err := row.Scan(&a.ID, &a.UserID, &a.LineOne, &a.LineTwo, &a.PinCode, &a.City, &a.Country, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste la dirección.
func (r *AddressRepo) Create(ctx context.Context, a *entity.Address) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO addresses (`+addressColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.LineOne, a.LineTwo, a.PinCode, a.City, a.Country, a.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

// GetByID obtiene una dirección.
func (r *AddressRepo) GetByID(ctx context.Context, id string) (*entity.Address, error) {
	a, err := scanAddress(r.q.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

// Delete elimina la dirección.
func (r *AddressRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser direcciones del usuario, la más antigua primero.
func (r *AddressRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Address, error) {
	rows, err := r.q.Query(ctx, `SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
