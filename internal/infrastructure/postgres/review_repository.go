package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

const reviewColumns = `id, product_id, order_id, user_id, rating, comment, created_at, updated_at`

// ReviewRepo reseñas de productos comprados.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador.
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	var rv entity.Review
	if err := row.Scan(&rv.ID, &rv.ProductID, &rv.OrderID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepo) many(ctx context.Context, query string, args ...any) ([]*entity.Review, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Create persiste la reseña; una por (producto, orden, usuario).
func (r *ReviewRepo) Create(ctx context.Context, rv *entity.Review) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO reviews (`+reviewColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rv.ID, rv.ProductID, rv.OrderID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt, rv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// GetByID obtiene una reseña.
func (r *ReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	rv, err := scanReview(r.q.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}

// Find busca la reseña de un usuario para un producto de una orden.
func (r *ReviewRepo) Find(ctx context.Context, productID, orderID, userID string) (*entity.Review, error) {
	rv, err := scanReview(r.q.QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE product_id = $1 AND order_id = $2 AND user_id = $3`,
		productID, orderID, userID,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return rv, nil
}

// Update persiste calificación y comentario.
func (r *ReviewRepo) Update(ctx context.Context, rv *entity.Review) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE reviews SET rating = $2, comment = $3, updated_at = $4 WHERE id = $1`,
		rv.ID, rv.Rating, rv.Comment, rv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la reseña.
func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

// ListByOrder reseñas de una orden.
func (r *ReviewRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Review, error) {
	return r.many(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE order_id = $1 ORDER BY created_at DESC, id DESC`, orderID)
}

// ListByProduct reseñas públicas de un producto.
func (r *ReviewRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	return r.many(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE product_id = $1 ORDER BY created_at DESC, id DESC`, productID)
}

// List todas las reseñas, más recientes primero.
func (r *ReviewRepo) List(ctx context.Context, limit, offset int) ([]*entity.Review, error) {
	return r.many(ctx,
		`SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limitOrAll(limit), offset,
	)
}
