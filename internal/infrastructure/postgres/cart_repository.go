package postgres

import (
	"context"
	"fmt"

	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo carrito por usuario y sucursal (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

func (r *CartRepo) one(ctx context.Context, where string, args ...any) (*entity.CartItem, error) {
	query := `SELECT id, user_id, product_id, branch_id, quantity, created_at, updated_at FROM cart_items WHERE ` + where
	var c entity.CartItem
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.UserID, &c.ProductID, &c.BranchID, &c.Quantity, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &c, nil
}

// GetByID obtiene una línea del carrito.
func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	return r.one(ctx, `id = $1`, id)
}

// GetByKey obtiene la línea (usuario, producto, sucursal).
func (r *CartRepo) GetByKey(ctx context.Context, userID, productID, branchID string) (*entity.CartItem, error) {
	return r.one(ctx, `user_id = $1 AND product_id = $2 AND branch_id = $3`, userID, productID, branchID)
}

// Create inserta una línea nueva.
func (r *CartRepo) Create(ctx context.Context, c *entity.CartItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cart_items (id, user_id, product_id, branch_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.UserID, c.ProductID, c.BranchID, c.Quantity, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad de la línea.
func (r *CartRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE cart_items SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la línea.
func (r *CartRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// ListByUser lista el carrito con el producto de cada línea.
func (r *CartRepo) ListByUser(ctx context.Context, userID, branchID string) ([]*entity.CartItem, error) {
	query := `
		SELECT c.id, c.user_id, c.product_id, c.branch_id, c.quantity, c.created_at, c.updated_at,
			p.id, p.name, p.name_key, p.mixing, p.application_method, p.storage, p.volume, p.price, p.admin_stock,
			p.product_image_url, p.usage_image_url, p.created_at, p.updated_at
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1 AND ($2 = '' OR c.branch_id::text = $2)
		ORDER BY c.created_at, c.id`
	rows, err := r.q.Query(ctx, query, userID, branchID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.CartItem, 0)
	for rows.Next() {
		var c entity.CartItem
		var p entity.Product
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.ProductID, &c.BranchID, &c.Quantity, &c.CreatedAt, &c.UpdatedAt,
			&p.ID, &p.Name, &p.NameKey, &p.Mixing, &p.ApplicationMethod, &p.Storage, &p.Volume, &p.Price, &p.AdminStock,
			&p.ProductImageURL, &p.UsageImageURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		c.Product = &p
		out = append(out, &c)
	}
	return out, rows.Err()
}

// DeleteByUserAndBranch vacía el carrito del usuario en la sucursal.
func (r *CartRepo) DeleteByUserAndBranch(ctx context.Context, userID, branchID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND branch_id = $2`, userID, branchID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
