package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id, branch_id, net_amount, address, status, channel, payment_method, amount_paid,
	created_by_id, created_at, updated_at`

// OrderRepo órdenes con líneas y línea de tiempo (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var createdBy *string
	err := row.Scan(
		&o.ID, &o.UserID, &o.BranchID, &o.NetAmount, &o.Address, &o.Status, &o.Channel, &o.PaymentMethod,
		&o.AmountPaid, &createdBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		o.CreatedByID = *createdBy
	}
	return &o, nil
}

// Create persiste cabecera, líneas y eventos iniciales.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.UserID, o.BranchID, o.NetAmount, o.Address, o.Status, o.Channel, o.PaymentMethod,
		o.AmountPaid, nullable(o.CreatedByID), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, p := range o.Products {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_products (id, order_id, product_id, product_name, quantity, unit_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.OrderID, p.ProductID, p.ProductName, p.Quantity, p.UnitPrice, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert order product: %w", err)
		}
	}
	for _, ev := range o.Events {
		if err := r.AddEvent(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepo) get(ctx context.Context, id, suffix string, withEvents bool) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`+suffix, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.attach(ctx, []*entity.Order{o}, withEvents); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID carga la orden con líneas y eventos.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, "", true)
}

// GetForUpdate bloquea la cabecera y carga las líneas.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, " FOR UPDATE", false)
}

// attach carga líneas (y opcionalmente eventos) de varias órdenes en una consulta por tabla.
func (r *OrderRepo) attach(ctx context.Context, orders []*entity.Order, withEvents bool) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, created_at
		FROM order_products WHERE order_id = ANY($1::uuid[])
		ORDER BY product_name, id`, ids)
	if err != nil {
		return fmt.Errorf("list order products: %w", err)
	}
	for rows.Next() {
		var p entity.OrderProduct
		if err := rows.Scan(&p.ID, &p.OrderID, &p.ProductID, &p.ProductName, &p.Quantity, &p.UnitPrice, &p.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scan order product: %w", err)
		}
		o := byID[p.OrderID]
		o.Products = append(o.Products, &p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list order products: %w", err)
	}
	if !withEvents {
		return nil
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, order_id, status, created_at
		FROM order_events WHERE order_id = ANY($1::uuid[])
		ORDER BY created_at, id`, ids)
	if err != nil {
		return fmt.Errorf("list order events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ev entity.OrderEvent
		if err := rows.Scan(&ev.ID, &ev.OrderID, &ev.Status, &ev.CreatedAt); err != nil {
			return fmt.Errorf("scan order event: %w", err)
		}
		o := byID[ev.OrderID]
		o.Events = append(o.Events, &ev)
	}
	return rows.Err()
}

// UpdateStatus cambia el estado de la cabecera.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddEvent agrega una entrada a la línea de tiempo.
func (r *OrderRepo) AddEvent(ctx context.Context, ev *entity.OrderEvent) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO order_events (id, order_id, status, created_at) VALUES ($1, $2, $3, $4)`,
		ev.ID, ev.OrderID, ev.Status, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

// List órdenes más recientes primero, con líneas y eventos.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE ($1 = '' OR user_id::text = $1)
		  AND ($2 = '' OR branch_id::text = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, f.UserID, f.BranchID, f.Status, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := r.attach(ctx, out, true); err != nil {
		return nil, err
	}
	return out, nil
}
