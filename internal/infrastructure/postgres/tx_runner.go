package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/masonbass/retail-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los bloqueos necesarios los toma cada caso de uso con SELECT ... FOR UPDATE.
// Los hooks registrados con AfterCommit corren en orden tras un Commit exitoso.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var hooks []func()
	repos := inventory.TxRepos{
		Products:       NewProductRepository(tx),
		BranchProducts: NewBranchProductRepository(tx),
		Movements:      NewStockMovementRepository(tx),
		StockRequests:  NewStockRequestRepository(tx),
		Orders:         NewOrderRepository(tx),
		Cart:           NewCartRepository(tx),
		AfterCommit:    func(hook func()) { hooks = append(hooks, hook) },
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	for _, hook := range hooks {
		hook()
	}
	return nil
}
