package inventory

import (
	"context"

	"github.com/masonbass/retail-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Products       repository.ProductRepository
	BranchProducts repository.BranchProductRepository
	Movements      repository.StockMovementRepository
	StockRequests  repository.StockRequestRepository
	Orders         repository.OrderRepository
	Cart           repository.CartRepository

	// AfterCommit registra una función que se ejecuta solo si la transacción confirma.
	AfterCommit func(hook func())
}

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y no se ejecuta ningún AfterCommit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
