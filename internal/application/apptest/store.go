// Package apptest provee repositorios en memoria y un TxRunner con rollback real para probar
// los casos de uso sin base de datos.
package apptest

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/masonbass/retail-api/internal/application/inventory"
	"github.com/masonbass/retail-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex // serializa transacciones, equivalente grueso a los bloqueos de fila
	data state
	now  time.Time
}

type state struct {
	users         map[string]entity.User
	branches      map[string]entity.Branch
	products      map[string]entity.Product
	lines         map[string]entity.BranchProduct
	movements     []entity.StockMovement
	requests      map[string]entity.StockRequest
	requestItems  map[string]entity.StockRequestItem
	cart          map[string]entity.CartItem
	orders        map[string]entity.Order
	orderProducts map[string]entity.OrderProduct
	orderEvents   []entity.OrderEvent
	reviews       map[string]entity.Review
	callEvents    map[string]entity.CallEvent
	visits        map[string]entity.Visit
	masonBass     map[string]entity.MasonBass
	addresses     map[string]entity.Address
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		data: state{
			users:         map[string]entity.User{},
			branches:      map[string]entity.Branch{},
			products:      map[string]entity.Product{},
			lines:         map[string]entity.BranchProduct{},
			requests:      map[string]entity.StockRequest{},
			requestItems:  map[string]entity.StockRequestItem{},
			cart:          map[string]entity.CartItem{},
			orders:        map[string]entity.Order{},
			orderProducts: map[string]entity.OrderProduct{},
			reviews:       map[string]entity.Review{},
			callEvents:    map[string]entity.CallEvent{},
			visits:        map[string]entity.Visit{},
			masonBass:     map[string]entity.MasonBass{},
			addresses:     map[string]entity.Address{},
		},
		now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *Store) snapshot() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data
	return state{
		users:         maps.Clone(d.users),
		branches:      maps.Clone(d.branches),
		products:      maps.Clone(d.products),
		lines:         maps.Clone(d.lines),
		movements:     append([]entity.StockMovement(nil), d.movements...),
		requests:      maps.Clone(d.requests),
		requestItems:  maps.Clone(d.requestItems),
		cart:          maps.Clone(d.cart),
		orders:        maps.Clone(d.orders),
		orderProducts: maps.Clone(d.orderProducts),
		orderEvents:   append([]entity.OrderEvent(nil), d.orderEvents...),
		reviews:       maps.Clone(d.reviews),
		callEvents:    maps.Clone(d.callEvents),
		visits:        maps.Clone(d.visits),
		masonBass:     maps.Clone(d.masonBass),
		addresses:     maps.Clone(d.addresses),
	}
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	s.data = st
	s.mu.Unlock()
}

// TxRunner ejecuta fn sobre los repositorios del Store; si fn falla restaura el estado previo.
type TxRunner struct {
	store *Store
	// Commits cuenta las transacciones confirmadas.
	Commits int
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{store: s} }

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	var hooks []func()
	err := func() error {
		r.store.txMu.Lock()
		defer r.store.txMu.Unlock()
		snap := r.store.snapshot()
		repos := r.store.TxRepos()
		repos.AfterCommit = func(h func()) { hooks = append(hooks, h) }
		if err := fn(repos); err != nil {
			r.store.restore(snap)
			return err
		}
		r.Commits++
		return nil
	}()
	if err != nil {
		return err
	}
	for _, h := range hooks {
		h()
	}
	return nil
}

// TxRepos repositorios del Store sin AfterCommit.
func (s *Store) TxRepos() inventory.TxRepos {
	return inventory.TxRepos{
		Products:       s.Products(),
		BranchProducts: s.BranchProducts(),
		Movements:      s.Movements(),
		StockRequests:  s.StockRequests(),
		Orders:         s.Orders(),
		Cart:           s.Cart(),
	}
}

// --- fixtures ---

// SeedUser crea un usuario con el rol dado.
func (s *Store) SeedUser(name, role string) *entity.User {
	u := entity.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     name + "@example.com",
		Role:      role,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	s.mu.Lock()
	s.data.users[u.ID] = u
	s.mu.Unlock()
	return &u
}

// SeedBranch crea una sucursal atendida por agentID (vacío = sin agente).
func (s *Store) SeedBranch(name, agentID string) *entity.Branch {
	b := entity.Branch{ID: uuid.New().String(), Name: name, CreatedAt: s.now, UpdatedAt: s.now}
	if agentID != "" {
		b.AgentID = &agentID
	}
	s.mu.Lock()
	s.data.branches[b.ID] = b
	s.mu.Unlock()
	return &b
}

// SeedProduct crea un producto con stock central adminStock.
func (s *Store) SeedProduct(name string, price decimal.Decimal, adminStock int) *entity.Product {
	p := entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		NameKey:    name,
		Price:      price,
		AdminStock: adminStock,
		CreatedAt:  s.now,
		UpdatedAt:  s.now,
	}
	s.mu.Lock()
	s.data.products[p.ID] = p
	s.mu.Unlock()
	return &p
}

// SeedLine crea la línea de stock de un producto en una sucursal.
func (s *Store) SeedLine(branchID, productID string, qty int) *entity.BranchProduct {
	bp := entity.BranchProduct{
		ID:        uuid.New().String(),
		BranchID:  branchID,
		ProductID: productID,
		Quantity:  qty,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	s.mu.Lock()
	s.data.lines[bp.ID] = bp
	s.mu.Unlock()
	return &bp
}

// AdminStock saldo central actual del producto (-1 si no existe).
func (s *Store) AdminStock(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.products[productID]
	if !ok {
		return -1
	}
	return p.AdminStock
}

// LineQuantity saldo de la sucursal para el producto (-1 si no hay línea).
func (s *Store) LineQuantity(branchID, productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.data.lines {
		if l.BranchID == branchID && l.ProductID == productID {
			return l.Quantity
		}
	}
	return -1
}

// MovementLog copia de los asientos registrados, en orden de escritura.
func (s *Store) MovementLog() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMovement(nil), s.data.movements...)
}

// CartSize cantidad de líneas de carrito del usuario.
func (s *Store) CartSize(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.data.cart {
		if c.UserID == userID {
			n++
		}
	}
	return n
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// newestFirst ordena por fecha de creación descendente y luego por ID.
func newestFirst[T any](list []*T, created func(*T) time.Time, id func(*T) string) {
	sort.Slice(list, func(i, j int) bool {
		ci, cj := created(list[i]), created(list[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(list[i]) < id(list[j])
	})
}
