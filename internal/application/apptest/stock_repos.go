package apptest

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

// --- products ---

type productRepo struct{ s *Store }

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.data.products {
		if other.NameKey == p.NameKey {
			return domain.ErrAlreadyExists
		}
	}
	r.s.data.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) GetByNameKey(_ context.Context, nameKey string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.products {
		if p.NameKey == nameKey {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.s.data.products {
		if other.ID != p.ID && other.NameKey == p.NameKey {
			return domain.ErrAlreadyExists
		}
	}
	next := *p
	next.AdminStock = cur.AdminStock
	r.s.data.products[p.ID] = next
	return nil
}

func (r *productRepo) UpdateAdminStock(_ context.Context, productID string, adminStock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if adminStock < 0 {
		return domain.ErrInsufficientStock
	}
	p.AdminStock = adminStock
	r.s.data.products[productID] = p
	return nil
}

func (r *productRepo) all(keep func(entity.Product) bool) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range r.s.data.products {
		if keep(p) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.all(func(entity.Product) bool { return true }), limit, offset), nil
}

func (r *productRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.data.products), nil
}

func (r *productRepo) SearchByNameKey(_ context.Context, fragment string, limit int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.all(func(p entity.Product) bool { return strings.Contains(p.NameKey, fragment) }), limit, 0), nil
}

func (r *productRepo) ListNotInBranch(_ context.Context, branchID string) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	assigned := map[string]bool{}
	for _, l := range r.s.data.lines {
		if l.BranchID == branchID {
			assigned[l.ProductID] = true
		}
	}
	return r.all(func(p entity.Product) bool { return !assigned[p.ID] }), nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.products, id)
	return nil
}

// --- branch products ---

type branchProductRepo struct{ s *Store }

// BranchProducts repositorio de líneas de stock por sucursal.
func (s *Store) BranchProducts() repository.BranchProductRepository { return &branchProductRepo{s} }

func (r *branchProductRepo) Get(_ context.Context, branchID, productID string) (*entity.BranchProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.data.lines {
		if l.BranchID == branchID && l.ProductID == productID {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *branchProductRepo) GetForUpdate(ctx context.Context, branchID, productID string) (*entity.BranchProduct, error) {
	return r.Get(ctx, branchID, productID)
}

func (r *branchProductRepo) Create(_ context.Context, bp *entity.BranchProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.data.lines {
		if l.BranchID == bp.BranchID && l.ProductID == bp.ProductID {
			return domain.ErrAlreadyExists
		}
	}
	stored := *bp
	stored.Product = nil
	r.s.data.lines[bp.ID] = stored
	return nil
}

func (r *branchProductRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.data.lines[id]
	if !ok {
		return domain.ErrNotFound
	}
	if quantity < 0 {
		return domain.ErrOutOfStock
	}
	l.Quantity = quantity
	r.s.data.lines[id] = l
	return nil
}

func (r *branchProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.lines, id)
	return nil
}

func (r *branchProductRepo) ListByBranch(_ context.Context, branchID string, onlyAvailable bool) ([]*entity.BranchProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.BranchProduct, 0)
	for _, l := range r.s.data.lines {
		if l.BranchID != branchID || (onlyAvailable && l.Quantity <= 0) {
			continue
		}
		l := l
		if p, ok := r.s.data.products[l.ProductID]; ok {
			l.Product = &p
		}
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// --- movements ---

type movementRepo struct{ s *Store }

// Movements repositorio del libro de stock.
func (s *Store) Movements() repository.StockMovementRepository { return &movementRepo{s} }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.movements = append(r.s.data.movements, *m)
	return nil
}

func (r *movementRepo) List(_ context.Context, f repository.StockMovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StockMovement, 0)
	for i := len(r.s.data.movements) - 1; i >= 0; i-- {
		m := r.s.data.movements[i]
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.BranchID != "" && (m.BranchID == nil || *m.BranchID != f.BranchID) {
			continue
		}
		if f.ReferenceID != "" && m.ReferenceID != f.ReferenceID {
			continue
		}
		out = append(out, &m)
	}
	return page(out, limit, offset), nil
}

// --- stock requests ---

type stockRequestRepo struct{ s *Store }

// StockRequests repositorio de solicitudes de reposición.
func (s *Store) StockRequests() repository.StockRequestRepository { return &stockRequestRepo{s} }

func (r *stockRequestRepo) Create(_ context.Context, req *entity.StockRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	header := *req
	header.Items = nil
	r.s.data.requests[req.ID] = header
	for _, it := range req.Items {
		r.s.data.requestItems[it.ID] = *it
	}
	return nil
}

func (r *stockRequestRepo) load(id string) *entity.StockRequest {
	h, ok := r.s.data.requests[id]
	if !ok {
		return nil
	}
	for _, it := range r.s.data.requestItems {
		if it.StockRequestID == id {
			it := it
			h.Items = append(h.Items, &it)
		}
	}
	sort.Slice(h.Items, func(i, j int) bool {
		if !h.Items[i].CreatedAt.Equal(h.Items[j].CreatedAt) {
			return h.Items[i].CreatedAt.Before(h.Items[j].CreatedAt)
		}
		return h.Items[i].ProductID < h.Items[j].ProductID
	})
	return &h
}

func (r *stockRequestRepo) GetByID(_ context.Context, id string) (*entity.StockRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.load(id), nil
}

func (r *stockRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *stockRequestRepo) UpdateHeader(_ context.Context, req *entity.StockRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.data.requests[req.ID]
	if !ok {
		return domain.ErrNotFound
	}
	h.Status = req.Status
	h.Note = req.Note
	h.ApprovedByID = req.ApprovedByID
	h.UpdatedAt = req.UpdatedAt
	r.s.data.requests[req.ID] = h
	return nil
}

func (r *stockRequestRepo) CreateItem(_ context.Context, item *entity.StockRequestItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.requestItems[item.ID] = *item
	return nil
}

func (r *stockRequestRepo) UpdateItem(_ context.Context, item *entity.StockRequestItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.requestItems[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.requestItems[item.ID] = *item
	return nil
}

func (r *stockRequestRepo) DeleteItem(_ context.Context, itemID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.requestItems, itemID)
	return nil
}

func (r *stockRequestRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for itemID, it := range r.s.data.requestItems {
		if it.StockRequestID == id {
			delete(r.s.data.requestItems, itemID)
		}
	}
	delete(r.s.data.requests, id)
	return nil
}

func (r *stockRequestRepo) List(_ context.Context, f repository.StockRequestFilter) ([]*entity.StockRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StockRequest, 0)
	for id, h := range r.s.data.requests {
		if f.Status != "" && h.Status != f.Status {
			continue
		}
		if f.BranchID != "" && h.BranchID != f.BranchID {
			continue
		}
		out = append(out, r.load(id))
	}
	newestFirst(out, func(r *entity.StockRequest) time.Time { return r.CreatedAt }, func(r *entity.StockRequest) string { return r.ID })
	return out, nil
}
