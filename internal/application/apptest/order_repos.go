package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

// --- cart ---

type cartRepo struct{ s *Store }

// Cart repositorio del carrito.
func (s *Store) Cart() repository.CartRepository { return &cartRepo{s} }

func (r *cartRepo) GetByID(_ context.Context, id string) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.cart[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *cartRepo) GetByKey(_ context.Context, userID, productID, branchID string) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.cart {
		if c.UserID == userID && c.ProductID == productID && c.BranchID == branchID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *cartRepo) Create(_ context.Context, item *entity.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.cart {
		if c.UserID == item.UserID && c.ProductID == item.ProductID && c.BranchID == item.BranchID {
			return domain.ErrAlreadyExists
		}
	}
	stored := *item
	stored.Product = nil
	r.s.data.cart[item.ID] = stored
	return nil
}

func (r *cartRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.cart[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Quantity = quantity
	r.s.data.cart[id] = c
	return nil
}

func (r *cartRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.cart, id)
	return nil
}

func (r *cartRepo) ListByUser(_ context.Context, userID, branchID string) ([]*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.CartItem, 0)
	for _, c := range r.s.data.cart {
		if c.UserID != userID || (branchID != "" && c.BranchID != branchID) {
			continue
		}
		c := c
		if p, ok := r.s.data.products[c.ProductID]; ok {
			c.Product = &p
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *cartRepo) DeleteByUserAndBranch(_ context.Context, userID, branchID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, c := range r.s.data.cart {
		if c.UserID == userID && c.BranchID == branchID {
			delete(r.s.data.cart, id)
		}
	}
	return nil
}

// --- orders ---

type orderRepo struct{ s *Store }

// Orders repositorio de órdenes.
func (s *Store) Orders() repository.OrderRepository { return &orderRepo{s} }

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	header := *o
	header.Products, header.Events = nil, nil
	r.s.data.orders[o.ID] = header
	for _, p := range o.Products {
		r.s.data.orderProducts[p.ID] = *p
	}
	for _, ev := range o.Events {
		r.s.data.orderEvents = append(r.s.data.orderEvents, *ev)
	}
	return nil
}

func (r *orderRepo) load(id string) *entity.Order {
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil
	}
	for _, p := range r.s.data.orderProducts {
		if p.OrderID == id {
			p := p
			o.Products = append(o.Products, &p)
		}
	}
	sort.Slice(o.Products, func(i, j int) bool { return o.Products[i].ProductName < o.Products[j].ProductName })
	for _, ev := range r.s.data.orderEvents {
		if ev.OrderID == id {
			ev := ev
			o.Events = append(o.Events, &ev)
		}
	}
	return &o
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.load(id), nil
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.s.data.orders[id] = o
	return nil
}

func (r *orderRepo) AddEvent(_ context.Context, ev *entity.OrderEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.orderEvents = append(r.s.data.orderEvents, *ev)
	return nil
}

func (r *orderRepo) List(_ context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Order, 0)
	for id, o := range r.s.data.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.BranchID != "" && o.BranchID != f.BranchID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, r.load(id))
	}
	newestFirst(out, func(o *entity.Order) time.Time { return o.CreatedAt }, func(o *entity.Order) string { return o.ID })
	return page(out, limit, offset), nil
}
