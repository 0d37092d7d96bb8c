package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/masonbass/retail-api/internal/domain"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/internal/domain/repository"
)

// --- users ---

type userRepo struct{ s *Store }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.data.users {
		if other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.data.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, other := range r.s.data.users {
		if other.ID != u.ID && other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.data.users[u.ID] = *u
	return nil
}

func (r *userRepo) List(_ context.Context, role string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.data.users {
		if role != "" && u.Role != role {
			continue
		}
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, limit, offset), nil
}

// Delete replica las FK de la migración: historial bloquea, lo personal cae en cascada.
func (r *userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := &r.s.data
	if _, ok := d.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	for _, o := range d.orders {
		if o.UserID == id || o.CreatedByID == id {
			return domain.ErrInvalidState
		}
	}
	for _, sr := range d.requests {
		if sr.CreatedByID == id || (sr.ApprovedByID != nil && *sr.ApprovedByID == id) {
			return domain.ErrInvalidState
		}
	}
	for _, v := range d.visits {
		if v.SalesRepID == id {
			return domain.ErrInvalidState
		}
	}
	for k, b := range d.branches {
		if b.AgentID != nil && *b.AgentID == id {
			b.AgentID = nil
		}
		if b.SalesRepID != nil && *b.SalesRepID == id {
			b.SalesRepID = nil
		}
		d.branches[k] = b
	}
	for k, c := range d.cart {
		if c.UserID == id {
			delete(d.cart, k)
		}
	}
	for k, rv := range d.reviews {
		if rv.UserID == id {
			delete(d.reviews, k)
		}
	}
	for k, a := range d.addresses {
		if a.UserID == id {
			delete(d.addresses, k)
		}
	}
	delete(d.users, id)
	return nil
}

// --- branches ---

type branchRepo struct{ s *Store }

// Branches repositorio de sucursales.
func (s *Store) Branches() repository.BranchRepository { return &branchRepo{s} }

func (r *branchRepo) Create(_ context.Context, b *entity.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkAgent(b); err != nil {
		return err
	}
	r.s.data.branches[b.ID] = *b
	return nil
}

// checkAgent replica la restricción UNIQUE(agent_id).
func (r *branchRepo) checkAgent(b *entity.Branch) error {
	if b.AgentID == nil {
		return nil
	}
	for _, other := range r.s.data.branches {
		if other.ID != b.ID && other.AgentID != nil && *other.AgentID == *b.AgentID {
			return domain.ErrAlreadyExists
		}
	}
	return nil
}

func (r *branchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.data.branches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *branchRepo) GetByAgentID(_ context.Context, agentID string) (*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.data.branches {
		if b.IsAgent(agentID) {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *branchRepo) Update(_ context.Context, b *entity.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.branches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkAgent(b); err != nil {
		return err
	}
	r.s.data.branches[b.ID] = *b
	return nil
}

func (r *branchRepo) List(_ context.Context, limit, offset int) ([]*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Branch, 0)
	for _, b := range r.s.data.branches {
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *branchRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.branches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.branches, id)
	return nil
}

// --- reviews ---

type reviewRepo struct{ s *Store }

// Reviews repositorio de reseñas.
func (s *Store) Reviews() repository.ReviewRepository { return &reviewRepo{s} }

func (r *reviewRepo) Create(_ context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.data.reviews {
		if other.ProductID == rv.ProductID && other.OrderID == rv.OrderID && other.UserID == rv.UserID {
			return domain.ErrAlreadyExists
		}
	}
	r.s.data.reviews[rv.ID] = *rv
	return nil
}

func (r *reviewRepo) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.data.reviews[id]
	if !ok {
		return nil, nil
	}
	return &rv, nil
}

func (r *reviewRepo) Find(_ context.Context, productID, orderID, userID string) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.data.reviews {
		if rv.ProductID == productID && rv.OrderID == orderID && rv.UserID == userID {
			return &rv, nil
		}
	}
	return nil, nil
}

func (r *reviewRepo) Update(_ context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.reviews[rv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.reviews[rv.ID] = *rv
	return nil
}

func (r *reviewRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.reviews, id)
	return nil
}

func (r *reviewRepo) filter(keep func(entity.Review) bool) []*entity.Review {
	out := make([]*entity.Review, 0)
	for _, rv := range r.s.data.reviews {
		if keep(rv) {
			rv := rv
			out = append(out, &rv)
		}
	}
	newestFirst(out, func(rv *entity.Review) time.Time { return rv.CreatedAt }, func(rv *entity.Review) string { return rv.ID })
	return out
}

func (r *reviewRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(rv entity.Review) bool { return rv.OrderID == orderID }), nil
}

func (r *reviewRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(rv entity.Review) bool { return rv.ProductID == productID }), nil
}

func (r *reviewRepo) List(_ context.Context, limit, offset int) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.filter(func(entity.Review) bool { return true }), limit, offset), nil
}

// --- call events ---

type callEventRepo struct{ s *Store }

// CallEvents repositorio de llamadas.
func (s *Store) CallEvents() repository.CallEventRepository { return &callEventRepo{s} }

func (r *callEventRepo) Create(_ context.Context, ev *entity.CallEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.callEvents[ev.ID] = *ev
	return nil
}

func (r *callEventRepo) GetByID(_ context.Context, id string) (*entity.CallEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ev, ok := r.s.data.callEvents[id]
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

func (r *callEventRepo) Update(_ context.Context, ev *entity.CallEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.callEvents[ev.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.callEvents[ev.ID] = *ev
	return nil
}

func (r *callEventRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.callEvents, id)
	return nil
}

func (r *callEventRepo) List(_ context.Context, limit, offset int) ([]*entity.CallEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.CallEvent, 0)
	for _, ev := range r.s.data.callEvents {
		ev := ev
		out = append(out, &ev)
	}
	newestFirst(out, func(ev *entity.CallEvent) time.Time { return ev.CreatedAt }, func(ev *entity.CallEvent) string { return ev.ID })
	return page(out, limit, offset), nil
}

func (r *callEventRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.data.callEvents), nil
}

// --- visits ---

type visitRepo struct{ s *Store }

// Visits repositorio de visitas.
func (s *Store) Visits() repository.VisitRepository { return &visitRepo{s} }

func (r *visitRepo) Create(_ context.Context, v *entity.Visit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.visits[v.ID] = *v
	return nil
}

func (r *visitRepo) GetByID(_ context.Context, id string) (*entity.Visit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.data.visits[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *visitRepo) Update(_ context.Context, v *entity.Visit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.visits[v.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.visits[v.ID] = *v
	return nil
}

func (r *visitRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.visits, id)
	return nil
}

func (r *visitRepo) filter(keep func(entity.Visit) bool) []*entity.Visit {
	out := make([]*entity.Visit, 0)
	for _, v := range r.s.data.visits {
		if keep(v) {
			v := v
			out = append(out, &v)
		}
	}
	newestFirst(out, func(v *entity.Visit) time.Time { return v.VisitDate }, func(v *entity.Visit) string { return v.ID })
	return out
}

func (r *visitRepo) ListByBranch(_ context.Context, branchID string) ([]*entity.Visit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(v entity.Visit) bool { return v.BranchID == branchID }), nil
}

func (r *visitRepo) ListBySalesRep(_ context.Context, salesRepID string) ([]*entity.Visit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(v entity.Visit) bool { return v.SalesRepID == salesRepID }), nil
}

// --- mason bass ---

type masonBassRepo struct{ s *Store }

// MasonBass repositorio de cuadrillas.
func (s *Store) MasonBass() repository.MasonBassRepository { return &masonBassRepo{s} }

func (r *masonBassRepo) Create(_ context.Context, b *entity.MasonBass) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.data.masonBass {
		if other.Code == b.Code {
			return domain.ErrAlreadyExists
		}
	}
	r.s.data.masonBass[b.ID] = *b
	return nil
}

func (r *masonBassRepo) GetByID(_ context.Context, id string) (*entity.MasonBass, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.data.masonBass[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *masonBassRepo) GetByCode(_ context.Context, code string) (*entity.MasonBass, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.data.masonBass {
		if b.Code == code {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *masonBassRepo) Update(_ context.Context, b *entity.MasonBass) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.masonBass[b.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.s.data.masonBass {
		if other.ID != b.ID && other.Code == b.Code {
			return domain.ErrAlreadyExists
		}
	}
	r.s.data.masonBass[b.ID] = *b
	return nil
}

func (r *masonBassRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.masonBass[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.masonBass, id)
	return nil
}

func (r *masonBassRepo) List(_ context.Context) ([]*entity.MasonBass, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.MasonBass, 0)
	for _, b := range r.s.data.masonBass {
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BassName < out[j].BassName })
	return out, nil
}

// --- addresses ---

type addressRepo struct{ s *Store }

// Addresses repositorio de direcciones.
func (s *Store) Addresses() repository.AddressRepository { return &addressRepo{s} }

func (r *addressRepo) Create(_ context.Context, a *entity.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[a.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.data.addresses[a.ID] = *a
	return nil
}

func (r *addressRepo) GetByID(_ context.Context, id string) (*entity.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.data.addresses[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *addressRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.addresses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.addresses, id)
	return nil
}

func (r *addressRepo) ListByUser(_ context.Context, userID string) ([]*entity.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Address, 0)
	for _, a := range r.s.data.addresses {
		if a.UserID == userID {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
