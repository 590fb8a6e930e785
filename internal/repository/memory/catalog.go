package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	return r.s.do(ctx, func(t *tables) error {
		for _, existing := range t.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrDuplicateEmail
			}
		}
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		now := r.s.now()
		u.CreatedAt, u.UpdatedAt = now, now
		t.users[u.ID] = *u
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var out domain.User
	err := r.s.do(ctx, func(t *tables) error {
		u, ok := t.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var out domain.User
	err := r.s.do(ctx, func(t *tables) error {
		for _, u := range t.users {
			if strings.EqualFold(u.Email, email) {
				out = u
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	var out []domain.User
	_ = r.s.do(ctx, func(t *tables) error {
		for _, u := range t.users {
			out = append(out, u)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.User) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return page(out, offset, limit), len(out), nil
}

func (r *userRepo) Update(ctx context.Context, u *domain.User) error {
	return r.s.do(ctx, func(t *tables) error {
		if _, ok := t.users[u.ID]; !ok {
			return domain.ErrUserNotFound
		}
		u.UpdatedAt = r.s.now()
		t.users[u.ID] = *u
		return nil
	})
}

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(ctx context.Context, sp *domain.Supplier) error {
	return r.s.do(ctx, func(t *tables) error {
		for _, existing := range t.suppliers {
			if existing.Code == sp.Code {
				return domain.ErrDuplicateCode
			}
		}
		now := r.s.now()
		sp.CreatedAt, sp.UpdatedAt = now, now
		t.suppliers[sp.ID] = *sp
		return nil
	})
}

func (r *supplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	var out domain.Supplier
	err := r.s.do(ctx, func(t *tables) error {
		sp, ok := t.suppliers[id]
		if !ok {
			return domain.ErrSupplierNotFound
		}
		out = sp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *supplierRepo) List(ctx context.Context, offset, limit int) ([]domain.Supplier, int, error) {
	var out []domain.Supplier
	_ = r.s.do(ctx, func(t *tables) error {
		for _, sp := range t.suppliers {
			out = append(out, sp)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Supplier) int { return strings.Compare(a.Name, b.Name) })
	return page(out, offset, limit), len(out), nil
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.s.do(ctx, func(t *tables) error {
		for _, existing := range t.products {
			if existing.Code == p.Code {
				return domain.ErrDuplicateCode
			}
		}
		now := r.s.now()
		p.CreatedAt, p.UpdatedAt = now, now
		t.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var out domain.Product
	err := r.s.do(ctx, func(t *tables) error {
		p, ok := t.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *productRepo) GetByCode(ctx context.Context, code string) (*domain.Product, error) {
	var out domain.Product
	err := r.s.do(ctx, func(t *tables) error {
		for _, p := range t.products {
			if p.Code == code {
				out = p
				return nil
			}
		}
		return domain.ErrProductNotFound
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *productRepo) List(ctx context.Context, offset, limit int) ([]domain.Product, int, error) {
	var out []domain.Product
	_ = r.s.do(ctx, func(t *tables) error {
		for _, p := range t.products {
			out = append(out, p)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Product) int { return strings.Compare(a.Code, b.Code) })
	return page(out, offset, limit), len(out), nil
}

type evidenceRepo struct{ s *Store }

func (r *evidenceRepo) Create(ctx context.Context, ev *domain.Evidence) error {
	return r.s.do(ctx, func(t *tables) error {
		now := r.s.now()
		ev.CreatedAt, ev.UpdatedAt = now, now
		t.evidence[ev.ID] = *ev
		return nil
	})
}

func (r *evidenceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Evidence, error) {
	var out domain.Evidence
	err := r.s.do(ctx, func(t *tables) error {
		ev, ok := t.evidence[id]
		if !ok {
			return domain.ErrEvidenceNotFound
		}
		out = ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *evidenceRepo) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]domain.Evidence, error) {
	var out []domain.Evidence
	_ = r.s.do(ctx, func(t *tables) error {
		for _, ev := range t.evidence {
			if ev.IncidentID == incidentID && ev.Status == domain.EvidenceStatusUploaded {
				out = append(out, ev)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Evidence) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (r *evidenceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EvidenceStatus) error {
	return r.s.do(ctx, func(t *tables) error {
		ev, ok := t.evidence[id]
		if !ok {
			return domain.ErrEvidenceNotFound
		}
		ev.Status = status
		ev.UpdatedAt = r.s.now()
		t.evidence[id] = ev
		return nil
	})
}

func (r *evidenceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.do(ctx, func(t *tables) error {
		if _, ok := t.evidence[id]; !ok {
			return domain.ErrEvidenceNotFound
		}
		delete(t.evidence, id)
		return nil
	})
}
