package memory

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

type auditRepo struct{ s *Store }

func (r *auditRepo) Create(ctx context.Context, a *domain.Audit) error {
	return r.s.do(ctx, func(t *tables) error {
		for _, existing := range t.audits {
			if existing.AuditNumber == a.AuditNumber {
				return domain.ErrDuplicateNumber
			}
		}
		now := r.s.now()
		a.CreatedAt, a.UpdatedAt, a.Version = now, now, 1
		t.audits[a.ID] = *a
		return nil
	})
}

func (r *auditRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Audit, error) {
	var out domain.Audit
	err := r.s.do(ctx, func(t *tables) error {
		a, ok := t.audits[id]
		if !ok {
			return domain.ErrAuditNotFound
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetForUpdate needs no extra locking: a transaction already holds the store.
func (r *auditRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Audit, error) {
	return r.GetByID(ctx, id)
}

func (r *auditRepo) List(ctx context.Context, f domain.AuditFilter) ([]domain.Audit, int, error) {
	var out []domain.Audit
	_ = r.s.do(ctx, func(t *tables) error {
		for _, a := range t.audits {
			if f.State != nil && a.State != *f.State ||
				f.SupplierID != nil && a.SupplierID != *f.SupplierID ||
				f.CreatedBy != nil && a.CreatedBy != *f.CreatedBy ||
				f.From != nil && a.AuditDate.Before(*f.From) ||
				f.To != nil && a.AuditDate.After(*f.To) {
				continue
			}
			out = append(out, a)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Audit) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return page(out, f.Offset, f.Limit), len(out), nil
}

func (r *auditRepo) UpdateState(ctx context.Context, a *domain.Audit, expectedVersion int) error {
	return r.s.do(ctx, func(t *tables) error {
		cur, ok := t.audits[a.ID]
		if !ok {
			return domain.ErrAuditNotFound
		}
		if cur.Version != expectedVersion {
			return domain.ErrConflict
		}
		a.Version = expectedVersion + 1
		t.audits[a.ID] = *a
		return nil
	})
}

func (r *auditRepo) MaxSequence(ctx context.Context, prefix string) (int64, error) {
	var seq int64
	_ = r.s.do(ctx, func(t *tables) error {
		for _, a := range t.audits {
			seq = max(seq, suffix(a.AuditNumber, prefix))
		}
		return nil
	})
	return seq, nil
}

func suffix(number, prefix string) int64 {
	rest, ok := strings.CutPrefix(number, prefix)
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(rest, 10, 64)
	return n
}

type lineItemRepo struct{ s *Store }

func (r *lineItemRepo) Create(ctx context.Context, item *domain.LineItem) error {
	return r.s.do(ctx, func(t *tables) error {
		now := r.s.now()
		if item.RegisteredAt.IsZero() {
			item.RegisteredAt = now
		}
		item.UpdatedAt = now
		t.lineItems[item.ID] = *item
		return nil
	})
}

func (r *lineItemRepo) GetByID(ctx context.Context, auditID, itemID uuid.UUID) (*domain.LineItem, error) {
	var out domain.LineItem
	err := r.s.do(ctx, func(t *tables) error {
		li, ok := t.lineItems[itemID]
		if !ok || li.AuditID != auditID {
			return domain.ErrLineItemNotFound
		}
		out = li
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *lineItemRepo) ListByAudit(ctx context.Context, auditID uuid.UUID) ([]domain.LineItem, error) {
	var out []domain.LineItem
	_ = r.s.do(ctx, func(t *tables) error {
		for _, li := range t.lineItems {
			if li.AuditID == auditID {
				out = append(out, li)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.LineItem) int { return b.RegisteredAt.Compare(a.RegisteredAt) })
	return out, nil
}

func (r *lineItemRepo) CountByAudit(ctx context.Context, auditID uuid.UUID) (int, error) {
	items, err := r.ListByAudit(ctx, auditID)
	return len(items), err
}

func (r *lineItemRepo) Update(ctx context.Context, item *domain.LineItem) error {
	return r.s.do(ctx, func(t *tables) error {
		cur, ok := t.lineItems[item.ID]
		if !ok || cur.AuditID != item.AuditID {
			return domain.ErrLineItemNotFound
		}
		item.UpdatedAt = r.s.now()
		t.lineItems[item.ID] = *item
		return nil
	})
}

func (r *lineItemRepo) Delete(ctx context.Context, auditID, itemID uuid.UUID) error {
	return r.s.do(ctx, func(t *tables) error {
		cur, ok := t.lineItems[itemID]
		if !ok || cur.AuditID != auditID {
			return domain.ErrLineItemNotFound
		}
		delete(t.lineItems, itemID)
		for id, inc := range t.incidents {
			if inc.LineItemID != nil && *inc.LineItemID == itemID {
				inc.LineItemID = nil
				t.incidents[id] = inc
			}
		}
		return nil
	})
}

type incidentRepo struct{ s *Store }

func (r *incidentRepo) Create(ctx context.Context, inc *domain.Incident) error {
	return r.s.do(ctx, func(t *tables) error {
		for _, existing := range t.incidents {
			if existing.IncidentNumber == inc.IncidentNumber {
				return domain.ErrDuplicateNumber
			}
		}
		inc.UpdatedAt = r.s.now()
		if inc.DetectedAt.IsZero() {
			inc.DetectedAt = inc.UpdatedAt
		}
		inc.Version = 1
		t.incidents[inc.ID] = *inc
		return nil
	})
}

func (r *incidentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	var out domain.Incident
	err := r.s.do(ctx, func(t *tables) error {
		inc, ok := t.incidents[id]
		if !ok {
			return domain.ErrIncidentNotFound
		}
		out = inc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *incidentRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	return r.GetByID(ctx, id)
}

func (r *incidentRepo) ListByAudit(ctx context.Context, auditID uuid.UUID) ([]domain.Incident, error) {
	out, _, err := r.List(ctx, domain.IncidentFilter{AuditID: &auditID})
	return out, err
}

func (r *incidentRepo) List(ctx context.Context, f domain.IncidentFilter) ([]domain.Incident, int, error) {
	var out []domain.Incident
	_ = r.s.do(ctx, func(t *tables) error {
		for _, inc := range t.incidents {
			if f.AuditID != nil && inc.AuditID != *f.AuditID ||
				f.State != nil && inc.State != *f.State ||
				f.AssigneeID != nil && (inc.AssigneeID == nil || *inc.AssigneeID != *f.AssigneeID) ||
				f.Type != nil && inc.Type != *f.Type {
				continue
			}
			out = append(out, inc)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Incident) int { return b.DetectedAt.Compare(a.DetectedAt) })
	return page(out, f.Offset, f.Limit), len(out), nil
}

func (r *incidentRepo) Update(ctx context.Context, inc *domain.Incident, expectedVersion int) error {
	return r.s.do(ctx, func(t *tables) error {
		cur, ok := t.incidents[inc.ID]
		if !ok {
			return domain.ErrIncidentNotFound
		}
		if cur.Version != expectedVersion {
			return domain.ErrConflict
		}
		inc.Version = expectedVersion + 1
		t.incidents[inc.ID] = *inc
		return nil
	})
}

func (r *incidentRepo) MaxSequence(ctx context.Context, prefix string) (int64, error) {
	var seq int64
	_ = r.s.do(ctx, func(t *tables) error {
		for _, inc := range t.incidents {
			seq = max(seq, suffix(inc.IncidentNumber, prefix))
		}
		return nil
	})
	return seq, nil
}

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(ctx context.Context, c *domain.IncidentComment) error {
	return r.s.do(ctx, func(t *tables) error {
		c.CreatedAt = r.s.now()
		t.comments[c.ID] = *c
		return nil
	})
}

func (r *commentRepo) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]domain.IncidentComment, error) {
	var out []domain.IncidentComment
	_ = r.s.do(ctx, func(t *tables) error {
		for _, c := range t.comments {
			if c.IncidentID == incidentID {
				out = append(out, c)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.IncidentComment) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

type stateChangeRepo struct{ s *Store }

func (r *stateChangeRepo) Create(ctx context.Context, e *domain.StateChange) error {
	return r.s.do(ctx, func(t *tables) error {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = r.s.now()
		}
		t.stateChanges[e.ID] = *e
		return nil
	})
}

func (r *stateChangeRepo) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.StateChange, error) {
	var out []domain.StateChange
	_ = r.s.do(ctx, func(t *tables) error {
		for _, e := range t.stateChanges {
			if e.EntityType == entityType && e.EntityID == entityID {
				out = append(out, e)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.StateChange) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

type sequenceRepo struct{ s *Store }

func (r *sequenceRepo) Next(ctx context.Context, key string) (int64, error) {
	var v int64
	_ = r.s.do(ctx, func(t *tables) error {
		t.sequences[key]++
		v = t.sequences[key]
		return nil
	})
	return v, nil
}

func (r *sequenceRepo) Resync(ctx context.Context, key string, floor int64) error {
	return r.s.do(ctx, func(t *tables) error {
		t.sequences[key] = max(t.sequences[key], floor)
		return nil
	})
}

type outboxRepo struct{ s *Store }

func (r *outboxRepo) Enqueue(ctx context.Context, e *domain.OutboxEntry) error {
	return r.s.do(ctx, func(t *tables) error {
		now := r.s.now()
		e.CreatedAt = now
		if e.NextAttemptAt.IsZero() {
			e.NextAttemptAt = now
		}
		if e.Status == "" {
			e.Status = domain.OutboxPending
		}
		t.outbox[e.ID] = *e
		return nil
	})
}

func (r *outboxRepo) ClaimBatch(ctx context.Context, limit int, lease time.Duration) ([]domain.OutboxEntry, error) {
	var out []domain.OutboxEntry
	_ = r.s.do(ctx, func(t *tables) error {
		now := r.s.now()
		var due []domain.OutboxEntry
		for _, e := range t.outbox {
			switch e.Status {
			case domain.OutboxPending, domain.OutboxFailed, domain.OutboxProcessing:
				if !e.NextAttemptAt.After(now) {
					due = append(due, e)
				}
			}
		}
		slices.SortFunc(due, func(a, b domain.OutboxEntry) int { return a.CreatedAt.Compare(b.CreatedAt) })
		for _, e := range page(due, 0, limit) {
			e.Status = domain.OutboxProcessing
			e.Attempts++
			e.NextAttemptAt = now.Add(lease)
			t.outbox[e.ID] = e
			out = append(out, e)
		}
		return nil
	})
	return out, nil
}

func (r *outboxRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	return r.update(ctx, id, func(e *domain.OutboxEntry) {
		now := r.s.now()
		e.Status, e.SentAt, e.LastError = domain.OutboxSent, &now, ""
	})
}

func (r *outboxRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, nextAttempt time.Time) error {
	return r.update(ctx, id, func(e *domain.OutboxEntry) {
		e.Status, e.LastError, e.NextAttemptAt = domain.OutboxFailed, errMsg, nextAttempt
	})
}

func (r *outboxRepo) MarkDead(ctx context.Context, id uuid.UUID, errMsg string) error {
	return r.update(ctx, id, func(e *domain.OutboxEntry) {
		e.Status, e.LastError = domain.OutboxDead, errMsg
	})
}

func (r *outboxRepo) update(ctx context.Context, id uuid.UUID, fn func(e *domain.OutboxEntry)) error {
	return r.s.do(ctx, func(t *tables) error {
		e, ok := t.outbox[id]
		if !ok {
			return domain.ErrNotFound
		}
		fn(&e)
		t.outbox[id] = e
		return nil
	})
}

// Entries returns a copy of every queued entry, oldest first.
func (s *Store) Entries() []domain.OutboxEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.OutboxEntry, 0, len(s.data.outbox))
	for _, e := range s.data.outbox {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b domain.OutboxEntry) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}
