// Package memory keeps every repository in process memory behind a single
// lock. A transaction holds the lock for its whole duration and restores a
// snapshot on failure, which gives serializable behavior for tests and for
// running the server without a database.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

type tables struct {
	users        map[uuid.UUID]domain.User
	suppliers    map[uuid.UUID]domain.Supplier
	products     map[uuid.UUID]domain.Product
	audits       map[uuid.UUID]domain.Audit
	lineItems    map[uuid.UUID]domain.LineItem
	incidents    map[uuid.UUID]domain.Incident
	comments     map[uuid.UUID]domain.IncidentComment
	evidence     map[uuid.UUID]domain.Evidence
	stateChanges map[uuid.UUID]domain.StateChange
	outbox       map[uuid.UUID]domain.OutboxEntry
	sequences    map[string]int64
}

func newTables() tables {
	return tables{
		users:        map[uuid.UUID]domain.User{},
		suppliers:    map[uuid.UUID]domain.Supplier{},
		products:     map[uuid.UUID]domain.Product{},
		audits:       map[uuid.UUID]domain.Audit{},
		lineItems:    map[uuid.UUID]domain.LineItem{},
		incidents:    map[uuid.UUID]domain.Incident{},
		comments:     map[uuid.UUID]domain.IncidentComment{},
		evidence:     map[uuid.UUID]domain.Evidence{},
		stateChanges: map[uuid.UUID]domain.StateChange{},
		outbox:       map[uuid.UUID]domain.OutboxEntry{},
		sequences:    map[string]int64{},
	}
}

func (t tables) clone() tables {
	return tables{
		users:        maps.Clone(t.users),
		suppliers:    maps.Clone(t.suppliers),
		products:     maps.Clone(t.products),
		audits:       maps.Clone(t.audits),
		lineItems:    maps.Clone(t.lineItems),
		incidents:    maps.Clone(t.incidents),
		comments:     maps.Clone(t.comments),
		evidence:     maps.Clone(t.evidence),
		stateChanges: maps.Clone(t.stateChanges),
		outbox:       maps.Clone(t.outbox),
		sequences:    maps.Clone(t.sequences),
	}
}

// Store is the shared backing for all in-memory repositories.
type Store struct {
	mu   sync.Mutex
	data tables
	now  func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{data: newTables(), now: func() time.Time { return time.Now().UTC() }}
}

type txKey struct{}

// do runs fn with the store locked, unless ctx already belongs to a transaction
// that holds the lock.
func (s *Store) do(ctx context.Context, fn func(t *tables) error) error {
	if ctx.Value(txKey{}) == s {
		return fn(&s.data)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

// WithTransaction implements port.TxManager.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) == s {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}
	committed = true
	return nil
}

// Repositories groups the port implementations backed by one Store.
type Repositories struct {
	Tx           port.TxManager
	Users        port.UserRepository
	Suppliers    port.SupplierRepository
	Products     port.ProductRepository
	Audits       port.AuditRepository
	LineItems    port.LineItemRepository
	Incidents    port.IncidentRepository
	Comments     port.CommentRepository
	Evidence     port.EvidenceRepository
	StateChanges port.StateChangeRepository
	Sequences    port.SequenceRepository
	Outbox       port.OutboxRepository
	Stats        port.StatsRepository
}

// Repos wires every repository to s.
func (s *Store) Repos() Repositories {
	return Repositories{
		Tx:           s,
		Users:        &userRepo{s},
		Suppliers:    &supplierRepo{s},
		Products:     &productRepo{s},
		Audits:       &auditRepo{s},
		LineItems:    &lineItemRepo{s},
		Incidents:    &incidentRepo{s},
		Comments:     &commentRepo{s},
		Evidence:     &evidenceRepo{s},
		StateChanges: &stateChangeRepo{s},
		Sequences:    &sequenceRepo{s},
		Outbox:       &outboxRepo{s},
		Stats:        &statsRepo{s},
	}
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
