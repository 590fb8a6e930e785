package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

var tracer = otel.Tracer("github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// journal writes the transition log and the notification outbox. Both writes
// join the caller's transaction.
type journal struct {
	changes port.StateChangeRepository
	outbox  port.OutboxRepository
}

func (j journal) transition(ctx context.Context, entity domain.EntityType, id uuid.UUID, from, to string, actor uuid.UUID, notes string) error {
	return j.changes.Create(ctx, &domain.StateChange{
		ID:         uuid.New(),
		EntityType: entity,
		EntityID:   id,
		FromState:  from,
		ToState:    to,
		ActorID:    actor,
		Notes:      notes,
	})
}

func (j journal) emit(ctx context.Context, ev domain.NotificationEvent) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("journal.emit: %w", err)
	}
	return j.outbox.Enqueue(ctx, &domain.OutboxEntry{
		ID:       uuid.New(),
		Kind:     ev.Kind,
		EntityID: ev.EntityID,
		Event:    raw,
		Status:   domain.OutboxPending,
	})
}

// affected collects distinct, non-nil user ids in order.
func affected(ids ...*uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == nil || *id == uuid.Nil || seen[*id] {
			continue
		}
		seen[*id] = true
		out = append(out, *id)
	}
	return out
}
