package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

// CreateIncidentInput is the DTO for opening an incident.
type CreateIncidentInput struct {
	AuditID     uuid.UUID
	LineItemID  *uuid.UUID
	ProductID   *uuid.UUID
	Type        domain.IncidentType
	Priority    domain.Priority
	Description string
	ReporterID  uuid.UUID
}

// ChangeIncidentStateInput is the DTO for moving an incident through its workflow.
type ChangeIncidentStateInput struct {
	IncidentID       uuid.UUID
	State            domain.IncidentState
	Notes            string
	CorrectiveAction string
	ActorID          uuid.UUID
}

// IncidentResult carries the incident after a transition and the event it produced.
type IncidentResult struct {
	Incident *domain.Incident
	Event    domain.NotificationEvent
}

// IncidentService runs the incident resolution workflow.
type IncidentService interface {
	Create(ctx context.Context, input *CreateIncidentInput) (*IncidentResult, error)
	Assign(ctx context.Context, incidentID, assigneeID, actorID uuid.UUID) (*IncidentResult, error)
	ChangeState(ctx context.Context, input *ChangeIncidentStateInput) (*IncidentResult, error)
	IsPending(ctx context.Context, incidentID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, incidentID uuid.UUID) (*domain.Incident, error)
	List(ctx context.Context, filter domain.IncidentFilter) ([]domain.Incident, int, error)
	AddComment(ctx context.Context, incidentID, authorID uuid.UUID, body string) (*domain.IncidentComment, error)
	ListComments(ctx context.Context, incidentID uuid.UUID) ([]domain.IncidentComment, error)
	History(ctx context.Context, incidentID uuid.UUID) ([]domain.StateChange, error)
}

type incidentService struct {
	txm       port.TxManager
	ledger    AuditLedger
	audits    port.AuditRepository
	lineItems port.LineItemRepository
	incidents port.IncidentRepository
	comments  port.CommentRepository
	products  port.ProductRepository
	users     port.UserRepository
	journal   journal
	log       *zap.Logger
}

// NewIncidentService creates a new IncidentService.
func NewIncidentService(
	txm port.TxManager,
	ledger AuditLedger,
	audits port.AuditRepository,
	lineItems port.LineItemRepository,
	incidents port.IncidentRepository,
	comments port.CommentRepository,
	products port.ProductRepository,
	users port.UserRepository,
	changes port.StateChangeRepository,
	outbox port.OutboxRepository,
	log *zap.Logger,
) IncidentService {
	return &incidentService{
		txm:       txm,
		ledger:    ledger,
		audits:    audits,
		lineItems: lineItems,
		incidents: incidents,
		comments:  comments,
		products:  products,
		users:     users,
		journal:   journal{changes: changes, outbox: outbox},
		log:       log,
	}
}

func (s *incidentService) Create(ctx context.Context, input *CreateIncidentInput) (result *IncidentResult, err error) {
	ctx, span := startSpan(ctx, "incidentService.Create")
	defer func() { endSpan(span, err) }()

	if !domain.ValidIncidentTypes[input.Type] {
		return nil, fmt.Errorf("%w: unknown incident type %q", domain.ErrInvalidInput, input.Type)
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if !domain.ValidPriorities[input.Priority] {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, input.Priority)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if input.ReporterID == uuid.Nil {
		return nil, fmt.Errorf("%w: reporter is required", domain.ErrInvalidInput)
	}

	err = s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		// Locking the audit orders this insert against a concurrent close.
		audit, err := s.audits.GetForUpdate(ctx, input.AuditID)
		if err != nil {
			return err
		}
		if audit.State.IsTerminal() {
			return domain.ErrInvalidAudit
		}
		if input.LineItemID != nil {
			if _, err := s.lineItems.GetByID(ctx, audit.ID, *input.LineItemID); err != nil {
				return err
			}
		}
		if input.ProductID != nil {
			product, err := s.products.GetByID(ctx, *input.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive {
				return fmt.Errorf("%w: product %s is inactive", domain.ErrInvalidInput, product.Code)
			}
		}

		now := time.Now().UTC()
		inc := &domain.Incident{
			ID:          uuid.New(),
			AuditID:     audit.ID,
			LineItemID:  input.LineItemID,
			ProductID:   input.ProductID,
			Type:        input.Type,
			Priority:    input.Priority,
			Description: input.Description,
			State:       domain.IncidentStateOpen,
			ReporterID:  input.ReporterID,
			DetectedAt:  now,
		}
		if err := s.ledger.RegisterIncident(ctx, inc); err != nil {
			return err
		}
		if err := s.journal.transition(ctx, domain.EntityIncident, inc.ID, "", string(inc.State), input.ReporterID, ""); err != nil {
			return err
		}

		ev := domain.NotificationEvent{
			Kind:            domain.EventIncidentCreated,
			EntityID:        inc.ID,
			AffectedUserIDs: affected(&inc.ReporterID, &audit.CreatedBy),
			Payload: map[string]any{
				"incident_number": inc.IncidentNumber,
				"audit_id":        audit.ID,
				"audit_number":    audit.AuditNumber,
				"type":            inc.Type,
				"priority":        inc.Priority,
				"description":     inc.Description,
			},
			OccurredAt: now,
		}
		if err := s.journal.emit(ctx, ev); err != nil {
			return err
		}
		result = &IncidentResult{Incident: inc, Event: ev}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("incident created",
		zap.String("incident_number", result.Incident.IncidentNumber),
		zap.String("audit_id", result.Incident.AuditID.String()),
		zap.String("type", string(result.Incident.Type)))
	return result, nil
}

func (s *incidentService) Assign(ctx context.Context, incidentID, assigneeID, actorID uuid.UUID) (result *IncidentResult, err error) {
	ctx, span := startSpan(ctx, "incidentService.Assign")
	defer func() { endSpan(span, err) }()

	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	if !assignee.IsActive {
		return nil, fmt.Errorf("%w: assignee is inactive", domain.ErrInvalidInput)
	}

	err = s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		inc, err := s.incidents.GetForUpdate(ctx, incidentID)
		if err != nil {
			return err
		}
		from := inc.State
		previous := inc.AssigneeID
		now := time.Now().UTC()
		if err := inc.Assign(assigneeID, now); err != nil {
			return err
		}
		if err := s.incidents.Update(ctx, inc, inc.Version); err != nil {
			return err
		}
		if err := s.journal.transition(ctx, domain.EntityIncident, inc.ID, string(from), string(inc.State), actorID,
			"assigned to "+assigneeID.String()); err != nil {
			return err
		}

		payload := map[string]any{
			"incident_number": inc.IncidentNumber,
			"assignee_id":     assigneeID,
			"state":           inc.State,
		}
		if previous != nil {
			payload["previous_assignee_id"] = *previous
		}
		ev := domain.NotificationEvent{
			Kind:            domain.EventIncidentAssigned,
			EntityID:        inc.ID,
			AffectedUserIDs: affected(&assigneeID, previous),
			Payload:         payload,
			OccurredAt:      now,
		}
		if err := s.journal.emit(ctx, ev); err != nil {
			return err
		}
		result = &IncidentResult{Incident: inc, Event: ev}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *incidentService) ChangeState(ctx context.Context, input *ChangeIncidentStateInput) (result *IncidentResult, err error) {
	ctx, span := startSpan(ctx, "incidentService.ChangeState")
	defer func() { endSpan(span, err) }()

	if !domain.ValidIncidentStates[input.State] {
		return nil, fmt.Errorf("%w: unknown incident state %q", domain.ErrInvalidInput, input.State)
	}

	err = s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		inc, err := s.incidents.GetForUpdate(ctx, input.IncidentID)
		if err != nil {
			return err
		}
		from := inc.State
		now := time.Now().UTC()
		if err := inc.ChangeState(input.State, input.Notes, input.CorrectiveAction, now); err != nil {
			return err
		}
		if err := s.incidents.Update(ctx, inc, inc.Version); err != nil {
			return err
		}
		if err := s.journal.transition(ctx, domain.EntityIncident, inc.ID, string(from), string(inc.State), input.ActorID, input.Notes); err != nil {
			return err
		}

		payload := map[string]any{
			"incident_number": inc.IncidentNumber,
			"from":            from,
			"to":              inc.State,
		}
		if input.Notes != "" {
			payload["notes"] = input.Notes
		}
		ev := domain.NotificationEvent{
			Kind:            domain.EventIncidentStateChanged,
			EntityID:        inc.ID,
			AffectedUserIDs: affected(&inc.ReporterID, inc.AssigneeID),
			Payload:         payload,
			OccurredAt:      now,
		}
		if err := s.journal.emit(ctx, ev); err != nil {
			return err
		}
		result = &IncidentResult{Incident: inc, Event: ev}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("incident state changed",
		zap.String("incident_number", result.Incident.IncidentNumber),
		zap.String("state", string(result.Incident.State)))
	return result, nil
}

func (s *incidentService) IsPending(ctx context.Context, incidentID uuid.UUID) (bool, error) {
	inc, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		return false, err
	}
	return inc.IsPending(), nil
}

func (s *incidentService) GetByID(ctx context.Context, incidentID uuid.UUID) (*domain.Incident, error) {
	return s.incidents.GetByID(ctx, incidentID)
}

func (s *incidentService) List(ctx context.Context, filter domain.IncidentFilter) ([]domain.Incident, int, error) {
	return s.incidents.List(ctx, filter)
}

func (s *incidentService) AddComment(ctx context.Context, incidentID, authorID uuid.UUID, body string) (*domain.IncidentComment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is required", domain.ErrInvalidInput)
	}
	if _, err := s.incidents.GetByID(ctx, incidentID); err != nil {
		return nil, err
	}
	c := &domain.IncidentComment{
		ID:         uuid.New(),
		IncidentID: incidentID,
		AuthorID:   authorID,
		Body:       body,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *incidentService) ListComments(ctx context.Context, incidentID uuid.UUID) ([]domain.IncidentComment, error) {
	if _, err := s.incidents.GetByID(ctx, incidentID); err != nil {
		return nil, err
	}
	return s.comments.ListByIncident(ctx, incidentID)
}

func (s *incidentService) History(ctx context.Context, incidentID uuid.UUID) ([]domain.StateChange, error) {
	if _, err := s.incidents.GetByID(ctx, incidentID); err != nil {
		return nil, err
	}
	return s.journal.changes.ListByEntity(ctx, domain.EntityIncident, incidentID)
}
