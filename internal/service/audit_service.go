package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/discrepancy"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

// CreateAuditInput is the DTO for opening a receiving audit.
// Draft creates a working copy that must be started before it goes live.
type CreateAuditInput struct {
	SupplierID       uuid.UUID
	PurchaseOrderRef string
	AuditDate        time.Time
	Notes            string
	CreatorID        uuid.UUID
	Draft            bool
}

// AddLineItemInput is the DTO for registering a scanned or manual line.
type AddLineItemInput struct {
	AuditID     uuid.UUID
	ProductID   uuid.UUID
	ExpectedQty int
	ReceivedQty int
	Condition   domain.ItemCondition
	Notes       string
	ActorID     uuid.UUID
}

// UpdateLineItemInput is the DTO for editing a line item. Nil fields are left unchanged.
type UpdateLineItemInput struct {
	AuditID     uuid.UUID
	ItemID      uuid.UUID
	ExpectedQty *int
	ReceivedQty *int
	Condition   *domain.ItemCondition
	Notes       *string
	ActorID     uuid.UUID
}

// LineItemResult is the outcome of addLineItem. Incident is nil when no
// discrepancy was detected.
type LineItemResult struct {
	LineItem *domain.LineItem
	Incident *domain.Incident
	Events   []domain.NotificationEvent
}

// AuditResult carries the audit after a transition and any events it produced.
type AuditResult struct {
	Audit  *domain.Audit
	Events []domain.NotificationEvent
}

// AuditDetail is an audit with its line items and incidents, read in one transaction.
type AuditDetail struct {
	Audit     *domain.Audit     `json:"audit"`
	LineItems []domain.LineItem `json:"line_items"`
	Incidents []domain.Incident `json:"incidents"`
}

// AuditService runs the receiving audit lifecycle.
type AuditService interface {
	Create(ctx context.Context, input *CreateAuditInput) (*domain.Audit, error)
	Start(ctx context.Context, auditID, actorID uuid.UUID) (*AuditResult, error)
	AddLineItem(ctx context.Context, input *AddLineItemInput) (*LineItemResult, error)
	UpdateLineItem(ctx context.Context, input *UpdateLineItemInput) (*domain.LineItem, error)
	RemoveLineItem(ctx context.Context, auditID, itemID, actorID uuid.UUID) error
	Finalize(ctx context.Context, auditID, actorID uuid.UUID) (*AuditResult, error)
	Close(ctx context.Context, auditID, actorID uuid.UUID) (*AuditResult, error)
	Cancel(ctx context.Context, auditID uuid.UUID, reason string, actorID uuid.UUID) (*AuditResult, error)
	Get(ctx context.Context, auditID uuid.UUID) (*AuditDetail, error)
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.Audit, int, error)
	History(ctx context.Context, auditID uuid.UUID) ([]domain.StateChange, error)
}

type auditService struct {
	txm       port.TxManager
	ledger    AuditLedger
	incidents IncidentService
	audits    port.AuditRepository
	lineItems port.LineItemRepository
	incRepo   port.IncidentRepository
	products  port.ProductRepository
	suppliers port.SupplierRepository
	journal   journal
	log       *zap.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(
	txm port.TxManager,
	ledger AuditLedger,
	incidents IncidentService,
	audits port.AuditRepository,
	lineItems port.LineItemRepository,
	incRepo port.IncidentRepository,
	products port.ProductRepository,
	suppliers port.SupplierRepository,
	changes port.StateChangeRepository,
	outbox port.OutboxRepository,
	log *zap.Logger,
) AuditService {
	return &auditService{
		txm:       txm,
		ledger:    ledger,
		incidents: incidents,
		audits:    audits,
		lineItems: lineItems,
		incRepo:   incRepo,
		products:  products,
		suppliers: suppliers,
		journal:   journal{changes: changes, outbox: outbox},
		log:       log,
	}
}

func (s *auditService) Create(ctx context.Context, input *CreateAuditInput) (audit *domain.Audit, err error) {
	ctx, span := startSpan(ctx, "auditService.Create")
	defer func() { endSpan(span, err) }()

	input.PurchaseOrderRef = strings.TrimSpace(input.PurchaseOrderRef)
	if input.PurchaseOrderRef == "" {
		return nil, fmt.Errorf("%w: purchase order reference is required", domain.ErrInvalidInput)
	}
	if input.CreatorID == uuid.Nil {
		return nil, fmt.Errorf("%w: creator is required", domain.ErrInvalidInput)
	}
	if _, err := s.suppliers.GetByID(ctx, input.SupplierID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if input.AuditDate.IsZero() {
		input.AuditDate = now
	}
	state := domain.AuditStateInProcess
	if input.Draft {
		state = domain.AuditStateDraft
	}
	audit = &domain.Audit{
		ID:               uuid.New(),
		SupplierID:       input.SupplierID,
		PurchaseOrderRef: input.PurchaseOrderRef,
		AuditDate:        input.AuditDate,
		State:            state,
		Notes:            input.Notes,
		CreatedBy:        input.CreatorID,
	}

	err = s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.ledger.RegisterAudit(ctx, audit); err != nil {
			return err
		}
		return s.journal.transition(ctx, domain.EntityAudit, audit.ID, "", string(audit.State), input.CreatorID, "")
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("audit created", zap.String("audit_number", audit.AuditNumber), zap.String("state", string(audit.State)))
	return audit, nil
}

// transition runs a locked read-modify-write on one audit. apply mutates the
// audit and returns the event to emit, if any.
func (s *auditService) transition(
	ctx context.Context,
	auditID, actorID uuid.UUID,
	notes string,
	apply func(ctx context.Context, a *domain.Audit) (*domain.NotificationEvent, error),
) (*AuditResult, error) {
	var result *AuditResult
	err := s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.audits.GetForUpdate(ctx, auditID)
		if err != nil {
			return err
		}
		from := a.State
		ev, err := apply(ctx, a)
		if err != nil {
			return err
		}
		if err := s.audits.UpdateState(ctx, a, a.Version); err != nil {
			return err
		}
		if err := s.journal.transition(ctx, domain.EntityAudit, a.ID, string(from), string(a.State), actorID, notes); err != nil {
			return err
		}
		result = &AuditResult{Audit: a}
		if ev != nil {
			if err := s.journal.emit(ctx, *ev); err != nil {
				return err
			}
			result.Events = append(result.Events, *ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("audit transition",
		zap.String("audit_number", result.Audit.AuditNumber),
		zap.String("state", string(result.Audit.State)))
	return result, nil
}

func auditEvent(kind domain.EventKind, a *domain.Audit, extra map[string]any) *domain.NotificationEvent {
	payload := map[string]any{
		"audit_number":       a.AuditNumber,
		"purchase_order_ref": a.PurchaseOrderRef,
		"state":              a.State,
	}
	for k, v := range extra {
		payload[k] = v
	}
	return &domain.NotificationEvent{
		Kind:            kind,
		EntityID:        a.ID,
		AffectedUserIDs: affected(&a.CreatedBy),
		Payload:         payload,
		OccurredAt:      a.UpdatedAt,
	}
}

func (s *auditService) Start(ctx context.Context, auditID, actorID uuid.UUID) (result *AuditResult, err error) {
	ctx, span := startSpan(ctx, "auditService.Start")
	defer func() { endSpan(span, err) }()

	return s.transition(ctx, auditID, actorID, "", func(_ context.Context, a *domain.Audit) (*domain.NotificationEvent, error) {
		return nil, a.Start(time.Now().UTC())
	})
}

func (s *auditService) Finalize(ctx context.Context, auditID, actorID uuid.UUID) (result *AuditResult, err error) {
	ctx, span := startSpan(ctx, "auditService.Finalize")
	defer func() { endSpan(span, err) }()

	return s.transition(ctx, auditID, actorID, "", func(ctx context.Context, a *domain.Audit) (*domain.NotificationEvent, error) {
		if !domain.CanTransitionAudit(a.State, domain.AuditStateFinalized) {
			return nil, domain.ErrInvalidState
		}
		count, err := s.lineItems.CountByAudit(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		if err := a.Finalize(count, time.Now().UTC()); err != nil {
			return nil, err
		}
		return auditEvent(domain.EventAuditFinalized, a, map[string]any{"line_items": count}), nil
	})
}

func (s *auditService) Close(ctx context.Context, auditID, actorID uuid.UUID) (result *AuditResult, err error) {
	ctx, span := startSpan(ctx, "auditService.Close")
	defer func() { endSpan(span, err) }()

	return s.transition(ctx, auditID, actorID, "", func(ctx context.Context, a *domain.Audit) (*domain.NotificationEvent, error) {
		if a.State != domain.AuditStateFinalized {
			return nil, domain.ErrInvalidState
		}
		// Same transaction as the audit lock: the incident snapshot cannot
		// interleave with a committing state change.
		incidents, err := s.incRepo.ListByAudit(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		var pending []uuid.UUID
		for i := range incidents {
			if incidents[i].IsPending() {
				pending = append(pending, incidents[i].ID)
			}
		}
		if err := a.Close(pending, time.Now().UTC()); err != nil {
			return nil, err
		}
		return auditEvent(domain.EventAuditClosed, a, map[string]any{"incidents": len(incidents)}), nil
	})
}

func (s *auditService) Cancel(ctx context.Context, auditID uuid.UUID, reason string, actorID uuid.UUID) (result *AuditResult, err error) {
	ctx, span := startSpan(ctx, "auditService.Cancel")
	defer func() { endSpan(span, err) }()

	reason = strings.TrimSpace(reason)
	return s.transition(ctx, auditID, actorID, reason, func(_ context.Context, a *domain.Audit) (*domain.NotificationEvent, error) {
		if err := a.Cancel(reason, time.Now().UTC()); err != nil {
			return nil, err
		}
		return auditEvent(domain.EventAuditCancelled, a, map[string]any{"reason": reason}), nil
	})
}

func validateQuantities(expected, received int) error {
	if expected < 0 || received < 0 {
		return fmt.Errorf("%w: quantities must be non-negative", domain.ErrInvalidInput)
	}
	return nil
}

func (s *auditService) AddLineItem(ctx context.Context, input *AddLineItemInput) (result *LineItemResult, err error) {
	ctx, span := startSpan(ctx, "auditService.AddLineItem")
	defer func() { endSpan(span, err) }()

	if err := validateQuantities(input.ExpectedQty, input.ReceivedQty); err != nil {
		return nil, err
	}
	if input.Condition == "" {
		input.Condition = domain.ConditionGood
	}
	if !domain.ValidConditions[input.Condition] {
		return nil, fmt.Errorf("%w: unknown condition %q", domain.ErrInvalidInput, input.Condition)
	}

	err = s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.audits.GetForUpdate(ctx, input.AuditID)
		if err != nil {
			return err
		}
		if err := a.EnsureEditable(); err != nil {
			return err
		}
		product, err := s.products.GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return fmt.Errorf("%w: product %s is inactive", domain.ErrInvalidInput, product.Code)
		}

		item := &domain.LineItem{
			ID:           uuid.New(),
			AuditID:      a.ID,
			ProductID:    product.ID,
			ExpectedQty:  input.ExpectedQty,
			ReceivedQty:  input.ReceivedQty,
			Condition:    input.Condition,
			Notes:        input.Notes,
			RegisteredBy: input.ActorID,
		}
		if err := s.lineItems.Create(ctx, item); err != nil {
			return err
		}
		result = &LineItemResult{LineItem: item}

		proposal := discrepancy.Detect(item.ExpectedQty, item.ReceivedQty, item.Condition)
		if proposal == nil {
			return nil
		}
		created, err := s.incidents.Create(ctx, &CreateIncidentInput{
			AuditID:     a.ID,
			LineItemID:  &item.ID,
			ProductID:   &product.ID,
			Type:        proposal.Type,
			Priority:    proposal.Priority,
			Description: fmt.Sprintf("%s %s: %s", product.Code, product.Name, proposal.Description),
			ReporterID:  input.ActorID,
		})
		if err != nil {
			return err
		}
		result.Incident = created.Incident
		result.Events = append(result.Events, created.Event)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *auditService) UpdateLineItem(ctx context.Context, input *UpdateLineItemInput) (item *domain.LineItem, err error) {
	ctx, span := startSpan(ctx, "auditService.UpdateLineItem")
	defer func() { endSpan(span, err) }()

	err = s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.audits.GetForUpdate(ctx, input.AuditID)
		if err != nil {
			return err
		}
		if err := a.EnsureEditable(); err != nil {
			return err
		}
		item, err = s.lineItems.GetByID(ctx, a.ID, input.ItemID)
		if err != nil {
			return err
		}
		if input.ExpectedQty != nil {
			item.ExpectedQty = *input.ExpectedQty
		}
		if input.ReceivedQty != nil {
			item.ReceivedQty = *input.ReceivedQty
		}
		if input.Condition != nil {
			if !domain.ValidConditions[*input.Condition] {
				return fmt.Errorf("%w: unknown condition %q", domain.ErrInvalidInput, *input.Condition)
			}
			item.Condition = *input.Condition
		}
		if input.Notes != nil {
			item.Notes = *input.Notes
		}
		if err := validateQuantities(item.ExpectedQty, item.ReceivedQty); err != nil {
			return err
		}
		// Existing incidents are left alone: correcting a count and resolving
		// its incident are separate actions.
		return s.lineItems.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *auditService) RemoveLineItem(ctx context.Context, auditID, itemID, actorID uuid.UUID) (err error) {
	ctx, span := startSpan(ctx, "auditService.RemoveLineItem")
	defer func() { endSpan(span, err) }()

	err = s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.audits.GetForUpdate(ctx, auditID)
		if err != nil {
			return err
		}
		if err := a.EnsureEditable(); err != nil {
			return err
		}
		return s.lineItems.Delete(ctx, a.ID, itemID)
	})
	if err == nil {
		s.log.Info("line item removed", zap.String("audit_id", auditID.String()),
			zap.String("item_id", itemID.String()), zap.String("actor_id", actorID.String()))
	}
	return err
}

func (s *auditService) Get(ctx context.Context, auditID uuid.UUID) (*AuditDetail, error) {
	var detail AuditDetail
	err := s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.audits.GetByID(ctx, auditID)
		if err != nil {
			return err
		}
		items, err := s.lineItems.ListByAudit(ctx, a.ID)
		if err != nil {
			return err
		}
		incidents, err := s.incRepo.ListByAudit(ctx, a.ID)
		if err != nil {
			return err
		}
		detail = AuditDetail{Audit: a, LineItems: items, Incidents: incidents}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *auditService) List(ctx context.Context, filter domain.AuditFilter) ([]domain.Audit, int, error) {
	return s.ledger.List(ctx, filter)
}

func (s *auditService) History(ctx context.Context, auditID uuid.UUID) ([]domain.StateChange, error) {
	if _, err := s.ledger.Find(ctx, auditID); err != nil {
		return nil, err
	}
	return s.journal.changes.ListByEntity(ctx, domain.EntityAudit, auditID)
}
