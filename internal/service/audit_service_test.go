package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/repository/memory"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

type workflowFixture struct {
	store     *memory.Store
	repos     memory.Repositories
	audits    service.AuditService
	incidents service.IncidentService
	operator  *domain.User
	reviewer  *domain.User
	supplier  *domain.Supplier
	product   *domain.Product
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	log := zap.NewNop()

	ledger := service.NewAuditLedger(repos.Tx, repos.Sequences, repos.Audits, repos.Incidents,
		service.NumberingConfig{AuditPrefix: "AUD", IncidentPrefix: "INC", Padding: 6}, log)
	incidents := service.NewIncidentService(repos.Tx, ledger, repos.Audits, repos.LineItems, repos.Incidents,
		repos.Comments, repos.Products, repos.Users, repos.StateChanges, repos.Outbox, log)
	audits := service.NewAuditService(repos.Tx, ledger, incidents, repos.Audits, repos.LineItems, repos.Incidents,
		repos.Products, repos.Suppliers, repos.StateChanges, repos.Outbox, log)

	f := &workflowFixture{
		store:     store,
		repos:     repos,
		audits:    audits,
		incidents: incidents,
		operator:  &domain.User{Email: "operator@warehouse.test", FullName: "Operator", Role: domain.RoleOperator, IsActive: true},
		reviewer:  &domain.User{Email: "reviewer@warehouse.test", FullName: "Reviewer", Role: domain.RoleSupervisor, IsActive: true},
		supplier:  &domain.Supplier{ID: uuid.New(), Code: "ACME", Name: "Acme Foods", IsActive: true},
		product:   &domain.Product{ID: uuid.New(), Code: "SKU-1", Name: "Olive oil 1L", Unit: "bottle", IsActive: true},
	}
	require.NoError(t, repos.Users.Create(ctx, f.operator))
	require.NoError(t, repos.Users.Create(ctx, f.reviewer))
	require.NoError(t, repos.Suppliers.Create(ctx, f.supplier))
	require.NoError(t, repos.Products.Create(ctx, f.product))
	return f
}

func (f *workflowFixture) createAudit(t *testing.T) *domain.Audit {
	t.Helper()
	a, err := f.audits.Create(context.Background(), &service.CreateAuditInput{
		SupplierID:       f.supplier.ID,
		PurchaseOrderRef: "PO-1001",
		CreatorID:        f.operator.ID,
	})
	require.NoError(t, err)
	return a
}

func (f *workflowFixture) addLine(t *testing.T, auditID uuid.UUID, expected, received int, cond domain.ItemCondition) *service.LineItemResult {
	t.Helper()
	res, err := f.audits.AddLineItem(context.Background(), &service.AddLineItemInput{
		AuditID:     auditID,
		ProductID:   f.product.ID,
		ExpectedQty: expected,
		ReceivedQty: received,
		Condition:   cond,
		ActorID:     f.operator.ID,
	})
	require.NoError(t, err)
	return res
}

func (f *workflowFixture) resolve(t *testing.T, incidentID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	_, err := f.incidents.Assign(ctx, incidentID, f.reviewer.ID, f.reviewer.ID)
	require.NoError(t, err)
	_, err = f.incidents.ChangeState(ctx, &service.ChangeIncidentStateInput{
		IncidentID: incidentID,
		State:      domain.IncidentStateResolved,
		ActorID:    f.reviewer.ID,
	})
	require.NoError(t, err)
}

func TestAuditService_Create_NumbersAndDefaults(t *testing.T) {
	f := newWorkflowFixture(t)
	year := time.Now().UTC().Year()

	first := f.createAudit(t)
	second := f.createAudit(t)

	assert.Equal(t, fmt.Sprintf("AUD-%d-000001", year), first.AuditNumber)
	assert.Equal(t, fmt.Sprintf("AUD-%d-000002", year), second.AuditNumber)
	assert.Equal(t, domain.AuditStateInProcess, first.State)
	assert.False(t, first.AuditDate.IsZero())
	assert.Equal(t, 1, first.Version)
}

func TestAuditService_Create_Draft(t *testing.T) {
	f := newWorkflowFixture(t)

	a, err := f.audits.Create(context.Background(), &service.CreateAuditInput{
		SupplierID:       f.supplier.ID,
		PurchaseOrderRef: "PO-1002",
		CreatorID:        f.operator.ID,
		Draft:            true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AuditStateDraft, a.State)

	res, err := f.audits.Start(context.Background(), a.ID, f.operator.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AuditStateInProcess, res.Audit.State)
	assert.Empty(t, res.Events)
}

func TestAuditService_Create_Validation(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	_, err := f.audits.Create(ctx, &service.CreateAuditInput{SupplierID: f.supplier.ID, PurchaseOrderRef: "  ", CreatorID: f.operator.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.audits.Create(ctx, &service.CreateAuditInput{SupplierID: uuid.New(), PurchaseOrderRef: "PO-1", CreatorID: f.operator.ID})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)

	_, err = f.audits.Create(ctx, &service.CreateAuditInput{SupplierID: f.supplier.ID, PurchaseOrderRef: "PO-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuditService_Create_ConcurrentNumbersAreDistinct(t *testing.T) {
	f := newWorkflowFixture(t)
	const n = 25

	var wg sync.WaitGroup
	numbers := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := f.audits.Create(context.Background(), &service.CreateAuditInput{
				SupplierID:       f.supplier.ID,
				PurchaseOrderRef: "PO-CONCURRENT",
				CreatorID:        f.operator.ID,
			})
			if assert.NoError(t, err) {
				numbers <- a.AuditNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "duplicate audit number %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestAuditService_AddLineItem_NoDiscrepancy(t *testing.T) {
	f := newWorkflowFixture(t)
	a := f.createAudit(t)

	res := f.addLine(t, a.ID, 10, 10, "")

	assert.Nil(t, res.Incident)
	assert.Empty(t, res.Events)
	assert.Equal(t, domain.ConditionGood, res.LineItem.Condition)
	assert.Equal(t, 0, res.LineItem.Difference())
}

func TestAuditService_AddLineItem_ShortageOpensIncident(t *testing.T) {
	f := newWorkflowFixture(t)
	a := f.createAudit(t)

	res := f.addLine(t, a.ID, 100, 97, domain.ConditionGood)

	require.NotNil(t, res.Incident)
	assert.Equal(t, domain.IncidentTypeShortage, res.Incident.Type)
	assert.Equal(t, domain.PriorityMedium, res.Incident.Priority)
	assert.Equal(t, domain.IncidentStateOpen, res.Incident.State)
	assert.Equal(t, res.LineItem.ID, *res.Incident.LineItemID)
	assert.Contains(t, res.Incident.Description, "SKU-1 Olive oil 1L")
	assert.Contains(t, res.Incident.Description, "shortage of 3")
	assert.Equal(t, fmt.Sprintf("INC-%d-000001", time.Now().UTC().Year()), res.Incident.IncidentNumber)

	require.Len(t, res.Events, 1)
	assert.Equal(t, domain.EventIncidentCreated, res.Events[0].Kind)
	assert.Equal(t, []uuid.UUID{f.operator.ID}, res.Events[0].AffectedUserIDs)

	entries := f.store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EventIncidentCreated, entries[0].Kind)
	assert.Equal(t, res.Incident.ID, entries[0].EntityID)
}

func TestAuditService_AddLineItem_DamagedWinsOverQuantity(t *testing.T) {
	f := newWorkflowFixture(t)
	a := f.createAudit(t)

	res := f.addLine(t, a.ID, 10, 12, domain.ConditionDamaged)

	require.NotNil(t, res.Incident)
	assert.Equal(t, domain.IncidentTypeDamaged, res.Incident.Type)
	assert.Equal(t, domain.PriorityHigh, res.Incident.Priority)
	assert.Contains(t, res.Incident.Description, "overage of 2")
}

func TestAuditService_AddLineItem_Rejections(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	a := f.createAudit(t)

	_, err := f.audits.AddLineItem(ctx, &service.AddLineItemInput{AuditID: a.ID, ProductID: f.product.ID, ExpectedQty: -1, ReceivedQty: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.audits.AddLineItem(ctx, &service.AddLineItemInput{AuditID: a.ID, ProductID: f.product.ID, Condition: "melted"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.audits.AddLineItem(ctx, &service.AddLineItemInput{AuditID: a.ID, ProductID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.audits.AddLineItem(ctx, &service.AddLineItemInput{AuditID: uuid.New(), ProductID: f.product.ID})
	assert.ErrorIs(t, err, domain.ErrAuditNotFound)
}

func TestAuditService_AddLineItem_IncidentNumberCollisionResyncs(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	a := f.createAudit(t)

	// Occupy the next incident number through another path so the insert
	// collides once; the ledger resyncs and the line still lands.
	year := time.Now().UTC().Year()
	require.NoError(t, f.repos.Incidents.Create(ctx, &domain.Incident{
		ID:             uuid.New(),
		IncidentNumber: fmt.Sprintf("INC-%d-000001", year),
		AuditID:        a.ID,
		Type:           domain.IncidentTypeOther,
		Priority:       domain.PriorityLow,
		State:          domain.IncidentStateOpen,
		Description:    "imported",
	}))

	res := f.addLine(t, a.ID, 5, 4, domain.ConditionGood)
	require.NotNil(t, res.Incident)
	assert.Equal(t, fmt.Sprintf("INC-%d-000002", year), res.Incident.IncidentNumber)
}

func TestAuditService_UpdateLineItem_LeavesIncidentsAlone(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	a := f.createAudit(t)
	res := f.addLine(t, a.ID, 10, 8, domain.ConditionGood)

	received := 10
	item, err := f.audits.UpdateLineItem(ctx, &service.UpdateLineItemInput{
		AuditID:     a.ID,
		ItemID:      res.LineItem.ID,
		ReceivedQty: &received,
		ActorID:     f.operator.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, item.Difference())

	inc, err := f.incidents.GetByID(ctx, res.Incident.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStateOpen, inc.State)

	negative := -3
	_, err = f.audits.UpdateLineItem(ctx, &service.UpdateLineItemInput{AuditID: a.ID, ItemID: res.LineItem.ID, ExpectedQty: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuditService_RemoveLineItem_DetachesIncident(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	a := f.createAudit(t)
	res := f.addLine(t, a.ID, 10, 8, domain.ConditionGood)

	require.NoError(t, f.audits.RemoveLineItem(ctx, a.ID, res.LineItem.ID, f.operator.ID))

	inc, err := f.incidents.GetByID(ctx, res.Incident.ID)
	require.NoError(t, err)
	assert.Nil(t, inc.LineItemID)

	err = f.audits.RemoveLineItem(ctx, a.ID, res.LineItem.ID, f.operator.ID)
	assert.ErrorIs(t, err, domain.ErrLineItemNotFound)
}

func TestAuditService_Finalize(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	a := f.createAudit(t)

	_, err := f.audits.Finalize(ctx, a.ID, f.operator.ID)
	assert.ErrorIs(t, err, domain.ErrEmptyAudit)

	f.addLine(t, a.ID, 1, 1, domain.ConditionGood)
	f.addLine(t, a.ID, 2, 2, domain.ConditionGood)

	res, err := f.audits.Finalize(ctx, a.ID, f.operator.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AuditStateFinalized, res.Audit.State)
	assert.NotNil(t, res.Audit.FinalizedAt)
	require.Len(t, res.Events, 1)
	assert.Equal(t, domain.EventAuditFinalized, res.Events[0].Kind)
	assert.Equal(t, 2, res.Events[0].Payload["line_items"])

	_, err = f.audits.AddLineItem(ctx, &service.AddLineItemInput{AuditID: a.ID, ProductID: f.product.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.audits.Finalize(ctx, a.ID, f.operator.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestAuditService_Finalize_ConcurrentExactlyOneWins(t *testing.T) {
	f := newWorkflowFixture(t)
	a := f.createAudit(t)
	f.addLine(t, a.ID, 3, 3, domain.ConditionGood)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.audits.Finalize(context.Background(), a.ID, f.operator.ID)
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrConflict):
			rejected++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)

	finalized := 0
	for _, e := range f.store.Entries() {
		if e.Kind == domain.EventAuditFinalized {
			finalized++
		}
	}
	assert.Equal(t, 1, finalized)
}

func TestAuditService_Close_BlockedByPendingIncidents(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	a := f.createAudit(t)
	short := f.addLine(t, a.ID, 10, 9, domain.ConditionGood)
	wrong := f.addLine(t, a.ID, 1, 1, domain.ConditionWrongItem)

	_, err := f.audits.Close(ctx, a.ID, f.reviewer.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "in-process audits cannot close")

	_, err = f.audits.Finalize(ctx, a.ID, f.operator.ID)
	require.NoError(t, err)

	_, err = f.audits.Close(ctx, a.ID, f.reviewer.ID)
	require.ErrorIs(t, err, domain.ErrIncidentsPending)
	var pending *domain.IncidentsPendingError
	require.ErrorAs(t, err, &pending)
	assert.Equal(t, 2, pending.Count)
	assert.ElementsMatch(t, []uuid.UUID{short.Incident.ID, wrong.Incident.ID}, pending.IncidentIDs)

	f.resolve(t, short.Incident.ID)
	_, err = f.incidents.ChangeState(ctx, &service.ChangeIncidentStateInput{
		IncidentID: wrong.Incident.ID,
		State:      domain.IncidentStateInReview,
		ActorID:    f.reviewer.ID,
	})
	require.NoError(t, err)

	_, err = f.audits.Close(ctx, a.ID, f.reviewer.ID)
	require.ErrorAs(t, err, &pending)
	assert.Equal(t, []uuid.UUID{wrong.Incident.ID}, pending.IncidentIDs)

	_, err = f.incidents.ChangeState(ctx, &service.ChangeIncidentStateInput{
		IncidentID: wrong.Incident.ID,
		State:      domain.IncidentStateRejected,
		Notes:      "supplier disputes",
		ActorID:    f.reviewer.ID,
	})
	require.NoError(t, err)

	res, err := f.audits.Close(ctx, a.ID, f.reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AuditStateClosed, res.Audit.State)
	assert.NotNil(t, res.Audit.ClosedAt)
	require.Len(t, res.Events, 1)
	assert.Equal(t, domain.EventAuditClosed, res.Events[0].Kind)

	_, err = f.audits.Cancel(ctx, a.ID, "too late", f.reviewer.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestAuditService_Cancel(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	a := f.createAudit(t)
	res := f.addLine(t, a.ID, 4, 0, domain.ConditionGood)

	out, err := f.audits.Cancel(ctx, a.ID, "  truck turned away  ", f.reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AuditStateCancelled, out.Audit.State)
	assert.Equal(t, "truck turned away", out.Audit.CancelReason)
	require.Len(t, out.Events, 1)
	assert.Equal(t, "truck turned away", out.Events[0].Payload["reason"])

	// Incidents keep their state; new ones are refused.
	inc, err := f.incidents.GetByID(ctx, res.Incident.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStateOpen, inc.State)

	_, err = f.incidents.Create(ctx, &service.CreateIncidentInput{
		AuditID:     a.ID,
		Type:        domain.IncidentTypeOther,
		Description: "late report",
		ReporterID:  f.operator.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAudit)

	_, err = f.audits.Start(ctx, a.ID, f.operator.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestAuditService_GetAndHistory(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	a := f.createAudit(t)
	f.addLine(t, a.ID, 10, 9, domain.ConditionGood)
	_, err := f.audits.Finalize(ctx, a.ID, f.operator.ID)
	require.NoError(t, err)

	detail, err := f.audits.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AuditStateFinalized, detail.Audit.State)
	assert.Len(t, detail.LineItems, 1)
	assert.Len(t, detail.Incidents, 1)

	history, err := f.audits.History(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	states := []string{history[0].ToState, history[1].ToState}
	assert.ElementsMatch(t, []string{string(domain.AuditStateInProcess), string(domain.AuditStateFinalized)}, states)

	_, err = f.audits.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAuditNotFound)
	_, err = f.audits.History(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAuditNotFound)
}

func TestAuditService_List_FiltersByState(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	open := f.createAudit(t)
	cancelled := f.createAudit(t)
	_, err := f.audits.Cancel(ctx, cancelled.ID, "", f.reviewer.ID)
	require.NoError(t, err)

	state := domain.AuditStateInProcess
	items, total, err := f.audits.List(ctx, domain.AuditFilter{State: &state, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, open.ID, items[0].ID)
}
