package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/mocks"
)

type auditMocks struct {
	txm       *mocks.MockTxManager
	ledger    *mocks.MockAuditLedger
	audits    *mocks.MockAuditRepo
	lineItems *mocks.MockLineItemRepo
	products  *mocks.MockProductRepo
	suppliers *mocks.MockSupplierRepo
	changes   *mocks.MockStateChangeRepo
}

func newMockedAuditService() (service.AuditService, *auditMocks) {
	m := &auditMocks{
		txm:       new(mocks.MockTxManager),
		ledger:    new(mocks.MockAuditLedger),
		audits:    new(mocks.MockAuditRepo),
		lineItems: new(mocks.MockLineItemRepo),
		products:  new(mocks.MockProductRepo),
		suppliers: new(mocks.MockSupplierRepo),
		changes:   new(mocks.MockStateChangeRepo),
	}
	svc := service.NewAuditService(m.txm, m.ledger, nil, m.audits, m.lineItems, nil, m.products, m.suppliers, m.changes, nil, zap.NewNop())
	return svc, m
}

func TestAuditService_Create_RecordsInitialState(t *testing.T) {
	svc, m := newMockedAuditService()
	supplierID, creatorID := uuid.New(), uuid.New()

	m.txm.On("WithTransaction", mock.Anything).Return(nil)
	m.suppliers.On("GetByID", mock.Anything, supplierID).Return(&domain.Supplier{ID: supplierID}, nil)
	m.ledger.On("RegisterAudit", mock.Anything, mock.AnythingOfType("*domain.Audit")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Audit).AuditNumber = "AUD-2026-000001" }).
		Return(nil)
	m.changes.On("Create", mock.Anything, mock.MatchedBy(func(sc *domain.StateChange) bool {
		return sc.EntityType == domain.EntityAudit && sc.FromState == "" &&
			sc.ToState == string(domain.AuditStateDraft) && sc.ActorID == creatorID
	})).Return(nil)

	a, err := svc.Create(context.Background(), &service.CreateAuditInput{
		SupplierID:       supplierID,
		PurchaseOrderRef: " PO-77 ",
		CreatorID:        creatorID,
		Draft:            true,
	})

	require.NoError(t, err)
	assert.Equal(t, "AUD-2026-000001", a.AuditNumber)
	assert.Equal(t, "PO-77", a.PurchaseOrderRef)
	assert.Equal(t, domain.AuditStateDraft, a.State)
	assert.False(t, a.AuditDate.IsZero())
	m.ledger.AssertExpectations(t)
	m.changes.AssertExpectations(t)
}

func TestAuditService_Create_NumberingFailureAborts(t *testing.T) {
	svc, m := newMockedAuditService()
	supplierID := uuid.New()

	m.txm.On("WithTransaction", mock.Anything).Return(nil)
	m.suppliers.On("GetByID", mock.Anything, supplierID).Return(&domain.Supplier{ID: supplierID}, nil)
	m.ledger.On("RegisterAudit", mock.Anything, mock.Anything).Return(domain.ErrDuplicateNumber)

	_, err := svc.Create(context.Background(), &service.CreateAuditInput{
		SupplierID:       supplierID,
		PurchaseOrderRef: "PO-78",
		CreatorID:        uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateNumber)
	m.changes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuditService_Create_UnknownSupplier(t *testing.T) {
	svc, m := newMockedAuditService()
	m.suppliers.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrSupplierNotFound)

	_, err := svc.Create(context.Background(), &service.CreateAuditInput{
		SupplierID:       uuid.New(),
		PurchaseOrderRef: "PO-79",
		CreatorID:        uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
	m.ledger.AssertNotCalled(t, "RegisterAudit", mock.Anything, mock.Anything)
}

func TestAuditService_AddLineItem_InactiveProduct(t *testing.T) {
	svc, m := newMockedAuditService()
	audit := &domain.Audit{ID: uuid.New(), State: domain.AuditStateInProcess, Version: 1}
	product := &domain.Product{ID: uuid.New(), Code: "SKU-OLD", IsActive: false}

	m.txm.On("WithTransaction", mock.Anything).Return(nil)
	m.audits.On("GetForUpdate", mock.Anything, audit.ID).Return(audit, nil)
	m.products.On("GetByID", mock.Anything, product.ID).Return(product, nil)

	_, err := svc.AddLineItem(context.Background(), &service.AddLineItemInput{
		AuditID:     audit.ID,
		ProductID:   product.ID,
		ExpectedQty: 4,
		ReceivedQty: 4,
		ActorID:     uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	m.lineItems.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuditService_AddLineItem_MatchingQuantitiesOpensNoIncident(t *testing.T) {
	svc, m := newMockedAuditService()
	audit := &domain.Audit{ID: uuid.New(), State: domain.AuditStateInProcess, Version: 1}
	product := &domain.Product{ID: uuid.New(), Code: "SKU-1", IsActive: true}

	m.txm.On("WithTransaction", mock.Anything).Return(nil)
	m.audits.On("GetForUpdate", mock.Anything, audit.ID).Return(audit, nil)
	m.products.On("GetByID", mock.Anything, product.ID).Return(product, nil)
	m.lineItems.On("Create", mock.Anything, mock.MatchedBy(func(li *domain.LineItem) bool {
		return li.AuditID == audit.ID && li.ProductID == product.ID && li.Condition == domain.ConditionGood
	})).Return(nil)

	res, err := svc.AddLineItem(context.Background(), &service.AddLineItemInput{
		AuditID:     audit.ID,
		ProductID:   product.ID,
		ExpectedQty: 5,
		ReceivedQty: 5,
		ActorID:     uuid.New(),
	})

	require.NoError(t, err)
	assert.Nil(t, res.Incident)
	assert.Empty(t, res.Events)
	m.lineItems.AssertExpectations(t)
}
