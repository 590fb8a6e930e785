package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/mocks"
)

type ledgerMocks struct {
	txm       *mocks.MockTxManager
	seq       *mocks.MockSequenceRepo
	audits    *mocks.MockAuditRepo
	incidents *mocks.MockIncidentRepo
}

func newLedger(padding int) (service.AuditLedger, *ledgerMocks) {
	m := &ledgerMocks{
		txm:       new(mocks.MockTxManager),
		seq:       new(mocks.MockSequenceRepo),
		audits:    new(mocks.MockAuditRepo),
		incidents: new(mocks.MockIncidentRepo),
	}
	m.txm.On("WithTransaction", mock.Anything).Return(nil)
	l := service.NewAuditLedger(m.txm, m.seq, m.audits, m.incidents,
		service.NumberingConfig{AuditPrefix: "AUD", IncidentPrefix: "INC", Padding: padding}, zap.NewNop())
	return l, m
}

func TestAuditLedger_NextNumbers(t *testing.T) {
	l, m := newLedger(4)
	year := time.Now().UTC().Year()
	auditKey := fmt.Sprintf("AUD-%d-", year)
	incidentKey := fmt.Sprintf("INC-%d-", year)

	m.seq.On("Next", mock.Anything, auditKey).Return(int64(42), nil)
	m.seq.On("Next", mock.Anything, incidentKey).Return(int64(12345), nil)

	num, err := l.NextAuditNumber(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, auditKey+"0042", num)

	num, err = l.NextIncidentNumber(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, incidentKey+"12345", num, "padding is a minimum width")
}

func TestAuditLedger_RegisterAudit_ResyncsOnceOnCollision(t *testing.T) {
	l, m := newLedger(6)
	key := fmt.Sprintf("AUD-%d-", time.Now().UTC().Year())

	m.seq.On("Next", mock.Anything, key).Return(int64(3), nil).Once()
	m.seq.On("Next", mock.Anything, key).Return(int64(10), nil).Once()
	m.audits.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Audit) bool {
		return a.AuditNumber == key+"000003"
	})).Return(domain.ErrDuplicateNumber).Once()
	m.audits.On("MaxSequence", mock.Anything, key).Return(int64(9), nil)
	m.seq.On("Resync", mock.Anything, key, int64(9)).Return(nil)
	m.audits.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Audit) bool {
		return a.AuditNumber == key+"000010"
	})).Return(nil).Once()

	audit := &domain.Audit{}
	err := l.RegisterAudit(context.Background(), audit)

	assert.NoError(t, err)
	assert.Equal(t, key+"000010", audit.AuditNumber)
	m.seq.AssertExpectations(t)
	m.audits.AssertExpectations(t)
}

func TestAuditLedger_RegisterIncident_GivesUpAfterSecondCollision(t *testing.T) {
	l, m := newLedger(6)
	key := fmt.Sprintf("INC-%d-", time.Now().UTC().Year())

	m.seq.On("Next", mock.Anything, key).Return(int64(1), nil)
	m.incidents.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateNumber)
	m.incidents.On("MaxSequence", mock.Anything, key).Return(int64(0), nil)
	m.seq.On("Resync", mock.Anything, key, int64(0)).Return(nil)

	err := l.RegisterIncident(context.Background(), &domain.Incident{})

	assert.ErrorIs(t, err, domain.ErrDuplicateNumber)
	m.incidents.AssertNumberOfCalls(t, "Create", 2)
	m.seq.AssertNumberOfCalls(t, "Resync", 1)
}

func TestAuditLedger_RegisterAudit_OtherErrorsAreNotRetried(t *testing.T) {
	l, m := newLedger(6)

	m.seq.On("Next", mock.Anything, mock.Anything).Return(int64(1), nil)
	m.audits.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	err := l.RegisterAudit(context.Background(), &domain.Audit{})

	assert.ErrorIs(t, err, assert.AnError)
	m.audits.AssertNumberOfCalls(t, "Create", 1)
	m.seq.AssertNotCalled(t, "Resync", mock.Anything, mock.Anything, mock.Anything)
}
