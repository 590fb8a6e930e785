package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

var now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func TestAudit_Finalize(t *testing.T) {
	tests := []struct {
		name      string
		state     domain.AuditState
		itemCount int
		wantErr   error
	}{
		{"in process with items", domain.AuditStateInProcess, 3, nil},
		{"draft with items", domain.AuditStateDraft, 1, nil},
		{"in process empty", domain.AuditStateInProcess, 0, domain.ErrEmptyAudit},
		{"draft empty", domain.AuditStateDraft, 0, domain.ErrEmptyAudit},
		{"already finalized", domain.AuditStateFinalized, 2, domain.ErrInvalidState},
		{"closed", domain.AuditStateClosed, 2, domain.ErrInvalidState},
		{"cancelled", domain.AuditStateCancelled, 2, domain.ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &domain.Audit{State: tt.state}
			err := a.Finalize(tt.itemCount, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.state, a.State)
				assert.Nil(t, a.FinalizedAt)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.AuditStateFinalized, a.State)
			require.NotNil(t, a.FinalizedAt)
			assert.Equal(t, now, *a.FinalizedAt)
		})
	}
}

func TestAudit_Close(t *testing.T) {
	pending := []uuid.UUID{uuid.New(), uuid.New()}

	t.Run("pending incidents block closure", func(t *testing.T) {
		a := &domain.Audit{State: domain.AuditStateFinalized}
		err := a.Close(pending, now)

		assert.ErrorIs(t, err, domain.ErrIncidentsPending)
		var pe *domain.IncidentsPendingError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 2, pe.Count)
		assert.Equal(t, pending, pe.IncidentIDs)
		assert.Equal(t, domain.AuditStateFinalized, a.State)
		assert.Nil(t, a.ClosedAt)
	})

	t.Run("no pending incidents", func(t *testing.T) {
		a := &domain.Audit{State: domain.AuditStateFinalized}
		require.NoError(t, a.Close(nil, now))
		assert.Equal(t, domain.AuditStateClosed, a.State)
		require.NotNil(t, a.ClosedAt)
	})

	for _, s := range []domain.AuditState{domain.AuditStateDraft, domain.AuditStateInProcess, domain.AuditStateClosed, domain.AuditStateCancelled} {
		t.Run("not finalized "+string(s), func(t *testing.T) {
			a := &domain.Audit{State: s}
			assert.ErrorIs(t, a.Close(nil, now), domain.ErrInvalidState)
		})
	}
}

func TestAudit_Cancel(t *testing.T) {
	for _, s := range []domain.AuditState{domain.AuditStateDraft, domain.AuditStateInProcess, domain.AuditStateFinalized} {
		a := &domain.Audit{State: s}
		require.NoError(t, a.Cancel("supplier recalled shipment", now), s)
		assert.Equal(t, domain.AuditStateCancelled, a.State)
		assert.Equal(t, "supplier recalled shipment", a.CancelReason)
		assert.NotNil(t, a.CancelledAt)
	}
	for _, s := range []domain.AuditState{domain.AuditStateClosed, domain.AuditStateCancelled} {
		a := &domain.Audit{State: s}
		assert.ErrorIs(t, a.Cancel("x", now), domain.ErrInvalidState, s)
		assert.Equal(t, s, a.State)
	}
}

func TestAudit_Start(t *testing.T) {
	a := &domain.Audit{State: domain.AuditStateDraft}
	require.NoError(t, a.Start(now))
	assert.Equal(t, domain.AuditStateInProcess, a.State)

	assert.ErrorIs(t, a.Start(now), domain.ErrInvalidState)
}

func TestCanTransitionAudit_NoBackwardEdges(t *testing.T) {
	order := map[domain.AuditState]int{
		domain.AuditStateDraft:     0,
		domain.AuditStateInProcess: 1,
		domain.AuditStateFinalized: 2,
		domain.AuditStateClosed:    3,
	}
	for from, fi := range order {
		for to, ti := range order {
			if ti <= fi {
				assert.False(t, domain.CanTransitionAudit(from, to), "%s -> %s", from, to)
			}
		}
	}
}

func TestLineItem_Difference(t *testing.T) {
	li := domain.LineItem{ExpectedQty: 10, ReceivedQty: 7}
	assert.Equal(t, -3, li.Difference())

	li.ReceivedQty = 12
	assert.Equal(t, 2, li.Difference())

	raw, err := json.Marshal(li)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.EqualValues(t, 2, out["difference"])
	assert.EqualValues(t, 10, out["expected_qty"])
}
