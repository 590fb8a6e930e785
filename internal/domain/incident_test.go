package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

func TestIncident_ChangeState(t *testing.T) {
	tests := []struct {
		from    domain.IncidentState
		to      domain.IncidentState
		wantErr error
	}{
		{domain.IncidentStateOpen, domain.IncidentStateInReview, nil},
		{domain.IncidentStateAssigned, domain.IncidentStateInReview, nil},
		{domain.IncidentStateInReview, domain.IncidentStateInReview, nil},
		{domain.IncidentStateInReview, domain.IncidentStateResolved, nil},
		{domain.IncidentStateInReview, domain.IncidentStateRejected, nil},
		{domain.IncidentStateAssigned, domain.IncidentStateResolved, nil},
		{domain.IncidentStateAssigned, domain.IncidentStateRejected, nil},
		{domain.IncidentStateOpen, domain.IncidentStateResolved, domain.ErrInvalidTransition},
		{domain.IncidentStateOpen, domain.IncidentStateRejected, domain.ErrInvalidTransition},
		{domain.IncidentStateOpen, domain.IncidentStateAssigned, domain.ErrInvalidTransition},
		{domain.IncidentStateInReview, domain.IncidentStateOpen, domain.ErrInvalidTransition},
		{domain.IncidentStateResolved, domain.IncidentStateResolved, domain.ErrAlreadyTerminal},
		{domain.IncidentStateResolved, domain.IncidentStateInReview, domain.ErrAlreadyTerminal},
		{domain.IncidentStateRejected, domain.IncidentStateResolved, domain.ErrAlreadyTerminal},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			inc := &domain.Incident{State: tt.from}
			err := inc.ChangeState(tt.to, "", "", now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, inc.State)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, inc.State)
			assert.Equal(t, tt.to.IsTerminal(), inc.ResolvedAt != nil)
		})
	}
}

func TestIncident_ResolvedAtStampedOnce(t *testing.T) {
	inc := &domain.Incident{State: domain.IncidentStateInReview}
	require.NoError(t, inc.ChangeState(domain.IncidentStateResolved, "credit note issued", "reorder 3 units", now))
	require.NotNil(t, inc.ResolvedAt)
	stamped := *inc.ResolvedAt
	assert.Equal(t, "reorder 3 units", inc.CorrectiveAction)
	assert.Equal(t, "credit note issued", inc.ResolutionNotes)

	later := now.Add(time.Hour)
	err := inc.ChangeState(domain.IncidentStateResolved, "", "", later)
	assert.ErrorIs(t, err, domain.ErrAlreadyTerminal)
	assert.Equal(t, stamped, *inc.ResolvedAt)
}

func TestIncident_Assign(t *testing.T) {
	first, second := uuid.New(), uuid.New()

	inc := &domain.Incident{State: domain.IncidentStateOpen}
	require.NoError(t, inc.Assign(first, now))
	assert.Equal(t, domain.IncidentStateAssigned, inc.State)
	assert.Equal(t, first, *inc.AssigneeID)

	require.NoError(t, inc.Assign(second, now))
	assert.Equal(t, domain.IncidentStateAssigned, inc.State)
	assert.Equal(t, second, *inc.AssigneeID)

	inReview := &domain.Incident{State: domain.IncidentStateInReview, AssigneeID: &first}
	require.NoError(t, inReview.Assign(second, now))
	assert.Equal(t, domain.IncidentStateInReview, inReview.State)
	assert.Equal(t, second, *inReview.AssigneeID)

	for _, s := range []domain.IncidentState{domain.IncidentStateResolved, domain.IncidentStateRejected} {
		done := &domain.Incident{State: s, AssigneeID: &first}
		assert.ErrorIs(t, done.Assign(second, now), domain.ErrInvalidTransition)
		assert.Equal(t, first, *done.AssigneeID)
	}
}

func TestIncidentState_IsPending(t *testing.T) {
	assert.True(t, domain.IncidentStateOpen.IsPending())
	assert.True(t, domain.IncidentStateAssigned.IsPending())
	assert.True(t, domain.IncidentStateInReview.IsPending())
	assert.False(t, domain.IncidentStateResolved.IsPending())
	assert.False(t, domain.IncidentStateRejected.IsPending())
}
