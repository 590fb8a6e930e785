package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/mocks"
)

func TestStatsService_GetStats_ScopeByRole(t *testing.T) {
	tests := []struct {
		role   domain.UserRole
		method string
	}{
		{domain.RoleAdmin, "GetGlobalStats"},
		{domain.RoleSupervisor, "GetGlobalStats"},
		{domain.RoleOperator, "GetCreatorStats"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			repo := new(mocks.MockStatsRepo)
			userID := uuid.New()
			want := &domain.Stats{TotalAudits: 3}
			repo.On(tt.method, mock.Anything, userID).Return(want, nil)

			got, err := service.NewStatsService(repo).GetStats(context.Background(), userID, tt.role)

			require.NoError(t, err)
			assert.Same(t, want, got)
			repo.AssertExpectations(t)
		})
	}
}

func TestStatsService_GetStats_MemoryCounts(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	a := f.createAudit(t)
	short := f.addLine(t, a.ID, 10, 8, domain.ConditionGood).Incident
	f.addLine(t, a.ID, 4, 5, domain.ConditionGood)
	_, err := f.incidents.Assign(ctx, short.ID, f.reviewer.ID, f.reviewer.ID)
	require.NoError(t, err)

	other := &domain.Audit{
		ID:          uuid.New(),
		AuditNumber: "AUD-OTHER-1",
		SupplierID:  f.supplier.ID,
		State:       domain.AuditStateDraft,
		CreatedBy:   f.reviewer.ID,
	}
	require.NoError(t, f.repos.Audits.Create(ctx, other))

	svc := service.NewStatsService(f.repos.Stats)

	global, err := svc.GetStats(ctx, f.reviewer.ID, domain.RoleSupervisor)
	require.NoError(t, err)
	assert.Equal(t, 2, global.TotalAudits)
	assert.Equal(t, 2, global.TotalIncidents)
	assert.Equal(t, 1, global.IncidentsOpen)
	assert.Equal(t, 1, global.IncidentsAssigned)
	assert.Equal(t, 1, global.IncidentsShortage)
	assert.Equal(t, 1, global.IncidentsOverage)
	assert.Equal(t, 1, global.AssignedPending)

	own, err := svc.GetStats(ctx, f.operator.ID, domain.RoleOperator)
	require.NoError(t, err)
	assert.Equal(t, 1, own.TotalAudits)
	assert.Equal(t, 2, own.TotalIncidents)
	assert.Zero(t, own.AuditsDraft+own.AuditsInProcess-1)
	assert.Zero(t, own.AssignedPending)
}
