package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

type statsRepo struct{ s *Store }

func (r *statsRepo) GetGlobalStats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error) {
	return r.count(ctx, userID, func(domain.Audit) bool { return true })
}

func (r *statsRepo) GetCreatorStats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error) {
	return r.count(ctx, userID, func(a domain.Audit) bool { return a.CreatedBy == userID })
}

func (r *statsRepo) count(ctx context.Context, userID uuid.UUID, include func(domain.Audit) bool) (*domain.Stats, error) {
	var st domain.Stats
	_ = r.s.do(ctx, func(t *tables) error {
		for _, a := range t.audits {
			if !include(a) {
				continue
			}
			st.TotalAudits++
			switch a.State {
			case domain.AuditStateDraft:
				st.AuditsDraft++
			case domain.AuditStateInProcess:
				st.AuditsInProcess++
			case domain.AuditStateFinalized:
				st.AuditsFinalized++
			case domain.AuditStateClosed:
				st.AuditsClosed++
			case domain.AuditStateCancelled:
				st.AuditsCancelled++
			}
		}
		for _, inc := range t.incidents {
			if inc.AssigneeID != nil && *inc.AssigneeID == userID && inc.State.IsPending() {
				st.AssignedPending++
			}
			if a, ok := t.audits[inc.AuditID]; !ok || !include(a) {
				continue
			}
			st.TotalIncidents++
			switch inc.State {
			case domain.IncidentStateOpen:
				st.IncidentsOpen++
			case domain.IncidentStateAssigned:
				st.IncidentsAssigned++
			case domain.IncidentStateInReview:
				st.IncidentsInReview++
			case domain.IncidentStateResolved:
				st.IncidentsResolved++
			case domain.IncidentStateRejected:
				st.IncidentsRejected++
			}
			switch inc.Type {
			case domain.IncidentTypeShortage:
				st.IncidentsShortage++
			case domain.IncidentTypeOverage:
				st.IncidentsOverage++
			case domain.IncidentTypeDamaged:
				st.IncidentsDamaged++
			case domain.IncidentTypeWrongItem:
				st.IncidentsWrongItem++
			case domain.IncidentTypeOther:
				st.IncidentsOther++
			}
		}
		return nil
	})
	return &st, nil
}
