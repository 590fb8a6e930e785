package domain

import (
	"time"

	"github.com/google/uuid"
)

// auditTransitions lists the states reachable from each audit state.
// Closed and Cancelled have no outgoing edges.
var auditTransitions = map[AuditState][]AuditState{
	AuditStateDraft:     {AuditStateInProcess, AuditStateFinalized, AuditStateCancelled},
	AuditStateInProcess: {AuditStateFinalized, AuditStateCancelled},
	AuditStateFinalized: {AuditStateClosed, AuditStateCancelled},
}

// CanTransitionAudit reports whether from -> to is an edge of the audit lifecycle.
func CanTransitionAudit(from, to AuditState) bool {
	for _, s := range auditTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Start promotes a draft working copy to a live audit.
func (a *Audit) Start(now time.Time) error {
	if !CanTransitionAudit(a.State, AuditStateInProcess) {
		return ErrInvalidState
	}
	a.State = AuditStateInProcess
	a.UpdatedAt = now
	return nil
}

// EnsureEditable fails unless line items may be changed.
func (a *Audit) EnsureEditable() error {
	if !a.State.IsEditable() {
		return ErrInvalidState
	}
	return nil
}

// Finalize checks the state and line-item gates, then stamps the finalization time.
func (a *Audit) Finalize(itemCount int, now time.Time) error {
	if !CanTransitionAudit(a.State, AuditStateFinalized) {
		return ErrInvalidState
	}
	if itemCount == 0 {
		return ErrEmptyAudit
	}
	a.State = AuditStateFinalized
	a.FinalizedAt = &now
	a.UpdatedAt = now
	return nil
}

// Close requires a finalized audit with no pending incidents.
func (a *Audit) Close(pending []uuid.UUID, now time.Time) error {
	if a.State != AuditStateFinalized {
		return ErrInvalidState
	}
	if len(pending) > 0 {
		return &IncidentsPendingError{Count: len(pending), IncidentIDs: pending}
	}
	a.State = AuditStateClosed
	a.ClosedAt = &now
	a.UpdatedAt = now
	return nil
}

// Cancel aborts the audit from any non-terminal state. Incidents are left as they are.
func (a *Audit) Cancel(reason string, now time.Time) error {
	if !CanTransitionAudit(a.State, AuditStateCancelled) {
		return ErrInvalidState
	}
	a.State = AuditStateCancelled
	a.CancelReason = reason
	a.CancelledAt = &now
	a.UpdatedAt = now
	return nil
}
