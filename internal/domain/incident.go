package domain

import (
	"time"

	"github.com/google/uuid"
)

// incidentTransitions lists the targets changeState accepts from each state.
// Assignment is handled separately by Assign.
var incidentTransitions = map[IncidentState][]IncidentState{
	IncidentStateOpen:     {IncidentStateInReview},
	IncidentStateAssigned: {IncidentStateInReview, IncidentStateResolved, IncidentStateRejected},
	IncidentStateInReview: {IncidentStateInReview, IncidentStateResolved, IncidentStateRejected},
}

// CanTransitionIncident reports whether changeState may move from -> to.
func CanTransitionIncident(from, to IncidentState) bool {
	for _, s := range incidentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsPending reports whether the incident still blocks its audit from closing.
func (i *Incident) IsPending() bool {
	return i.State.IsPending()
}

// Assign sets the assignee. Open incidents move to Assigned; Assigned and
// InReview incidents keep their state.
func (i *Incident) Assign(assignee uuid.UUID, now time.Time) error {
	if i.State.IsTerminal() {
		return ErrInvalidTransition
	}
	if i.State == IncidentStateOpen {
		i.State = IncidentStateAssigned
	}
	i.AssigneeID = &assignee
	i.UpdatedAt = now
	return nil
}

// ChangeState applies a resolution-workflow transition. Entering Resolved or
// Rejected stamps ResolvedAt; a terminal incident rejects every change.
func (i *Incident) ChangeState(to IncidentState, notes, correctiveAction string, now time.Time) error {
	if i.State.IsTerminal() {
		return ErrAlreadyTerminal
	}
	if !CanTransitionIncident(i.State, to) {
		return ErrInvalidTransition
	}
	i.State = to
	if to.IsTerminal() && i.ResolvedAt == nil {
		i.ResolvedAt = &now
	}
	if notes != "" {
		i.ResolutionNotes = notes
	}
	if correctiveAction != "" {
		i.CorrectiveAction = correctiveAction
	}
	i.UpdatedAt = now
	return nil
}
