package domain

// FileType represents the allowed evidence file types.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// AllowedContentTypes maps sniffed MIME types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// UserRole defines what a user may do on the receiving floor.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleSupervisor UserRole = "supervisor"
	RoleOperator   UserRole = "operator"
)

// ValidUserRoles lists the accepted role values.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:      true,
	RoleSupervisor: true,
	RoleOperator:   true,
}

// RoleLevel orders roles so that a higher level includes the lower ones.
var RoleLevel = map[UserRole]int{
	RoleOperator:   1,
	RoleSupervisor: 2,
	RoleAdmin:      3,
}

// AuditState is the lifecycle state of a receiving audit.
type AuditState string

const (
	AuditStateDraft     AuditState = "draft"
	AuditStateInProcess AuditState = "in_process"
	AuditStateFinalized AuditState = "finalized"
	AuditStateClosed    AuditState = "closed"
	AuditStateCancelled AuditState = "cancelled"
)

// ValidAuditStates lists the accepted audit state values.
var ValidAuditStates = map[AuditState]bool{
	AuditStateDraft:     true,
	AuditStateInProcess: true,
	AuditStateFinalized: true,
	AuditStateClosed:    true,
	AuditStateCancelled: true,
}

// IsTerminal reports whether no further transition is possible.
func (s AuditState) IsTerminal() bool {
	return s == AuditStateClosed || s == AuditStateCancelled
}

// IsEditable reports whether line items may still be added, edited or removed.
func (s AuditState) IsEditable() bool {
	return s == AuditStateDraft || s == AuditStateInProcess
}

// IncidentState is the resolution state of an incident.
type IncidentState string

const (
	IncidentStateOpen     IncidentState = "open"
	IncidentStateAssigned IncidentState = "assigned"
	IncidentStateInReview IncidentState = "in_review"
	IncidentStateResolved IncidentState = "resolved"
	IncidentStateRejected IncidentState = "rejected"
)

// IsTerminal reports whether the incident is resolved or rejected.
func (s IncidentState) IsTerminal() bool {
	return s == IncidentStateResolved || s == IncidentStateRejected
}

// IsPending is the negation of IsTerminal. Pending incidents block audit closure.
func (s IncidentState) IsPending() bool {
	return !s.IsTerminal()
}

// ValidIncidentStates lists the accepted incident state values.
var ValidIncidentStates = map[IncidentState]bool{
	IncidentStateOpen:     true,
	IncidentStateAssigned: true,
	IncidentStateInReview: true,
	IncidentStateResolved: true,
	IncidentStateRejected: true,
}

// IncidentType classifies the anomaly an incident tracks.
type IncidentType string

const (
	IncidentTypeShortage  IncidentType = "shortage"
	IncidentTypeOverage   IncidentType = "overage"
	IncidentTypeDamaged   IncidentType = "damaged"
	IncidentTypeWrongItem IncidentType = "wrong_item"
	IncidentTypeOther     IncidentType = "other"
)

// ValidIncidentTypes lists the accepted incident types.
var ValidIncidentTypes = map[IncidentType]bool{
	IncidentTypeShortage:  true,
	IncidentTypeOverage:   true,
	IncidentTypeDamaged:   true,
	IncidentTypeWrongItem: true,
	IncidentTypeOther:     true,
}

// Priority is the severity assigned to an incident.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ValidPriorities lists the accepted priorities.
var ValidPriorities = map[Priority]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// ItemCondition tags the physical condition of a received line.
type ItemCondition string

const (
	ConditionGood      ItemCondition = "good"
	ConditionDamaged   ItemCondition = "damaged"
	ConditionWrongItem ItemCondition = "wrong_item"
)

// ValidConditions lists the accepted condition tags.
var ValidConditions = map[ItemCondition]bool{
	ConditionGood:      true,
	ConditionDamaged:   true,
	ConditionWrongItem: true,
}

// EvidenceStatus represents the lifecycle of an uploaded evidence file.
type EvidenceStatus string

const (
	EvidenceStatusPending  EvidenceStatus = "pending"
	EvidenceStatusUploaded EvidenceStatus = "uploaded"
	EvidenceStatusFailed   EvidenceStatus = "failed"
)

// EntityType names the kind of entity a state change or event refers to.
type EntityType string

const (
	EntityAudit    EntityType = "audit"
	EntityIncident EntityType = "incident"
)

// EventKind identifies a notification event.
type EventKind string

const (
	EventIncidentCreated      EventKind = "incident.created"
	EventIncidentAssigned     EventKind = "incident.assigned"
	EventIncidentStateChanged EventKind = "incident.state_changed"
	EventAuditFinalized       EventKind = "audit.finalized"
	EventAuditClosed          EventKind = "audit.closed"
	EventAuditCancelled       EventKind = "audit.cancelled"
)

// OutboxStatus tracks delivery of a queued notification.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxProcessing OutboxStatus = "processing"
	OutboxSent       OutboxStatus = "sent"
	OutboxFailed     OutboxStatus = "failed"
	OutboxDead       OutboxStatus = "dead"
)
