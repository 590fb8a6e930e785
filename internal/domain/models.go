package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User is an authenticated actor: operator, supervisor or administrator.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Supplier is a vendor whose deliveries are audited.
type Supplier struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	TaxID        string    `db:"tax_id" json:"tax_id"`
	ContactEmail string    `db:"contact_email" json:"contact_email"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Product is a catalog entry identified by its code.
type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Unit        string    `db:"unit" json:"unit"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Audit is one receiving inspection against a purchase order.
type Audit struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	AuditNumber      string     `db:"audit_number" json:"audit_number"`
	SupplierID       uuid.UUID  `db:"supplier_id" json:"supplier_id"`
	PurchaseOrderRef string     `db:"purchase_order_ref" json:"purchase_order_ref"`
	AuditDate        time.Time  `db:"audit_date" json:"audit_date"`
	State            AuditState `db:"state" json:"state"`
	Notes            string     `db:"notes" json:"notes"`
	CreatedBy        uuid.UUID  `db:"created_by" json:"created_by"`
	FinalizedAt      *time.Time `db:"finalized_at" json:"finalized_at,omitempty"`
	ClosedAt         *time.Time `db:"closed_at" json:"closed_at,omitempty"`
	CancelledAt      *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CancelReason     string     `db:"cancel_reason" json:"cancel_reason,omitempty"`
	Version          int        `db:"version" json:"version"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// LineItem reconciles one product's expected and received quantities.
// The difference is derived from the quantities and never stored.
type LineItem struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	AuditID      uuid.UUID     `db:"audit_id" json:"audit_id"`
	ProductID    uuid.UUID     `db:"product_id" json:"product_id"`
	ExpectedQty  int           `db:"expected_qty" json:"expected_qty"`
	ReceivedQty  int           `db:"received_qty" json:"received_qty"`
	Condition    ItemCondition `db:"condition" json:"condition"`
	Notes        string        `db:"notes" json:"notes"`
	RegisteredBy uuid.UUID     `db:"registered_by" json:"registered_by"`
	RegisteredAt time.Time     `db:"registered_at" json:"registered_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// Difference is received minus expected.
func (li LineItem) Difference() int {
	return li.ReceivedQty - li.ExpectedQty
}

// MarshalJSON adds the derived difference to the JSON form.
func (li LineItem) MarshalJSON() ([]byte, error) {
	type alias LineItem
	return json.Marshal(struct {
		alias
		Difference int `json:"difference"`
	}{alias(li), li.Difference()})
}

// Incident is a tracked anomaly owned by an audit.
type Incident struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	IncidentNumber   string        `db:"incident_number" json:"incident_number"`
	AuditID          uuid.UUID     `db:"audit_id" json:"audit_id"`
	LineItemID       *uuid.UUID    `db:"line_item_id" json:"line_item_id,omitempty"`
	ProductID        *uuid.UUID    `db:"product_id" json:"product_id,omitempty"`
	Type             IncidentType  `db:"type" json:"type"`
	Priority         Priority      `db:"priority" json:"priority"`
	Description      string        `db:"description" json:"description"`
	State            IncidentState `db:"state" json:"state"`
	AssigneeID       *uuid.UUID    `db:"assignee_id" json:"assignee_id,omitempty"`
	ReporterID       uuid.UUID     `db:"reporter_id" json:"reporter_id"`
	DetectedAt       time.Time     `db:"detected_at" json:"detected_at"`
	ResolvedAt       *time.Time    `db:"resolved_at" json:"resolved_at,omitempty"`
	CorrectiveAction string        `db:"corrective_action" json:"corrective_action"`
	ResolutionNotes  string        `db:"resolution_notes" json:"resolution_notes"`
	Version          int           `db:"version" json:"version"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`
}

// IncidentComment is a free-text note on an incident.
type IncidentComment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	IncidentID uuid.UUID `db:"incident_id" json:"incident_id"`
	AuthorID   uuid.UUID `db:"author_id" json:"author_id"`
	Body       string    `db:"body" json:"body"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// StateChange is one row of the transition log for audits and incidents.
type StateChange struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	EntityType EntityType `db:"entity_type" json:"entity_type"`
	EntityID   uuid.UUID  `db:"entity_id" json:"entity_id"`
	FromState  string     `db:"from_state" json:"from_state"`
	ToState    string     `db:"to_state" json:"to_state"`
	ActorID    uuid.UUID  `db:"actor_id" json:"actor_id"`
	Notes      string     `db:"notes" json:"notes"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// Evidence is a weak reference from an incident to bytes in object storage.
type Evidence struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	IncidentID   uuid.UUID      `db:"incident_id" json:"incident_id"`
	FileName     string         `db:"file_name" json:"file_name"`
	OriginalName string         `db:"original_name" json:"original_name"`
	FileType     FileType       `db:"file_type" json:"file_type"`
	FileSize     int64          `db:"file_size" json:"file_size"`
	S3Bucket     string         `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string         `db:"s3_key" json:"s3_key"`
	ContentType  string         `db:"content_type" json:"content_type"`
	Status       EvidenceStatus `db:"status" json:"status"`
	UploadedBy   uuid.UUID      `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// NotificationEvent is produced by a workflow transition for delivery by a
// publisher. Producing it is part of the transition; delivering it is not.
type NotificationEvent struct {
	Kind            EventKind      `json:"kind"`
	EntityID        uuid.UUID      `json:"entity_id"`
	AffectedUserIDs []uuid.UUID    `json:"affected_user_ids"`
	Payload         map[string]any `json:"payload"`
	OccurredAt      time.Time      `json:"occurred_at"`
}

// OutboxEntry is a queued NotificationEvent awaiting delivery.
type OutboxEntry struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Kind          EventKind       `db:"kind" json:"kind"`
	EntityID      uuid.UUID       `db:"entity_id" json:"entity_id"`
	Event         json.RawMessage `db:"event" json:"event"`
	Status        OutboxStatus    `db:"status" json:"status"`
	Attempts      int             `db:"attempts" json:"attempts"`
	LastError     string          `db:"last_error" json:"last_error,omitempty"`
	NextAttemptAt time.Time       `db:"next_attempt_at" json:"next_attempt_at"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	SentAt        *time.Time      `db:"sent_at" json:"sent_at,omitempty"`
}

// Decode unmarshals the queued event.
func (o *OutboxEntry) Decode() (NotificationEvent, error) {
	var ev NotificationEvent
	err := json.Unmarshal(o.Event, &ev)
	return ev, err
}

// AuditFilter narrows audit listings. Nil fields are ignored.
type AuditFilter struct {
	State      *AuditState
	SupplierID *uuid.UUID
	CreatedBy  *uuid.UUID
	From       *time.Time
	To         *time.Time
	Offset     int
	Limit      int
}

// IncidentFilter narrows incident listings. Nil fields are ignored.
type IncidentFilter struct {
	AuditID    *uuid.UUID
	State      *IncidentState
	AssigneeID *uuid.UUID
	Type       *IncidentType
	Offset     int
	Limit      int
}

// Stats holds dashboard counts for audits and incidents.
type Stats struct {
	TotalAudits     int `db:"total_audits" json:"total_audits"`
	AuditsDraft     int `db:"audits_draft" json:"audits_draft"`
	AuditsInProcess int `db:"audits_in_process" json:"audits_in_process"`
	AuditsFinalized int `db:"audits_finalized" json:"audits_finalized"`
	AuditsClosed    int `db:"audits_closed" json:"audits_closed"`
	AuditsCancelled int `db:"audits_cancelled" json:"audits_cancelled"`

	TotalIncidents     int `db:"total_incidents" json:"total_incidents"`
	IncidentsOpen      int `db:"incidents_open" json:"incidents_open"`
	IncidentsAssigned  int `db:"incidents_assigned" json:"incidents_assigned"`
	IncidentsInReview  int `db:"incidents_in_review" json:"incidents_in_review"`
	IncidentsResolved  int `db:"incidents_resolved" json:"incidents_resolved"`
	IncidentsRejected  int `db:"incidents_rejected" json:"incidents_rejected"`
	IncidentsShortage  int `db:"incidents_shortage" json:"incidents_shortage"`
	IncidentsOverage   int `db:"incidents_overage" json:"incidents_overage"`
	IncidentsDamaged   int `db:"incidents_damaged" json:"incidents_damaged"`
	IncidentsWrongItem int `db:"incidents_wrong_item" json:"incidents_wrong_item"`
	IncidentsOther     int `db:"incidents_other" json:"incidents_other"`

	// AssignedPending counts the caller's unresolved incidents.
	AssignedPending int `db:"assigned_pending" json:"assigned_pending"`
}
