package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

// Request and response shapes bound by handlers and documented by swag.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"supervisor@warehouse.test"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"operator@warehouse.test"`
	Password string `json:"password" binding:"required,min=8" example:"securepassword123"`
	FullName string `json:"full_name" binding:"required" example:"Ana Operadora"`
	Role     string `json:"role" binding:"required" example:"operator"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	FullName *string `json:"full_name" example:"Ana Supervisora"`
	Role     *string `json:"role" example:"supervisor"`
	IsActive *bool   `json:"is_active" example:"true"`
	Password *string `json:"password" example:"newpassword123"`
}

// CreateAuditRequest represents the create audit request body.
type CreateAuditRequest struct {
	SupplierID       uuid.UUID  `json:"supplier_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	PurchaseOrderRef string     `json:"purchase_order_ref" binding:"required" example:"PO-2026-1187"`
	AuditDate        *time.Time `json:"audit_date" example:"2026-03-02T08:30:00Z"`
	Notes            string     `json:"notes" example:"Morning delivery, dock 3"`
	Draft            bool       `json:"draft" example:"false"`
}

// AddLineItemRequest represents the add line item request body.
type AddLineItemRequest struct {
	ProductID   uuid.UUID            `json:"product_id" binding:"required" example:"660e8400-e29b-41d4-a716-446655440001"`
	ExpectedQty *int                 `json:"expected_qty" binding:"required,min=0" example:"100"`
	ReceivedQty *int                 `json:"received_qty" binding:"required,min=0" example:"97"`
	Condition   domain.ItemCondition `json:"condition" example:"good"`
	Notes       string               `json:"notes" example:"Three boxes missing"`
}

// UpdateLineItemRequest represents the update line item request body.
type UpdateLineItemRequest struct {
	ExpectedQty *int                  `json:"expected_qty" binding:"omitempty,min=0" example:"100"`
	ReceivedQty *int                  `json:"received_qty" binding:"omitempty,min=0" example:"100"`
	Condition   *domain.ItemCondition `json:"condition" example:"good"`
	Notes       *string               `json:"notes" example:"Recounted"`
}

// CancelAuditRequest represents the cancel audit request body.
type CancelAuditRequest struct {
	Reason string `json:"reason" example:"Delivery rejected at the gate"`
}

// CreateIncidentRequest represents a manually reported incident.
type CreateIncidentRequest struct {
	LineItemID  *uuid.UUID          `json:"line_item_id" example:"770e8400-e29b-41d4-a716-446655440002"`
	ProductID   *uuid.UUID          `json:"product_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Type        domain.IncidentType `json:"type" binding:"required" example:"damaged"`
	Priority    domain.Priority     `json:"priority" example:"high"`
	Description string              `json:"description" binding:"required" example:"Crushed pallet corner"`
}

// AssignIncidentRequest represents the assign incident request body.
type AssignIncidentRequest struct {
	AssigneeID uuid.UUID `json:"assignee_id" binding:"required" example:"987fcdeb-51a2-3bc4-d567-890123456789"`
}

// ChangeIncidentStateRequest represents the change state request body.
type ChangeIncidentStateRequest struct {
	State            domain.IncidentState `json:"state" binding:"required" example:"resolved"`
	Notes            string               `json:"notes" example:"Supplier credited the shortage"`
	CorrectiveAction string               `json:"corrective_action" example:"Credit note CN-5521"`
}

// AddCommentRequest represents the add comment request body.
type AddCommentRequest struct {
	Body string `json:"body" binding:"required" example:"Called the carrier, awaiting photos"`
}

// --- Response Types ---

// Response is the generic success envelope used in swagger annotations.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody is the error envelope used in swagger annotations.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message" example:"deleted"`
}

// DownloadURLResponse carries a presigned evidence URL.
type DownloadURLResponse struct {
	URL string `json:"url" example:"https://bucket.s3.amazonaws.com/audits/...?X-Amz-Signature=..."`
}

// TransitionResponse is the audit or incident after a transition plus the
// events it produced.
type TransitionResponse struct {
	Entity interface{}                `json:"entity"`
	Events []domain.NotificationEvent `json:"events"`
}

// LineItemResponse is the outcome of registering a line item.
type LineItemResponse struct {
	LineItem *domain.LineItem           `json:"line_item"`
	Incident *domain.Incident           `json:"incident,omitempty"`
	Events   []domain.NotificationEvent `json:"events"`
}
