package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidState       = errors.New("operation not allowed in current state")
	ErrInvalidAudit       = errors.New("audit is closed or cancelled")
	ErrEmptyAudit         = errors.New("audit has no line items")
	ErrIncidentsPending   = errors.New("audit has pending incidents")
	ErrAlreadyTerminal    = errors.New("incident is already resolved or rejected")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrDuplicateNumber    = errors.New("document number already issued")
	ErrConflict           = errors.New("concurrent modification")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrDuplicateCode      = errors.New("code already exists")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)

// Entity-specific not-found errors. All of them satisfy errors.Is(err, ErrNotFound).
var (
	ErrAuditNotFound    = fmt.Errorf("audit: %w", ErrNotFound)
	ErrLineItemNotFound = fmt.Errorf("line item: %w", ErrNotFound)
	ErrIncidentNotFound = fmt.Errorf("incident: %w", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product: %w", ErrNotFound)
	ErrSupplierNotFound = fmt.Errorf("supplier: %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user: %w", ErrNotFound)
	ErrEvidenceNotFound = fmt.Errorf("evidence: %w", ErrNotFound)
)

// IncidentsPendingError is returned when closing an audit that still owns
// non-terminal incidents.
type IncidentsPendingError struct {
	Count       int
	IncidentIDs []uuid.UUID
}

func (e *IncidentsPendingError) Error() string {
	ids := make([]string, len(e.IncidentIDs))
	for i, id := range e.IncidentIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%s: %d pending [%s]", ErrIncidentsPending, e.Count, strings.Join(ids, ", "))
}

// Is lets errors.Is match the ErrIncidentsPending sentinel.
func (e *IncidentsPendingError) Is(target error) bool {
	return target == ErrIncidentsPending
}
