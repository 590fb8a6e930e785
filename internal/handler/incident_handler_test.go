package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/handler"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/mocks"
)

func newIncidentHandler() (*handler.IncidentHandler, *mocks.MockIncidentService) {
	svc := new(mocks.MockIncidentService)
	return handler.NewIncidentHandler(svc), svc
}

func TestIncidentHandler_List_Filters(t *testing.T) {
	h, svc := newIncidentHandler()
	assignee := uuid.New()

	svc.On("List", mock.Anything, mock.MatchedBy(func(f domain.IncidentFilter) bool {
		return f.AssigneeID != nil && *f.AssigneeID == assignee &&
			f.State != nil && *f.State == domain.IncidentStateInReview &&
			f.Type == nil && f.Offset == 5
	})).Return([]domain.Incident{}, 0, nil)

	c, w := newContext(http.MethodGet, "/api/v1/incidents?state=in_review&assignee_id="+assignee.String()+"&offset=5", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestIncidentHandler_List_UnknownType(t *testing.T) {
	h, svc := newIncidentHandler()

	c, w := newContext(http.MethodGet, "/api/v1/incidents?type=lost", nil)
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestIncidentHandler_Assign(t *testing.T) {
	h, svc := newIncidentHandler()
	actor, incidentID, assignee := uuid.New(), uuid.New(), uuid.New()

	svc.On("Assign", mock.Anything, incidentID, assignee, actor).Return(&service.IncidentResult{
		Incident: &domain.Incident{ID: incidentID, State: domain.IncidentStateAssigned, AssigneeID: &assignee},
		Event:    domain.NotificationEvent{Kind: domain.EventIncidentAssigned, AffectedUserIDs: []uuid.UUID{assignee}},
	}, nil)

	c, w := newContext(http.MethodPost, "/", map[string]any{"assignee_id": assignee})
	c.Params = gin.Params{{Key: "id", Value: incidentID.String()}}
	setAuthContext(c, actor, domain.RoleSupervisor)

	h.Assign(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(domain.EventIncidentAssigned))
	svc.AssertExpectations(t)
}

func TestIncidentHandler_ChangeState_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"terminal", domain.ErrAlreadyTerminal, http.StatusConflict, "ALREADY_TERMINAL"},
		{"skipped review", domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{"concurrent edit", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"missing", domain.ErrIncidentNotFound, http.StatusNotFound, "INCIDENT_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newIncidentHandler()
			incidentID := uuid.New()
			svc.On("ChangeState", mock.Anything, mock.MatchedBy(func(in *service.ChangeIncidentStateInput) bool {
				return in.IncidentID == incidentID && in.State == domain.IncidentStateResolved && in.CorrectiveAction == "credit note"
			})).Return(nil, tt.err)

			c, w := newContext(http.MethodPost, "/", map[string]any{"state": "resolved", "corrective_action": "credit note"})
			c.Params = gin.Params{{Key: "id", Value: incidentID.String()}}
			setAuthContext(c, uuid.New(), domain.RoleSupervisor)

			h.ChangeState(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Error.Code)
		})
	}
}

func TestIncidentHandler_AddComment(t *testing.T) {
	h, svc := newIncidentHandler()
	author, incidentID := uuid.New(), uuid.New()

	svc.On("AddComment", mock.Anything, incidentID, author, "carrier called").
		Return(&domain.IncidentComment{ID: uuid.New(), IncidentID: incidentID, AuthorID: author, Body: "carrier called"}, nil)

	c, w := newContext(http.MethodPost, "/", map[string]any{"body": "carrier called"})
	c.Params = gin.Params{{Key: "id", Value: incidentID.String()}}
	setAuthContext(c, author, domain.RoleOperator)

	h.AddComment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestIncidentHandler_AddComment_EmptyBody(t *testing.T) {
	h, _ := newIncidentHandler()

	c, w := newContext(http.MethodPost, "/", map[string]any{})
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	setAuthContext(c, uuid.New(), domain.RoleOperator)

	h.AddComment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
