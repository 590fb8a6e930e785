package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

// IncidentHandler handles incident resolution endpoints.
type IncidentHandler struct {
	incidentService service.IncidentService
}

// NewIncidentHandler creates a new IncidentHandler.
func NewIncidentHandler(incidentService service.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidentService: incidentService}
}

func respondIncidentResult(c *gin.Context, result *service.IncidentResult) {
	RespondOK(c, TransitionResponse{Entity: result.Incident, Events: []domain.NotificationEvent{result.Event}})
}

// List handles GET /api/v1/incidents
// @Summary List incidents
// @Description Newest detection first
// @Tags incidents
// @Produce json
// @Param audit_id query string false "Filter by audit"
// @Param state query string false "Filter by state"
// @Param assignee_id query string false "Filter by assignee"
// @Param type query string false "Filter by type"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Incident,meta=PagMeta} "Incidents"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /incidents [get]
func (h *IncidentHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	filter := domain.IncidentFilter{Offset: offset, Limit: limit}

	var ok bool
	if filter.AuditID, ok = optionalUUID(c, "audit_id"); !ok {
		return
	}
	if filter.AssigneeID, ok = optionalUUID(c, "assignee_id"); !ok {
		return
	}
	if s := c.Query("state"); s != "" {
		state := domain.IncidentState(s)
		if !domain.ValidIncidentStates[state] {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown incident state")
			return
		}
		filter.State = &state
	}
	if t := c.Query("type"); t != "" {
		typ := domain.IncidentType(t)
		if !domain.ValidIncidentTypes[typ] {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown incident type")
			return
		}
		filter.Type = &typ
	}

	incidents, total, err := h.incidentService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, incidents, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/incidents/:id
// @Summary Get incident
// @Tags incidents
// @Produce json
// @Param id path string true "Incident ID (UUID)"
// @Success 200 {object} Response{data=domain.Incident} "Incident"
// @Failure 404 {object} ErrorResponseBody "Incident not found"
// @Security BearerAuth
// @Router /incidents/{id} [get]
func (h *IncidentHandler) GetByID(c *gin.Context) {
	incidentID, ok := parseID(c, "id", "incident")
	if !ok {
		return
	}

	inc, err := h.incidentService.GetByID(c.Request.Context(), incidentID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inc)
}

// Assign handles POST /api/v1/incidents/:id/assign
// @Summary Assign an incident
// @Description Open incidents become assigned; assigned and in-review incidents are reassigned in place.
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID (UUID)"
// @Param request body AssignIncidentRequest true "Assignee"
// @Success 200 {object} Response{data=TransitionResponse} "Incident assigned"
// @Failure 404 {object} ErrorResponseBody "Incident or user not found"
// @Failure 409 {object} ErrorResponseBody "Incident already resolved or rejected"
// @Security BearerAuth
// @Router /incidents/{id}/assign [post]
func (h *IncidentHandler) Assign(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	incidentID, ok := parseID(c, "id", "incident")
	if !ok {
		return
	}

	var req AssignIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.incidentService.Assign(c.Request.Context(), incidentID, req.AssigneeID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	respondIncidentResult(c, result)
}

// ChangeState handles POST /api/v1/incidents/:id/state
// @Summary Move an incident through its workflow
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID (UUID)"
// @Param request body ChangeIncidentStateRequest true "Target state"
// @Success 200 {object} Response{data=TransitionResponse} "State changed"
// @Failure 400 {object} ErrorResponseBody "Unknown state"
// @Failure 409 {object} ErrorResponseBody "Invalid transition or already terminal"
// @Security BearerAuth
// @Router /incidents/{id}/state [post]
func (h *IncidentHandler) ChangeState(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	incidentID, ok := parseID(c, "id", "incident")
	if !ok {
		return
	}

	var req ChangeIncidentStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.incidentService.ChangeState(c.Request.Context(), &service.ChangeIncidentStateInput{
		IncidentID:       incidentID,
		State:            req.State,
		Notes:            req.Notes,
		CorrectiveAction: req.CorrectiveAction,
		ActorID:          userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	respondIncidentResult(c, result)
}

// AddComment handles POST /api/v1/incidents/:id/comments
// @Summary Comment on an incident
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID (UUID)"
// @Param request body AddCommentRequest true "Comment"
// @Success 201 {object} Response{data=domain.IncidentComment} "Comment added"
// @Failure 404 {object} ErrorResponseBody "Incident not found"
// @Security BearerAuth
// @Router /incidents/{id}/comments [post]
func (h *IncidentHandler) AddComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	incidentID, ok := parseID(c, "id", "incident")
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	comment, err := h.incidentService.AddComment(c.Request.Context(), incidentID, userID, req.Body)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, comment)
}

// ListComments handles GET /api/v1/incidents/:id/comments
// @Summary List incident comments
// @Tags incidents
// @Produce json
// @Param id path string true "Incident ID (UUID)"
// @Success 200 {object} Response{data=[]domain.IncidentComment} "Comments, newest first"
// @Security BearerAuth
// @Router /incidents/{id}/comments [get]
func (h *IncidentHandler) ListComments(c *gin.Context) {
	incidentID, ok := parseID(c, "id", "incident")
	if !ok {
		return
	}

	comments, err := h.incidentService.ListComments(c.Request.Context(), incidentID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, comments)
}

// History handles GET /api/v1/incidents/:id/history
// @Summary Incident transition log
// @Tags incidents
// @Produce json
// @Param id path string true "Incident ID (UUID)"
// @Success 200 {object} Response{data=[]domain.StateChange} "Transitions, newest first"
// @Security BearerAuth
// @Router /incidents/{id}/history [get]
func (h *IncidentHandler) History(c *gin.Context) {
	incidentID, ok := parseID(c, "id", "incident")
	if !ok {
		return
	}

	changes, err := h.incidentService.History(c.Request.Context(), incidentID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, changes)
}
