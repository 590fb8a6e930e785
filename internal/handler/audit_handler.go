package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

// AuditHandler handles receiving audit endpoints.
type AuditHandler struct {
	auditService    service.AuditService
	incidentService service.IncidentService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService service.AuditService, incidentService service.IncidentService) *AuditHandler {
	return &AuditHandler{auditService: auditService, incidentService: incidentService}
}

func nonNilEvents(events []domain.NotificationEvent) []domain.NotificationEvent {
	if events == nil {
		return []domain.NotificationEvent{}
	}
	return events
}

func respondAuditResult(c *gin.Context, result *service.AuditResult) {
	RespondOK(c, TransitionResponse{Entity: result.Audit, Events: nonNilEvents(result.Events)})
}

// Create handles POST /api/v1/audits
// @Summary Open a receiving audit
// @Description Creates an audit in progress, or a draft when draft=true. The audit number is assigned by the server.
// @Tags audits
// @Accept json
// @Produce json
// @Param request body CreateAuditRequest true "Audit header"
// @Success 201 {object} Response{data=domain.Audit} "Audit created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Supplier not found"
// @Security BearerAuth
// @Router /audits [post]
func (h *AuditHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	input := &service.CreateAuditInput{
		SupplierID:       req.SupplierID,
		PurchaseOrderRef: req.PurchaseOrderRef,
		Notes:            req.Notes,
		CreatorID:        userID,
		Draft:            req.Draft,
	}
	if req.AuditDate != nil {
		input.AuditDate = req.AuditDate.UTC()
	}

	audit, err := h.auditService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, audit)
}

// List handles GET /api/v1/audits
// @Summary List audits
// @Tags audits
// @Produce json
// @Param state query string false "Filter by state"
// @Param supplier_id query string false "Filter by supplier"
// @Param created_by query string false "Filter by creator"
// @Param from query string false "Audit date lower bound (YYYY-MM-DD or RFC3339)"
// @Param to query string false "Audit date upper bound (YYYY-MM-DD or RFC3339)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Audit,meta=PagMeta} "Audits"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	filter := domain.AuditFilter{Offset: offset, Limit: limit}

	if s := c.Query("state"); s != "" {
		state := domain.AuditState(s)
		if !domain.ValidAuditStates[state] {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown audit state")
			return
		}
		filter.State = &state
	}
	var ok bool
	if filter.SupplierID, ok = optionalUUID(c, "supplier_id"); !ok {
		return
	}
	if filter.CreatedBy, ok = optionalUUID(c, "created_by"); !ok {
		return
	}
	if filter.From, ok = optionalTime(c, "from"); !ok {
		return
	}
	if filter.To, ok = optionalTime(c, "to"); !ok {
		return
	}

	audits, total, err := h.auditService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, audits, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/audits/:id
// @Summary Get audit detail
// @Description Audit with its line items and incidents
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID (UUID)"
// @Success 200 {object} Response{data=service.AuditDetail} "Audit detail"
// @Failure 404 {object} ErrorResponseBody "Audit not found"
// @Security BearerAuth
// @Router /audits/{id} [get]
func (h *AuditHandler) GetByID(c *gin.Context) {
	auditID, ok := parseID(c, "id", "audit")
	if !ok {
		return
	}

	detail, err := h.auditService.Get(c.Request.Context(), auditID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Start handles POST /api/v1/audits/:id/start
// @Summary Start a draft audit
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID (UUID)"
// @Success 200 {object} Response{data=TransitionResponse} "Audit started"
// @Failure 409 {object} ErrorResponseBody "Not a draft"
// @Security BearerAuth
// @Router /audits/{id}/start [post]
func (h *AuditHandler) Start(c *gin.Context) {
	h.transition(c, h.auditService.Start)
}

// Finalize handles POST /api/v1/audits/:id/finalize
// @Summary Finalize an audit
// @Description Freezes line items. Fails on an audit with no line items.
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID (UUID)"
// @Success 200 {object} Response{data=TransitionResponse} "Audit finalized"
// @Failure 409 {object} ErrorResponseBody "Invalid state"
// @Failure 422 {object} ErrorResponseBody "Audit has no line items"
// @Security BearerAuth
// @Router /audits/{id}/finalize [post]
func (h *AuditHandler) Finalize(c *gin.Context) {
	h.transition(c, h.auditService.Finalize)
}

// Close handles POST /api/v1/audits/:id/close
// @Summary Close a finalized audit
// @Description Requires every incident to be resolved or rejected. Supervisors and admins only.
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID (UUID)"
// @Success 200 {object} Response{data=TransitionResponse} "Audit closed"
// @Failure 403 {object} ErrorResponseBody "Forbidden"
// @Failure 409 {object} ErrorResponseBody "Invalid state or pending incidents"
// @Security BearerAuth
// @Router /audits/{id}/close [post]
func (h *AuditHandler) Close(c *gin.Context) {
	h.transition(c, h.auditService.Close)
}

func (h *AuditHandler) transition(c *gin.Context, fn func(ctx context.Context, auditID, actorID uuid.UUID) (*service.AuditResult, error)) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	auditID, ok := parseID(c, "id", "audit")
	if !ok {
		return
	}

	result, err := fn(c.Request.Context(), auditID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	respondAuditResult(c, result)
}

// Cancel handles POST /api/v1/audits/:id/cancel
// @Summary Cancel an audit
// @Tags audits
// @Accept json
// @Produce json
// @Param id path string true "Audit ID (UUID)"
// @Param request body CancelAuditRequest false "Reason"
// @Success 200 {object} Response{data=TransitionResponse} "Audit cancelled"
// @Failure 409 {object} ErrorResponseBody "Already closed or cancelled"
// @Security BearerAuth
// @Router /audits/{id}/cancel [post]
func (h *AuditHandler) Cancel(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	auditID, ok := parseID(c, "id", "audit")
	if !ok {
		return
	}

	var req CancelAuditRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	result, err := h.auditService.Cancel(c.Request.Context(), auditID, req.Reason, userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	respondAuditResult(c, result)
}

// History handles GET /api/v1/audits/:id/history
// @Summary Audit transition log
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID (UUID)"
// @Success 200 {object} Response{data=[]domain.StateChange} "Transitions, newest first"
// @Failure 404 {object} ErrorResponseBody "Audit not found"
// @Security BearerAuth
// @Router /audits/{id}/history [get]
func (h *AuditHandler) History(c *gin.Context) {
	auditID, ok := parseID(c, "id", "audit")
	if !ok {
		return
	}

	changes, err := h.auditService.History(c.Request.Context(), auditID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, changes)
}

// AddLineItem handles POST /api/v1/audits/:id/items
// @Summary Register a line item
// @Description Records expected and received quantities. A discrepancy opens an incident in the same transaction.
// @Tags audits
// @Accept json
// @Produce json
// @Param id path string true "Audit ID (UUID)"
// @Param request body AddLineItemRequest true "Line item"
// @Success 201 {object} Response{data=LineItemResponse} "Line item registered"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Audit or product not found"
// @Failure 409 {object} ErrorResponseBody "Audit not editable"
// @Security BearerAuth
// @Router /audits/{id}/items [post]
func (h *AuditHandler) AddLineItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	auditID, ok := parseID(c, "id", "audit")
	if !ok {
		return
	}

	var req AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.auditService.AddLineItem(c.Request.Context(), &service.AddLineItemInput{
		AuditID:     auditID,
		ProductID:   req.ProductID,
		ExpectedQty: *req.ExpectedQty,
		ReceivedQty: *req.ReceivedQty,
		Condition:   req.Condition,
		Notes:       req.Notes,
		ActorID:     userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, LineItemResponse{
		LineItem: result.LineItem,
		Incident: result.Incident,
		Events:   nonNilEvents(result.Events),
	})
}

// UpdateLineItem handles PUT /api/v1/audits/:id/items/:itemId
// @Summary Correct a line item
// @Description Existing incidents are not modified.
// @Tags audits
// @Accept json
// @Produce json
// @Param id path string true "Audit ID (UUID)"
// @Param itemId path string true "Line item ID (UUID)"
// @Param request body UpdateLineItemRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.LineItem} "Line item updated"
// @Failure 404 {object} ErrorResponseBody "Line item not found"
// @Failure 409 {object} ErrorResponseBody "Audit not editable"
// @Security BearerAuth
// @Router /audits/{id}/items/{itemId} [put]
func (h *AuditHandler) UpdateLineItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	auditID, ok := parseID(c, "id", "audit")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId", "line item")
	if !ok {
		return
	}

	var req UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.auditService.UpdateLineItem(c.Request.Context(), &service.UpdateLineItemInput{
		AuditID:     auditID,
		ItemID:      itemID,
		ExpectedQty: req.ExpectedQty,
		ReceivedQty: req.ReceivedQty,
		Condition:   req.Condition,
		Notes:       req.Notes,
		ActorID:     userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, item)
}

// RemoveLineItem handles DELETE /api/v1/audits/:id/items/:itemId
// @Summary Remove a line item
// @Description Incidents raised from the item are kept and lose their line reference.
// @Tags audits
// @Produce json
// @Param id path string true "Audit ID (UUID)"
// @Param itemId path string true "Line item ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Line item removed"
// @Failure 404 {object} ErrorResponseBody "Line item not found"
// @Failure 409 {object} ErrorResponseBody "Audit not editable"
// @Security BearerAuth
// @Router /audits/{id}/items/{itemId} [delete]
func (h *AuditHandler) RemoveLineItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	auditID, ok := parseID(c, "id", "audit")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId", "line item")
	if !ok {
		return
	}

	if err := h.auditService.RemoveLineItem(c.Request.Context(), auditID, itemID, userID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "line item removed"})
}

// CreateIncident handles POST /api/v1/audits/:id/incidents
// @Summary Report an incident manually
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Audit ID (UUID)"
// @Param request body CreateIncidentRequest true "Incident"
// @Success 201 {object} Response{data=TransitionResponse} "Incident opened"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Audit closed or cancelled"
// @Security BearerAuth
// @Router /audits/{id}/incidents [post]
func (h *AuditHandler) CreateIncident(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	auditID, ok := parseID(c, "id", "audit")
	if !ok {
		return
	}

	var req CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.incidentService.Create(c.Request.Context(), &service.CreateIncidentInput{
		AuditID:     auditID,
		LineItemID:  req.LineItemID,
		ProductID:   req.ProductID,
		Type:        req.Type,
		Priority:    req.Priority,
		Description: req.Description,
		ReporterID:  userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, TransitionResponse{Entity: result.Incident, Events: []domain.NotificationEvent{result.Event}})
}

// ListIncidents handles GET /api/v1/audits/:id/incidents
// @Summary List an audit's incidents
// @Tags incidents
// @Produce json
// @Param id path string true "Audit ID (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Incident,meta=PagMeta} "Incidents"
// @Security BearerAuth
// @Router /audits/{id}/incidents [get]
func (h *AuditHandler) ListIncidents(c *gin.Context) {
	auditID, ok := parseID(c, "id", "audit")
	if !ok {
		return
	}
	offset, limit := pagination(c)

	incidents, total, err := h.incidentService.List(c.Request.Context(), domain.IncidentFilter{
		AuditID: &auditID,
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, incidents, PagMeta{Total: total, Offset: offset, Limit: limit})
}

func optionalUUID(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid "+key)
		return nil, false
	}
	return &id, true
}

func optionalTime(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid "+key+"; use YYYY-MM-DD or RFC3339")
	return nil, false
}
