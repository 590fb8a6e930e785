package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

// EvidenceHandler handles incident evidence endpoints.
type EvidenceHandler struct {
	evidenceService service.EvidenceService
}

// NewEvidenceHandler creates a new EvidenceHandler.
func NewEvidenceHandler(evidenceService service.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{evidenceService: evidenceService}
}

// Upload handles POST /api/v1/incidents/:id/evidence
// @Summary Attach evidence to an incident
// @Description Upload a photo or document (PDF, JPG, PNG)
// @Tags evidence
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Incident ID (UUID)"
// @Param file formData file true "File to upload (PDF, JPG, or PNG)"
// @Success 201 {object} Response{data=domain.Evidence} "Evidence uploaded"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 409 {object} ErrorResponseBody "Audit cancelled"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /incidents/{id}/evidence [post]
func (h *EvidenceHandler) Upload(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	incidentID, ok := parseID(c, "id", "incident")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	ev, err := h.evidenceService.Upload(c.Request.Context(), service.EvidenceUploadInput{
		IncidentID: incidentID,
		UploadedBy: userID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, ev)
}

// ListByIncident handles GET /api/v1/incidents/:id/evidence
// @Summary List an incident's evidence
// @Tags evidence
// @Produce json
// @Param id path string true "Incident ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Evidence} "Evidence"
// @Failure 404 {object} ErrorResponseBody "Incident not found"
// @Security BearerAuth
// @Router /incidents/{id}/evidence [get]
func (h *EvidenceHandler) ListByIncident(c *gin.Context) {
	incidentID, ok := parseID(c, "id", "incident")
	if !ok {
		return
	}

	items, err := h.evidenceService.ListByIncident(c.Request.Context(), incidentID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, items)
}

// GetByID handles GET /api/v1/evidence/:id
// @Summary Get evidence metadata
// @Tags evidence
// @Produce json
// @Param id path string true "Evidence ID (UUID)"
// @Success 200 {object} Response{data=domain.Evidence} "Evidence"
// @Failure 404 {object} ErrorResponseBody "Evidence not found"
// @Security BearerAuth
// @Router /evidence/{id} [get]
func (h *EvidenceHandler) GetByID(c *gin.Context) {
	evidenceID, ok := parseID(c, "id", "evidence")
	if !ok {
		return
	}

	ev, err := h.evidenceService.GetByID(c.Request.Context(), evidenceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ev)
}

// Download handles GET /api/v1/evidence/:id/download
// @Summary Get a presigned download URL
// @Tags evidence
// @Produce json
// @Param id path string true "Evidence ID (UUID)"
// @Success 200 {object} Response{data=DownloadURLResponse} "Presigned URL"
// @Failure 404 {object} ErrorResponseBody "Evidence not found"
// @Security BearerAuth
// @Router /evidence/{id}/download [get]
func (h *EvidenceHandler) Download(c *gin.Context) {
	evidenceID, ok := parseID(c, "id", "evidence")
	if !ok {
		return
	}

	url, err := h.evidenceService.GetDownloadURL(c.Request.Context(), evidenceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, DownloadURLResponse{URL: url})
}

// Delete handles DELETE /api/v1/evidence/:id
// @Summary Delete evidence
// @Tags evidence
// @Produce json
// @Param id path string true "Evidence ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Evidence deleted"
// @Failure 404 {object} ErrorResponseBody "Evidence not found"
// @Security BearerAuth
// @Router /evidence/{id} [delete]
func (h *EvidenceHandler) Delete(c *gin.Context) {
	evidenceID, ok := parseID(c, "id", "evidence")
	if !ok {
		return
	}

	if err := h.evidenceService.Delete(c.Request.Context(), evidenceID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "evidence deleted"})
}
