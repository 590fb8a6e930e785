package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/middleware"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

// StatsHandler handles stats endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /api/v1/stats
// @Summary Get dashboard statistics
// @Description Counts audits and incidents by state and incidents by type. Supervisors and admins see every audit, operators only the audits they registered.
// @Tags stats
// @Produce json
// @Success 200 {object} Response{data=domain.Stats} "Aggregate statistics"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	stats, err := h.statsService.GetStats(c.Request.Context(), userID, domain.UserRole(middleware.GetRole(c)))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
