package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/handler"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/mocks"
)

func TestStatsHandler_GetStats_OperatorScope(t *testing.T) {
	repo := new(mocks.MockStatsRepo)
	h := handler.NewStatsHandler(service.NewStatsService(repo))
	userID := uuid.New()
	repo.On("GetCreatorStats", mock.Anything, userID).Return(&domain.Stats{TotalAudits: 2, IncidentsOpen: 1}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/stats", nil)
	setAuthContext(c, userID, domain.RoleOperator)
	h.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_audits":2`)
	assert.Contains(t, w.Body.String(), `"incidents_open":1`)
	repo.AssertNotCalled(t, "GetGlobalStats", mock.Anything, mock.Anything)
}

func TestStatsHandler_GetStats_Errors(t *testing.T) {
	repo := new(mocks.MockStatsRepo)
	h := handler.NewStatsHandler(service.NewStatsService(repo))

	c, w := newContext(http.MethodGet, "/api/v1/stats", nil)
	h.GetStats(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userID := uuid.New()
	repo.On("GetGlobalStats", mock.Anything, userID).Return(nil, errors.New("db gone"))
	c, w = newContext(http.MethodGet, "/api/v1/stats", nil)
	setAuthContext(c, userID, domain.RoleAdmin)
	h.GetStats(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, w).Error.Code)
}
