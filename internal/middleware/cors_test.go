package middleware_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/middleware"
)

func corsEngine(allowed ...string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(allowed))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORS_AllowedOrigin(t *testing.T) {
	w := serve(corsEngine("https://dock.warehouse.test"), http.MethodGet, "/api", map[string]string{"Origin": "https://dock.warehouse.test"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://dock.warehouse.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORS_UnknownOrigin(t *testing.T) {
	w := serve(corsEngine("https://dock.warehouse.test"), http.MethodGet, "/api", map[string]string{"Origin": "https://evil.test"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcard(t *testing.T) {
	w := serve(corsEngine("*"), http.MethodGet, "/api", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	w := serve(corsEngine("*"), http.MethodOptions, "/api", map[string]string{"Origin": "http://localhost:5173"})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
