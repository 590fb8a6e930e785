package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	_ "github.com/SistemasXL/auditoria-recepcion-sistema-sub000/docs"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/handler"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/middleware"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Catalog  *handler.CatalogHandler
	Audit    *handler.AuditHandler
	Incident *handler.IncidentHandler
	Evidence *handler.EvidenceHandler
	Stats    *handler.StatsHandler
	Health   *handler.HealthHandler
}

// Options holds router-level settings.
type Options struct {
	ServiceName    string
	AllowedOrigins []string
	Tracing        bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	supervisor := middleware.RequireRole(domain.RoleSupervisor, domain.RoleAdmin)
	admin := middleware.RequireRole(domain.RoleAdmin)

	users := protected.Group("/users")
	users.POST("", admin, h.User.Create)
	users.GET("", admin, h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)

	products := protected.Group("/products")
	products.POST("", supervisor, h.Catalog.CreateProduct)
	products.GET("", h.Catalog.ListProducts)
	products.GET("/:id", h.Catalog.GetProduct)

	suppliers := protected.Group("/suppliers")
	suppliers.POST("", supervisor, h.Catalog.CreateSupplier)
	suppliers.GET("", h.Catalog.ListSuppliers)
	suppliers.GET("/:id", h.Catalog.GetSupplier)

	audits := protected.Group("/audits")
	audits.POST("", h.Audit.Create)
	audits.GET("", h.Audit.List)
	audits.GET("/:id", h.Audit.GetByID)
	audits.POST("/:id/start", h.Audit.Start)
	audits.POST("/:id/finalize", h.Audit.Finalize)
	audits.POST("/:id/close", supervisor, h.Audit.Close)
	audits.POST("/:id/cancel", supervisor, h.Audit.Cancel)
	audits.GET("/:id/history", h.Audit.History)
	audits.POST("/:id/items", h.Audit.AddLineItem)
	audits.PUT("/:id/items/:itemId", h.Audit.UpdateLineItem)
	audits.DELETE("/:id/items/:itemId", h.Audit.RemoveLineItem)
	audits.POST("/:id/incidents", h.Audit.CreateIncident)
	audits.GET("/:id/incidents", h.Audit.ListIncidents)

	incidents := protected.Group("/incidents")
	incidents.GET("", h.Incident.List)
	incidents.GET("/:id", h.Incident.GetByID)
	incidents.POST("/:id/assign", supervisor, h.Incident.Assign)
	incidents.POST("/:id/state", h.Incident.ChangeState)
	incidents.POST("/:id/comments", h.Incident.AddComment)
	incidents.GET("/:id/comments", h.Incident.ListComments)
	incidents.GET("/:id/history", h.Incident.History)
	incidents.POST("/:id/evidence", h.Evidence.Upload)
	incidents.GET("/:id/evidence", h.Evidence.ListByIncident)

	evidence := protected.Group("/evidence")
	evidence.GET("/:id", h.Evidence.GetByID)
	evidence.GET("/:id/download", h.Evidence.Download)
	evidence.DELETE("/:id", supervisor, h.Evidence.Delete)

	protected.GET("/stats", h.Stats.GetStats)

	return r
}
