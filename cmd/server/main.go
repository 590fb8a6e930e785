package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/config"
	noopemail "github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/email/noop"
	sesemail "github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/email/ses"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/handler"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/logger"
	emailnotify "github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/notify/email"
	noopnotify "github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/notify/noop"
	pubsubnotify "github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/notify/pubsub"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/observability"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/repository/memory"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/repository/postgres"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/router"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
	s3storage "github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/storage/s3"
)

// @title Receiving Audit API
// @version 1.0
// @description Warehouse receiving audits, discrepancy incidents and their resolution workflow.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, cfg.Server.Environment, zlog)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			zlog.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	// Initialize repositories
	repos, pinger, closeStore, err := openStore(&cfg.DB, zlog)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	publisher, closePublisher, err := newPublisher(ctx, &cfg.Notify, repos.Users, zlog)
	if err != nil {
		return err
	}
	defer closePublisher()

	// Initialize services
	ledger := service.NewAuditLedger(repos.Tx, repos.Sequences, repos.Audits, repos.Incidents, service.NumberingConfig{
		AuditPrefix:    cfg.Numbering.AuditPrefix,
		IncidentPrefix: cfg.Numbering.IncidentPrefix,
		Padding:        cfg.Numbering.Padding,
	}, zlog)
	incidentSvc := service.NewIncidentService(
		repos.Tx, ledger, repos.Audits, repos.LineItems, repos.Incidents, repos.Comments,
		repos.Products, repos.Users, repos.StateChanges, repos.Outbox, zlog,
	)
	auditSvc := service.NewAuditService(
		repos.Tx, ledger, incidentSvc, repos.Audits, repos.LineItems, repos.Incidents,
		repos.Products, repos.Suppliers, repos.StateChanges, repos.Outbox, zlog,
	)
	authSvc := service.NewAuthService(repos.Users, cfg.JWT)
	userSvc := service.NewUserService(repos.Users, zlog)
	catalogSvc := service.NewCatalogService(repos.Products, repos.Suppliers)
	statsSvc := service.NewStatsService(repos.Stats)
	evidenceSvc := service.NewEvidenceService(repos.Evidence, repos.Incidents, repos.Audits, s3Client, &cfg.S3, zlog)

	if err := userSvc.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword, cfg.Bootstrap.AdminName); err != nil {
		return fmt.Errorf("failed to seed administrator: %w", err)
	}

	dispatcher := service.NewNotificationDispatcher(repos.Outbox, publisher, service.DispatcherConfig{
		PollInterval: time.Duration(cfg.Outbox.PollIntervalSecs) * time.Second,
		BatchSize:    cfg.Outbox.BatchSize,
		MaxAttempts:  cfg.Outbox.MaxAttempts,
		Backoff:      time.Duration(cfg.Outbox.BackoffSecs) * time.Second,
		Lease:        time.Duration(cfg.Outbox.LeaseSecs) * time.Second,
	}, zlog)
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		dispatcher.Start(ctx)
	}()

	// Setup router
	r := router.Setup(authSvc, router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		User:     handler.NewUserHandler(userSvc),
		Catalog:  handler.NewCatalogHandler(catalogSvc),
		Audit:    handler.NewAuditHandler(auditSvc, incidentSvc),
		Incident: handler.NewIncidentHandler(incidentSvc),
		Evidence: handler.NewEvidenceHandler(evidenceSvc),
		Stats:    handler.NewStatsHandler(statsSvc),
		Health:   handler.NewHealthHandler(pinger),
	}, router.Options{
		ServiceName:    cfg.Tracing.ServiceName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Tracing:        cfg.Tracing.Enabled,
	}, zlog)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("db_driver", cfg.DB.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			stop()
			<-dispatcherDone
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
	<-dispatcherDone
	return nil
}

type repositories struct {
	Tx           port.TxManager
	Users        port.UserRepository
	Suppliers    port.SupplierRepository
	Products     port.ProductRepository
	Audits       port.AuditRepository
	LineItems    port.LineItemRepository
	Incidents    port.IncidentRepository
	Comments     port.CommentRepository
	Evidence     port.EvidenceRepository
	StateChanges port.StateChangeRepository
	Sequences    port.SequenceRepository
	Outbox       port.OutboxRepository
	Stats        port.StatsRepository
}

// openStore returns the repositories for the configured driver. The pinger is
// nil for the in-memory store.
func openStore(cfg *config.DBConfig, zlog *zap.Logger) (repositories, handler.Pinger, func(), error) {
	if cfg.Driver == "memory" {
		zlog.Warn("using in-memory store, data is lost on restart")
		m := memory.NewStore().Repos()
		return repositories(m), nil, func() {}, nil
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		return repositories{}, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return repositories{
		Tx:           postgres.NewTxManager(db, zlog),
		Users:        postgres.NewUserRepo(db),
		Suppliers:    postgres.NewSupplierRepo(db),
		Products:     postgres.NewProductRepo(db),
		Audits:       postgres.NewAuditRepo(db),
		LineItems:    postgres.NewLineItemRepo(db),
		Incidents:    postgres.NewIncidentRepo(db),
		Comments:     postgres.NewCommentRepo(db),
		Evidence:     postgres.NewEvidenceRepo(db),
		StateChanges: postgres.NewStateChangeRepo(db),
		Sequences:    postgres.NewSequenceRepo(db),
		Outbox:       postgres.NewOutboxRepo(db),
		Stats:        postgres.NewStatsRepo(db),
	}, db, func() { _ = db.Close() }, nil
}

func newPublisher(ctx context.Context, cfg *config.NotifyConfig, users port.UserRepository, zlog *zap.Logger) (port.NotificationPublisher, func(), error) {
	switch cfg.Provider {
	case "email":
		var sender port.EmailSender
		if cfg.EmailProvider == "ses" {
			s, err := sesemail.NewSESSender(ctx, cfg)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to initialize SES sender: %w", err)
			}
			sender = s
		} else {
			sender = noopemail.NewNoopSender(zlog)
		}
		return emailnotify.NewPublisher(users, sender, zlog), func() {}, nil
	case "pubsub":
		p, err := pubsubnotify.NewPublisher(ctx, cfg.PubSubProjectID, cfg.PubSubTopic, cfg.PubSubCredentialsJSON, zlog)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize pubsub publisher: %w", err)
		}
		return p, func() { _ = p.Close() }, nil
	default:
		return noopnotify.NewPublisher(zlog), func() {}, nil
	}
}
