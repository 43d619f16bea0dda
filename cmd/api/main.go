package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/config"
	"github.com/syncura360/api/internal/events"
	v1 "github.com/syncura360/api/internal/handler/v1"
	"github.com/syncura360/api/internal/middleware"
	"github.com/syncura360/api/internal/repository"
	"github.com/syncura360/api/internal/service"
	"github.com/syncura360/api/pkg/auth"
	"github.com/syncura360/api/pkg/database"
	"github.com/syncura360/api/pkg/logger"
	"github.com/syncura360/api/pkg/metrics"
	"github.com/syncura360/api/pkg/tracer"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("loading configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("initializing logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracer.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	m := metrics.New("syncura")
	tokens := auth.NewTokenManager(cfg.JWT)

	publisher, err := events.NewPublisher(cfg.Kafka, log, m)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	// Repositories
	txManager := repository.NewTxManager(db)
	hospitalRepo := repository.NewHospitalRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bedRepo := repository.NewBedRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	drugRepo := repository.NewDrugRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Services
	auditSvc := service.NewAuditService(auditRepo, log)
	defer auditSvc.Close()

	authSvc := service.NewAuthService(staffRepo, tokens, auditSvc, log, m)
	registrationSvc := service.NewRegistrationService(hospitalRepo, staffRepo, txManager, log)
	staffSvc := service.NewStaffService(staffRepo, log)
	patientSvc := service.NewPatientService(patientRepo, log)
	wardSvc := service.NewWardService(roomRepo, bedRepo, equipmentRepo, txManager, log, m)
	visitSvc := service.NewVisitService(
		visitRepo, assignmentRepo, ledgerRepo,
		roomRepo, bedRepo,
		patientRepo, staffRepo,
		drugRepo, serviceRepo,
		txManager, publisher, log, m,
	)
	drugSvc := service.NewDrugService(drugRepo, log)
	serviceCatalog := service.NewServiceCatalog(serviceRepo, log)
	scheduleSvc := service.NewScheduleService(scheduleRepo, staffRepo, txManager, log)

	// HTTP
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORS),
		middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize).Handler(),
	)

	v1.Register(router, v1.Handlers{
		Auth:         v1.NewAuthHandler(authSvc, log),
		Registration: v1.NewRegistrationHandler(registrationSvc, log),
		Staff:        v1.NewStaffHandler(staffSvc, auditSvc, log),
		Patient:      v1.NewPatientHandler(patientSvc, auditSvc, log),
		Ward:         v1.NewWardHandler(wardSvc, auditSvc, log),
		Visit:        v1.NewVisitHandler(visitSvc, auditSvc, log),
		Catalog:      v1.NewCatalogHandler(drugSvc, serviceCatalog, log),
		Schedule:     v1.NewScheduleHandler(scheduleSvc, log),
	}, tokens, m, cfg)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("address", srv.Addr),
			zap.String("environment", cfg.App.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
