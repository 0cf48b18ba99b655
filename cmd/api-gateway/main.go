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
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-reportcard-api/api/swagger"
	"github.com/noah-isme/sma-reportcard-api/internal/handler"
	internalmiddleware "github.com/noah-isme/sma-reportcard-api/internal/middleware"
	"github.com/noah-isme/sma-reportcard-api/internal/models"
	"github.com/noah-isme/sma-reportcard-api/internal/repository"
	"github.com/noah-isme/sma-reportcard-api/internal/service"
	"github.com/noah-isme/sma-reportcard-api/pkg/cache"
	"github.com/noah-isme/sma-reportcard-api/pkg/config"
	"github.com/noah-isme/sma-reportcard-api/pkg/database"
	"github.com/noah-isme/sma-reportcard-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-reportcard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-reportcard-api/pkg/middleware/requestid"
)

// @title SMA Report Card API
// @version 1.0.0
// @description Multi-level approval workflow for student report cards
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		// the approval workflow runs without Redis; only caching and notices are lost
		logr.Warn("redis unavailable, continuing without cache and notifications", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	var redisPinger handler.Pinger
	if redisClient != nil {
		redisPinger = handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}
	probes := handler.NewMetricsHandler(metricsSvc, db, redisPinger)
	r.GET("/health", probes.Health)
	r.GET("/ready", probes.Ready)
	r.GET("/metrics", probes.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var notifier *service.ReportCardNotifier
	if cfg.ReportCards.Enabled {
		notifier = registerReportCards(ctx, r, cfg, db, redisClient, metricsSvc, validate, logr)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	if notifier != nil {
		notifier.Stop()
	}
}

func registerReportCards(ctx context.Context, r *gin.Engine, cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, metricsSvc *service.MetricsService, validate *validator.Validate, logr *zap.Logger) *service.ReportCardNotifier {
	reportCardRepo := repository.NewReportCardRepository(db)
	templateRepo := repository.NewReportCardTemplateRepository(db)
	approvalConfigRepo := repository.NewApprovalConfigRepository(db)
	assignmentRepo := repository.NewTeacherAssignmentRepository(db)

	cacheSvc := service.NewCacheService(
		repository.NewCacheRepository(redisClient, logr),
		metricsSvc,
		cfg.ReportCards.PendingCacheTTL,
		logr,
		redisClient != nil,
	)

	managerRoles := make([]models.UserRole, 0, len(cfg.ReportCards.ManagerRoles))
	for _, role := range cfg.ReportCards.ManagerRoles {
		managerRoles = append(managerRoles, models.UserRole(role))
	}
	directory := service.NewApproverDirectory(assignmentRepo, approvalConfigRepo, managerRoles...)

	opts := []service.ApprovalOption{
		service.WithPendingCache(cacheSvc, cfg.ReportCards.PendingCacheTTL),
		service.WithApprovalMetrics(metricsSvc),
		service.WithBatchLimit(cfg.ReportCards.BatchLimit),
	}

	var notifier *service.ReportCardNotifier
	if redisClient != nil {
		notifier = service.NewReportCardNotifier(
			repository.NewNotificationPublisher(redisClient),
			service.NotifierConfig{
				Channel:    cfg.ReportCards.NotifyChannel,
				Workers:    cfg.ReportCards.NotifyWorkers,
				BufferSize: cfg.ReportCards.NotifyBuffer,
			},
			metricsSvc,
			logr,
		)
		notifier.Start(ctx)
		opts = append(opts, service.WithPublishNotifier(notifier))
	}

	approvalSvc := service.NewReportCardApprovalService(reportCardRepo, templateRepo, directory, logr, opts...)
	approvalConfigSvc := service.NewApprovalConfigService(approvalConfigRepo, validate, logr)

	tokens := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Leeway: 30 * time.Second})

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(tokens))
	handler.RegisterReportCardRoutes(api,
		handler.NewReportCardHandler(approvalSvc, validate),
		handler.NewApprovalConfigHandler(approvalConfigSvc),
	)

	return notifier
}
