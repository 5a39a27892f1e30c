package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/workforce-directory/internal/api/http"
	"github.com/spec-kit/workforce-directory/internal/api/http/handlers"
	"github.com/spec-kit/workforce-directory/internal/asset"
	"github.com/spec-kit/workforce-directory/internal/auth"
	"github.com/spec-kit/workforce-directory/internal/config"
	"github.com/spec-kit/workforce-directory/internal/events"
	"github.com/spec-kit/workforce-directory/internal/observability"
	"github.com/spec-kit/workforce-directory/internal/persistence"
	"github.com/spec-kit/workforce-directory/internal/repository"
	"github.com/spec-kit/workforce-directory/internal/service"
	"github.com/spec-kit/workforce-directory/internal/storage"
	"github.com/spec-kit/workforce-directory/internal/storage/memory"
	"github.com/spec-kit/workforce-directory/internal/storage/s3"
	"github.com/spec-kit/workforce-directory/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var store storage.ObjectStore
	if cfg.S3.Bucket != "" {
		store, err = s3.New(cfg.S3)
		if err != nil {
			logger.Fatal("failed to init s3 store", zap.Error(err))
		}
	} else {
		logger.Warn("S3_BUCKET not set, using in-memory object store")
		store = memory.New()
	}
	assets := asset.NewManager(store, logger, cfg.S3.SignTTL())

	pool := pg.PoolHandle()
	adminRepo := repository.NewAdminRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	profileRepo := repository.NewCompanyProfileRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(adminRepo, tokens, redis, cfg.Auth.VerificationCodeTTL(), dispatcher, logger)
	adminService := service.NewAdminService(adminRepo, departmentRepo, employeeRepo, assets, dispatcher, logger, cfg.Auth.BcryptCost)
	departmentService := service.NewDepartmentService(departmentRepo, employeeRepo, assets, dispatcher, logger)
	employeeService := service.NewEmployeeService(employeeRepo, departmentRepo, assets, dispatcher, logger)
	profileService := service.NewCompanyProfileService(profileRepo, adminRepo, departmentRepo, employeeRepo, assets, logger)

	authMiddleware := auth.NewAuthMiddleware(tokens, adminRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 16 * 1024 * 1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Admins:         handlers.NewAdminsHandler(adminService),
		Departments:    handlers.NewDepartmentsHandler(departmentService),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		CompanyProfile: handlers.NewCompanyProfileHandler(profileService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
