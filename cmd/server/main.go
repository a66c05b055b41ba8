package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskloop/backend/api/handler"
	"github.com/taskloop/backend/internal/config"
	"github.com/taskloop/backend/internal/infrastructure/attempts"
	"github.com/taskloop/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskloop/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskloop/backend/internal/infrastructure/redis"
	"github.com/taskloop/backend/internal/middleware"
	"github.com/taskloop/backend/internal/router"
	"github.com/taskloop/backend/internal/services"
	"github.com/taskloop/backend/internal/services/lifecycle"
	"github.com/taskloop/backend/pkg/httpcontext"
	"github.com/taskloop/backend/pkg/logger"
	"github.com/taskloop/backend/repository/postgres"
	redisRepo "github.com/taskloop/backend/repository/redis"
	authUC "github.com/taskloop/backend/usecase/auth"
	taskUC "github.com/taskloop/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	attemptStore, err := attempts.Open(cfg.RateLimit.Path, "attempts")
	if err != nil {
		zapLogger.Fatal("failed to open attempt store", zap.Error(err))
	}
	manager.Register("attempt_store", func(ctx context.Context) error {
		return attemptStore.Close()
	})

	mon := monitor.New(pool, redisClient, attemptStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	authUseCase := authUC.New(userRepo, sessionRepo, zapLogger, cfg.Session.TTL)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	scanner := services.NewReminderScanner(taskRepo, zapLogger, services.ScannerConfig{
		Interval:  cfg.Reminder.Interval,
		BatchSize: cfg.Reminder.BatchSize,
	})
	scanner.Start()
	manager.Register("reminder_scanner", func(ctx context.Context) error {
		scanner.Stop(ctx)
		return nil
	})

	janitor := services.NewAttemptJanitor(attemptStore, cfg.RateLimit.Retention, time.Hour, zapLogger)
	janitor.Start()
	manager.Register("attempt_janitor", func(ctx context.Context) error {
		janitor.Stop(ctx)
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Session.CookieName),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	sessionGate := middleware.SessionAuth(authUseCase, cfg.Session.CookieName, cfg.Context.RequestTimeout, zapLogger)
	loginLimiter := middleware.LoginRateLimit(attemptStore, cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window, zapLogger)
	r := router.New(handlers, sessionGate, loginLimiter)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
