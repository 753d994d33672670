package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/souravsharma24/onboarding-form-sub000/internal/bridge"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/config"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/database"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/observability"
	"github.com/souravsharma24/onboarding-form-sub000/internal/events"
	"github.com/souravsharma24/onboarding-form-sub000/internal/handlers"
	"github.com/souravsharma24/onboarding-form-sub000/internal/invite"
	"github.com/souravsharma24/onboarding-form-sub000/internal/onboarding"
	"github.com/souravsharma24/onboarding-form-sub000/internal/profile"
	"github.com/souravsharma24/onboarding-form-sub000/internal/progress"
	"github.com/souravsharma24/onboarding-form-sub000/internal/section"
	"github.com/souravsharma24/onboarding-form-sub000/internal/storage"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting onboarding service...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Redis)
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return redisClient.Ping(pingCtx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis unavailable", zap.Error(err))
	}
	defer redisClient.Close()

	// --- Stores and services ---
	store := storage.NewRedisStore(redisClient.GetClient(), cfg.Storage.KeyPrefix, log)
	drafts := storage.NewDrafts(store, cfg.Storage.EnvelopeVersion, cfg.Storage.DraftTTL, cfg.Storage.InviteTTL)

	bus := events.NewBus()
	calc := progress.NewCalculator(drafts, log)
	registry := section.NewRegistry(drafts, bus, log, cfg.Storage.AutosaveDebounce)
	manager := onboarding.NewManager(calc, drafts, log)

	bridgeClient := bridge.NewClient(cfg.Bridge, cfg.App.Environment, log)
	submitter := onboarding.NewSubmitter(calc, drafts, registry, bridgeClient, obs, log)

	profiles := profile.NewService(drafts, log)
	invites := invite.NewService(cfg.Invite, drafts, log)

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	cancelWatch := manager.WatchSectionChanges(watchCtx, bus)
	defer cancelWatch()

	// --- HTTP server ---
	api := handlers.NewAPI(manager, submitter, registry, calc, profiles, invites, redisClient, log)
	router := handlers.NewRouter(api, cfg.Server.AllowedOrigins, log)

	srv := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.Server.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	zapLog.Info("Shutting down...", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Pending autosaves must land before the process exits.
	registry.FlushAll(shutdownCtx)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown incomplete", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
