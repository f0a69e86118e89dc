package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/americano/projectsync-web/config"
	httpapi "github.com/americano/projectsync-web/internal/api/http"
	"github.com/americano/projectsync-web/internal/bootstrap"
	"github.com/americano/projectsync-web/internal/logging"
	"github.com/americano/projectsync-web/internal/notify"
	"github.com/americano/projectsync-web/internal/projects/client"
	projecthttp "github.com/americano/projectsync-web/internal/projects/http"
	"go.uber.org/zap"
)

const serviceName = "projectsync-web"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var flash notify.Store = notify.NewMemoryStore(cfg.Redis.FlashTTL)
	if cfg.Redis.URL != "" {
		rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{URL: cfg.Redis.URL})
		if err != nil {
			logger.Fatal("redis unavailable", zap.Error(err))
		}
		defer rdb.Close()
		flash = notify.NewRedisStore(rdb, cfg.Redis.FlashTTL)
		logger.Info("flash store: redis")
	} else {
		logger.Info("flash store: memory")
	}

	backend := client.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)

	probe := httpapi.NewBackendProbe(backend, cfg.Backend.Timeout, logger.Named("probe"))
	if err := probe.Start(cfg.Backend.ProbeSchedule); err != nil {
		logger.Fatal("invalid BACKEND_PROBE_SCHEDULE", zap.Error(err))
	}
	defer probe.Stop()

	router, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Backend:        backend,
		Presenter:      notify.NewPresenter(flash, cfg.UI.ToastDuration, logger.Named("notify")),
		Probe:          probe,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		FormRateLimit:  cfg.Server.FormRateLimit,
		FormRateBurst:  cfg.Server.FormRateBurst,
		Pages: projecthttp.Options{
			CreateRedirectDelay: cfg.UI.CreateRedirectDelay,
			EditRedirectDelay:   cfg.UI.EditRedirectDelay,
		},
	})
	if err != nil {
		logger.Fatal("router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("backend", backend.BaseURL()),
			zap.String("env", cfg.App.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
