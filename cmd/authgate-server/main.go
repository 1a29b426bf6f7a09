// Package main provides the entry point for authgate-server.
//
// authgate-server is a minimal bearer-token authentication service:
// clients log in with static credentials, receive an opaque token, and
// present it on every subsequent request. Expired tokens are renewed
// transparently inside a grace window.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/authgate-io/authgate/internal/core/domain"
	"github.com/authgate-io/authgate/internal/core/service"
	"github.com/authgate-io/authgate/internal/infra/buildinfo"
	"github.com/authgate-io/authgate/internal/infra/confloader"
	"github.com/authgate-io/authgate/internal/infra/shutdown"
	"github.com/authgate-io/authgate/internal/server/config"
	"github.com/authgate-io/authgate/internal/server/httpserver"
	"github.com/authgate-io/authgate/internal/storage/memory"
	"github.com/authgate-io/authgate/internal/telemetry/logger"
	"github.com/authgate-io/authgate/internal/telemetry/metric"
	"golang.org/x/time/rate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("authgate-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting authgate-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	creds, err := config.BuildCredentials(&cfg.Auth)
	if err != nil {
		return fmt.Errorf("build credentials: %w", err)
	}
	credStore := domain.NewCredentialStore(creds)
	log.Info("credentials loaded", "users", credStore.Len())

	tokenStore := memory.New()

	metrics := metric.New(metric.Options{
		ActiveTokens: func() float64 { return float64(tokenStore.Count()) },
	})

	authSvc, err := service.NewAuthService(credStore, tokenStore, service.Config{
		TokenTTL:    cfg.Auth.TokenTTL,
		RenewWindow: cfg.Auth.RenewWindow,
		MaxRenewals: cfg.Auth.MaxRenewals,
		LoginRate:   rate.Limit(cfg.Auth.LoginRate),
		LoginBurst:  cfg.Auth.LoginBurst,
	}, metrics, log)
	if err != nil {
		return fmt.Errorf("init auth service: %w", err)
	}

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		AuthService:      authSvc,
		Logger:           log,
		Metrics:          metrics,
		MaxBodyBytes:     cfg.Server.HTTP.MaxBodyBytes,
		RateLimitEnabled: cfg.Server.RateLimit.Enabled,
		RateLimitRate:    rate.Limit(cfg.Server.RateLimit.Rate),
		RateLimitBurst:   cfg.Server.RateLimit.Burst,
		EnableAudit:      cfg.Server.EnableAudit,
	})

	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router, httpserver.Options{
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	})

	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	// Background sweeper reclaims tokens whose renewal window closed.
	if cfg.Auth.SweepInterval > 0 {
		sweepCtx, cancelSweep := context.WithCancel(context.Background())
		go sweepLoop(sweepCtx, authSvc, cfg.Auth.SweepInterval)
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			cancelSweep()
			return nil
		})
	}

	// Re-read the log level when the config file changes.
	if *configFile != "" {
		watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
		if err != nil {
			return fmt.Errorf("init config watcher: %w", err)
		}
		watcher.OnChange(func(path string) {
			reloaded, err := loadConfig(*configFile)
			if err != nil {
				log.Warn("config reload failed, keeping current settings", "error", err)
				return
			}
			if reloaded.Log.Level != logger.GetLevel() {
				logger.SetLevel(reloaded.Log.Level)
				log.Info("log level updated", "level", reloaded.Log.Level)
			}
		})
		if err := watcher.Watch(*configFile); err != nil {
			return fmt.Errorf("watch config file: %w", err)
		}
		watcher.StartAsync()
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			return watcher.Stop()
		})
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// sweepLoop periodically removes stale token records.
func sweepLoop(ctx context.Context, authSvc *service.AuthService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			authSvc.Sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}
