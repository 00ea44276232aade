package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mesafacil/reservas/internal/api"
	"github.com/mesafacil/reservas/internal/config"
	"github.com/mesafacil/reservas/internal/factory"
	"github.com/mesafacil/reservas/internal/middleware"
	"github.com/mesafacil/reservas/internal/services/auth"
	redisstorage "github.com/mesafacil/reservas/internal/storage/redis"
	"github.com/mesafacil/reservas/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}

	// Build factory config
	factoryCfg := factory.Config{
		AuthConfig: auth.Config{
			Secret:        cfg.Auth.JWTSecret,
			TokenDuration: cfg.Auth.TokenTTL,
		},
		Logger:      logger,
		Location:    cfg.Location,
		StorageType: cfg.Storage.Type,
		DataDir:     cfg.Storage.DataDir,
		NATSURL:     cfg.NATS.URL,
	}

	if cfg.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	created, err := app.AuthService.EnsureDefaultAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	if err != nil {
		logger.Error("failed to seed admin account", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if created {
		logger.Info("created default admin account", slog.String("username", cfg.Auth.AdminUsername))
	}

	// Login attempts share one limiter across the API and the dashboard
	loginLimiter := middleware.NewRateLimiter(cfg.Auth.LoginRateRPS, cfg.Auth.LoginRateBurst)
	loginLimiter.StartJanitor(ctx, time.Minute)

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:                logger,
		Clock:                 app.Clock,
		ReservationController: app.ReservationController,
		ReportService:         app.ReportService,
		AuthService:           app.AuthService,
		LoginLimiter:          loginLimiter,
		CORSOrigins:           cfg.CORS.AllowedOrigins,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:                logger,
		AuthService:           app.AuthService,
		ReportService:         app.ReportService,
		ReservationController: app.ReservationController,
		LoginLimiter:          loginLimiter,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Server.Host
	serverConfig.Port = cfg.Server.Port
	server := api.NewServer(mux, serverConfig, logger)

	ln, err := server.Listen()
	if err != nil {
		logger.Error("failed to listen", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage.Type),
		slog.String("timezone", cfg.Location.String()),
	)

	// Serve until SIGINT/SIGTERM, then shut down gracefully
	if err := server.Serve(ctx, ln); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
