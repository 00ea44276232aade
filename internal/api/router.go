package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mesafacil/reservas/internal/api/apierr"
	"github.com/mesafacil/reservas/internal/api/handler"
	"github.com/mesafacil/reservas/internal/api/middleware"
	"github.com/mesafacil/reservas/internal/dependencies/clock"
	"github.com/mesafacil/reservas/internal/services/auth"
	"github.com/mesafacil/reservas/internal/services/report"
	"github.com/mesafacil/reservas/internal/services/reservation"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger                *slog.Logger
	Clock                 clock.Clock
	ReservationController *reservation.Controller
	ReportService         *report.Service
	AuthService           *auth.Service
	// LoginLimiter throttles POST /api/admin/login per client IP (optional)
	LoginLimiter *middleware.RateLimiter
	// CORSOrigins lists allowed browser origins; defaults to any origin
	CORSOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	})

	// Create handlers
	reservationHandler := handler.NewReservationHandler(cfg.ReservationController, cfg.Logger)
	adminHandler := handler.NewAdminHandler(cfg.AuthService, cfg.ReportService, cfg.Logger)

	// Create middleware
	adminMiddleware := middleware.RequireAdmin(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Public reservation routes
	api.HandleFunc("/reservations", reservationHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/reservations/availability", reservationHandler.Availability).Methods(http.MethodGet)
	api.HandleFunc("/reservations/verify/{cpf}", reservationHandler.Verify).Methods(http.MethodGet)

	// Admin login (rate limited, no auth)
	login := api.Path("/admin/login").Subrouter()
	if cfg.LoginLimiter != nil {
		login.Use(middleware.RateLimit(cfg.LoginLimiter))
	}
	login.Methods(http.MethodPost).HandlerFunc(adminHandler.Login)

	// Protected admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/reservations", adminHandler.ListActive).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{date}", adminHandler.ListByDate).Methods(http.MethodGet)
	admin.HandleFunc("/statistics", adminHandler.Statistics).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", handler.Health(cfg.Clock)).Methods(http.MethodGet)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return middleware.RequestID(middleware.CORS(origins)(r))
}
