package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	sharedmw "github.com/mesafacil/reservas/internal/middleware"
	"github.com/mesafacil/reservas/internal/services/auth"
	"github.com/mesafacil/reservas/internal/services/report"
	"github.com/mesafacil/reservas/internal/services/reservation"
	"github.com/mesafacil/reservas/internal/web/handler"
	"github.com/mesafacil/reservas/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger                *slog.Logger
	AuthService           *auth.Service
	ReportService         *report.Service
	ReservationController *reservation.Controller
	// LoginLimiter throttles login form submissions per client IP (optional)
	LoginLimiter *sharedmw.RateLimiter
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	dashboardHandler := handler.NewDashboardHandler(cfg.ReportService, cfg.ReservationController, cfg.Logger)

	r.Handle("/", http.RedirectHandler("/dashboard", http.StatusSeeOther)).Methods(http.MethodGet)

	// Auth pages (no auth required)
	authRoutes := r.PathPrefix("/dashboard").Subrouter()
	authRoutes.Use(flashMiddleware)
	authRoutes.Use(optionalAuthMiddleware)
	authRoutes.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	loginSubmit := authRoutes.Path("/login").Subrouter()
	if cfg.LoginLimiter != nil {
		loginSubmit.Use(sharedmw.RateLimit(cfg.LoginLimiter, func(w http.ResponseWriter, r *http.Request, _ time.Duration) {
			authHandler.TooManyAttempts(w, r)
		}))
	}
	loginSubmit.Methods(http.MethodPost).HandlerFunc(authHandler.Login)

	// Protected pages (require auth)
	protected := r.PathPrefix("/dashboard").Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("", dashboardHandler.Overview).Methods(http.MethodGet)
	protected.HandleFunc("/date/{date}", dashboardHandler.Date).Methods(http.MethodGet)

	return sharedmw.RequestID(r)
}
