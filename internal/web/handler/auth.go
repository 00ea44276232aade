package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mesafacil/reservas/internal/services/auth"
	"github.com/mesafacil/reservas/internal/web/middleware"
	"github.com/mesafacil/reservas/internal/web/templates/layout"
	"github.com/mesafacil/reservas/internal/web/templates/pages"
)

// AuthHandler handles the dashboard login and logout
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdmin(r.Context()) != nil {
		// Already logged in
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, http.StatusOK, "", "", r.URL.Query().Get("next"))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "Invalid form data", "", "")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if username == "" || password == "" {
		h.renderLogin(w, r, http.StatusBadRequest, "Username and password are required", username, next)
		return
	}

	session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.ErrorContext(r.Context(), "dashboard login failed", slog.String("error", err.Error()))
		}
		h.renderLogin(w, r, http.StatusUnauthorized, "Invalid credentials", username, next)
		return
	}

	middleware.SetSessionCookie(w, session.Token, session.ExpiresAt)
	middleware.SetFlash(w, "success", "Welcome, "+session.Admin.Username+"!")

	// Only same-site paths are followed
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/dashboard/login", http.StatusSeeOther)
}

// TooManyAttempts renders the login page for a client over its rate limit
func (h *AuthHandler) TooManyAttempts(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusTooManyRequests, "Too many login attempts, try again later", "", "")
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, errMsg, username, next string) {
	data := pages.LoginData{
		PageData: layout.PageData{
			Title: "Login",
			Flash: middleware.GetFlash(r.Context()),
		},
		Username: username,
		Next:     next,
		Error:    errMsg,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.Login(data).Render(r.Context(), w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render login page", slog.String("error", err.Error()))
	}
}
