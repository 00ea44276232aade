package middleware

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mesafacil/reservas/internal/middleware"
	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/services/auth"
)

type contextKey string

const (
	adminContextKey contextKey = "admin"
)

// GetAdmin retrieves the authenticated admin from the request context
// Returns nil if no admin is authenticated
func GetAdmin(ctx context.Context) *model.AdminAccount {
	admin, _ := ctx.Value(adminContextKey).(*model.AdminAccount)
	return admin
}

// Auth returns middleware that requires an admin session
// Redirects to the login page if not authenticated
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin := getAdminFromSession(r, authService)
			if admin == nil {
				ClearSessionCookie(w)
				http.Redirect(w, r, "/dashboard/login?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth sets the admin in context when the session is valid, nil otherwise
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin := getAdminFromSession(r, authService)
			ctx := context.WithValue(r.Context(), adminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetSessionCookie stores the session token in an HttpOnly cookie
func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func getAdminFromSession(r *http.Request, authService *auth.Service) *model.AdminAccount {
	cookie, err := r.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	admin, err := authService.Verify(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}

	return admin
}
