package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mesafacil/reservas/internal/api/apierr"
	"github.com/mesafacil/reservas/internal/middleware"
	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/services/auth"
)

type contextKey string

const adminContextKey contextKey = "admin"

// TokenCookie is the cookie that may carry the session token instead of the header
const TokenCookie = middleware.SessionCookie

// RequireAdmin rejects requests without a valid admin session token
func RequireAdmin(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, err := authService.Verify(r.Context(), ExtractToken(r))
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken returns the bearer token, falling back to the session cookie
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}

	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}

// GetAdmin returns the authenticated admin from the request context
func GetAdmin(ctx context.Context) *model.AdminAccount {
	admin, _ := ctx.Value(adminContextKey).(*model.AdminAccount)
	return admin
}
