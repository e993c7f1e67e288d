package middleware

import (
	"net/http"
	"strings"

	"github.com/tutorpocket/backend/internal/handlers/authctx"
	"github.com/tutorpocket/backend/internal/handlers/render"
	"github.com/tutorpocket/backend/internal/models"
)

type tokenVerifier interface {
	// Has to return error if token is not valid or expired
	Verify(token string) (models.TokenPayload, error)
}

// Gate for protected routes
// No token: 401, invalid or expired token: 403, otherwise token payload is put to request context
func AuthMiddleware(v tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				render.ServiceError(w, "Access token required", http.StatusUnauthorized)
				return
			}

			payload, err := v.Verify(token)
			if err != nil {
				render.ServiceError(w, "Invalid token", http.StatusForbidden)
				return
			}

			ctx := authctx.New(r.Context(), payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Token is the second part of 'Bearer <token>' header
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
