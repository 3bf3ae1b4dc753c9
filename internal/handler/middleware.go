package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/foodshare/foodshare-api/internal/auth"
	"github.com/foodshare/foodshare-api/internal/model"
)

type ctxKeyClaims struct{}
type ctxKeyRequestID struct{}

// ClaimsFromContext returns the authenticated credential claims, if any.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims{}).(*auth.Claims)
	return claims, ok
}

// RequestID ensures each request has a request ID. It reads X-Request-ID if
// provided; otherwise it generates a UUID. The value is stored in context,
// attached to the request logger, and set in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}

		if logger := hlog.FromRequest(r); logger != nil {
			logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", rid)
			})
		}

		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, rid)
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authenticate validates the bearer credential and injects its claims into
// the request context. Requests without a valid token are rejected.
func Authenticate(jwtAuth auth.JWTAuthenticator, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, CodeUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				respondError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := jwtAuth.ValidateToken(parts[1], secret)
			if err != nil {
				respondError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyClaims{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated requests whose credential role is not one
// of the allowed roles.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
				return
			}

			for _, role := range roles {
				if claims.Role == string(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			respondError(w, http.StatusForbidden, CodeForbidden, "insufficient role for this operation")
		})
	}
}
