package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ruralpay/cashcard/internal/audit"
	"github.com/ruralpay/cashcard/internal/models"
	"github.com/ruralpay/cashcard/internal/services"
)

type identityKey struct{}

// Authenticator turns request credentials into an identity. It returns
// services.ErrInvalidCredentials for credentials that do not check out.
type Authenticator interface {
	AuthenticateBasic(ctx context.Context, username, password string) (models.Identity, error)
	AuthenticateBearer(ctx context.Context, token string) (models.Identity, error)
}

// Authenticate rejects requests without valid Basic or Bearer credentials
// and stores the caller's identity on the request context.
func Authenticate(auth Authenticator, realm string, log zerolog.Logger) func(http.Handler) http.Handler {
	challenge := fmt.Sprintf("Basic realm=%q", realm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authenticate(r, auth)
			if err != nil {
				if errors.Is(err, services.ErrInvalidCredentials) {
					w.Header().Set("WWW-Authenticate", challenge)
					services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
					return
				}
				log.Error().Err(err).Str("path", r.URL.Path).Msg("authentication failed")
				services.SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
				return
			}

			setLoggedUser(r.Context(), identity.Username)
			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(r *http.Request, auth Authenticator) (models.Identity, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return models.Identity{}, services.ErrInvalidCredentials
	}

	if username, password, ok := r.BasicAuth(); ok {
		return auth.AuthenticateBasic(r.Context(), username, password)
	}

	if token, ok := BearerToken(r); ok {
		return auth.AuthenticateBearer(r.Context(), token)
	}
	return models.Identity{}, services.ErrInvalidCredentials
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// RequireRole lets through only identities holding role. Anyone else gets
// 403, whatever record they were after.
func RequireRole(role string, auditLogger audit.Logger) func(http.Handler) http.Handler {
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
				return
			}
			if !identity.HasRole(role) {
				auditLogger.LogDenied(identity.Username, r.URL.Path, "missing role "+role)
				services.SendErrorResponse(w, "Forbidden", http.StatusForbidden, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(models.Identity)
	return identity, ok && identity.Username != ""
}

// IdentityHandlerFunc is a handler that receives the authenticated caller
// explicitly.
type IdentityHandlerFunc func(w http.ResponseWriter, r *http.Request, caller models.Identity)

// WithIdentity adapts h to http.HandlerFunc. Requests that did not pass
// through Authenticate are answered with 401.
func WithIdentity(h IdentityHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok {
			services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
			return
		}
		h(w, r, identity)
	}
}
