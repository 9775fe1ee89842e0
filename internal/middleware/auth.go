package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"music-catalog/internal/model"
	"music-catalog/pkg/apierror"
)

const (
	MsgUnauthorized = "unauthorized access"
	MsgForbidden    = "forbidden access"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*model.Identity, error)
}

type contextKey string

const (
	identityContextKey contextKey = "identity"
	tokenContextKey    contextKey = "token"
)

type AuthMiddleware struct {
	validator tokenValidator
}

func NewAuthMiddleware(validator tokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth rejects requests without a valid, unrevoked bearer token and
// attaches the caller's identity and raw token to the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			writeEnvelope(w, http.StatusUnauthorized, MsgUnauthorized, "missing or malformed authorization header")
			return
		}

		identity, err := m.validator.ValidateToken(r.Context(), token)
		if err != nil {
			var apiErr *apierror.APIError
			if errors.As(err, &apiErr) && apiErr.Kind == apierror.KindUnauthenticated {
				writeEnvelope(w, http.StatusUnauthorized, apiErr.Message, "")
				return
			}
			slog.Error("token validation failed", "error", err)
			writeEnvelope(w, http.StatusInternalServerError, "server error", "")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		ctx = context.WithValue(ctx, tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles must run after RequireAuth. The allowed set is fixed here.
func (m *AuthMiddleware) RequireRoles(allowed ...model.Role) func(http.Handler) http.Handler {
	roles := model.NewRoleSet(allowed...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeEnvelope(w, http.StatusUnauthorized, MsgUnauthorized, "")
				return
			}

			if !roles.Contains(identity.Role) {
				writeEnvelope(w, http.StatusForbidden, MsgForbidden, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func IdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*model.Identity)
	return identity, ok && identity != nil
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok && token != ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
