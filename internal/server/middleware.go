package server

import (
	"context"
	"net/http"
	"strings"

	"profitdesk/internal/domain"
	"profitdesk/internal/infrastructure/authproxy"
	"profitdesk/pkg/contextx"
	"profitdesk/pkg/errcodes"
	"profitdesk/pkg/httpx/reply"
)

// TokenVerifier resolves a bearer token to an auth user.
type TokenVerifier interface {
	UserFromToken(ctx context.Context, token string) (authproxy.User, error)
}

// TokenCache remembers recently verified tokens.
type TokenCache interface {
	Get(ctx context.Context, token string) (authproxy.User, bool)
	Set(ctx context.Context, token string, user authproxy.User)
}

// RoleSource yields the role granted by a redeemed access code.
type RoleSource interface {
	RoleOf(ctx context.Context, userID string) (contextx.Role, error)
}

// Authenticator carries the two auth layers of the API: the bearer token
// proves who the caller is, the personal access code row grants a role.
type Authenticator struct {
	verifier TokenVerifier
	cache    TokenCache
	roles    RoleSource
}

func NewAuthenticator(verifier TokenVerifier, cache TokenCache, roles RoleSource) *Authenticator {
	return &Authenticator{
		verifier: verifier,
		cache:    cache,
		roles:    roles,
	}
}

// RequireToken authenticates the bearer token and stores the user id in the
// request context.
func (a *Authenticator) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := bearerToken(r)
		if err != nil {
			reply.Error(ctx, w, asFailure(err))

			return
		}

		user, ok := a.cache.Get(ctx, token)
		if !ok {
			user, err = a.verifier.UserFromToken(ctx, token)
			if err != nil {
				reply.Error(ctx, w, asFailure(err))

				return
			}

			a.cache.Set(ctx, token, user)
		}

		ctx = contextx.WithUserID(ctx, contextx.UserID(user.ID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects callers without a redeemed access code and stores the
// granted role in the request context. Must run after RequireToken.
func (a *Authenticator) RequireRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := contextx.UserIDFromContext(ctx)
		if err != nil {
			reply.Error(ctx, w, asFailure(
				domain.NewError(errcodes.Unauthorized, "missing authenticated user")))

			return
		}

		role, err := a.roles.RoleOf(ctx, userID.String())
		if err != nil {
			reply.Error(ctx, w, asFailure(err))

			return
		}

		ctx = contextx.WithRole(ctx, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin callers. Must run after RequireRole.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		role, err := contextx.RoleFromContext(ctx)
		if err != nil || role != contextx.RoleAdmin {
			reply.Error(ctx, w, asFailure(
				domain.NewError(errcodes.AdminOnly, "admin role required")))

			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", domain.NewError(errcodes.Unauthorized, "missing bearer token")
	}

	return token, nil
}
