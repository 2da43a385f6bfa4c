// Package middleware contains the HTTP middleware of the POS administration service.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avolkov/pos-admin/internal/model"
	"github.com/avolkov/pos-admin/internal/service"
)

type contextKey string

const principalKey contextKey = "principal"

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "pos_session"

// PrincipalResolver resolves a session token into a freshly-loaded principal.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*model.Principal, error)
}

// AuthMiddleware authenticates requests by their session cookie. The principal
// record is re-read from the store on every request, so revocation takes
// effect immediately.
type AuthMiddleware struct {
	resolver PrincipalResolver
}

// NewAuthMiddleware creates an AuthMiddleware over the given resolver.
func NewAuthMiddleware(resolver PrincipalResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate rejects requests without a valid session and attaches the
// resolved principal to the request context.
func (a *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		principal, err := a.resolver.ResolvePrincipal(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin passes only admin principals. Must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok || p.Kind != model.PrincipalAdmin || p.Admin == nil {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePOS passes only approved POS-business principals. Must run after
// Authenticate, which already refuses non-approved businesses.
func RequirePOS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok || p.Kind != model.PrincipalPOS || p.Business == nil {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFromContext extracts the authenticated principal from the request context.
func PrincipalFromContext(ctx context.Context) (*model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*model.Principal)
	return p, ok
}

// SetSessionCookie attaches the session token to the response.
func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie from the client.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
