package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avolkov/pos-admin/internal/model"
	"github.com/avolkov/pos-admin/internal/service"
)

type stubResolver struct {
	principal *model.Principal
	err       error

	gotToken string
}

func (r *stubResolver) ResolvePrincipal(ctx context.Context, token string) (*model.Principal, error) {
	r.gotToken = token
	if r.err != nil {
		return nil, r.err
	}
	return r.principal, nil
}

func okHandler(t *testing.T, wantKind model.PrincipalKind) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			t.Errorf("principal must be in context")
		} else if p.Kind != wantKind {
			t.Errorf("principal kind = %s, want %s", p.Kind, wantKind)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateNoCookie(t *testing.T) {
	a := NewAuthMiddleware(&stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	a.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("handler must not run without a session cookie")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateUnknownSession(t *testing.T) {
	a := NewAuthMiddleware(&stubResolver{err: service.ErrUnauthenticated})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
	rec := httptest.NewRecorder()

	a.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("handler must not run for an unknown session")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateResolverFailure(t *testing.T) {
	a := NewAuthMiddleware(&stubResolver{err: errors.New("store down")})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "token"})
	rec := httptest.NewRecorder()

	a.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("handler must not run when resolution fails")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	resolver := &stubResolver{
		principal: &model.Principal{
			Kind:  model.PrincipalAdmin,
			Admin: &model.AdminUser{ID: 1, Username: "admin"},
		},
	}
	a := NewAuthMiddleware(resolver)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "token-123"})
	rec := httptest.NewRecorder()

	a.Authenticate(okHandler(t, model.PrincipalAdmin)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if resolver.gotToken != "token-123" {
		t.Fatalf("resolver got token %q, want token-123", resolver.gotToken)
	}
}

func TestRoleGuards(t *testing.T) {
	admin := &model.Principal{Kind: model.PrincipalAdmin, Admin: &model.AdminUser{ID: 1}}
	pos := &model.Principal{Kind: model.PrincipalPOS, Business: &model.Business{ID: 2}}

	tests := []struct {
		name      string
		guard     func(http.Handler) http.Handler
		principal *model.Principal
		want      int
	}{
		{name: "admin passes RequireAdmin", guard: RequireAdmin, principal: admin, want: http.StatusOK},
		{name: "pos blocked by RequireAdmin", guard: RequireAdmin, principal: pos, want: http.StatusForbidden},
		{name: "pos passes RequirePOS", guard: RequirePOS, principal: pos, want: http.StatusOK},
		{name: "admin blocked by RequirePOS", guard: RequirePOS, principal: admin, want: http.StatusForbidden},
		{name: "no principal blocked by RequireAdmin", guard: RequireAdmin, principal: nil, want: http.StatusForbidden},
		{name: "no principal blocked by RequirePOS", guard: RequirePOS, principal: nil, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.principal != nil {
				ctx := context.WithValue(req.Context(), principalKey, tt.principal)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			tt.guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
