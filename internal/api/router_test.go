package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/core/ports"
	"github.com/projecthub/api/internal/pkg/token"
)

type routerAuth struct{ ports.AuthService }

func (routerAuth) Login(_ context.Context, email, _ string) (*ports.AuthResult, error) {
	if email != "alice@example.com" {
		return nil, domain.ErrInvalidCredentials
	}
	return &ports.AuthResult{Token: "tok", User: &domain.User{ID: "u1", Email: email, Role: domain.RoleUser}}, nil
}

type routerProjects struct{ ports.ProjectService }

func (routerProjects) List(context.Context, *domain.Actor) ([]ports.ProjectView, error) {
	return nil, nil
}

type routerAdmin struct{ ports.AdminService }

func (routerAdmin) Stats(context.Context, *domain.Actor) (*ports.DashboardStats, error) {
	return &ports.DashboardStats{Users: 2, TasksByStatus: map[domain.TaskStatus]int64{}}, nil
}

func newTestRouter(t *testing.T) (*echo.Echo, *token.Issuer) {
	t.Helper()
	issuer := token.NewIssuer("router-secret", time.Hour)
	e := NewRouter(Deps{
		Auth:        routerAuth{},
		Projects:    routerProjects{},
		Admin:       routerAdmin{},
		Tokens:      issuer,
		CORSOrigins: []string{"http://localhost:3000"},
		Log:         zerolog.Nop(),
	})
	return e, issuer
}

func bearer(t *testing.T, issuer *token.Issuer, id string, role domain.Role) string {
	t.Helper()
	tok, err := issuer.Issue(&domain.User{ID: id, Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + tok
}

func serve(e *echo.Echo, method, target, body, auth string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Routes(t *testing.T) {
	e, issuer := newTestRouter(t)
	userAuth := bearer(t, issuer, "u1", domain.RoleUser)
	adminAuth := bearer(t, issuer, "a1", domain.RoleAdmin)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		auth   string
		want   int
	}{
		{"liveness", http.MethodGet, "/health", "", "", http.StatusOK},
		{"readiness without stores", http.MethodGet, "/health/ready", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"login is public", http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret1"}`, "", http.StatusOK},
		{"login bad credentials", http.MethodPost, "/api/auth/login", `{"email":"bob@example.com","password":"secret1"}`, "", http.StatusUnauthorized},
		{"projects need a token", http.MethodGet, "/api/projects", "", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/projects", "", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"projects with token", http.MethodGet, "/api/projects", "", userAuth, http.StatusOK},
		{"admin route as user", http.MethodGet, "/api/admin/stats", "", userAuth, http.StatusForbidden},
		{"admin route as admin", http.MethodGet, "/api/admin/stats", "", adminAuth, http.StatusOK},
		{"unknown route", http.MethodGet, "/nope", "", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, tt.method, tt.target, tt.body, tt.auth)
			if rec.Code != tt.want {
				t.Fatalf("%s %s: status = %d, want %d (%s)", tt.method, tt.target, rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestRouter_SetsRequestID(t *testing.T) {
	e, _ := newTestRouter(t)
	rec := serve(e, http.MethodGet, "/health", "", "")
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatal("expected X-Request-Id header")
	}
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	e, issuer := newTestRouter(t)
	rec := serve(e, http.MethodGet, "/api/admin/stats", "", bearer(t, issuer, "u1", domain.RoleUser))

	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"access forbidden"}` {
		t.Fatalf("body = %s", got)
	}
}
