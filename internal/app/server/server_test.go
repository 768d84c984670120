package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"empleados/internal/domain/auth"
	"empleados/internal/platform/config"
	"empleados/internal/platform/metrics"
	authhandler "empleados/internal/transport/http/handlers/auth"
	catalogshandler "empleados/internal/transport/http/handlers/catalogs"
	employeeshandler "empleados/internal/transport/http/handlers/employees"
	opshandler "empleados/internal/transport/http/handlers/ops"
	usershandler "empleados/internal/transport/http/handlers/users"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

const testSecret = "router-test-secret-with-enough-length"

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	return config.Config{
		JWTSecret:          testSecret,
		FrontendDir:        dir,
		Environment:        "test",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 100,
	}
}

// Services are nil: every request below is answered before a handler reaches them.
func testRouter(t *testing.T, pinger Pinger) http.Handler {
	collector := metrics.New()
	return NewRouter(testConfig(t), pinger, collector, Handlers{
		Auth:      authhandler.NewHandler(nil, nil),
		Catalogs:  catalogshandler.NewHandler(nil),
		Employees: employeeshandler.NewHandler(nil, nil, collector),
		Users:     usershandler.NewHandler(nil),
		Ops:       opshandler.NewHandler(collector),
	})
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.UserContext{UserID: "u1", Email: "u1@example.com", Role: role}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHealthAndReadiness(t *testing.T) {
	router := testRouter(t, stubPinger{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := testRouter(t, stubPinger{err: errors.New("no db")})
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAPIRequiresToken(t *testing.T) {
	router := testRouter(t, stubPinger{})
	for _, path := range []string{"/api/v1/auth/me", "/api/v1/employees", "/api/v1/catalogs/eps", "/api/v1/users", "/api/v1/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"), path)
	}
}

func TestRoleChecksReachHandlers(t *testing.T) {
	router := testRouter(t, stubPinger{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/employees/e1", nil)
	req.Header.Set("Authorization", bearer(t, auth.RoleOperator))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	req.Header.Set("Authorization", bearer(t, auth.RoleAdmin))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "requestsTotal")
}

func TestLoginIsPublic(t *testing.T) {
	router := testRouter(t, stubPinger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSExposesContentDisposition(t *testing.T) {
	router := testRouter(t, stubPinger{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestSPAFallback(t *testing.T) {
	router := testRouter(t, stubPinger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/123", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console.log")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/anything", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(context.Background(), config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
