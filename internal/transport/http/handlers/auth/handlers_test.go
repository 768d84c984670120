package authhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"empleados/internal/domain/auth"
	"empleados/internal/domain/users"
	"empleados/internal/transport/http/middleware"
)

type fakeLogin struct {
	result auth.LoginResult
	err    error
	email  string
}

func (f *fakeLogin) Login(_ context.Context, email, _ string) (auth.LoginResult, error) {
	f.email = email
	return f.result, f.err
}

type fakeUsers map[string]users.User

func (f fakeUsers) Get(_ context.Context, id string) (users.User, error) {
	u, ok := f[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHandleLogin(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svc      *fakeLogin
		wantCode int
		wantErr  string
	}{
		{
			name:     "success",
			body:     `{"email":"admin@example.com","password":"secret123"}`,
			svc:      &fakeLogin{result: auth.LoginResult{AccessToken: "tok", User: auth.UserSummary{ID: "u1", Email: "admin@example.com", Role: auth.RoleAdmin}}},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong password",
			body:     `{"email":"admin@example.com","password":"nope"}`,
			svc:      &fakeLogin{err: auth.ErrInvalidCredentials},
			wantCode: http.StatusUnauthorized,
			wantErr:  "invalid_credentials",
		},
		{
			name:     "missing fields",
			body:     `{"email":""}`,
			svc:      &fakeLogin{},
			wantCode: http.StatusUnauthorized,
			wantErr:  "invalid_credentials",
		},
		{
			name:     "malformed body",
			body:     `{`,
			svc:      &fakeLogin{},
			wantCode: http.StatusBadRequest,
			wantErr:  "invalid_payload",
		},
		{
			name:     "store failure",
			body:     `{"email":"admin@example.com","password":"secret123"}`,
			svc:      &fakeLogin{err: errors.New("connection reset")},
			wantCode: http.StatusInternalServerError,
			wantErr:  "login_failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(tc.svc, fakeUsers{})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.HandleLogin(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.Equal(t, tc.wantErr, errorCode(body))
			if tc.wantCode == http.StatusOK {
				data := body["data"].(map[string]any)
				assert.Equal(t, "tok", data["access_token"])
			}
		})
	}
}

func TestHandleMe(t *testing.T) {
	lookup := fakeUsers{"u1": {ID: "u1", Email: "op@example.com", Role: auth.RoleOperator}}
	h := NewHandler(&fakeLogin{}, lookup)

	t.Run("current user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), auth.UserContext{UserID: "u1", Role: auth.RoleOperator}))
		rec := httptest.NewRecorder()
		h.HandleMe(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, "op@example.com", data["email"])
		assert.Equal(t, auth.RoleOperator, data["role"])
	})

	t.Run("deleted user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), auth.UserContext{UserID: "gone"}))
		rec := httptest.NewRecorder()
		h.HandleMe(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.HandleMe(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
