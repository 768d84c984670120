package middleware

import (
	"net/http"

	"empleados/internal/domain/auth"
	"empleados/internal/transport/http/api"
)

// Authorize is called at the top of a handler. It writes the 401/403
// response itself and reports whether the handler may continue.
func Authorize(w http.ResponseWriter, r *http.Request, action string) (auth.UserContext, bool) {
	user, ok := GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
		return auth.UserContext{}, false
	}
	if !auth.Can(user.Role, action) {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(r.Context()))
		return auth.UserContext{}, false
	}
	return user, true
}
