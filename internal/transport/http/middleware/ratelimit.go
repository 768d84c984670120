package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"empleados/internal/requestctx"
	"empleados/internal/transport/http/api"
)

// RateLimitKeyFunc picks the bucket a request is counted against.
type RateLimitKeyFunc func(r *http.Request) string

const maxKeyedBodyBytes = 64 * 1024

type window struct {
	hits  int
	reset time.Time
}

// fixedWindow counts hits per key inside a fixed time window.
type fixedWindow struct {
	mu        sync.Mutex
	limit     int
	period    time.Duration
	keyFn     RateLimitKeyFunc
	clients   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

type verdict struct {
	allowed   bool
	remaining int
	resetIn   int
}

// SensitiveMutationRateLimit guards the login endpoint per client IP and per
// submitted email, and employee or user writes per authenticated actor.
// Reads are never counted.
func SensitiveMutationRateLimit(baseLimit int, period time.Duration) func(http.Handler) http.Handler {
	loginLimit := max(baseLimit/4, 1)
	writeLimit := max(baseLimit/2, 1)
	loginByIP := newRateLimiter(loginLimit, period, clientIPKey)
	loginByEmail := newRateLimiter(loginLimit, period, AuthEmailOrIPKey("email"))
	writesByActor := newRateLimiter(writeLimit, period, actorOrIPKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var guards []*fixedWindow
			switch classify(r) {
			case scopeLogin:
				guards = []*fixedWindow{loginByIP, loginByEmail}
			case scopeWrite:
				guards = []*fixedWindow{writesByActor}
			}
			for _, g := range guards {
				if !g.enforce(w, r) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthEmailOrIPKey keys on a JSON body field, lowercased. The body is
// restored so the handler can still decode it.
func AuthEmailOrIPKey(field string) RateLimitKeyFunc {
	field = strings.TrimSpace(field)
	if field == "" {
		field = "email"
	}
	return func(r *http.Request) string {
		if value := jsonBodyField(r, field); value != "" {
			return "email:" + strings.ToLower(value)
		}
		return clientIPKey(r)
	}
}

func actorOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.UserID != "" {
		return "user:" + user.UserID
	}
	return clientIPKey(r)
}

func clientIPKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}

func newRateLimiter(limit int, period time.Duration, keyFn RateLimitKeyFunc) *fixedWindow {
	if keyFn == nil {
		keyFn = actorOrIPKey
	}
	return &fixedWindow{
		limit:   limit,
		period:  period,
		keyFn:   keyFn,
		clients: map[string]*window{},
		now:     time.Now,
	}
}

func (fw *fixedWindow) hit(key string) verdict {
	now := fw.now()

	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.sweep(now)
	win, ok := fw.clients[key]
	if !ok || now.After(win.reset) {
		win = &window{reset: now.Add(fw.period)}
		fw.clients[key] = win
	}
	win.hits++
	return verdict{
		allowed:   win.hits <= fw.limit,
		remaining: max(fw.limit-win.hits, 0),
		resetIn:   ceilSeconds(win.reset.Sub(now)),
	}
}

// sweep drops expired windows at most once per period. Caller holds mu.
func (fw *fixedWindow) sweep(now time.Time) {
	if now.Sub(fw.lastSweep) < fw.period {
		return
	}
	for key, win := range fw.clients {
		if now.After(win.reset) {
			delete(fw.clients, key)
		}
	}
	fw.lastSweep = now
}

func (fw *fixedWindow) enforce(w http.ResponseWriter, r *http.Request) bool {
	if fw.limit <= 0 {
		return true
	}
	key := fw.keyFn(r)
	if key == "" {
		key = clientIPKey(r)
	}

	v := fw.hit(key)
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(fw.limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(v.remaining))
	h.Set("X-RateLimit-Reset", strconv.Itoa(v.resetIn))
	if v.allowed {
		return true
	}

	h.Set("Retry-After", strconv.Itoa(max(v.resetIn, 1)))
	requestctx.Logger(r.Context()).Warn().
		Str("key", key).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("limit", fw.limit).
		Dur("period", fw.period).
		Msg("rate limit exceeded")
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

func jsonBodyField(r *http.Request, field string) string {
	if r.Body == nil || !strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxKeyedBodyBytes))
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), r.Body))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	value, _ := payload[field].(string)
	return strings.TrimSpace(value)
}

type rateScope int

const (
	scopeNone rateScope = iota
	scopeLogin
	scopeWrite
)

func classify(r *http.Request) rateScope {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return scopeNone
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	switch {
	case path == "/auth/login":
		return scopeLogin
	case hasSegmentPrefix(path, "/employees"), hasSegmentPrefix(path, "/users"):
		return scopeWrite
	}
	return scopeNone
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
