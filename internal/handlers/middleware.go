package handlers

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/services/auth"
	"gitlab.com/stark-bootcamp.net/internal/handlers/response"
	"gitlab.com/stark-bootcamp.net/internal/static/errs"
)

// RateLimitConfig configures the per-client token buckets.
type RateLimitConfig struct {
	Limit float64
	Burst int
	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For header is
	// believed. Without any, clients are keyed by their socket address.
	TrustedProxies []string
	// IdleTTL drops a client's bucket after this long without a request.
	IdleTTL time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type MiddlewareProvider struct {
	authService auth.IAuthService
	logger      primary.Logger

	limit     rate.Limit
	burst     int
	proxies   []*net.IPNet
	idleTTL   time.Duration
	now       func() time.Time
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	lastSweep time.Time
}

func New(authService auth.IAuthService, rl RateLimitConfig, logger primary.Logger) *MiddlewareProvider {
	if rl.Burst < 1 {
		rl.Burst = 1
	}
	if rl.IdleTTL <= 0 {
		rl.IdleTTL = 10 * time.Minute
	}
	m := &MiddlewareProvider{
		authService: authService,
		logger:      logger,
		limit:       rate.Limit(rl.Limit),
		burst:       rl.Burst,
		idleTTL:     rl.IdleTTL,
		now:         time.Now,
		limiters:    make(map[string]*clientLimiter),
	}
	for _, raw := range rl.TrustedProxies {
		network, err := parseNetwork(raw)
		if err != nil {
			logger.Warn("Ignoring trusted proxy", "value", raw, "error", err)
			continue
		}
		m.proxies = append(m.proxies, network)
	}
	m.lastSweep = m.now()
	return m
}

func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.WriteError(w, response.FromError(errs.MissingToken))
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if _, err := m.authService.Authorize(r.Context(), tokenString); err != nil {
			m.logger.Warn("Rejected admin request", "path", r.URL.Path, "error", err)
			response.WriteError(w, response.FromError(err))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimit applies a token bucket per client address.
func (m *MiddlewareProvider) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.limiterFor(m.clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			response.WriteError(w, response.Detail(http.StatusTooManyRequests, "Too many submissions, slow down"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *MiddlewareProvider) limiterFor(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if now.Sub(m.lastSweep) >= m.idleTTL {
		m.sweep(now)
	}
	entry, ok := m.limiters[key]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops buckets idle for longer than idleTTL. Caller holds mu.
func (m *MiddlewareProvider) sweep(now time.Time) {
	for key, entry := range m.limiters {
		if now.Sub(entry.lastSeen) > m.idleTTL {
			delete(m.limiters, key)
		}
	}
	m.lastSweep = now
}

// TrackedClients reports how many client buckets are held.
func (m *MiddlewareProvider) TrackedClients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.limiters)
}

// CORS allows any origin, the contest site is served from a different host.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// AccessLog logs one line per request.
func (m *MiddlewareProvider) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.logger.Info("Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}

// clientIP is the socket peer, unless that peer is a trusted proxy. Then the
// X-Forwarded-For chain is walked from the right and the first hop that is
// not a trusted proxy wins, since entries left of it are client supplied.
func (m *MiddlewareProvider) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !m.trusted(host) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !m.trusted(hop) {
			return hop
		}
		host = hop
	}
	return host
}

func (m *MiddlewareProvider) trusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, network := range m.proxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func parseNetwork(raw string) (*net.IPNet, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "/") {
		ip := net.ParseIP(raw)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP %q", raw)
		}
		bits := 8 * net.IPv4len
		if ip.To4() == nil {
			bits = 8 * net.IPv6len
		}
		return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
	}
	_, network, err := net.ParseCIDR(raw)
	return network, err
}
