package middleware

import (
	"strings"
	"sync"
	"time"

	"retail-sales-api/internal/errors"
	"retail-sales-api/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerSecond = 20
	defaultBurstSize         = 40
	visitorTTL               = 3 * time.Minute
	cleanupInterval          = time.Minute
)

// RateLimiterConfig sets the per-client token bucket
type RateLimiterConfig struct {
	RequestsPerSecond int
	Burst             int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func newVisitorStore(cfg RateLimiterConfig) *visitorStore {
	if cfg.RequestsPerSecond < 1 {
		cfg.RequestsPerSecond = defaultRequestsPerSecond
	}
	if cfg.Burst < 1 {
		cfg.Burst = defaultBurstSize
	}
	return &visitorStore{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
	}
}

// RateLimiter creates a middleware for rate limiting requests per client IP
// with the default limits
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithConfig(RateLimiterConfig{})
}

// RateLimiterWithConfig creates a rate limiter with custom configuration.
// Each call owns its own visitor table.
func RateLimiterWithConfig(cfg RateLimiterConfig) echo.MiddlewareFunc {
	store := newVisitorStore(cfg)
	go store.cleanupLoop()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !store.get(getIP(c), time.Now()).Allow() {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

func (s *visitorStore) get(ip string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(s.limit, s.burst)
		s.visitors[ip] = &visitor{limiter, now}
		return limiter
	}

	v.lastSeen = now
	return v.limiter
}

// evict drops visitors idle for longer than visitorTTL
func (s *visitorStore) evict(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(s.visitors, ip)
		}
	}
}

func (s *visitorStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

func (s *visitorStore) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for now := range ticker.C {
		s.evict(now)
	}
}

// getIP prefers the first X-Forwarded-For hop, then X-Real-IP
func getIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(c.Request().Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return c.RealIP()
}
