package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/config"
	serr "github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/errors"
)

// limiterIdleTTL — через сколько простоя бакет клиента выбрасывается.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter — token bucket на каждого клиента.
// Клиент определяется по IP или, при key=user, по id из токена.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	byUser    bool
	lastSweep time.Time
	now       func() time.Time
	onError   ErrorHandler
}

// NewRateLimiter создаёт лимитер по секции security.rate_limit.
func NewRateLimiter(cfg config.RateLimitConfig, onError ErrorHandler) *RateLimiter {
	if onError == nil {
		onError = writePlainError
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
		byUser:   strings.EqualFold(cfg.Key, "user"),
		now:      time.Now,
		onError:  onError,
	}
}

// Allow списывает токен из бакета клиента key.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Middleware отвечает 429, когда бакет клиента пуст.
func (l *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(l.key(r)) {
				w.Header().Set("Retry-After", "1")
				l.onError(w, r, serr.ErrTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *RateLimiter) key(r *http.Request) string {
	if l.byUser {
		if id, ok := IdentityFromContext(r.Context()); ok {
			return "user:" + id.UserID
		}
	}
	return "ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// BodyLimit ограничивает размер тела запроса. Превышение лимита
// обработчик увидит как ошибку чтения тела.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
