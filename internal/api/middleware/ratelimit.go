package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter token bucket на каждого клиента (по IP).
// Клиенты, не заходившие дольше idleTTL, забываются
type RateLimiter struct {
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	log     Logger

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(requestsPerMinute, burst int, idleTTL time.Duration, log Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(float64(requestsPerMinute) / 60),
		burst:    burst,
		idleTTL:  idleTTL,
		log:      log,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Limit отвечает 429, когда клиент исчерпал свой bucket
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.allow(ip) {
			rl.log.Warn("%s %s - Rate limit exceeded for %s", r.Method, r.URL.Path, ip)
			w.Header().Set("Retry-After", "60")
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// sweep вызывается под mu не чаще раза в idleTTL
func (rl *RateLimiter) sweep(now time.Time) {
	if rl.idleTTL <= 0 || now.Sub(rl.lastSweep) < rl.idleTTL {
		return
	}
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idleTTL {
			delete(rl.visitors, ip)
		}
	}
	rl.lastSweep = now
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
