package middleware

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/snapdraw/raffle-api/internal/api/handler/v1/response"
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

// LoginRateLimiter counts attempts per client IP in fixed windows. State
// is in process memory; behind multiple instances each instance counts
// separately, which only loosens the limit.
type LoginRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*attemptWindow
}

type attemptWindow struct {
	count    int
	resetsAt time.Time
}

func NewLoginRateLimiter() *LoginRateLimiter {
	return &LoginRateLimiter{
		limit:   loginAttemptLimit,
		window:  loginAttemptWindow,
		windows: make(map[string]*attemptWindow),
	}
}

func (l *LoginRateLimiter) Limit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		allowed, retryAfter := l.allow(ctx.ClientIP(), time.Now())
		if !allowed {
			ctx.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			response.RenderErr(ctx, response.ErrTooManyRequests(
				errors.New("too many login attempts, try again later")))
			return
		}

		ctx.Next()
	}
}

func (l *LoginRateLimiter) allow(ip string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[ip]
	if !ok || now.After(w.resetsAt) {
		l.windows[ip] = &attemptWindow{
			count:    1,
			resetsAt: now.Add(l.window),
		}
		l.sweep(now)

		return true, 0
	}

	if w.count >= l.limit {
		return false, w.resetsAt.Sub(now)
	}

	w.count++

	return true, 0
}

// sweep drops expired windows so the map does not grow with every IP
// ever seen. Runs under the lock, only when a new window is created.
func (l *LoginRateLimiter) sweep(now time.Time) {
	for ip, w := range l.windows {
		if now.After(w.resetsAt) {
			delete(l.windows, ip)
		}
	}
}
