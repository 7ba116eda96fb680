package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitStore defines the persistence operations required by the limiter.
type RateLimitStore interface {
	TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error
	CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error)
	RecordAttempt(ctx context.Context, identifier string, at time.Time) error
	OldestAttempt(ctx context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error)
}

// RateLimitRule configures a sliding-window limit keyed by client IP.
type RateLimitRule struct {
	Name   string
	Limit  int
	Window time.Duration
}

// RateLimiter applies sliding-window limits backed by the store. A nil store
// or a store failure never blocks the request; the limiter fails open and
// logs instead.
type RateLimiter struct {
	store  RateLimitStore
	logger *zap.Logger
	now    func() time.Time
}

// NewRateLimiter builds a reusable rate limiter middleware helper.
func NewRateLimiter(store RateLimitStore, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RateLimiter{store: store, logger: logger, now: time.Now}
}

// WithClock injects a custom clock for tests.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	if now != nil {
		rl.now = now
	}
	return rl
}

// Limit returns a gin middleware enforcing the rule against the client IP.
func (rl *RateLimiter) Limit(rule RateLimitRule) gin.HandlerFunc {
	if rule.Name == "" {
		rule.Name = "default"
	}

	return func(c *gin.Context) {
		if rl == nil || rl.store == nil || rule.Limit <= 0 || rule.Window <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", rule.Name, ip)
		now := rl.now()

		allowed, retryAfter, err := rl.check(c.Request.Context(), key, rule, now)
		if err != nil {
			rl.logger.Warn("rate limit check failed",
				zap.String("rule", rule.Name), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 0 {
				seconds = 0
			}
			c.Writer.Header().Set("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				newErrorResponse(c, "Too many attempts. Please try again later."))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) check(ctx context.Context, key string, rule RateLimitRule, now time.Time) (bool, time.Duration, error) {
	if err := rl.store.TrimWindow(ctx, key, rule.Window, now); err != nil {
		return false, 0, err
	}

	count, err := rl.store.CountAttempts(ctx, key, rule.Window, now)
	if err != nil {
		return false, 0, err
	}

	if count >= rule.Limit {
		retryAfter := rule.Window
		if oldest, ok, err := rl.store.OldestAttempt(ctx, key, rule.Window, now); err == nil && ok {
			retryAfter = oldest.Add(rule.Window).Sub(now)
			if retryAfter < 0 {
				retryAfter = 0
			}
		}
		return false, retryAfter, nil
	}

	if err := rl.store.RecordAttempt(ctx, key, now); err != nil {
		return false, 0, err
	}

	return true, 0, nil
}
