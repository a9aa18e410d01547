// internal/store/ratelimit.go
package store

import (
	"context"
	"fmt"
	"time"

	"chatnil/internal/common/database"
	"chatnil/internal/common/logger"
)

// ==========================
// Rate Limiter
// ==========================

// RateLimiter implements a fixed-window counter in Redis, keyed
// ratelimit:<scope>:<subject>.
type RateLimiter struct {
	redis  *database.RedisClient
	logger logger.Logger
}

func NewRateLimiter(redis *database.RedisClient, log logger.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redis,
		logger: log.WithFields(map[string]interface{}{"component": "ratelimit"}),
	}
}

// Allow increments the window counter and reports whether the subject
// is still under the limit. The window TTL is set on the first hit.
func (l *RateLimiter) Allow(ctx context.Context, scope, subject string, limit int64, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, subject)

	count, err := l.redis.Incr(ctx, key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, window); err != nil {
			l.logger.Warn("rate limit window expiry not set", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	if count > limit {
		l.logger.Info("rate limit exceeded", map[string]interface{}{
			"scope":   scope,
			"subject": subject,
			"count":   count,
			"limit":   limit,
		})
		return false, nil
	}

	return true, nil
}
