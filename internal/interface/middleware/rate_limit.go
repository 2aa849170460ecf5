package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
	"github.com/oksasatya/budget-ledger-api/pkg/response"
)

// KeyFunc builds the counter key for a request.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true to skip limiting for a request.
type AllowFunc func(*gin.Context) bool

func routePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ClientIP(c)
	}
}

func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + routePath(c) + ":ip:" + ClientIP(c)
	}
}

// KeyByUserID keys on the authenticated user and falls back to the client IP.
// It must run after RequireAuth to see the user.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if id, ok := UserID(c); ok && id != uuid.Nil {
			return "rl:user:" + id.String()
		}
		return "rl:user:anon:ip:" + ClientIP(c)
	}
}

// INCR and set the window on first hit, atomically.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimit is a fixed-window limiter backed by Redis. A nil client or a
// non-positive limit disables it. Redis failures let the request through.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc, logger logrus.FieldLogger) gin.HandlerFunc {
	if rdb == nil || max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := keyFn(c)

		count, err := incrExpireScript.Run(ctx, rdb, []string{key}, window.Milliseconds()).Int()
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
			}
			c.Next()
			return
		}

		resetSec := 0
		if ttl, err := rdb.PTTL(ctx, key).Result(); err == nil && ttl > 0 {
			resetSec = int((ttl + time.Second - 1) / time.Second)
		}
		remaining := max - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Abort(c, apperror.RateLimited())
			return
		}
		c.Next()
	}
}
