package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// TapRateLimit limits tap batch submissions per account (not per IP) using Redis.
// Requires JWT middleware to run before this.
func TapRateLimit(maxBatches int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			// Redis not configured, fail-open
			c.Next()
			return
		}

		accountIDVal, exists := c.Get("account_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		accountID, ok := accountIDVal.(int64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid account"})
			return
		}

		key := "tap_rl:" + strconv.FormatInt(accountID, 10) + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		ctx := context.Background()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			// On Redis error, fail-open
			c.Header("X-TapRateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		c.Header("X-TapRateLimit-Limit", strconv.Itoa(maxBatches))
		c.Header("X-TapRateLimit-Remaining", strconv.FormatInt(max(0, int64(maxBatches)-val), 10))

		if val > int64(maxBatches) {
			RLBlocked.WithLabelValues("tap:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "tap rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues("tap:" + c.FullPath()).Inc()
		c.Next()
	}
}

func max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
