package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RoundRateLimit caps how many rounds a client may open per window, on top of
// the general API limit. Each round costs a fresh key and an HMAC, so it gets
// its own budget. Uses Redis only; without Redis it fails open.
func RoundRateLimit(maxRounds int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := "round_rl:" + c.ClientIP() + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		ctx := c.Request.Context()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Header("X-RoundRateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		c.Header("X-RoundRateLimit-Limit", strconv.Itoa(maxRounds))
		c.Header("X-RoundRateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRounds)-val), 10))

		if val > int64(maxRounds) {
			RLBlocked.WithLabelValues("round:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "round rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues("round:" + c.FullPath()).Inc()
		c.Next()
	}
}
