package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DailyCounter tracks proxied contract submissions per client per day.
type DailyCounter interface {
	IncrDailySubmissions(ctx context.Context, clientIP string, files int, now time.Time) (int64, error)
}

// DailyUploadQuota caps proxied contract analyses per client IP per day,
// mirroring the upstream service's quota so obvious over-use is rejected
// before proxying. A counter outage fails open: the upstream quota check
// in the orchestrator remains the authoritative gate.
func DailyUploadQuota(counter DailyCounter, limit int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		files := 1
		if form, err := c.MultipartForm(); err == nil && form != nil {
			if n := len(form.File["files"]); n > 0 {
				files = n
			}
		}

		count, err := counter.IncrDailySubmissions(c.Request.Context(), c.ClientIP(), files, time.Now())
		if err != nil {
			logger.Warn("daily submission counter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "You have reached the daily limit of document analyses. Please try again tomorrow.",
			})
			return
		}

		c.Next()
	}
}
