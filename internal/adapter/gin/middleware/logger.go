package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"users-api/pkg/logger"
)

// Logger writes one access log entry per request. Failed requests are
// logged at warn; the handler that chose the failure logs the cause.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes", c.Writer.Size()),
		}

		l := logger.WithContext(c.Request.Context(), log)
		if status >= 400 {
			l.Warn("request completed", fields...)
			return
		}
		l.Info("request completed", fields...)
	}
}
