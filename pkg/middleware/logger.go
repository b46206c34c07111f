package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inkstudio/pkg/utils"
)

const slowRequest = 200 * time.Millisecond

// RequestLogger stores a request-scoped logger carrying the trace id and logs
// every request once it completes. Must run after TraceIDMiddleware.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With(zap.String("trace_id", c.GetString("trace_id")))
		c.Set(utils.LoggerKey, reqLog)

		c.Next()

		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
		}
		if latency > slowRequest {
			reqLog.Warn("slow request", fields...)
			return
		}
		reqLog.Info("request", fields...)
	}
}
