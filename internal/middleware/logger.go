package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hotel/internal/pkg/apperr"
	"hotel/internal/pkg/response"
)

// ErrorLogger recovers from panics and logs errors attached to the
// context with c.Error, plus any 5xx response.
func ErrorLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				log.Error("panic recovered",
					append(requestFields(c, start), zap.Error(err), zap.ByteString("stack", debug.Stack()))...)

				response.Error(c, http.StatusInternalServerError, string(apperr.KindInternal), "Internal server error")
				c.Abort()
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					log.Error("request failed", requestFields(c, start)...)
				}
				return
			}

			for _, err := range c.Errors {
				fields := append(requestFields(c, start), zap.Error(err.Err))
				if err.Meta != nil {
					fields = append(fields, zap.Any("meta", err.Meta))
				}
				log.Error("request error", fields...)
			}
		}()

		c.Next()
	}
}

// RequestLogger writes one line per request. Client errors log at warn,
// everything else at info.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := zapcore.InfoLevel
		if status := c.Writer.Status(); status >= 400 && status < 500 {
			level = zapcore.WarnLevel
		}
		if ce := log.Check(level, "request"); ce != nil {
			ce.Write(requestFields(c, start)...)
		}
	}
}

func requestFields(c *gin.Context, start time.Time) []zap.Field {
	return []zap.Field{
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("query", c.Request.URL.RawQuery),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", GetRequestID(c)),
		zap.Duration("latency", time.Since(start)),
	}
}
