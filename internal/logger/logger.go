package logger

import (
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const correlationHeader = "X-Correlation-ID"

// Init builds the process logger. LOG_LEVEL overrides the default info level.
func Init() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	if raw, ok := os.LookupEnv("LOG_LEVEL"); ok {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(raw)))); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	return cfg.Build()
}

// Middleware assigns a correlation ID to each request and logs its outcome.
func Middleware(logg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(correlationHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		c.Writer.Header().Set(correlationHeader, correlationID)
		c.Set(correlationHeader, correlationID)

		start := time.Now()
		c.Next()

		logg.Info("request",
			zap.String("correlation_id", correlationID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
