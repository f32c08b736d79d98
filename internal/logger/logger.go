package logger

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// Init initializes the global logger. Development mode uses a colored
// console encoder at debug level; production uses JSON at info level.
func Init(isDev bool) {
	once.Do(func() {
		var cfg zap.Config
		if isDev {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			cfg = zap.NewProductionConfig()
		}

		var err error
		globalLogger, err = cfg.Build()
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
	})
}

// Get returns the global logger. Before Init it is a no-op logger, which
// keeps tests quiet.
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// With returns a child logger with the given fields attached.
func With(fields ...zap.Field) *zap.Logger {
	return Get().With(fields...)
}

// FromGin returns a child logger carrying the request_id set by
// RequestIDMiddleware, or the global logger when there is none.
func FromGin(c *gin.Context) *zap.Logger {
	if id := c.GetString("request_id"); id != "" {
		return Get().With(zap.String("request_id", id))
	}
	return Get()
}

// RequestIDMiddleware reuses an incoming X-Request-ID or generates a UUID,
// stores it in the gin context under "request_id" and echoes the header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// Sync flushes any buffered log entries.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
