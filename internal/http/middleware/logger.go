package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// LoggerLocalKey holds the request-scoped logger in Fiber's context locals.
const LoggerLocalKey = "logger"

// Logger logs one http_request entry per request with request_id, method, path,
// status and latency_ms. Downstream handlers can fetch a logger already carrying
// the request_id through LoggerFrom.
func Logger(base *zap.Logger) fiber.Handler {
	if base == nil {
		base = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()

		l := base.With(zap.String("request_id", RequestIDFrom(c)))
		c.Locals(LoggerLocalKey, l)

		err := c.Next()

		// Fiber reuses the request buffers once the handler returns.
		status := responseStatus(c, err)
		fields := []zap.Field{
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Float64("latency_ms", float64(time.Since(start).Microseconds())/1000),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			l.Error("http_request", fields...)
		case status >= fiber.StatusBadRequest:
			l.Warn("http_request", fields...)
		default:
			l.Info("http_request", fields...)
		}
		return err
	}
}

// LoggerFrom returns the request-scoped logger, or a no-op logger outside the middleware.
func LoggerFrom(c *fiber.Ctx) *zap.Logger {
	if l, ok := c.Locals(LoggerLocalKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
