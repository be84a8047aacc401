package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/pkg/utils"
)

// Logger writes one structured line per request after it completes.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		}
		if kind, ok := c.Locals(utils.ErrorKindKey).(string); ok && kind != "" {
			fields = append(fields, zap.String("error_kind", kind))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		if c.Response().StatusCode() >= 500 {
			logger.Error("Request failed", fields...)
		} else {
			logger.Info("Request", fields...)
		}
		return err
	}
}
