package middleware

import (
	"time"

	"github.com/fathima-sithara/uriel-service/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// RequestLogger logs every request and records it in m. Run it after requestid so the id is set.
func RequestLogger(logger *zap.SugaredLogger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		// label values outlive the request; fiber reuses the method buffer
		method := utils.CopyString(c.Method())
		route := c.Route().Path
		m.ObserveRequest(method, route, status, latency)

		fields := []interface{}{
			"method", method,
			"path", c.Path(),
			"route", route,
			"ip", c.IP(),
			"status", status,
			"latency", latency,
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		}
		if err != nil {
			logger.Errorw("HTTP Request Error", append(fields, "error", err)...)
			return err
		}
		logger.Infow("HTTP Request", fields...)
		return nil
	}
}
