package middleware

import (
	"collab-backend/lib/metrics"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Metrics считает запросы по маршруту, а не по фактическому пути
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}
		metrics.ObserveRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
