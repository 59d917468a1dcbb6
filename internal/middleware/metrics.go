package middleware

import (
	"strconv"
	"time"

	"linkbio/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records per-request prometheus counters and latency histograms.
// The route pattern is used as the path label so /api/links/:linkId stays a
// single series regardless of the concrete id.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}
