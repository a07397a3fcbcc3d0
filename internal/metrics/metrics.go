// Package metrics registers the prometheus collectors used across the app.
package metrics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fireguard_http_requests_total",
			Help: "Total HTTP requests served.",
		},
		[]string{"method", "path", "status"},
	)

	// StoreCalls counts sheet store operations by entity and outcome.
	StoreCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fireguard_store_calls_total",
			Help: "Total sheet store operations.",
		},
		[]string{"entity", "op", "outcome"},
	)

	// EnquiriesSubmitted counts accepted enquiry submissions.
	EnquiriesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fireguard_enquiries_submitted_total",
			Help: "Total enquiries accepted.",
		},
	)
)

// ObserveStoreCall records one store operation.
func ObserveStoreCall(entity, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreCalls.WithLabelValues(entity, op, outcome).Inc()
}

// RequestCounter is a fiber middleware that counts requests per route.
func RequestCounter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		HTTPRequests.WithLabelValues(c.Method(), path, strconv.Itoa(c.Response().StatusCode())).Inc()
		return err
	}
}
