package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	EventRegistration = "registration"
	EventLogin        = "login"
	EventLoginFailed  = "login_failed"
	EventHabitCreated = "habit_created"
	EventHabitRepost  = "habit_repost"
	EventNewsCreated  = "news_created"
	EventComment      = "comment_created"
	EventPhotoUpload  = "photo_uploaded"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habitfeed_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitfeed_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	domainEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitfeed_events_total",
			Help: "Total number of domain events by kind",
		},
		[]string{"event"},
	)
)

// Middleware records request count and latency labeled by the matched route pattern.
func Middleware(c *fiber.Ctx) error {
	startTime := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			status = fiberErr.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	// The route pattern keeps label cardinality bounded; raw paths carry ids.
	route := "unmatched"
	if matched := c.Route(); matched != nil && matched.Path != "" {
		route = matched.Path
	}
	labels := []string{c.Method(), route, strconv.Itoa(status)}
	httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(startTime).Seconds())
	httpRequestsTotal.WithLabelValues(labels...).Inc()
	return err
}

func RecordEvent(event string) {
	domainEventsTotal.WithLabelValues(event).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
