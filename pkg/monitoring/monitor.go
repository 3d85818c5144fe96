package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// ShiftCounter mode: preview|apply, result: ok|partial|rejected|error
	ShiftCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_shifts_total",
			Help: "Reschedule requests by mode and result",
		},
		[]string{"mode", "result"},
	)

	SessionUpdateFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_session_update_failures_total",
			Help: "Per-session updates that failed while applying a reschedule",
		},
	)

	MeetingRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_provider_requests_total",
			Help: "Calls to the online meeting provider",
		},
		[]string{"operation", "status"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(ShiftCounter)
		prometheus.MustRegister(SessionUpdateFailures)
		prometheus.MustRegister(MeetingRequests)
	})
}

func ObserveShift(mode, result string) {
	ShiftCounter.WithLabelValues(mode, result).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
