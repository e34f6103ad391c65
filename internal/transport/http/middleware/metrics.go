package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
		[]string{"path", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"},
	)

	// 业务指标：预订创建/取消
	BookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bookings_created_total", Help: "Count of bookings created"},
	)
	BookingsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bookings_cancelled_total", Help: "Count of bookings cancelled"},
	)
)

func init() {
	prometheus.MustRegister(httpReqTotal, httpLatency, BookingsCreated, BookingsCancelled)
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		httpReqTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
