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

	// ModuleCompletions 每次计算模块完成度时按结果状态计数
	ModuleCompletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "module_completions_total",
			Help: "Module completion summaries computed, by pass status",
		},
		[]string{"status"},
	)

	ProgressRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_records_total",
			Help: "Assessment results recorded, by assessment type",
		},
		[]string{"type"},
	)

	AssignmentsDeactivated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assignments_auto_deactivated_total",
			Help: "Assignment templates deactivated after their due date",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(ModuleCompletions)
		prometheus.MustRegister(ProgressRecorded)
		prometheus.MustRegister(AssignmentsDeactivated)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
