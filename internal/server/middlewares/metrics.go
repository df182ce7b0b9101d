package middlewares

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPMetrics accumulates in-process request metrics: counts keyed by
// "METHOD route_status", a bounded window of durations, and the number of
// in-flight requests.
type HTTPMetrics struct {
	mu               sync.RWMutex
	requestsTotal    map[string]int64
	requestDurations []float64
	activeRequests   int64
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requestsTotal:    make(map[string]int64),
		requestDurations: make([]float64, 0),
	}
}

// Snapshot returns a copy of the counters plus the average duration over the
// retained window.
func (m *HTTPMetrics) Snapshot() (map[string]int64, float64, int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals := make(map[string]int64, len(m.requestsTotal))
	for k, v := range m.requestsTotal {
		totals[k] = v
	}

	var avg float64
	if len(m.requestDurations) > 0 {
		sum := 0.0
		for _, d := range m.requestDurations {
			sum += d
		}
		avg = sum / float64(len(m.requestDurations))
	}

	return totals, avg, m.activeRequests
}

// MetricsMiddleware records per-request metrics into the shared HTTPMetrics.
func MetricsMiddleware(metrics *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.mu.Lock()
		metrics.activeRequests++
		metrics.mu.Unlock()

		c.Next()

		duration := time.Since(start).Seconds()
		key := c.Request.Method + " " + c.FullPath() + "_" + strconv.Itoa(c.Writer.Status())

		metrics.mu.Lock()
		metrics.requestsTotal[key]++
		metrics.requestDurations = append(metrics.requestDurations, duration)
		metrics.activeRequests--

		// Bound the duration window so memory stays flat.
		if len(metrics.requestDurations) > 1000 {
			metrics.requestDurations = metrics.requestDurations[len(metrics.requestDurations)-1000:]
		}
		metrics.mu.Unlock()
	}
}
