package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vzahanych/wx-gateway/internal/server/middlewares"
)

// MetricsHandler exposes the in-process HTTP metrics collected by the
// metrics middleware as a plain-text exposition.
type MetricsHandler struct {
	logger  *zap.Logger
	metrics *middlewares.HTTPMetrics
}

func NewMetricsHandler(metrics *middlewares.HTTPMetrics, logger *zap.Logger) *MetricsHandler {
	return &MetricsHandler{
		logger:  logger,
		metrics: metrics,
	}
}

func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	totals, avgDuration, active := h.metrics.Snapshot()

	var b strings.Builder

	b.WriteString("# HELP http_requests_total Total number of HTTP requests\n")
	b.WriteString("# TYPE http_requests_total counter\n")
	for key, count := range totals {
		b.WriteString("http_requests_total{route_status=\"" + key + "\"} " + strconv.FormatInt(count, 10) + "\n")
	}

	b.WriteString("\n# HELP http_request_duration_seconds_avg Average duration of HTTP requests\n")
	b.WriteString("# TYPE http_request_duration_seconds_avg gauge\n")
	b.WriteString("http_request_duration_seconds_avg " + strconv.FormatFloat(avgDuration, 'f', 6, 64) + "\n")

	b.WriteString("\n# HELP http_active_requests Number of active HTTP requests\n")
	b.WriteString("# TYPE http_active_requests gauge\n")
	b.WriteString("http_active_requests " + strconv.FormatInt(active, 10) + "\n")

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(200, b.String())
}
