package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tilazone/tilazone/internal/webserver"
	"github.com/tilazone/tilazone/pkg/metrics"
)

func registerMetricsRoutes() {
	webserver.AdminGET("/metrics", getMetrics)
}

// getMetrics summarizes the operational counters over the last 24h.
func getMetrics(c echo.Context) error {
	end := time.Now()
	start := end.Add(-24 * time.Hour)

	names := []string{
		metrics.MetricHTTPRequests,
		metrics.MetricOrdersSubmitted,
		metrics.MetricOrdersFailed,
		metrics.MetricSessionCarts,
		metrics.MetricSystemCPUUse,
		metrics.MetricSystemMemUse,
	}
	out := make([]metrics.Summary, 0, len(names))
	for _, name := range names {
		s, err := metrics.Summarize(name, start, end)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Failed to query metrics", err.Error())
		}
		out = append(out, s)
	}
	return ok(c, out)
}
