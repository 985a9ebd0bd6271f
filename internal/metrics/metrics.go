// Package metrics defines the Prometheus metrics of the grid service and the
// instrumentation that records them.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pfrederiksen/courtgrid/internal/scraper"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtgrid_page_fetches_total",
			Help: "Reservation page fetches by outcome",
		},
		[]string{"outcome"},
	)

	PageFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "courtgrid_page_fetch_duration_seconds",
			Help:    "Time spent fetching one reservation page",
			Buckets: prometheus.DefBuckets,
		},
	)

	WeeksCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtgrid_weeks_collected_total",
			Help: "Week requests by outcome",
		},
		[]string{"outcome"},
	)

	GridsRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtgrid_grids_rendered_total",
			Help: "Grid images rendered",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtgrid_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courtgrid_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BotCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtgrid_bot_commands_total",
			Help: "Bot commands handled",
		},
		[]string{"command"},
	)
)

// Fetch outcomes
const (
	OutcomeOK        = "ok"
	OutcomeHTTPError = "http_error"
	OutcomeNetwork   = "network_error"
	OutcomeCancelled = "cancelled"
)

type instrumentedFetcher struct {
	next scraper.Fetcher
}

// InstrumentFetcher wraps f so every fetch records its outcome and duration
func InstrumentFetcher(f scraper.Fetcher) scraper.Fetcher {
	return &instrumentedFetcher{next: f}
}

func (f *instrumentedFetcher) Fetch(ctx context.Context, date time.Time) ([]byte, error) {
	start := time.Now()
	page, err := f.next.Fetch(ctx, date)
	PageFetchDuration.Observe(time.Since(start).Seconds())
	PageFetches.WithLabelValues(FetchOutcome(err)).Inc()
	return page, err
}

// FetchOutcome classifies a fetch error into an outcome label
func FetchOutcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return OutcomeCancelled
	}
	var fe *scraper.FetchError
	if errors.As(err, &fe) && fe.StatusCode != 0 {
		return OutcomeHTTPError
	}
	return OutcomeNetwork
}

// GinMiddleware records request count and latency per route template
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
