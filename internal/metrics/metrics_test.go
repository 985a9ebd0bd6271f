package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pfrederiksen/courtgrid/internal/scraper"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type stubFetcher struct {
	err error
}

func (s stubFetcher) Fetch(ctx context.Context, date time.Time) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("<html></html>"), nil
}

func TestFetchOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"success", nil, OutcomeOK},
		{"http status", &scraper.FetchError{StatusCode: 503, Err: errors.New("unexpected status code: 503")}, OutcomeHTTPError},
		{"transport", &scraper.FetchError{Err: errors.New("connection refused")}, OutcomeNetwork},
		{"cancelled", &scraper.FetchError{Err: fmt.Errorf("fetching page: %w", context.Canceled)}, OutcomeCancelled},
		{"deadline", context.DeadlineExceeded, OutcomeCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FetchOutcome(tt.err); got != tt.want {
				t.Errorf("FetchOutcome() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstrumentFetcher(t *testing.T) {
	okBefore := testutil.ToFloat64(PageFetches.WithLabelValues(OutcomeOK))
	errBefore := testutil.ToFloat64(PageFetches.WithLabelValues(OutcomeHTTPError))

	ok := InstrumentFetcher(stubFetcher{})
	if _, err := ok.Fetch(context.Background(), time.Now()); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	failing := InstrumentFetcher(stubFetcher{err: &scraper.FetchError{StatusCode: 500, Err: errors.New("boom")}})
	if _, err := failing.Fetch(context.Background(), time.Now()); err == nil {
		t.Fatal("Fetch() expected error to pass through")
	}

	if got := testutil.ToFloat64(PageFetches.WithLabelValues(OutcomeOK)) - okBefore; got != 1 {
		t.Errorf("ok fetches recorded = %v, want 1", got)
	}
	if got := testutil.ToFloat64(PageFetches.WithLabelValues(OutcomeHTTPError)) - errBefore; got != 1 {
		t.Errorf("http_error fetches recorded = %v, want 1", got)
	}
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/things/:id", func(c *gin.Context) {
		c.String(http.StatusTeapot, "short and stout")
	})

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/things/:id", "418"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42", nil))

	if got := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/things/:id", "418")) - before; got != 1 {
		t.Errorf("requests recorded = %v, want 1", got)
	}
}
