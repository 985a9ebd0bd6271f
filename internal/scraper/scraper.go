package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	ReservationURL = "http://www.meijijingugaien.jp/sports/futsal/reserve.php"
	UserAgent      = "courtgrid/1.0 (github.com/pfrederiksen/courtgrid)"
	Timeout        = 30 * time.Second

	// MaxBodySize caps the bytes read from one reservation page
	MaxBodySize = 8 << 20
)

// Fetcher retrieves the raw reservation page for one date
type Fetcher interface {
	Fetch(ctx context.Context, date time.Time) ([]byte, error)
}

// Scraper fetches reservation pages over HTTP
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
	maxBody   int64
}

// New creates a Scraper for the given reservation endpoint. An empty url selects
// ReservationURL and a zero timeout selects Timeout.
func New(reservationURL string, timeout time.Duration) *Scraper {
	if reservationURL == "" {
		reservationURL = ReservationURL
	}
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		url:       reservationURL,
		userAgent: UserAgent,
		maxBody:   MaxBodySize,
	}
}

// WithUserAgent overrides the User-Agent header sent with every request
func (s *Scraper) WithUserAgent(ua string) *Scraper {
	if ua != "" {
		s.userAgent = ua
	}
	return s
}

// PageURL returns the reservation page URL for date
func (s *Scraper) PageURL(date time.Time) string {
	return fmt.Sprintf("%s?y=%04d&m=%02d&d=%02d", s.url, date.Year(), int(date.Month()), date.Day())
}

// Fetch reads the reservation page for date. There is no retry; any transport
// failure or non-2xx response is returned as a *FetchError.
func (s *Scraper) Fetch(ctx context.Context, date time.Time) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.PageURL(date), nil)
	if err != nil {
		return nil, &FetchError{Date: date, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Date: date, Err: fmt.Errorf("fetching page: %w", err)}
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Date: date, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody+1))
	if err != nil {
		return nil, &FetchError{Date: date, Err: fmt.Errorf("reading body: %w", err)}
	}
	if int64(len(body)) > s.maxBody {
		return nil, &FetchError{Date: date, StatusCode: resp.StatusCode, Err: fmt.Errorf("page exceeds %d bytes", s.maxBody)}
	}

	return body, nil
}
