package scraper

import (
	"fmt"
	"time"
)

// FetchError reports a failed page fetch for one date
type FetchError struct {
	Date       time.Time
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Date.Format("2006-01-02"), e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ShapeMismatchError reports a reservation table that does not have the expected
// layout. Row is -1 when the problem is not tied to a single row.
type ShapeMismatchError struct {
	Selector string
	Row      int
	Got      int
	Want     int
	Reason   string
}

func (e *ShapeMismatchError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("table %s: %s", e.Selector, e.Reason)
	}
	return fmt.Sprintf("table %s row %d: got %d slots, want %d", e.Selector, e.Row, e.Got, e.Want)
}
