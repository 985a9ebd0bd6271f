// Package collector gathers a contiguous run of day readings by fetching and parsing
// every day page concurrently and reassembling the results in date order.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pfrederiksen/courtgrid/internal/availability"
	"github.com/pfrederiksen/courtgrid/internal/scraper"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxInFlight caps concurrent page fetches when no limit is configured
const DefaultMaxInFlight = 7

// DayParser turns one fetched page into a DayReading
type DayParser interface {
	ParseDayBytes(date time.Time, page []byte) (availability.DayReading, error)
}

// Collector runs the fetch, parse and aggregate pipeline for a range of dates
type Collector struct {
	fetcher     scraper.Fetcher
	parser      DayParser
	maxInFlight int
}

// New creates a Collector. maxInFlight <= 0 selects DefaultMaxInFlight.
func New(fetcher scraper.Fetcher, parser DayParser, maxInFlight int) *Collector {
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}
	return &Collector{
		fetcher:     fetcher,
		parser:      parser,
		maxInFlight: maxInFlight,
	}
}

// DayFailure is the error of one day's pipeline
type DayFailure struct {
	Date time.Time
	Err  error
}

// PartialFailure reports that at least one day of a week request failed.
// Failures are ordered by date.
type PartialFailure struct {
	Failures []DayFailure
}

func (e *PartialFailure) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Date.Format("2006-01-02"), f.Err))
	}
	return fmt.Sprintf("%d day(s) failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap exposes every day's error to errors.Is and errors.As
func (e *PartialFailure) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Dates returns the failed dates in order
func (e *PartialFailure) Dates() []time.Time {
	dates := make([]time.Time, 0, len(e.Failures))
	for _, f := range e.Failures {
		dates = append(dates, f.Date)
	}
	return dates
}

type dayResult struct {
	offset int
	day    availability.DayReading
	err    error
}

// Collect fetches dayCount days starting at start. Pipelines finish in any order;
// the results are sorted back into offset order so Days[i] is start plus i days.
// Collect succeeds only when every day succeeds.
func (c *Collector) Collect(ctx context.Context, start time.Time, dayCount int) (*availability.WeekReading, error) {
	if dayCount <= 0 {
		return nil, fmt.Errorf("day count must be positive, got %d", dayCount)
	}
	start = availability.Midnight(start)

	results := make(chan dayResult, dayCount)

	var g errgroup.Group
	g.SetLimit(c.maxInFlight)

	for i := 0; i < dayCount; i++ {
		offset := i
		date := start.AddDate(0, 0, offset)
		g.Go(func() error {
			day, err := c.collectDay(ctx, date)
			results <- dayResult{offset: offset, day: day, err: err}
			return nil
		})
	}

	// Failures travel in dayResult so every pipeline runs to completion
	_ = g.Wait()
	close(results)

	ordered := make([]dayResult, 0, dayCount)
	for r := range results {
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].offset < ordered[j].offset
	})

	var failures []DayFailure
	week := &availability.WeekReading{
		Start: start,
		Days:  make([]availability.DayReading, 0, dayCount),
	}
	for _, r := range ordered {
		if r.err != nil {
			failures = append(failures, DayFailure{Date: start.AddDate(0, 0, r.offset), Err: r.err})
			continue
		}
		week.Days = append(week.Days, r.day)
	}

	if len(failures) > 0 {
		return nil, &PartialFailure{Failures: failures}
	}

	if err := week.Validate(); err != nil {
		return nil, fmt.Errorf("assembling week: %w", err)
	}

	return week, nil
}

func (c *Collector) collectDay(ctx context.Context, date time.Time) (availability.DayReading, error) {
	page, err := c.fetcher.Fetch(ctx, date)
	if err != nil {
		return availability.DayReading{}, err
	}

	day, err := c.parser.ParseDayBytes(date, page)
	if err != nil {
		return availability.DayReading{}, err
	}

	return day, nil
}

// IsPartialFailure reports whether err is or wraps a *PartialFailure
func IsPartialFailure(err error) bool {
	var pf *PartialFailure
	return errors.As(err, &pf)
}
