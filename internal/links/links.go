// Package links builds the public URLs under which a week grid is served.
package links

import (
	"fmt"
	"strings"
	"time"
)

// Builder creates links for one facility under a fixed origin
type Builder struct {
	baseURL  string
	facility string
}

// New creates a Builder. Trailing slashes on baseURL are dropped.
func New(baseURL, facility string) *Builder {
	return &Builder{
		baseURL:  strings.TrimRight(baseURL, "/"),
		facility: facility,
	}
}

// Facility returns the facility key used in paths
func (b *Builder) Facility() string {
	return b.facility
}

// ImagePath returns the path of the PNG grid starting at date
func (b *Builder) ImagePath(date time.Time) string {
	return "/image" + b.datePath(date)
}

// HTMLPath returns the path of the HTML page starting at date
func (b *Builder) HTMLPath(date time.Time) string {
	return b.datePath(date)
}

// CalendarPath returns the path of the iCalendar feed starting at date
func (b *Builder) CalendarPath(date time.Time) string {
	return "/ics" + b.datePath(date)
}

// ImageLink returns the absolute URL of the PNG grid
func (b *Builder) ImageLink(date time.Time) string {
	return b.baseURL + b.ImagePath(date)
}

// HTMLLink returns the absolute URL of the HTML page
func (b *Builder) HTMLLink(date time.Time) string {
	return b.baseURL + b.HTMLPath(date)
}

// CalendarLink returns the absolute URL of the iCalendar feed
func (b *Builder) CalendarLink(date time.Time) string {
	return b.baseURL + b.CalendarPath(date)
}

func (b *Builder) datePath(date time.Time) string {
	return fmt.Sprintf("/%s/%04d/%02d/%02d", b.facility, date.Year(), int(date.Month()), date.Day())
}
