package links

import (
	"testing"
	"time"
)

func TestLinks(t *testing.T) {
	b := New("https://courts.example.com/", "jingu")

	tests := []struct {
		name     string
		date     time.Time
		image    string
		html     string
		calendar string
	}{
		{
			name:     "single digit month and day",
			date:     time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
			image:    "https://courts.example.com/image/jingu/2026/03/07",
			html:     "https://courts.example.com/jingu/2026/03/07",
			calendar: "https://courts.example.com/ics/jingu/2026/03/07",
		},
		{
			name:     "two digit month and day",
			date:     time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC),
			image:    "https://courts.example.com/image/jingu/2026/12/25",
			html:     "https://courts.example.com/jingu/2026/12/25",
			calendar: "https://courts.example.com/ics/jingu/2026/12/25",
		},
		{
			name:     "short year padded",
			date:     time.Date(42, 1, 1, 0, 0, 0, 0, time.UTC),
			image:    "https://courts.example.com/image/jingu/0042/01/01",
			html:     "https://courts.example.com/jingu/0042/01/01",
			calendar: "https://courts.example.com/ics/jingu/0042/01/01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ImageLink(tt.date); got != tt.image {
				t.Errorf("ImageLink() = %q, want %q", got, tt.image)
			}
			if got := b.HTMLLink(tt.date); got != tt.html {
				t.Errorf("HTMLLink() = %q, want %q", got, tt.html)
			}
			if got := b.CalendarLink(tt.date); got != tt.calendar {
				t.Errorf("CalendarLink() = %q, want %q", got, tt.calendar)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	b := New("http://localhost:8080", "jingu")
	date := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	if got := b.ImagePath(date); got != "/image/jingu/2026/10/18" {
		t.Errorf("ImagePath() = %q", got)
	}
	if got := b.HTMLPath(date); got != "/jingu/2026/10/18" {
		t.Errorf("HTMLPath() = %q", got)
	}
	if b.Facility() != "jingu" {
		t.Errorf("Facility() = %q", b.Facility())
	}
}
