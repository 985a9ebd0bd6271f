package notifier

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Announcement describes one week grid to share
type Announcement struct {
	Facility  string
	Start     time.Time
	Days      int
	PageURL   string
	ImageURL  string
	FreeSlots int // free slots over the week, both categories
}

// End returns the last date covered by the announcement
func (a Announcement) End() time.Time {
	return a.Start.AddDate(0, 0, a.Days-1)
}

// Notifier defines the interface for posting announcements
type Notifier interface {
	// Notify posts the announcement
	Notify(a Announcement) error
}

// maxLength is the Twitter post limit
const maxLength = 280

// formatAnnouncement formats an announcement as a short post
func formatAnnouncement(a Announcement) string {
	end := a.End()
	post := fmt.Sprintf("🎾 %s court availability %d/%d - %d/%d\n",
		a.Facility, int(a.Start.Month()), a.Start.Day(), int(end.Month()), end.Day())

	if a.FreeSlots > 0 {
		post += fmt.Sprintf("✅ %d free hourly slots\n", a.FreeSlots)
	} else {
		post += "❌ Fully booked\n"
	}

	post += fmt.Sprintf("\n🔗 %s\n", a.PageURL)
	post += "\n#tennis #futsal"

	// The limit counts characters, not bytes
	if utf8.RuneCountInString(post) > maxLength {
		post = string([]rune(post)[:maxLength-3]) + "..."
	}

	return post
}
