package availability

import (
	"fmt"
	"time"
)

// SlotCount is the number of hourly reservation windows per day
const SlotCount = 16

var slotLabels = [SlotCount]string{
	"7:00-8:00", "8:00-9:00", "9:00-10:00", "10:00-11:00",
	"11:00-12:00", "12:00-13:00", "13:00-14:00", "14:00-15:00",
	"15:00-16:00", "16:00-17:00", "17:00-18:00", "18:00-19:00",
	"19:00-20:00", "20:00-21:00", "21:00-22:00", "22:00-23:00",
}

// FirstSlotHour is the starting hour of slot 0
const FirstSlotHour = 7

// SlotLabels returns a copy of the fixed slot labels in slot order
func SlotLabels() []string {
	labels := make([]string, SlotCount)
	copy(labels, slotLabels[:])
	return labels
}

// SlotStart returns the start time of slot i on the given date
func SlotStart(date time.Time, i int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), FirstSlotHour+i, 0, 0, 0, date.Location())
}

// Status is the reservation state of one slot
type Status int

const (
	Free Status = iota
	Reserved
)

// String returns the status word shown in grid cells
func (s Status) String() string {
	if s == Free {
		return "free"
	}
	return "reserved"
}

// Category identifies a court grouping on the reservation page
type Category string

const (
	CategoryTennis Category = "tennis"
	CategoryShared Category = "shared"
)

// Categories lists the categories in row order
var Categories = []Category{CategoryTennis, CategoryShared}

// CourtReading is one physical court's slot states for one date
type CourtReading []Status

// CategoryReading is the merged slot states of every court in a category
type CategoryReading [SlotCount]Status

// FreeCount returns how many slots are free
func (c CategoryReading) FreeCount() int {
	n := 0
	for _, s := range c {
		if s == Free {
			n++
		}
	}
	return n
}

// DayReading holds both category readings for one date
type DayReading struct {
	Date   time.Time
	Tennis CategoryReading
	Shared CategoryReading
}

// Reading returns the reading for the given category
func (d DayReading) Reading(c Category) CategoryReading {
	if c == CategoryShared {
		return d.Shared
	}
	return d.Tennis
}

// WeekReading is a contiguous run of days ordered by date
type WeekReading struct {
	Start time.Time
	Days  []DayReading
}

// Validate checks that Days[i] falls on Start plus i days
func (w *WeekReading) Validate() error {
	for i, day := range w.Days {
		want := w.Start.AddDate(0, 0, i)
		if !SameDate(day.Date, want) {
			return fmt.Errorf("day %d is %s, want %s", i, day.Date.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
	return nil
}

// SameDate reports whether a and b share year, month and day
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Midnight truncates t to the start of its day in its own location
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
