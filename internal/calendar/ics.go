// Package calendar exports free court time as an iCalendar feed.
package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/courtgrid/internal/availability"
)

// FreeRun is a stretch of consecutive free slots in one category
type FreeRun struct {
	Category availability.Category
	Start    time.Time
	End      time.Time
	Slots    int
}

// FreeRuns returns the free stretches of one day, tennis first, each in slot order
func FreeRuns(day availability.DayReading) []FreeRun {
	runs := make([]FreeRun, 0)
	for _, category := range availability.Categories {
		reading := day.Reading(category)
		first := -1
		for i := 0; i <= availability.SlotCount; i++ {
			free := i < availability.SlotCount && reading[i] == availability.Free
			if free && first < 0 {
				first = i
			}
			if !free && first >= 0 {
				runs = append(runs, FreeRun{
					Category: category,
					Start:    availability.SlotStart(day.Date, first),
					End:      availability.SlotStart(day.Date, i),
					Slots:    i - first,
				})
				first = -1
			}
		}
	}
	return runs
}

// WeekCalendar generates an iCalendar document with one event per free stretch.
// sourceURL is attached to every event so subscribers can reach the booking page.
func WeekCalendar(week *availability.WeekReading, facility, sourceURL string) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//courtgrid//courtgrid//EN")
	cal.SetXWRCalName(fmt.Sprintf("%s free courts", facility))

	now := time.Now().UTC()
	for _, day := range week.Days {
		for _, run := range FreeRuns(day) {
			evt := cal.AddEvent(eventUID(facility, run))
			evt.SetDtStampTime(now)
			evt.SetStartAt(run.Start)
			evt.SetEndAt(run.End)
			evt.SetSummary(fmt.Sprintf("%s: %s court free", facility, run.Category))
			evt.SetDescription(fmt.Sprintf("%d free slot(s) from %s to %s",
				run.Slots, run.Start.Format("15:04"), run.End.Format("15:04")))
			evt.SetLocation(facility)
			if sourceURL != "" {
				evt.SetURL(sourceURL)
			}
		}
	}

	return cal.Serialize(ics.WithNewLineWindows)
}

// eventUID is stable for the same facility, category and start time
func eventUID(facility string, run FreeRun) string {
	return fmt.Sprintf("%s-%s-%s@courtgrid", facility, run.Category, run.Start.UTC().Format("20060102T1504Z"))
}
