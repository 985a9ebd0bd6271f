package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/courtgrid/internal/availability"
)

func reservedDay(date time.Time) availability.DayReading {
	day := availability.DayReading{Date: date}
	for i := 0; i < availability.SlotCount; i++ {
		day.Tennis[i] = availability.Reserved
		day.Shared[i] = availability.Reserved
	}
	return day
}

func TestFreeRuns(t *testing.T) {
	date := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	day := reservedDay(date)

	// tennis: 9:00-12:00 and 22:00-23:00, shared: 7:00-8:00
	day.Tennis[2] = availability.Free
	day.Tennis[3] = availability.Free
	day.Tennis[4] = availability.Free
	day.Tennis[15] = availability.Free
	day.Shared[0] = availability.Free

	runs := FreeRuns(day)
	if len(runs) != 3 {
		t.Fatalf("FreeRuns() returned %d runs, want 3: %+v", len(runs), runs)
	}

	tests := []struct {
		category  availability.Category
		startHour int
		endHour   int
		slots     int
	}{
		{availability.CategoryTennis, 9, 12, 3},
		{availability.CategoryTennis, 22, 23, 1},
		{availability.CategoryShared, 7, 8, 1},
	}

	for i, tt := range tests {
		run := runs[i]
		if run.Category != tt.category {
			t.Errorf("run %d category = %s, want %s", i, run.Category, tt.category)
		}
		if run.Start.Hour() != tt.startHour || run.End.Hour() != tt.endHour {
			t.Errorf("run %d = %s-%s, want %d:00-%d:00", i, run.Start.Format("15:04"), run.End.Format("15:04"), tt.startHour, tt.endHour)
		}
		if run.Slots != tt.slots {
			t.Errorf("run %d slots = %d, want %d", i, run.Slots, tt.slots)
		}
	}
}

func TestFreeRuns_FullyBooked(t *testing.T) {
	if runs := FreeRuns(reservedDay(time.Now())); len(runs) != 0 {
		t.Errorf("FreeRuns() on a booked day = %+v, want none", runs)
	}
}

func TestWeekCalendar(t *testing.T) {
	start := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	week := &availability.WeekReading{Start: start}

	day := reservedDay(start)
	day.Tennis[5] = availability.Free
	week.Days = append(week.Days, day, reservedDay(start.AddDate(0, 0, 1)))

	out := WeekCalendar(week, "jingu", "https://example.test/reserve.php")

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"PRODID:-//courtgrid//courtgrid//EN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:jingu-tennis-20261018T1200Z@courtgrid",
		"DTSTART:20261018T120000Z",
		"DTEND:20261018T130000Z",
		"SUMMARY:jingu: tennis court free",
		"URL:https://example.test/reserve.php",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(out, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	if n := strings.Count(out, "BEGIN:VEVENT"); n != 1 {
		t.Errorf("ICS has %d events, want 1", n)
	}

	if !strings.Contains(out, "\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
	if bare := strings.Count(out, "\n") - strings.Count(out, "\r\n"); bare != 0 {
		t.Errorf("ICS has %d bare \\n line endings, want 0", bare)
	}
}
