package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/courtgrid/internal/availability"
)

// OutputFormat specifies the grid output format
type OutputFormat string

const (
	FormatPNG  OutputFormat = "png"
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Cell markers in text output
const (
	freeMark     = "o"
	reservedMark = "x"
)

// DayOutput is one day of a week in JSON output
type DayOutput struct {
	Date   string   `json:"date"`
	Tennis []string `json:"tennis"`
	Shared []string `json:"shared"`
	Free   int      `json:"free"`
}

// WeekOutput contains a week to be output as text or JSON
type WeekOutput struct {
	Facility  string      `json:"facility"`
	Start     string      `json:"start"`
	Slots     []string    `json:"slots"`
	Days      []DayOutput `json:"days"`
	FreeTotal int         `json:"free_total"`
	CheckedAt time.Time   `json:"checked_at"`
}

// NewWeekOutput converts a week reading for output
func NewWeekOutput(facility string, week *availability.WeekReading, checkedAt time.Time) *WeekOutput {
	out := &WeekOutput{
		Facility:  facility,
		Start:     week.Start.Format("2006-01-02"),
		Slots:     availability.SlotLabels(),
		Days:      make([]DayOutput, 0, len(week.Days)),
		CheckedAt: checkedAt,
	}
	for _, day := range week.Days {
		free := day.Tennis.FreeCount() + day.Shared.FreeCount()
		out.Days = append(out.Days, DayOutput{
			Date:   day.Date.Format("2006-01-02"),
			Tennis: statusWords(day.Tennis),
			Shared: statusWords(day.Shared),
			Free:   free,
		})
		out.FreeTotal += free
	}
	return out
}

func statusWords(r availability.CategoryReading) []string {
	words := make([]string, len(r))
	for i, s := range r {
		words[i] = s.String()
	}
	return words
}

// WriteOutput writes the week in the specified format
func WriteOutput(w io.Writer, out *WeekOutput, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, out)
	case FormatText:
		return writeText(w, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the week as JSON
func writeJSON(w io.Writer, out *WeekOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeText outputs the week as one table per day, one column per starting hour
func writeText(w io.Writer, out *WeekOutput) error {
	if len(out.Days) == 0 {
		fmt.Fprintln(w, "No days collected.")
		return nil
	}

	var header strings.Builder
	header.WriteString(fmt.Sprintf("%-8s", ""))
	for i := range out.Slots {
		header.WriteString(fmt.Sprintf("%3d", availability.FirstSlotHour+i))
	}

	for _, day := range out.Days {
		fmt.Fprintf(w, "\n%s (%d free):\n", day.Date, day.Free)
		fmt.Fprintln(w, header.String())
		fmt.Fprintln(w, textRow(availability.CategoryTennis, day.Tennis))
		fmt.Fprintln(w, textRow(availability.CategoryShared, day.Shared))
	}
	fmt.Fprintf(w, "\nTotal: %d free slots across %d days (%s = free, %s = reserved)\n",
		out.FreeTotal, len(out.Days), freeMark, reservedMark)

	return nil
}

func textRow(category availability.Category, words []string) string {
	var row strings.Builder
	row.WriteString(fmt.Sprintf("%-8s", category))
	for _, word := range words {
		mark := reservedMark
		if word == availability.Free.String() {
			mark = freeMark
		}
		row.WriteString(fmt.Sprintf("%3s", mark))
	}
	return row.String()
}
