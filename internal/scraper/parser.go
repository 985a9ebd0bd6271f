package scraper

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/courtgrid/internal/availability"
)

const (
	TennisSelector = "#anc01"
	SharedSelector = "#anc02"
	ReservedClass  = "reserved"
)

// Shape describes how court rows are laid out in a reservation table
type Shape int

const (
	// SingleTable rows each start with a date cell and a court name cell
	SingleTable Shape = iota
	// MultiRow has the date cell only on the first row; later rows start with the court name
	MultiRow
)

func (s Shape) String() string {
	if s == MultiRow {
		return "multi-row"
	}
	return "single-table"
}

// Parser extracts slot states from reservation pages
type Parser struct {
	tennisSelector string
	sharedSelector string
	reservedClass  string
}

// NewParser creates a Parser. Empty arguments select the package defaults.
func NewParser(tennisSelector, sharedSelector, reservedClass string) *Parser {
	if tennisSelector == "" {
		tennisSelector = TennisSelector
	}
	if sharedSelector == "" {
		sharedSelector = SharedSelector
	}
	if reservedClass == "" {
		reservedClass = ReservedClass
	}
	return &Parser{
		tennisSelector: tennisSelector,
		sharedSelector: sharedSelector,
		reservedClass:  reservedClass,
	}
}

// ParseDay parses one reservation page into a DayReading for date
func (p *Parser) ParseDay(date time.Time, r io.Reader) (availability.DayReading, error) {
	day := availability.DayReading{Date: date}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return day, fmt.Errorf("parsing HTML: %w", err)
	}

	tennis, err := p.ParseCategory(doc, p.tennisSelector, SingleTable)
	if err != nil {
		return day, err
	}
	if day.Tennis, err = availability.Aggregate(tennis); err != nil {
		return day, fmt.Errorf("aggregating tennis courts: %w", err)
	}

	shared, err := p.ParseCategory(doc, p.sharedSelector, MultiRow)
	if err != nil {
		return day, err
	}
	if day.Shared, err = availability.Aggregate(shared); err != nil {
		return day, fmt.Errorf("aggregating shared courts: %w", err)
	}

	return day, nil
}

// ParseDayBytes is ParseDay over an in-memory page
func (p *Parser) ParseDayBytes(date time.Time, page []byte) (availability.DayReading, error) {
	return p.ParseDay(date, bytes.NewReader(page))
}

// ParseCategory reads the table next to the selector anchor and returns one
// CourtReading per court row. Rows that do not hold exactly SlotCount slot cells
// after the leading metadata cells are rejected.
func (p *Parser) ParseCategory(doc *goquery.Document, selector string, shape Shape) ([]availability.CourtReading, error) {
	anchor := doc.Find(selector).First()
	if anchor.Length() == 0 {
		return nil, &ShapeMismatchError{Selector: selector, Row: -1, Reason: "anchor not found"}
	}

	table := anchor.Parent().Find("table").First()
	if table.Length() == 0 {
		return nil, &ShapeMismatchError{Selector: selector, Row: -1, Reason: "table not found"}
	}

	readings := make([]availability.CourtReading, 0)
	var rowErr error

	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.ChildrenFiltered("td")
		if cells.Length() == 0 {
			// Header rows only hold th cells
			return true
		}

		n := len(readings)
		skip := metadataCells(shape, n)
		got := cells.Length() - skip
		if got != availability.SlotCount {
			if got < 0 {
				got = 0
			}
			rowErr = &ShapeMismatchError{Selector: selector, Row: n, Got: got, Want: availability.SlotCount}
			return false
		}

		reading := make(availability.CourtReading, 0, availability.SlotCount)
		cells.Slice(skip, goquery.ToEnd).Each(func(_ int, cell *goquery.Selection) {
			reading = append(reading, p.classify(cell))
		})
		readings = append(readings, reading)
		return true
	})

	if rowErr != nil {
		return nil, rowErr
	}
	if len(readings) == 0 {
		return nil, &ShapeMismatchError{Selector: selector, Row: -1, Reason: "no court rows"}
	}

	return readings, nil
}

// metadataCells returns how many leading cells of data row n are not slots
func metadataCells(shape Shape, n int) int {
	if shape == MultiRow && n > 0 {
		return 1
	}
	return 2
}

func (p *Parser) classify(cell *goquery.Selection) availability.Status {
	if cell.HasClass(p.reservedClass) {
		return availability.Reserved
	}
	return availability.Free
}
