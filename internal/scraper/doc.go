// Package scraper provides HTTP fetching and HTML table parsing for the facility
// reservation page.
//
// The reservation page for one date carries two tables, each found next to a fixed
// anchor element. The tennis-only table has one row per court with a date and name
// cell before the slots. The shared table lists several courts, where only the first
// row carries the date cell. Cells marked with the reserved class are Reserved, any
// other cell is Free.
package scraper
