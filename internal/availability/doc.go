// Package availability defines the court availability model for the reservation grid.
//
// A day page yields one CourtReading per physical court. Readings of the same category
// are merged with Aggregate into a CategoryReading, where a slot is free if any court in
// the category is free. DayReading and WeekReading carry the merged readings in date order.
package availability
