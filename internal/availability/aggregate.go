package availability

import "fmt"

// Aggregate merges court readings of one category. A slot is Free when at least one
// court is free at that slot, otherwise Reserved.
func Aggregate(readings []CourtReading) (CategoryReading, error) {
	var merged CategoryReading
	if len(readings) == 0 {
		return merged, fmt.Errorf("no court readings to aggregate")
	}

	for i := range merged {
		merged[i] = Reserved
	}

	for n, reading := range readings {
		if len(reading) != SlotCount {
			return merged, fmt.Errorf("court reading %d has %d slots, want %d", n, len(reading), SlotCount)
		}
		for i, s := range reading {
			if s == Free {
				merged[i] = Free
			}
		}
	}

	return merged, nil
}
