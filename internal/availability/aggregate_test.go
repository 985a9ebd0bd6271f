package availability

import (
	"testing"
)

func courtReading(reserved ...int) CourtReading {
	r := make(CourtReading, SlotCount)
	for _, i := range reserved {
		r[i] = Reserved
	}
	return r
}

func allReserved() CourtReading {
	r := make(CourtReading, SlotCount)
	for i := range r {
		r[i] = Reserved
	}
	return r
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		readings []CourtReading
		wantFree []int
		wantErr  bool
	}{
		{
			name:     "single court passes through",
			readings: []CourtReading{courtReading(3, 9)},
			wantFree: []int{0, 1, 2, 4, 5, 6, 7, 8, 10, 11, 12, 13, 14, 15},
		},
		{
			name:     "one free court makes the slot free",
			readings: []CourtReading{courtReading(5), courtReading()},
			wantFree: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		},
		{
			name:     "reserved everywhere stays reserved",
			readings: []CourtReading{courtReading(2, 7), courtReading(2, 8), courtReading(2)},
			wantFree: []int{0, 1, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		},
		{
			name:     "all courts fully booked",
			readings: []CourtReading{allReserved(), allReserved()},
			wantFree: nil,
		},
		{
			name:    "no readings",
			wantErr: true,
		},
		{
			name:     "short reading",
			readings: []CourtReading{courtReading(), make(CourtReading, 15)},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aggregate(tt.readings)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Aggregate() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Aggregate() unexpected error: %v", err)
			}

			free := make(map[int]bool)
			for _, i := range tt.wantFree {
				free[i] = true
			}
			for i, s := range got {
				want := Reserved
				if free[i] {
					want = Free
				}
				if s != want {
					t.Errorf("slot %d = %v, want %v", i, s, want)
				}
			}
		})
	}
}

func TestAggregate_SharedScenario(t *testing.T) {
	rowA := courtReading(5)
	rowB := allReserved()
	rowB[5] = Free

	got, err := Aggregate([]CourtReading{rowA, rowB})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	if got[5] != Free {
		t.Errorf("slot 5 = %v, want free", got[5])
	}
}

func TestAggregate_DoesNotModifyInput(t *testing.T) {
	a := courtReading(1)
	b := courtReading(2)
	if _, err := Aggregate([]CourtReading{a, b}); err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	if a[1] != Reserved || b[2] != Reserved {
		t.Error("Aggregate() modified its input readings")
	}
}
