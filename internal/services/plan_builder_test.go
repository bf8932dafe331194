package services

import (
	"errors"
	"testing"
	"trip-planner-service/internal/domain"
)

func TestBuildPlanBasicTrip(t *testing.T) {
	// 5 inclusive days across [CityA, CityB] allocate as [3, 2].
	nights, err := AllocateNights(2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plan, err := BuildPlan([]string{"CityA", "CityB"}, nights, "2025-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan) != 5 {
		t.Fatalf("plan length = %d, want 5", len(plan))
	}

	wantLocations := []string{"CityA", "CityA", "CityA", "CityB", "CityB"}
	wantDates := []string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05"}
	for i, day := range plan {
		if day.DayNumber != i+1 {
			t.Fatalf("day %d has DayNumber %d, want %d", i, day.DayNumber, i+1)
		}
		if day.Location != wantLocations[i] {
			t.Fatalf("day %d at %q, want %q", i, day.Location, wantLocations[i])
		}
		if day.Date != wantDates[i] {
			t.Fatalf("day %d on %q, want %q", i, day.Date, wantDates[i])
		}
	}
}

func TestBuildPlanLengthAndContiguity(t *testing.T) {
	stops := []string{"A", "B", "C", "A"}
	nights := []int{2, 1, 3, 1}

	plan, err := BuildPlan(stops, nights, "2025-06-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan) != 7 {
		t.Fatalf("plan length = %d, want 7", len(plan))
	}
	for i, day := range plan {
		if day.DayNumber != i+1 {
			t.Fatalf("day numbers not contiguous at index %d: %d", i, day.DayNumber)
		}
		if i == 0 {
			continue
		}
		prev, err := ParseISO(plan[i-1].Date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if FormatISO(AddDays(prev, 1)) != day.Date {
			t.Fatalf("dates not consecutive: %s then %s", plan[i-1].Date, day.Date)
		}
	}
	if plan[len(plan)-1].Date != "2025-07-04" {
		t.Fatalf("last date = %s, want 2025-07-04", plan[len(plan)-1].Date)
	}
}

func TestBuildPlanValidation(t *testing.T) {
	var validation *domain.ValidationError

	if _, err := BuildPlan([]string{"A"}, []int{1, 2}, "2025-01-01"); !errors.As(err, &validation) {
		t.Fatalf("mismatched lengths: error = %v, want ValidationError", err)
	}
	if _, err := BuildPlan([]string{"A", "B"}, []int{1, 0}, "2025-01-01"); !errors.As(err, &validation) {
		t.Fatalf("zero nights: error = %v, want ValidationError", err)
	}
	if _, err := BuildPlan(nil, nil, "2025-01-01"); !errors.As(err, &validation) {
		t.Fatalf("empty stops: error = %v, want ValidationError", err)
	}

	var invalidDate *domain.InvalidDateError
	if _, err := BuildPlan([]string{"A"}, []int{1}, "soon"); !errors.As(err, &invalidDate) {
		t.Fatalf("bad date: error = %v, want InvalidDateError", err)
	}
}
