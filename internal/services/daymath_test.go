package services

import (
	"errors"
	"testing"
	"trip-planner-service/internal/domain"
)

func TestCountDaysInclusive(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2025-01-01", "2025-01-05", 5},
		{"2025-01-01", "2025-01-01", 1},
		{"2025-02-27", "2025-03-02", 4},
		{"2024-02-28", "2024-03-01", 3}, // leap year
		{"2025-12-30", "2026-01-02", 4},
	}

	for _, c := range cases {
		got, err := CountDaysInclusive(c.start, c.end)
		if err != nil {
			t.Fatalf("CountDaysInclusive(%s, %s): unexpected error: %v", c.start, c.end, err)
		}
		if got != c.want {
			t.Fatalf("CountDaysInclusive(%s, %s) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestCountDaysInclusiveReversedRange(t *testing.T) {
	got, err := CountDaysInclusive("2025-01-05", "2025-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got >= 1 {
		t.Fatalf("reversed range should count below 1, got %d", got)
	}
}

func TestCountDaysInclusiveInvalidDate(t *testing.T) {
	for _, bad := range []string{"", "not-a-date", "2025-13-01", "01/05/2025"} {
		_, err := CountDaysInclusive(bad, "2025-01-01")
		var invalid *domain.InvalidDateError
		if !errors.As(err, &invalid) {
			t.Fatalf("CountDaysInclusive(%q, ...) error = %v, want InvalidDateError", bad, err)
		}
	}
}

func TestAddDaysAndFormat(t *testing.T) {
	start, err := ParseISO("2025-01-30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := FormatISO(AddDays(start, 3)); got != "2025-02-02" {
		t.Fatalf("AddDays +3 = %s, want 2025-02-02", got)
	}
	if got := FormatISO(AddDays(start, -30)); got != "2024-12-31" {
		t.Fatalf("AddDays -30 = %s, want 2024-12-31", got)
	}
	if got := FormatISO(start); got != "2025-01-30" {
		t.Fatalf("FormatISO = %s, want 2025-01-30", got)
	}
}
