package services

import (
	"trip-planner-service/internal/domain"
)

// BuildPlan turns (stops, nights, start date) into a flat day-numbered plan.
//
// It walks the stops in order and emits nights[i] consecutive days per stop
// with contiguous day numbers and dates. The last emitted date is the
// authoritative trip end: after a mutation changes total nights, the caller
// overwrites its stored end date with the plan's last day, not the reverse.
func BuildPlan(stops []string, nights []int, startDate string) (domain.TripPlan, error) {
	if len(stops) == 0 {
		return nil, &domain.ValidationError{Reason: "stop list is empty"}
	}
	if len(stops) != len(nights) {
		return nil, &domain.ValidationError{Reason: "stops and nights must be the same length"}
	}

	total := 0
	for i, n := range nights {
		if n < 1 {
			return nil, &domain.ValidationError{Reason: "every stop needs at least 1 night, stop " + stops[i] + " has fewer"}
		}
		total += n
	}

	start, err := ParseISO(startDate)
	if err != nil {
		return nil, err
	}

	plan := make(domain.TripPlan, 0, total)
	day := 1
	current := start
	for i, stop := range stops {
		for n := 0; n < nights[i]; n++ {
			plan = append(plan, domain.TripDay{
				DayNumber: day,
				Date:      FormatISO(current),
				Location:  stop,
			})
			day++
			current = AddDays(current, 1)
		}
	}
	return plan, nil
}
