package services

import (
	"trip-planner-service/internal/domain"
)

// GroupByStop partitions the flat day sequence into contiguous runs matching
// the nights array, one group per stop index. Groups are positional:
// visiting the same city twice yields two separate groups.
func GroupByStop(stops []string, nights []int, plan domain.TripPlan) ([]domain.StopGroup, error) {
	if len(stops) != len(nights) {
		return nil, &domain.ValidationError{Reason: "stops and nights must be the same length"}
	}

	total := 0
	for _, n := range nights {
		total += n
	}
	if total != len(plan) {
		return nil, &domain.ValidationError{Reason: "plan length does not match total nights"}
	}

	groups := make([]domain.StopGroup, 0, len(stops))
	cursor := 0
	for i, stop := range stops {
		first := cursor
		last := cursor + nights[i] - 1
		groups = append(groups, domain.StopGroup{
			StopIndex: i,
			StopName:  stop,
			StartDate: plan[first].Date,
			EndDate:   plan[last].Date,
			FirstDay:  first,
			LastDay:   last,
			Nights:    nights[i],
		})
		cursor = last + 1
	}
	return groups, nil
}

// ReconcileDetails rebuilds the (date, location) -> DayDetail map for a newly
// generated plan. Entries whose key still exists carry forward unchanged;
// new keys start empty and collapsed; keys absent from the new plan are
// dropped, so the map never grows across edits. This is what lets free-text
// notes survive a night-count change on an unrelated stop.
func ReconcileDetails(plan domain.TripPlan, previous map[string]domain.DayDetail) map[string]domain.DayDetail {
	next := make(map[string]domain.DayDetail, len(plan))
	for _, day := range plan {
		key := domain.DayKey(day.Date, day.Location)
		if detail, ok := previous[key]; ok {
			next[key] = detail
			continue
		}
		next[key] = domain.DayDetail{}
	}
	return next
}
