package services

import "trip-planner-service/internal/domain"

// AllocateNights distributes totalDays across stopCount stops in route order.
//
// Every stop gets floor(totalDays/stopCount) nights; the first
// totalDays mod stopCount stops get one extra. The sum always equals
// totalDays and every entry is at least 1.
//
// A range shorter than the stop list is an InsufficientDaysError, never a
// silent clamp: capping would misrepresent the itinerary.
func AllocateNights(stopCount, totalDays int) ([]int, error) {
	if stopCount < 1 {
		return nil, &domain.ValidationError{Reason: "stop count must be at least 1"}
	}
	if totalDays < stopCount {
		return nil, &domain.InsufficientDaysError{TotalDays: totalDays, StopCount: stopCount}
	}

	base := totalDays / stopCount
	remainder := totalDays % stopCount

	nights := make([]int, stopCount)
	for i := range nights {
		nights[i] = base
		if i < remainder {
			nights[i]++
		}
	}
	return nights, nil
}
