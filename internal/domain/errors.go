package domain

import "fmt"

// ValidationError reports missing or invalid user input (absent locations or
// dates, end date before start date). It never mutates planner state.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// InvalidDateError reports a date string that failed to parse.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", e.Value)
}

// InsufficientDaysError reports a date range too short to guarantee at least
// one night per stop. The caller must surface it rather than silently clamp.
type InsufficientDaysError struct {
	TotalDays int
	StopCount int
}

func (e *InsufficientDaysError) Error() string {
	return fmt.Sprintf("insufficient days: %d days for %d stops (need at least 1 night per stop)",
		e.TotalDays, e.StopCount)
}

// InvalidOperationError reports an illegal structural mutation, such as
// removing the route's start or end stop.
type InvalidOperationError struct {
	Reason string
}

func (e *InvalidOperationError) Error() string { return "invalid operation: " + e.Reason }

// ExternalServiceFailure wraps an error from a collaborator (place resolution
// or road routing).
type ExternalServiceFailure struct {
	Service string
	Err     error
}

func (e *ExternalServiceFailure) Error() string {
	return fmt.Sprintf("external service %s: %v", e.Service, e.Err)
}

func (e *ExternalServiceFailure) Unwrap() error { return e.Err }
