// Package costing contains the pure cost arithmetic for time entries.
// It performs no validation and no rounding: callers are responsible for
// ordering (end >= start) and presentation-layer rounding.
package costing

import "time"

// Result holds the computed duration and cost for one time entry.
type Result struct {
	DurationHours float64
	TotalCost     float64
}

// Compute converts an interval and an hourly rate pair into a duration and
// total cost. Duration keeps sub-second resolution; a negative or
// zero-length interval is passed through as-is.
func Compute(start, end time.Time, laborRate, equipmentRate float64) Result {
	hours := end.Sub(start).Hours()
	return Result{
		DurationHours: hours,
		TotalCost:     hours * (laborRate + equipmentRate),
	}
}
