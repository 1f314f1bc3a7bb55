package timecalc

import (
	"math"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// ComputeDelay returns the tardiness in minutes, always >= 0.
//
// A strictly positive precomputed value wins untouched, since upstream may
// have corrected it by hand. Otherwise the delay is derived from the
// scheduled and actual start and snapped to the rounding increment.
func ComputeDelay(scheduledStart, actualStart *time.Time, precomputed *int, rounding timesheet.DelayRounding) int {
	if precomputed != nil && *precomputed > 0 {
		return *precomputed
	}
	if scheduledStart == nil || actualStart == nil {
		return 0
	}

	raw := int(math.Floor(actualStart.Sub(*scheduledStart).Minutes()))
	if raw <= 0 {
		return 0
	}
	return roundDelay(raw, rounding)
}

func roundDelay(minutes int, rounding timesheet.DelayRounding) int {
	rounding = rounding.Normalized()
	increment := rounding.RoundToMinutes

	if rounding.Direction == timesheet.RoundFloor {
		return (minutes / increment) * increment
	}
	return ((minutes + increment - 1) / increment) * increment
}
