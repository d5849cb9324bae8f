package domain

import (
	"time"

	"github.com/m04kA/SMC-SeatLive/pkg/types"
)

// GridConfig operating window and bucket width used to build the interval grid
type GridConfig struct {
	OpenTime           types.TimeString
	CloseTime          types.TimeString
	GranularityMinutes int
}

// DefaultGridConfig returns the documented defaults (09:00-21:00, 15 minutes)
func DefaultGridConfig() GridConfig {
	return GridConfig{
		OpenTime:           DefaultOpenTime,
		CloseTime:          DefaultCloseTime,
		GranularityMinutes: DefaultGranularityMinutes,
	}
}

// Interval half-open time range [Start, End) of a single day
type Interval struct {
	Index int
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside [Start, End)
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Overlaps reports whether [from, to) has a non-empty intersection with the interval.
// Touching bounds are not an overlap.
func (i Interval) Overlaps(from, to time.Time) bool {
	return from.Before(i.End) && to.After(i.Start)
}

// Label returns "HH:MM-HH:MM"
func (i Interval) Label() string {
	return i.Start.Format(TimeFormat) + "-" + i.End.Format(TimeFormat)
}
