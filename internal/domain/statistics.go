package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekKey key of a week bucket, e.g. "week_42"
type WeekKey string

// WeekKeyOf returns the bucket key of the ISO-8601 week the day belongs to
func WeekKeyOf(day time.Time) WeekKey {
	_, week := day.ISOWeek()
	return WeekKey(fmt.Sprintf("week_%d", week))
}

// ParseWeekKey validates "week_N" with N in 1..53
func ParseWeekKey(s string) (WeekKey, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "week_"))
	if !strings.HasPrefix(s, "week_") || err != nil || n < 1 || n > 53 {
		return "", false
	}
	return WeekKey(fmt.Sprintf("week_%d", n)), true
}

// WeekKeysBetween returns the distinct bucket keys of days in [from, to], oldest first
func WeekKeysBetween(from, to time.Time) []WeekKey {
	keys := make([]WeekKey, 0, 2)
	seen := make(map[WeekKey]struct{})
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := WeekKeyOf(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// DetailRecord occupied seats in one interval of one day
type DetailRecord struct {
	DayDate       time.Time
	IntervalIndex int
	OccupiedCount int
	TotalSeats    int
}

// Weekday of the record's day
func (r DetailRecord) Weekday() time.Weekday {
	return r.DayDate.Weekday()
}

// OccupancyRate percentage of occupied seats (0-100)
func (r DetailRecord) OccupancyRate() float64 {
	if r.TotalSeats == 0 {
		return 0
	}
	return float64(r.OccupiedCount) / float64(r.TotalSeats) * 100
}

// AggregatedRecord average occupied seats of one (weekday, interval) pair
type AggregatedRecord struct {
	Weekday         time.Weekday
	IntervalIndex   int
	AverageOccupied float64
}

// TrackedWeekdays weekdays covered by the traffic profile
var TrackedWeekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// IsTrackedWeekday reports whether the weekday belongs to the profile
func IsTrackedWeekday(d time.Weekday) bool {
	for _, w := range TrackedWeekdays {
		if w == d {
			return true
		}
	}
	return false
}

// ParseWeekday parses an English weekday name ("Monday", "monday")
func ParseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, true
		}
	}
	return time.Sunday, false
}
