package domain

import "github.com/m04kA/SMC-SeatLive/pkg/types"

// Default grid configuration
const (
	DefaultOpenTime           types.TimeString = "09:00"
	DefaultCloseTime          types.TimeString = "21:00"
	DefaultGranularityMinutes                  = 15
)

// Statistics defaults
const (
	DefaultRecentDays   = 8
	DefaultProfileWeeks = 1
	MaxRecentDays       = 31
)

// Occupancy level thresholds, percent
const (
	LowOccupancyThreshold    = 30.0
	MediumOccupancyThreshold = 70.0
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
