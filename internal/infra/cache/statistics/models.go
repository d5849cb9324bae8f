package statistics

import "time"

type cachedDetail struct {
	DayDate       time.Time `json:"day_date"`
	IntervalIndex int       `json:"interval_index"`
	OccupiedCount int       `json:"occupied_count"`
	TotalSeats    int       `json:"total_seats"`
}

type cachedAggregated struct {
	Weekday         int     `json:"weekday"`
	IntervalIndex   int     `json:"interval_index"`
	AverageOccupied float64 `json:"average_occupied"`
}
