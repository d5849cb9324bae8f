package realtimedb

// detailEntry элемент detail_data/{YYYY-MM-DD}
type detailEntry struct {
	IntervalIndex int `json:"interval_index"`
	OccupiedCount int `json:"occupied_count"`
	TotalSeats    int `json:"total_seats"`
}

// aggregatedEntry элемент aggregated_data/{Weekday}
type aggregatedEntry struct {
	IntervalIndex   int     `json:"interval_index"`
	AverageOccupied float64 `json:"average_occupied"`
}

// seatStatusEntry элемент /seat_status/{seat_id}
type seatStatusEntry struct {
	Status     string `json:"status"`
	StatusZh   string `json:"status_zh,omitempty"`
	LastUpdate string `json:"last_update"`
}
