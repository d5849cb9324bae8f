package get_recent_occupancy

import (
	"math"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
	getRecentOccupancy "github.com/m04kA/SMC-SeatLive/internal/usecase/get_recent_occupancy"
)

// RecentOccupancyResponse HTTP response model
type RecentOccupancyResponse struct {
	From string            `json:"from"`
	To   string            `json:"to"`
	Days []DayOccupancyDTO `json:"days"`
}

// DayOccupancyDTO один день
type DayOccupancyDTO struct {
	Date      string      `json:"date"`
	Weekday   string      `json:"weekday"`
	PeakRate  float64     `json:"peakRate"`
	Intervals []Interval  `json:"intervals"`
	Hourly    []HourlyDTO `json:"hourly"`
}

// Interval занятость интервала
type Interval struct {
	IntervalIndex int `json:"intervalIndex"`
	OccupiedCount int `json:"occupiedCount"`
	TotalSeats    int `json:"totalSeats"`
}

// HourlyDTO среднее за час
type HourlyDTO struct {
	Hour            int     `json:"hour"`
	AverageOccupied float64 `json:"averageOccupied"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getRecentOccupancy.Response) *RecentOccupancyResponse {
	days := make([]DayOccupancyDTO, len(resp.Days))
	for i, d := range resp.Days {
		intervals := make([]Interval, len(d.Records))
		for j, r := range d.Records {
			intervals[j] = Interval{
				IntervalIndex: r.IntervalIndex,
				OccupiedCount: r.OccupiedCount,
				TotalSeats:    r.TotalSeats,
			}
		}

		hourly := make([]HourlyDTO, len(d.Hourly))
		for j, h := range d.Hourly {
			hourly[j] = HourlyDTO{Hour: h.Hour, AverageOccupied: round2(h.AverageOccupied)}
		}

		days[i] = DayOccupancyDTO{
			Date:      d.Date.Format(domain.DateFormat),
			Weekday:   d.Weekday.String(),
			PeakRate:  round2(d.PeakRate),
			Intervals: intervals,
			Hourly:    hourly,
		}
	}

	return &RecentOccupancyResponse{
		From: resp.From.Format(domain.DateFormat),
		To:   resp.To.Format(domain.DateFormat),
		Days: days,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
