package aggregate_day

import (
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
	aggregateDay "github.com/m04kA/SMC-SeatLive/internal/usecase/aggregate_day"
)

// AggregateDayResponse HTTP response model
type AggregateDayResponse struct {
	Week       string           `json:"week"`
	Date       string           `json:"date"`
	Events     int              `json:"events"`
	Intervals  []IntervalCount  `json:"intervals"`
	Aggregated []AggregatedItem `json:"aggregated"`
}

// IntervalCount занятость интервала дня
type IntervalCount struct {
	IntervalIndex int    `json:"intervalIndex"`
	Interval      string `json:"interval"`
	OccupiedCount int    `json:"occupiedCount"`
	TotalSeats    int    `json:"totalSeats"`
}

// AggregatedItem точка недельного профиля
type AggregatedItem struct {
	Weekday         string  `json:"weekday"`
	IntervalIndex   int     `json:"intervalIndex"`
	AverageOccupied float64 `json:"averageOccupied"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *aggregateDay.Response) *AggregateDayResponse {
	intervals := make([]IntervalCount, len(resp.Records))
	for i, r := range resp.Records {
		label := ""
		if i < len(resp.Intervals) {
			label = resp.Intervals[i].Label()
		}
		intervals[i] = IntervalCount{
			IntervalIndex: r.IntervalIndex,
			Interval:      label,
			OccupiedCount: r.OccupiedCount,
			TotalSeats:    r.TotalSeats,
		}
	}

	aggregated := make([]AggregatedItem, len(resp.Aggregated))
	for i, a := range resp.Aggregated {
		aggregated[i] = AggregatedItem{
			Weekday:         a.Weekday.String(),
			IntervalIndex:   a.IntervalIndex,
			AverageOccupied: a.AverageOccupied,
		}
	}

	return &AggregateDayResponse{
		Week:       string(resp.Week),
		Date:       resp.Date.Format(domain.DateFormat),
		Events:     resp.Events,
		Intervals:  intervals,
		Aggregated: aggregated,
	}
}

// ToUseCaseRequest создает запрос use case из параметра пути
func ToUseCaseRequest(dateStr string, loc *time.Location) (*aggregateDay.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}
	return &aggregateDay.Request{Date: date}, nil
}
