package get_recent_occupancy

import (
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/aggregation"
	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// Request загрузка за последние Days дней (0 = значение по умолчанию)
type Request struct {
	Days int
}

// Response дни от новых к старым
type Response struct {
	From time.Time
	To   time.Time
	Days []DayOccupancy
}

// DayOccupancy посчитанный день
type DayOccupancy struct {
	Date     time.Time
	Weekday  time.Weekday
	Records  []domain.DetailRecord
	Hourly   []aggregation.HourlyOccupancy
	PeakRate float64 // максимальная загрузка интервала, %
}

// Settings параметры выборки
type Settings struct {
	DefaultDays int
	Grid        domain.GridConfig
	Location    *time.Location
}
