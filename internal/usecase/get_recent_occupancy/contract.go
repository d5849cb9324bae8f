package get_recent_occupancy

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// StatisticsStore хранилище detail_data
type StatisticsStore interface {
	ReadAllDetail(ctx context.Context, week domain.WeekKey) (map[string][]domain.DetailRecord, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
