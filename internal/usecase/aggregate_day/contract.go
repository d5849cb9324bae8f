package aggregate_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
	"github.com/m04kA/SMC-SeatLive/internal/usecase/aggregate_week"
)

// EventRepository журнал событий занятости
type EventRepository interface {
	// GetEventsForPeriod события, пересекающиеся с [From, To)
	GetEventsForPeriod(ctx context.Context, filter domain.OccupancyEventsFilter) ([]domain.OccupancyEvent, error)
}

// StatisticsStore хранилище detail_data
type StatisticsStore interface {
	WriteDetail(ctx context.Context, week domain.WeekKey, day time.Time, records []domain.DetailRecord) error
}

// WeekAggregator пересчитывает aggregated_data после записи дня
type WeekAggregator interface {
	Execute(ctx context.Context, req *aggregate_week.Request) (*aggregate_week.Response, error)
}

// WeekCache кэш чтения статистики, сбрасывается после фиксации пересчета
type WeekCache interface {
	InvalidateWeek(ctx context.Context, week domain.WeekKey)
}

// TxManager интерфейс для управления транзакциями
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики прогонов агрегации
type Metrics interface {
	ObserveAggregation(kind, result string, d time.Duration)
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
