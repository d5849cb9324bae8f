package aggregate_week

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// StatisticsStore хранилище detail_data / aggregated_data
type StatisticsStore interface {
	ReadAllDetail(ctx context.Context, week domain.WeekKey) (map[string][]domain.DetailRecord, error)
	WriteAggregated(ctx context.Context, week domain.WeekKey, records []domain.AggregatedRecord) error
}

// TxManager интерфейс для управления транзакциями
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики прогонов агрегации
type Metrics interface {
	ObserveAggregation(kind, result string, d time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
