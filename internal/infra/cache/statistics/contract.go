package statistics

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// Store хранилище статистики, которое оборачивает кэш
type Store interface {
	WriteDetail(ctx context.Context, week domain.WeekKey, day time.Time, records []domain.DetailRecord) error
	ReadAllDetail(ctx context.Context, week domain.WeekKey) (map[string][]domain.DetailRecord, error)
	WriteAggregated(ctx context.Context, week domain.WeekKey, records []domain.AggregatedRecord) error
	ReadAggregated(ctx context.Context, week domain.WeekKey) ([]domain.AggregatedRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
