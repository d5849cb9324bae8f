package statistics

import (
	"context"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// StatisticsReader чтение detail_data / aggregated_data
type StatisticsReader interface {
	ReadAllDetail(ctx context.Context, week domain.WeekKey) (map[string][]domain.DetailRecord, error)
	ReadAggregated(ctx context.Context, week domain.WeekKey) ([]domain.AggregatedRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
