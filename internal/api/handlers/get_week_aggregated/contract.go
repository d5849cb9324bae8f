package get_week_aggregated

import (
	"context"

	"github.com/m04kA/SMC-SeatLive/internal/service/statistics/models"
)

type StatisticsService interface {
	GetAggregated(ctx context.Context, week string) (*models.AggregatedResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
