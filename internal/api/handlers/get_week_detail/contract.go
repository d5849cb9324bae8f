package get_week_detail

import (
	"context"

	"github.com/m04kA/SMC-SeatLive/internal/service/statistics/models"
)

type StatisticsService interface {
	GetDetail(ctx context.Context, week string) (*models.DetailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
