package scheduler

import (
	"context"
	"time"

	aggregateDay "github.com/m04kA/SMC-SeatLive/internal/usecase/aggregate_day"
)

// DayAggregator расчёт дня
type DayAggregator interface {
	Execute(ctx context.Context, req *aggregateDay.Request) (*aggregateDay.Response, error)
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
