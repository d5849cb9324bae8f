package aggregate_day

import (
	"context"

	aggregateDay "github.com/m04kA/SMC-SeatLive/internal/usecase/aggregate_day"
)

type AggregateDayUseCase interface {
	Execute(ctx context.Context, req *aggregateDay.Request) (*aggregateDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
