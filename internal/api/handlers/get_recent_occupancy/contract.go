package get_recent_occupancy

import (
	"context"

	getRecentOccupancy "github.com/m04kA/SMC-SeatLive/internal/usecase/get_recent_occupancy"
)

type GetRecentOccupancyUseCase interface {
	Execute(ctx context.Context, req *getRecentOccupancy.Request) (*getRecentOccupancy.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
