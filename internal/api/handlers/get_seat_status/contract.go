package get_seat_status

import (
	"context"

	"github.com/m04kA/SMC-SeatLive/internal/service/seats/models"
)

type SeatService interface {
	GetSnapshot(ctx context.Context) (*models.SnapshotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
