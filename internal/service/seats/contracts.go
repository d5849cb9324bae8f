package seats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// SeatStatusReader источник текущего состояния мест (/seat_status)
type SeatStatusReader interface {
	GetSeatStatuses(ctx context.Context) ([]domain.SeatStatus, error)
}

// EventRepository журнал событий занятости
type EventRepository interface {
	// GetLastTransitionAt время последнего принятого перехода места (нулевое, если не было)
	GetLastTransitionAt(ctx context.Context, seatID string) (time.Time, error)
	GetOpenEvent(ctx context.Context, seatID string) (*domain.OccupancyEvent, error)
	OpenEvent(ctx context.Context, seatID string, occupiedAt time.Time) (*domain.OccupancyEvent, error)
	CloseOpenEvent(ctx context.Context, seatID string, vacatedAt time.Time) error
	UpsertSeatStatus(ctx context.Context, status domain.SeatStatus) error
}

// TxManager интерфейс для управления транзакциями
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики текущей загрузки
type Metrics interface {
	SetOccupiedSeats(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
