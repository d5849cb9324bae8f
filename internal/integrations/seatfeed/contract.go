package seatfeed

import (
	"context"

	"github.com/m04kA/SMC-SeatLive/internal/service/seats/models"
)

// SeatService принимает переходы состояния мест
type SeatService interface {
	RecordTransition(ctx context.Context, req *models.TransitionRequest) error
}

// Metrics счётчик обработанных сообщений
type Metrics interface {
	IncSeatFeed(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// acknowledger подмножество amqp.Delivery, нужное для подтверждения
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}
