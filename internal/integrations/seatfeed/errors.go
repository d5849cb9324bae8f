package seatfeed

import "errors"

var (
	// ErrDecode возвращается, когда тело сообщения не разбирается
	ErrDecode = errors.New("seatfeed: failed to decode message")

	// ErrDeliveriesClosed возвращается, когда брокер закрыл канал доставки
	ErrDeliveriesClosed = errors.New("seatfeed: deliveries channel closed")
)
