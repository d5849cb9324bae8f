package seatfeed

import "time"

// Message сообщение детектора о смене состояния места
type Message struct {
	SeatID    string    `json:"seat_id"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}
