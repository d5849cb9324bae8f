package models

import (
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// Request модели

// TransitionRequest смена состояния места, пришедшая от детектора
type TransitionRequest struct {
	SeatID    string           `json:"seat_id"`
	Status    domain.SeatState `json:"status"`
	ChangedAt time.Time        `json:"changed_at"`
}

// Response модели

// SeatResponse состояние одного места
type SeatResponse struct {
	SeatID     string    `json:"seatId"`
	Status     string    `json:"status"`
	StatusZh   string    `json:"statusZh"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// SnapshotResponse сводка по всем местам
type SnapshotResponse struct {
	Seats         []SeatResponse `json:"seats"`
	TotalSeats    int            `json:"totalSeats"`
	OccupiedSeats int            `json:"occupiedSeats"`
	Available     int            `json:"availableSeats"`
	OccupancyRate float64        `json:"occupancyRate"` // проценты, 0-100
	Level         string         `json:"level"`         // low | medium | high
}

// Методы конвертации

// FromDomainStatuses строит сводку по списку состояний, места сортируются по id
func FromDomainStatuses(statuses []domain.SeatStatus) *SnapshotResponse {
	resp := &SnapshotResponse{
		Seats:      make([]SeatResponse, len(statuses)),
		TotalSeats: len(statuses),
	}

	for i, s := range statuses {
		statusZh := s.StatusZh
		if statusZh == "" {
			statusZh = s.Status.LabelZh()
		}
		resp.Seats[i] = SeatResponse{
			SeatID:     s.SeatID,
			Status:     string(s.Status),
			StatusZh:   statusZh,
			LastUpdate: s.LastUpdate,
		}
		if s.IsOccupied() {
			resp.OccupiedSeats++
		}
	}

	resp.Available = resp.TotalSeats - resp.OccupiedSeats
	if resp.TotalSeats > 0 {
		resp.OccupancyRate = float64(resp.OccupiedSeats) / float64(resp.TotalSeats) * 100
	}
	resp.Level = string(domain.LevelFor(resp.OccupancyRate))

	return resp
}
