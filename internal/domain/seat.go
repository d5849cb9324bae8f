package domain

import "time"

// SeatState state of a seat as reported by the detector
type SeatState string

const (
	SeatOccupied  SeatState = "occupied"
	SeatAvailable SeatState = "available"
)

// IsValid проверяет, что состояние известно
func (s SeatState) IsValid() bool {
	return s == SeatOccupied || s == SeatAvailable
}

// LabelZh подпись состояния для табло (как у детектора)
func (s SeatState) LabelZh() string {
	switch s {
	case SeatOccupied:
		return "佔用"
	case SeatAvailable:
		return "空位"
	default:
		return "未知"
	}
}

// SeatStatus current state of one seat (/seat_status)
type SeatStatus struct {
	SeatID     string
	Status     SeatState
	StatusZh   string // status_zh от детектора, может отсутствовать
	LastUpdate time.Time
}

// IsOccupied returns true if the seat is taken
func (s *SeatStatus) IsOccupied() bool {
	return s.Status == SeatOccupied
}

// OccupancyLevel coarse traffic level shown next to the occupancy rate
type OccupancyLevel string

const (
	LevelLow    OccupancyLevel = "low"
	LevelMedium OccupancyLevel = "medium"
	LevelHigh   OccupancyLevel = "high"
)

// LevelFor maps an occupancy rate (0-100) to a level
func LevelFor(rate float64) OccupancyLevel {
	switch {
	case rate <= LowOccupancyThreshold:
		return LevelLow
	case rate <= MediumOccupancyThreshold:
		return LevelMedium
	default:
		return LevelHigh
	}
}
