package models

import (
	"sort"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// Response модели

// DetailEntry занятость одного интервала
type DetailEntry struct {
	IntervalIndex int    `json:"interval_index"`
	Interval      string `json:"interval"` // HH:MM-HH:MM
	OccupiedCount int    `json:"occupied_count"`
	TotalSeats    int    `json:"total_seats"`
}

// DetailResponse detail_data недели: день → интервалы
type DetailResponse struct {
	Week string                   `json:"week"`
	Days map[string][]DetailEntry `json:"detail_data"`
}

// AggregatedEntry средняя занятость интервала
type AggregatedEntry struct {
	IntervalIndex   int     `json:"interval_index"`
	Interval        string  `json:"interval"`
	AverageOccupied float64 `json:"average_occupied"`
}

// AggregatedResponse aggregated_data недели: день недели → интервалы
type AggregatedResponse struct {
	Week     string                       `json:"week"`
	Weekdays map[string][]AggregatedEntry `json:"aggregated_data"`
}

// Методы конвертации

// LabelFunc подпись интервала по индексу
type LabelFunc func(index int) string

// FromDomainDetail конвертирует detail_data в DTO, интервалы по возрастанию
func FromDomainDetail(week domain.WeekKey, byDay map[string][]domain.DetailRecord, label LabelFunc) *DetailResponse {
	resp := &DetailResponse{
		Week: string(week),
		Days: make(map[string][]DetailEntry, len(byDay)),
	}

	for day, records := range byDay {
		entries := make([]DetailEntry, len(records))
		for i, r := range records {
			entries[i] = DetailEntry{
				IntervalIndex: r.IntervalIndex,
				Interval:      label(r.IntervalIndex),
				OccupiedCount: r.OccupiedCount,
				TotalSeats:    r.TotalSeats,
			}
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].IntervalIndex < entries[j].IntervalIndex })
		resp.Days[day] = entries
	}

	return resp
}

// FromDomainAggregated конвертирует aggregated_data в DTO
func FromDomainAggregated(week domain.WeekKey, records []domain.AggregatedRecord, label LabelFunc) *AggregatedResponse {
	resp := &AggregatedResponse{
		Week:     string(week),
		Weekdays: make(map[string][]AggregatedEntry),
	}

	for _, r := range records {
		key := r.Weekday.String()
		resp.Weekdays[key] = append(resp.Weekdays[key], AggregatedEntry{
			IntervalIndex:   r.IntervalIndex,
			Interval:        label(r.IntervalIndex),
			AverageOccupied: r.AverageOccupied,
		})
	}

	return resp
}
