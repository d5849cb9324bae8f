package statistics

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
	"github.com/m04kA/SMC-SeatLive/internal/service/statistics/models"
)

// Service чтение посчитанной статистики для слоя отображения
type Service struct {
	reader StatisticsReader
	grid   domain.GridConfig
	logger Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(reader StatisticsReader, grid domain.GridConfig, logger Logger) *Service {
	return &Service{
		reader: reader,
		grid:   grid,
		logger: logger,
	}
}

// GetDetail возвращает detail_data недели
func (s *Service) GetDetail(ctx context.Context, week string) (*models.DetailResponse, error) {
	key, ok := domain.ParseWeekKey(week)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeek, week)
	}

	byDay, err := s.reader.ReadAllDetail(ctx, key)
	if err != nil {
		s.logger.Error("GetDetail: week=%s: %v", key, err)
		return nil, fmt.Errorf("%w: GetDetail - %v", ErrInternal, err)
	}
	if len(byDay) == 0 {
		return nil, ErrWeekNotFound
	}

	return models.FromDomainDetail(key, byDay, s.label), nil
}

// GetAggregated возвращает aggregated_data недели
func (s *Service) GetAggregated(ctx context.Context, week string) (*models.AggregatedResponse, error) {
	key, ok := domain.ParseWeekKey(week)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeek, week)
	}

	records, err := s.reader.ReadAggregated(ctx, key)
	if err != nil {
		s.logger.Error("GetAggregated: week=%s: %v", key, err)
		return nil, fmt.Errorf("%w: GetAggregated - %v", ErrInternal, err)
	}
	if len(records) == 0 {
		return nil, ErrWeekNotFound
	}

	return models.FromDomainAggregated(key, records, s.label), nil
}

// label подпись интервала HH:MM-HH:MM по индексу в текущей сетке
func (s *Service) label(index int) string {
	start, err := s.grid.OpenTime.AddMinutes(index * s.grid.GranularityMinutes)
	if err != nil {
		return ""
	}
	end, err := start.AddMinutes(s.grid.GranularityMinutes)
	if err != nil {
		return ""
	}
	return start.String() + "-" + end.String()
}
