package aggregation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// ValidateGrid проверяет конфигурацию сетки без построения интервалов
func ValidateGrid(cfg domain.GridConfig) error {
	if !cfg.OpenTime.IsValid() || !cfg.CloseTime.IsValid() {
		return fmt.Errorf("%w: open=%q close=%q must be HH:MM", ErrConfig, cfg.OpenTime, cfg.CloseTime)
	}
	if cfg.GranularityMinutes <= 0 {
		return fmt.Errorf("%w: granularity must be positive, got %d", ErrConfig, cfg.GranularityMinutes)
	}
	if !cfg.OpenTime.IsBefore(cfg.CloseTime) {
		return fmt.Errorf("%w: close time %s must be after open time %s", ErrConfig, cfg.CloseTime, cfg.OpenTime)
	}

	window := cfg.CloseTime.Minutes() - cfg.OpenTime.Minutes()
	if window%cfg.GranularityMinutes != 0 {
		return fmt.Errorf("%w: window %s-%s (%d min) is not a multiple of %d min",
			ErrConfig, cfg.OpenTime, cfg.CloseTime, window, cfg.GranularityMinutes)
	}

	return nil
}

// BuildGrid строит упорядоченные интервалы [start, start+granularity) на день day
// Интервалы идут подряд без пропусков и покрывают ровно окно работы
func BuildGrid(day time.Time, cfg domain.GridConfig) ([]domain.Interval, error) {
	if err := ValidateGrid(cfg); err != nil {
		return nil, err
	}

	count := (cfg.CloseTime.Minutes() - cfg.OpenTime.Minutes()) / cfg.GranularityMinutes
	step := time.Duration(cfg.GranularityMinutes) * time.Minute

	intervals := make([]domain.Interval, count)
	start := cfg.OpenTime.On(day)
	for i := 0; i < count; i++ {
		intervals[i] = domain.Interval{
			Index: i,
			Start: start,
			End:   start.Add(step),
		}
		start = start.Add(step)
	}

	return intervals, nil
}

// IntervalCount количество интервалов в дне для конфигурации
func IntervalCount(cfg domain.GridConfig) (int, error) {
	if err := ValidateGrid(cfg); err != nil {
		return 0, err
	}
	return (cfg.CloseTime.Minutes() - cfg.OpenTime.Minutes()) / cfg.GranularityMinutes, nil
}
