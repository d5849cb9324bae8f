package aggregate_day

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/aggregation"
	"github.com/m04kA/SMC-SeatLive/internal/domain"
	"github.com/m04kA/SMC-SeatLive/internal/usecase/aggregate_week"
)

const metricsKind = "day"

// UseCase расчёт detail_data дня и пересчёт профиля его недели
type UseCase struct {
	eventRepo      EventRepository
	store          StatisticsStore
	weekAggregator WeekAggregator
	txManager      TxManager
	metrics        Metrics
	settings       Settings
	timeProvider   TimeProvider
	cache          WeekCache
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	store StatisticsStore,
	weekAggregator WeekAggregator,
	txManager TxManager,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	return &UseCase{
		eventRepo:      eventRepo,
		store:          store,
		weekAggregator: weekAggregator,
		txManager:      txManager,
		metrics:        metrics,
		settings:       settings,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет расчёт дня
//
// Шаги: сетка интервалов → события, пересекающие рабочее окно → AggregateDay →
// запись detail_data → пересчёт aggregated_data недели.
// Запись дня и пересчёт недели выполняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now().In(uc.settings.Location)

	// 1. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("AggregateDay: validation failed: %v", err)
		return nil, err
	}

	started := time.Now()
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.settings.Location)
	week := domain.WeekKeyOf(day)

	uc.logger.Info("AggregateDay: date=%s week=%s", day.Format(domain.DateFormat), week)

	// 2. Сетка интервалов
	grid, err := aggregation.BuildGrid(day, uc.settings.Grid)
	if err != nil {
		uc.observe("config_error", started)
		uc.logger.Error("AggregateDay: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// 3. События, пересекающие рабочее окно дня
	events, err := uc.eventRepo.GetEventsForPeriod(ctx, domain.OccupancyEventsFilter{
		From: grid[0].Start,
		To:   grid[len(grid)-1].End,
	})
	if err != nil {
		uc.observe("error", started)
		uc.logger.Error("AggregateDay: failed to load events for %s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to load events: %v", ErrInternal, err)
	}

	// 4. Расчёт интервалов
	records, err := aggregation.AggregateDay(day, grid, uc.settings.TotalSeats, events, now)
	if err != nil {
		switch {
		case errors.Is(err, aggregation.ErrInvalidEvent):
			uc.observe("invalid_events", started)
			uc.logger.Warn("AggregateDay: date=%s rejected: %v", day.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidEvents, err)
		case errors.Is(err, aggregation.ErrConfig):
			uc.observe("config_error", started)
			uc.logger.Error("AggregateDay: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		default:
			uc.observe("error", started)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	records = startedIntervals(grid, records, now)

	resp := &Response{
		Week:      week,
		Date:      day,
		Intervals: grid,
		Records:   records,
		Events:    len(events),
	}

	// 5. Запись дня и пересчёт недели
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := uc.store.WriteDetail(ctx, week, day, records); err != nil {
			return fmt.Errorf("write detail: %w", err)
		}

		weekResp, err := uc.weekAggregator.Execute(ctx, &aggregate_week.Request{Date: day})
		if err != nil {
			return fmt.Errorf("aggregate week: %w", err)
		}
		resp.Aggregated = weekResp.Records
		resp.NoWeekData = weekResp.NoData
		return nil
	})
	if err != nil {
		uc.observe("error", started)
		uc.logger.Error("AggregateDay: date=%s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if uc.cache != nil {
		uc.cache.InvalidateWeek(ctx, week)
	}

	uc.observe("ok", started)
	uc.logger.Info("AggregateDay: date=%s done, %d events, %d intervals", day.Format(domain.DateFormat), len(events), len(records))
	return resp, nil
}

// SetWeekCache подключает кэш чтения, который сбрасывается после успешного пересчета
func (uc *UseCase) SetWeekCache(cache WeekCache) {
	uc.cache = cache
}

// startedIntervals для текущего дня оставляет только интервалы, начавшиеся до now:
// будущие интервалы не должны попасть в профиль как нулевая загрузка
func startedIntervals(grid []domain.Interval, records []domain.DetailRecord, now time.Time) []domain.DetailRecord {
	n := 0
	for n < len(records) && n < len(grid) && grid[n].Start.Before(now) {
		n++
	}
	return records[:n]
}

func (uc *UseCase) observe(result string, started time.Time) {
	uc.metrics.ObserveAggregation(metricsKind, result, time.Since(started))
}
