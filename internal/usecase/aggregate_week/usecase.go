package aggregate_week

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/aggregation"
	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

const metricsKind = "week"

// UseCase пересчёт недельного профиля загрузки
type UseCase struct {
	store     StatisticsStore
	txManager TxManager
	metrics   Metrics
	settings  Settings
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	store StatisticsStore,
	txManager TxManager,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.ProfileWeeks < 1 {
		settings.ProfileWeeks = domain.DefaultProfileWeeks
	}
	return &UseCase{
		store:     store,
		txManager: txManager,
		metrics:   metrics,
		settings:  settings,
		logger:    logger,
	}
}

// Execute читает detail_data окна профиля и перезаписывает aggregated_data недели
// Отсутствие детальных данных не ошибка: Response.NoData = true, aggregated_data не трогается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AggregateWeek: validation failed: %v", err)
		return nil, err
	}

	started := time.Now()
	from, to := profileWindow(req.Date, uc.settings.ProfileWeeks)
	week := domain.WeekKeyOf(req.Date)

	resp := &Response{
		Week:        week,
		SourceWeeks: domain.WeekKeysBetween(from, to),
	}

	uc.logger.Info("AggregateWeek: week=%s window=%s..%s sources=%v",
		week, from.Format(domain.DateFormat), to.Format(domain.DateFormat), resp.SourceWeeks)

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		details, days, err := uc.collectDetail(ctx, resp.SourceWeeks, from, to)
		if err != nil {
			return err
		}
		resp.Days = days

		records, err := aggregation.AggregateWeek(details)
		if errors.Is(err, aggregation.ErrIncompleteData) {
			resp.NoData = true
			resp.Records = records
			return nil
		}
		if err != nil {
			return err
		}
		resp.Records = records

		if err := uc.store.WriteAggregated(ctx, week, records); err != nil {
			return fmt.Errorf("write aggregated: %w", err)
		}
		return nil
	})

	if err != nil {
		uc.metrics.ObserveAggregation(metricsKind, "error", time.Since(started))
		uc.logger.Error("AggregateWeek: week=%s: %v", week, err)
		return nil, fmt.Errorf("%w: AggregateWeek - %v", ErrInternal, err)
	}

	if resp.NoData {
		uc.metrics.ObserveAggregation(metricsKind, "no_data", time.Since(started))
		uc.logger.Info("AggregateWeek: week=%s has no detail data yet", week)
		return resp, nil
	}

	uc.metrics.ObserveAggregation(metricsKind, "ok", time.Since(started))
	uc.logger.Info("AggregateWeek: week=%s aggregated %d records from %d days", week, len(resp.Records), resp.Days)
	return resp, nil
}

// collectDetail читает бакеты и оставляет только дни из [from, to]
// Ключ week_N не содержит года, поэтому в бакете могут лежать дни прошлых лет
func (uc *UseCase) collectDetail(ctx context.Context, weeks []domain.WeekKey, from, to time.Time) ([]domain.DetailRecord, int, error) {
	inWindow := make(map[string][]domain.DetailRecord)
	fromKey, toKey := from.Format(domain.DateFormat), to.Format(domain.DateFormat)

	for _, week := range weeks {
		byDay, err := uc.store.ReadAllDetail(ctx, week)
		if err != nil {
			return nil, 0, fmt.Errorf("read detail %s: %w", week, err)
		}
		for day, records := range byDay {
			if day < fromKey || day > toKey {
				continue
			}
			inWindow[day] = records
		}
	}

	return aggregation.FlattenDetail(inWindow), len(inWindow), nil
}

// profileWindow возвращает [понедельник первой недели окна, воскресенье недели date]
func profileWindow(date time.Time, weeks int) (time.Time, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Пн = 0
	monday := day.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.AddDate(0, 0, -7*(weeks-1)), sunday
}
