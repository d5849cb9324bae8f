package get_recent_occupancy

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/aggregation"
	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// UseCase загрузка по дням за последние N дней
type UseCase struct {
	store        StatisticsStore
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store StatisticsStore, settings Settings, logger Logger) *UseCase {
	if settings.DefaultDays <= 0 {
		settings.DefaultDays = domain.DefaultRecentDays
	}
	if settings.Location == nil {
		settings.Location = time.Local
	}
	return &UseCase{
		store:        store,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute читает бакеты недель, покрывающих период, и оставляет дни периода
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetRecentOccupancy: validation failed: %v", err)
		return nil, err
	}

	days := req.Days
	if days == 0 {
		days = uc.settings.DefaultDays
	}

	now := uc.timeProvider.Now().In(uc.settings.Location)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.settings.Location)
	from := to.AddDate(0, 0, -(days - 1))
	fromKey, toKey := from.Format(domain.DateFormat), to.Format(domain.DateFormat)

	uc.logger.Info("GetRecentOccupancy: %s..%s", fromKey, toKey)

	byDay := make(map[string]storedDay)
	for _, week := range domain.WeekKeysBetween(from, to) {
		detail, err := uc.store.ReadAllDetail(ctx, week)
		if err != nil {
			uc.logger.Error("GetRecentOccupancy: failed to read %s: %v", week, err)
			return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInternal, week, err)
		}
		for day, records := range detail {
			if day < fromKey || day > toKey || len(records) == 0 {
				continue
			}
			date, err := time.ParseInLocation(domain.DateFormat, day, uc.settings.Location)
			if err != nil {
				uc.logger.Warn("GetRecentOccupancy: skip malformed day key %q in %s: %v", day, week, err)
				continue
			}
			byDay[day] = storedDay{date: date, records: records}
		}
	}

	if len(byDay) == 0 {
		uc.logger.Info("GetRecentOccupancy: no data for %s..%s", fromKey, toKey)
		return nil, ErrNoData
	}

	keys := make([]string, 0, len(byDay))
	for day := range byDay {
		keys = append(keys, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	resp := &Response{
		From: from,
		To:   to,
		Days: make([]DayOccupancy, 0, len(keys)),
	}
	for _, key := range keys {
		date, records := byDay[key].date, byDay[key].records

		hourly, err := aggregation.HourlyRollup(records, uc.settings.Grid)
		if err != nil {
			uc.logger.Error("GetRecentOccupancy: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		day := DayOccupancy{
			Date:    date,
			Weekday: date.Weekday(),
			Records: records,
			Hourly:  hourly,
		}
		for _, r := range records {
			if rate := r.OccupancyRate(); rate > day.PeakRate {
				day.PeakRate = rate
			}
		}
		resp.Days = append(resp.Days, day)
	}

	return resp, nil
}

type storedDay struct {
	date    time.Time
	records []domain.DetailRecord
}
