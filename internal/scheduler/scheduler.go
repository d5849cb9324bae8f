package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	aggregateDay "github.com/m04kA/SMC-SeatLive/internal/usecase/aggregate_day"
	"github.com/m04kA/SMC-SeatLive/pkg/types"
)

// ErrInvalidRunAt некорректное время запуска
var ErrInvalidRunAt = errors.New("scheduler: invalid run_at")

// Scheduler раз в сутки в runAt запускает расчёт текущего дня
type Scheduler struct {
	aggregator   DayAggregator
	runAt        types.TimeString
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// New создает планировщик. runAt в часовом поясе loc
func New(aggregator DayAggregator, runAt types.TimeString, loc *time.Location, logger Logger) (*Scheduler, error) {
	if !runAt.IsValid() || runAt.Minutes() >= 24*60 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRunAt, runAt)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		aggregator:   aggregator,
		runAt:        runAt,
		location:     loc,
		timeProvider: realTimeProvider{},
		logger:       logger,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}, nil
}

// Start запускает цикл в отдельной горутине
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

// Stop останавливает цикл и ждет завершения текущего прогона
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	for {
		next := NextRun(s.timeProvider.Now(), s.runAt, s.location)
		s.logger.Info("Scheduler: next aggregation at %s", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error("Scheduler: %v", err)
		}
	}
}

// RunOnce считает текущий день
func (s *Scheduler) RunOnce(ctx context.Context) error {
	today := s.timeProvider.Now().In(s.location)

	resp, err := s.aggregator.Execute(ctx, &aggregateDay.Request{Date: today})
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", today.Format("2006-01-02"), err)
	}

	s.logger.Info("Scheduler: aggregated %s (%s, events=%d)",
		resp.Date.Format("2006-01-02"), resp.Week, resp.Events)
	return nil
}

// NextRun ближайший момент runAt строго после now
func NextRun(now time.Time, runAt types.TimeString, loc *time.Location) time.Time {
	local := now.In(loc)
	minutes := runAt.Minutes()

	next := time.Date(local.Year(), local.Month(), local.Day(), minutes/60, minutes%60, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, minutes/60, minutes%60, 0, 0, loc)
	}
	return next
}
