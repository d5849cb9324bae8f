package seats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
	occupancyRepo "github.com/m04kA/SMC-SeatLive/internal/infra/storage/occupancy"
	"github.com/m04kA/SMC-SeatLive/internal/service/seats/models"
)

// Service сервис текущего состояния мест
type Service struct {
	statusReader SeatStatusReader
	eventRepo    EventRepository
	txManager    TxManager
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса мест
func NewService(
	statusReader SeatStatusReader,
	eventRepo EventRepository,
	txManager TxManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		statusReader: statusReader,
		eventRepo:    eventRepo,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// GetSnapshot возвращает текущее состояние всех мест и уровень загрузки
func (s *Service) GetSnapshot(ctx context.Context) (*models.SnapshotResponse, error) {
	statuses, err := s.statusReader.GetSeatStatuses(ctx)
	if err != nil {
		s.logger.Error("GetSnapshot: failed to read seat status: %v", err)
		return nil, fmt.Errorf("%w: GetSnapshot - read seat status: %v", ErrInternal, err)
	}

	if len(statuses) == 0 {
		s.logger.Warn("GetSnapshot: seat status is empty")
		return nil, ErrNoSeatStatus
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].SeatID < statuses[j].SeatID
	})

	resp := models.FromDomainStatuses(statuses)
	s.metrics.SetOccupiedSeats(resp.OccupiedSeats)

	return resp, nil
}

// RecordTransition фиксирует смену состояния места
// occupied открывает событие, available закрывает открытое; повтор текущего состояния ничего не меняет.
// Переход старше последнего принятого (повторная доставка не по порядку) отклоняется с ErrInvalidInput
func (s *Service) RecordTransition(ctx context.Context, req *models.TransitionRequest) error {
	if err := validateTransition(req); err != nil {
		s.logger.Warn("RecordTransition: validation failed: %v", err)
		return err
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		last, err := s.eventRepo.GetLastTransitionAt(ctx, req.SeatID)
		if err != nil {
			return fmt.Errorf("get last transition: %w", err)
		}
		if req.ChangedAt.Before(last) {
			return fmt.Errorf("%w: seat %s transition to %s at %s is older than last update %s",
				ErrInvalidInput, req.SeatID, req.Status, req.ChangedAt.Format(time.RFC3339), last.Format(time.RFC3339))
		}

		open, err := s.eventRepo.GetOpenEvent(ctx, req.SeatID)
		if err != nil && !errors.Is(err, occupancyRepo.ErrEventNotFound) {
			return fmt.Errorf("get open event: %w", err)
		}

		switch req.Status {
		case domain.SeatOccupied:
			if open != nil {
				s.logger.Info("RecordTransition: seat %s already occupied since %s", req.SeatID, open.OccupiedAt.Format(domain.TimeFormat))
				break
			}
			if _, err := s.eventRepo.OpenEvent(ctx, req.SeatID, req.ChangedAt); err != nil {
				return fmt.Errorf("open event: %w", err)
			}
		case domain.SeatAvailable:
			if open == nil {
				s.logger.Info("RecordTransition: seat %s already available", req.SeatID)
				break
			}
			if !req.ChangedAt.After(open.OccupiedAt) {
				return fmt.Errorf("%w: seat %s vacated at %s before it was occupied at %s",
					ErrInvalidInput, req.SeatID, req.ChangedAt, open.OccupiedAt)
			}
			if err := s.eventRepo.CloseOpenEvent(ctx, req.SeatID, req.ChangedAt); err != nil {
				return fmt.Errorf("close event: %w", err)
			}
		}

		return s.eventRepo.UpsertSeatStatus(ctx, domain.SeatStatus{
			SeatID:     req.SeatID,
			Status:     req.Status,
			LastUpdate: req.ChangedAt,
		})
	})

	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("RecordTransition: %v", err)
			return err
		}
		s.logger.Error("RecordTransition: seat=%s status=%s: %v", req.SeatID, req.Status, err)
		return fmt.Errorf("%w: RecordTransition - %v", ErrInternal, err)
	}

	s.logger.Info("RecordTransition: seat=%s status=%s at %s", req.SeatID, req.Status, req.ChangedAt.Format(domain.TimeFormat))
	return nil
}
