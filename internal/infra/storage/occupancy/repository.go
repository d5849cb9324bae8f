package occupancy

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
	"github.com/m04kA/SMC-SeatLive/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeatLive/pkg/psqlbuilder"
)

const (
	eventsTable     = "occupancy_events"
	seatStatusTable = "seat_status"
)

// Repository репозиторий событий занятости и текущего состояния мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetEventsForPeriod возвращает события, пересекающиеся с [From, To)
// Открытые события (vacated_at IS NULL) возвращаются как StillOccupied
func (r *Repository) GetEventsForPeriod(ctx context.Context, filter domain.OccupancyEventsFilter) ([]domain.OccupancyEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := eventsForPeriodQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEventsForPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEventsForPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]domain.OccupancyEvent, 0)
	for rows.Next() {
		var (
			event     domain.OccupancyEvent
			vacatedAt sql.NullTime
		)
		if err := rows.Scan(&event.ID, &event.SeatID, &event.OccupiedAt, &vacatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetEventsForPeriod - scan row: %v", ErrScanRow, err)
		}
		event.VacatedAt = vacancyFrom(vacatedAt)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetEventsForPeriod - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// GetLastTransitionAt время последнего принятого перехода места:
// максимум из seat_status.last_update и границ его событий. Нулевое время, если переходов не было
func (r *Repository) GetLastTransitionAt(ctx context.Context, seatID string) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := lastTransitionQuery(seatID).ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: GetLastTransitionAt - build select query: %v", ErrBuildQuery, err)
	}

	var last sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&last); err != nil {
		return time.Time{}, fmt.Errorf("%w: GetLastTransitionAt - scan: %v", ErrScanRow, err)
	}
	if !last.Valid {
		return time.Time{}, nil
	}

	return last.Time, nil
}

// GetOpenEvent возвращает незакрытое событие места
func (r *Repository) GetOpenEvent(ctx context.Context, seatID string) (*domain.OccupancyEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "seat_id", "occupied_at").
		From(eventsTable).
		Where(squirrel.Eq{"seat_id": seatID, "vacated_at": nil}).
		OrderBy("occupied_at DESC").
		Limit(1)

	// Внутри транзакции блокируем строку, чтобы два перехода не закрыли событие дважды
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenEvent - build select query: %v", ErrBuildQuery, err)
	}

	event := domain.OccupancyEvent{VacatedAt: domain.StillOccupied()}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.SeatID, &event.OccupiedAt)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenEvent - scan event: %v", ErrScanRow, err)
	}

	return &event, nil
}

// OpenEvent регистрирует начало занятости места
func (r *Repository) OpenEvent(ctx context.Context, seatID string, occupiedAt time.Time) (*domain.OccupancyEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(eventsTable).
		Columns("seat_id", "occupied_at").
		Values(seatID, occupiedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: OpenEvent - build insert query: %v", ErrBuildQuery, err)
	}

	event := &domain.OccupancyEvent{
		SeatID:     seatID,
		OccupiedAt: occupiedAt,
		VacatedAt:  domain.StillOccupied(),
	}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&event.ID); err != nil {
		return nil, fmt.Errorf("%w: OpenEvent - execute insert: %v", ErrExecQuery, err)
	}

	return event, nil
}

// CloseOpenEvent проставляет vacated_at открытому событию места
func (r *Repository) CloseOpenEvent(ctx context.Context, seatID string, vacatedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(eventsTable).
		Set("vacated_at", vacatedAt).
		Where(squirrel.Eq{"seat_id": seatID, "vacated_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CloseOpenEvent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CloseOpenEvent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CloseOpenEvent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// UpsertSeatStatus сохраняет текущее состояние места
func (r *Repository) UpsertSeatStatus(ctx context.Context, status domain.SeatStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(seatStatusTable).
		Columns("seat_id", "status", "last_update").
		Values(status.SeatID, string(status.Status), status.LastUpdate).
		Suffix("ON CONFLICT (seat_id) DO UPDATE SET status = EXCLUDED.status, last_update = EXCLUDED.last_update").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertSeatStatus - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertSeatStatus - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetSeatStatuses возвращает текущее состояние всех мест
func (r *Repository) GetSeatStatuses(ctx context.Context) ([]domain.SeatStatus, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("seat_id", "status", "last_update").
		From(seatStatusTable).
		OrderBy("seat_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSeatStatuses - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSeatStatuses - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	statuses := make([]domain.SeatStatus, 0)
	for rows.Next() {
		var (
			s     domain.SeatStatus
			state string
		)
		if err := rows.Scan(&s.SeatID, &state, &s.LastUpdate); err != nil {
			return nil, fmt.Errorf("%w: GetSeatStatuses - scan row: %v", ErrScanRow, err)
		}
		s.Status = domain.SeatState(state)
		statuses = append(statuses, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSeatStatuses - rows error: %v", ErrScanRow, err)
	}

	return statuses, nil
}

func vacancyFrom(t sql.NullTime) domain.Vacancy {
	if !t.Valid {
		return domain.StillOccupied()
	}
	return domain.Vacated(t.Time)
}

// eventsForPeriodQuery события, пересекающиеся с [From, To): occupied_at < To и (открыто или vacated_at > From)
func eventsForPeriodQuery(filter domain.OccupancyEventsFilter) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"seat_id",
		"occupied_at",
		"vacated_at",
	).
		From(eventsTable).
		Where(squirrel.Lt{"occupied_at": filter.To}).
		Where(squirrel.Or{
			squirrel.Eq{"vacated_at": nil},
			squirrel.Gt{"vacated_at": filter.From},
		}).
		OrderBy("seat_id ASC, occupied_at ASC")
}

// GREATEST в Postgres пропускает NULL
func lastTransitionQuery(seatID string) squirrel.SelectBuilder {
	return psqlbuilder.Select().
		Column(squirrel.Expr(
			"GREATEST(("+
				"SELECT MAX(last_update) FROM "+seatStatusTable+" WHERE seat_id = ?), ("+
				"SELECT MAX(GREATEST(occupied_at, vacated_at)) FROM "+eventsTable+" WHERE seat_id = ?))",
			seatID, seatID,
		))
}
