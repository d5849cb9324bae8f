package statistics

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
	detailTable     = "occupancy_detail"
	aggregatedTable = "occupancy_aggregated"
)

// Repository хранилище detail_data и aggregated_data в Postgres
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория статистики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// WriteDetail заменяет детальные записи дня day в неделе week
// Удаление и вставка выполняются в одной транзакции (своей или из контекста),
// поэтому повторный расчёт дня идемпотентен
func (r *Repository) WriteDetail(ctx context.Context, week domain.WeekKey, day time.Time, records []domain.DetailRecord) error {
	return r.inTx(ctx, func(ctx context.Context) error {
		executor := dbmetrics.GetExecutor(ctx, r.db)

		query, args, err := psqlbuilder.Delete(detailTable).
			Where(squirrel.Eq{"week_key": string(week), "day_date": dateOnly(day)}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: WriteDetail - build delete query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: WriteDetail - execute delete: %v", ErrExecQuery, err)
		}

		if len(records) == 0 {
			return nil
		}

		insert := psqlbuilder.Insert(detailTable).
			Columns("week_key", "day_date", "interval_index", "occupied_count", "total_seats")
		for _, rec := range records {
			insert = insert.Values(string(week), dateOnly(day), rec.IntervalIndex, rec.OccupiedCount, rec.TotalSeats)
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: WriteDetail - build insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: WriteDetail - execute insert: %v", ErrExecQuery, err)
		}

		return nil
	})
}

// ReadAllDetail возвращает детальные записи недели, сгруппированные по дню (YYYY-MM-DD)
func (r *Repository) ReadAllDetail(ctx context.Context, week domain.WeekKey) (map[string][]domain.DetailRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_date",
		"interval_index",
		"occupied_count",
		"total_seats",
	).
		From(detailTable).
		Where(squirrel.Eq{"week_key": string(week)}).
		OrderBy("day_date ASC, interval_index ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReadAllDetail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReadAllDetail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string][]domain.DetailRecord)
	for rows.Next() {
		var rec domain.DetailRecord
		if err := rows.Scan(&rec.DayDate, &rec.IntervalIndex, &rec.OccupiedCount, &rec.TotalSeats); err != nil {
			return nil, fmt.Errorf("%w: ReadAllDetail - scan row: %v", ErrScanRow, err)
		}
		day := rec.DayDate.Format(domain.DateFormat)
		result[day] = append(result[day], rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReadAllDetail - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// WriteAggregated заменяет aggregated_data недели week
func (r *Repository) WriteAggregated(ctx context.Context, week domain.WeekKey, records []domain.AggregatedRecord) error {
	return r.inTx(ctx, func(ctx context.Context) error {
		executor := dbmetrics.GetExecutor(ctx, r.db)

		query, args, err := psqlbuilder.Delete(aggregatedTable).
			Where(squirrel.Eq{"week_key": string(week)}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: WriteAggregated - build delete query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: WriteAggregated - execute delete: %v", ErrExecQuery, err)
		}

		if len(records) == 0 {
			return nil
		}

		insert := psqlbuilder.Insert(aggregatedTable).
			Columns("week_key", "weekday", "weekday_no", "interval_index", "average_occupied")
		for _, rec := range records {
			insert = insert.Values(string(week), rec.Weekday.String(), int(rec.Weekday), rec.IntervalIndex, rec.AverageOccupied)
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: WriteAggregated - build insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: WriteAggregated - execute insert: %v", ErrExecQuery, err)
		}

		return nil
	})
}

// ReadAggregated возвращает aggregated_data недели, упорядоченные по дню недели и интервалу
func (r *Repository) ReadAggregated(ctx context.Context, week domain.WeekKey) ([]domain.AggregatedRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"interval_index",
		"average_occupied",
	).
		From(aggregatedTable).
		Where(squirrel.Eq{"week_key": string(week)}).
		OrderBy("weekday_no ASC, interval_index ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReadAggregated - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReadAggregated - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.AggregatedRecord, 0)
	for rows.Next() {
		var (
			rec     domain.AggregatedRecord
			weekday string
		)
		if err := rows.Scan(&weekday, &rec.IntervalIndex, &rec.AverageOccupied); err != nil {
			return nil, fmt.Errorf("%w: ReadAggregated - scan row: %v", ErrScanRow, err)
		}

		d, ok := domain.ParseWeekday(weekday)
		if !ok {
			return nil, fmt.Errorf("%w: ReadAggregated - %q", ErrInvalidWeekday, weekday)
		}
		rec.Weekday = d

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReadAggregated - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// Helper methods

// inTx выполняет fn в транзакции из контекста или открывает новую
func (r *Repository) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	txCtx, tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}
	return nil
}

// BeginTx начинает новую транзакцию и возвращает контекст с ней
func (r *Repository) BeginTx(ctx context.Context, opts *sql.TxOptions) (context.Context, TxExecutor, error) {
	// Пытаемся привести к TxBeginner интерфейсу (dbmetrics.DB реализует этот интерфейс)
	if txBeginner, ok := r.db.(TxBeginner); ok {
		tx, err := txBeginner.BeginTx(ctx, opts)
		if err != nil {
			return ctx, nil, fmt.Errorf("%w: BeginTx: %v", ErrTransaction, err)
		}
		return dbmetrics.WithTx(ctx, tx), tx, nil
	}

	// Fallback для обычного *sql.DB
	if db, ok := r.db.(*sql.DB); ok {
		tx, err := db.BeginTx(ctx, opts)
		if err != nil {
			return ctx, nil, fmt.Errorf("%w: BeginTx: %v", ErrTransaction, err)
		}
		wrappedTx := &dbmetrics.SqlTxWrapper{Tx: tx}
		return dbmetrics.WithTx(ctx, wrappedTx), wrappedTx, nil
	}

	return ctx, nil, fmt.Errorf("%w: db type not supported", ErrTransaction)
}

func dateOnly(t time.Time) string {
	return t.Format(domain.DateFormat)
}
