package statistics

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
	"github.com/m04kA/SMC-SeatLive/pkg/dbmetrics"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockStore struct {
	detail         map[domain.WeekKey]map[string][]domain.DetailRecord
	aggregated     map[domain.WeekKey][]domain.AggregatedRecord
	detailReads    int
	aggregatedRead int
	readErr        error
}

func newMockStore() *mockStore {
	return &mockStore{
		detail:     make(map[domain.WeekKey]map[string][]domain.DetailRecord),
		aggregated: make(map[domain.WeekKey][]domain.AggregatedRecord),
	}
}

func (m *mockStore) WriteDetail(_ context.Context, week domain.WeekKey, day time.Time, records []domain.DetailRecord) error {
	if m.detail[week] == nil {
		m.detail[week] = make(map[string][]domain.DetailRecord)
	}
	m.detail[week][day.Format(domain.DateFormat)] = records
	return nil
}

func (m *mockStore) ReadAllDetail(_ context.Context, week domain.WeekKey) (map[string][]domain.DetailRecord, error) {
	m.detailReads++
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.detail[week], nil
}

func (m *mockStore) WriteAggregated(_ context.Context, week domain.WeekKey, records []domain.AggregatedRecord) error {
	m.aggregated[week] = records
	return nil
}

func (m *mockStore) ReadAggregated(_ context.Context, week domain.WeekKey) ([]domain.AggregatedRecord, error) {
	m.aggregatedRead++
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.aggregated[week], nil
}

func setup(t *testing.T) (*Cache, *mockStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := newMockStore()
	return NewCache(store, rdb, time.Minute, "test", nopLogger{}), store, mr
}

func TestCache_ReadAggregated_HitAfterMiss(t *testing.T) {
	c, store, mr := setup(t)
	ctx := context.Background()
	store.aggregated["week_42"] = []domain.AggregatedRecord{
		{Weekday: time.Monday, IntervalIndex: 10, AverageOccupied: 3},
	}

	first, err := c.ReadAggregated(ctx, "week_42")
	require.NoError(t, err)
	second, err := c.ReadAggregated(ctx, "week_42")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.aggregatedRead)
	assert.True(t, mr.Exists("test:week_42:aggregated"))
	assert.Equal(t, time.Minute, mr.TTL("test:week_42:aggregated"))
}

func TestCache_WriteInvalidates(t *testing.T) {
	c, store, _ := setup(t)
	ctx := context.Background()
	day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	require.NoError(t, c.WriteDetail(ctx, "week_42", day, []domain.DetailRecord{
		{DayDate: day, IntervalIndex: 0, OccupiedCount: 1, TotalSeats: 4},
	}))
	_, err := c.ReadAllDetail(ctx, "week_42")
	require.NoError(t, err)

	require.NoError(t, c.WriteDetail(ctx, "week_42", day, []domain.DetailRecord{
		{DayDate: day, IntervalIndex: 0, OccupiedCount: 2, TotalSeats: 4},
	}))
	got, err := c.ReadAllDetail(ctx, "week_42")
	require.NoError(t, err)

	assert.Equal(t, 2, store.detailReads)
	assert.Equal(t, 2, got["2025-10-13"][0].OccupiedCount)
}

func TestCache_DetailFromCacheKeepsValues(t *testing.T) {
	c, store, _ := setup(t)
	ctx := context.Background()
	day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	store.detail["week_42"] = map[string][]domain.DetailRecord{
		"2025-10-13": {{DayDate: day, IntervalIndex: 3, OccupiedCount: 2, TotalSeats: 4}},
	}

	_, err := c.ReadAllDetail(ctx, "week_42")
	require.NoError(t, err)
	got, err := c.ReadAllDetail(ctx, "week_42")
	require.NoError(t, err)

	assert.Equal(t, 1, store.detailReads)
	require.Len(t, got["2025-10-13"], 1)
	assert.True(t, day.Equal(got["2025-10-13"][0].DayDate))
	assert.Equal(t, 3, got["2025-10-13"][0].IntervalIndex)
}

func TestCache_RedisDownFallsBackToStore(t *testing.T) {
	c, store, mr := setup(t)
	store.aggregated["week_1"] = []domain.AggregatedRecord{{Weekday: time.Friday, AverageOccupied: 1}}
	mr.Close()

	got, err := c.ReadAggregated(context.Background(), "week_1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCache_StoreErrorNotCached(t *testing.T) {
	c, store, mr := setup(t)
	store.readErr = errors.New("db down")

	_, err := c.ReadAggregated(context.Background(), "week_1")
	assert.Error(t, err)
	assert.False(t, mr.Exists("test:week_1:aggregated"))
}

type fakeTx struct{}

func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) { return nil, nil }
func (fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) { return nil, nil }
func (fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (fakeTx) Commit() error { return nil }
func (fakeTx) Rollback() error { return nil }

func TestCache_WritePathInTransactionNeverFillsCache(t *testing.T) {
	c, store, mr := setup(t)
	day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	txCtx := dbmetrics.WithTx(context.Background(), fakeTx{})

	// пересчет дня: запись detail, чтение недели и запись профиля в одной транзакции
	require.NoError(t, c.WriteDetail(txCtx, "week_42", day, []domain.DetailRecord{
		{DayDate: day, IntervalIndex: 0, OccupiedCount: 3, TotalSeats: 4},
	}))
	detail, err := c.ReadAllDetail(txCtx, "week_42")
	require.NoError(t, err)
	require.Len(t, detail["2025-10-13"], 1)
	require.NoError(t, c.WriteAggregated(txCtx, "week_42", []domain.AggregatedRecord{
		{Weekday: time.Monday, IntervalIndex: 0, AverageOccupied: 3},
	}))
	_, err = c.ReadAggregated(txCtx, "week_42")
	require.NoError(t, err)

	assert.Empty(t, mr.Keys(), "transaction rows must not reach redis")

	// после отката транзакции читатель вне её видит только хранилище
	delete(store.detail, "week_42")
	got, err := c.ReadAllDetail(context.Background(), "week_42")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCache_InTransactionIgnoresCachedEntry(t *testing.T) {
	c, store, _ := setup(t)
	ctx := context.Background()
	store.aggregated["week_42"] = []domain.AggregatedRecord{{Weekday: time.Monday, AverageOccupied: 1}}

	_, err := c.ReadAggregated(ctx, "week_42")
	require.NoError(t, err)

	store.aggregated["week_42"] = []domain.AggregatedRecord{{Weekday: time.Monday, AverageOccupied: 2}}
	got, err := c.ReadAggregated(dbmetrics.WithTx(ctx, fakeTx{}), "week_42")
	require.NoError(t, err)

	assert.Equal(t, 2, store.aggregatedRead)
	assert.Equal(t, float64(2), got[0].AverageOccupied)
}

func TestCache_InvalidateWeek(t *testing.T) {
	c, store, mr := setup(t)
	ctx := context.Background()
	store.aggregated["week_42"] = []domain.AggregatedRecord{{Weekday: time.Monday, AverageOccupied: 1}}
	store.detail["week_42"] = map[string][]domain.DetailRecord{"2025-10-13": {{OccupiedCount: 1, TotalSeats: 4}}}

	_, err := c.ReadAggregated(ctx, "week_42")
	require.NoError(t, err)
	_, err = c.ReadAllDetail(ctx, "week_42")
	require.NoError(t, err)
	require.Len(t, mr.Keys(), 2)

	c.InvalidateWeek(ctx, "week_42")
	assert.Empty(t, mr.Keys())
}
