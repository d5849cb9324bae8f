package aggregate_week

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockStore struct {
	detail     map[domain.WeekKey]map[string][]domain.DetailRecord
	aggregated map[domain.WeekKey][]domain.AggregatedRecord
	reads      []domain.WeekKey
	readErr    error
}

func newMockStore() *mockStore {
	return &mockStore{
		detail:     make(map[domain.WeekKey]map[string][]domain.DetailRecord),
		aggregated: make(map[domain.WeekKey][]domain.AggregatedRecord),
	}
}

func (m *mockStore) put(day time.Time, counts ...int) {
	week := domain.WeekKeyOf(day)
	if m.detail[week] == nil {
		m.detail[week] = make(map[string][]domain.DetailRecord)
	}
	records := make([]domain.DetailRecord, len(counts))
	for i, c := range counts {
		records[i] = domain.DetailRecord{DayDate: day, IntervalIndex: i, OccupiedCount: c, TotalSeats: 10}
	}
	m.detail[week][day.Format(domain.DateFormat)] = records
}

func (m *mockStore) ReadAllDetail(_ context.Context, week domain.WeekKey) (map[string][]domain.DetailRecord, error) {
	m.reads = append(m.reads, week)
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.detail[week], nil
}

func (m *mockStore) WriteAggregated(_ context.Context, week domain.WeekKey, records []domain.AggregatedRecord) error {
	m.aggregated[week] = records
	return nil
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type runs map[string]int

func (r runs) ObserveAggregation(kind, result string, _ time.Duration) { r[kind+":"+result]++ }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExecute_SingleWeek(t *testing.T) {
	store := newMockStore()
	store.put(date(2025, 10, 13), 2, 0) // Пн
	store.put(date(2025, 10, 14), 5, 1) // Вт
	store.put(date(2025, 10, 18), 9, 9) // Сб, не входит в профиль
	m := runs{}

	uc := NewUseCase(store, inlineTx{}, m, Settings{ProfileWeeks: 1}, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{Date: date(2025, 10, 15)})
	require.NoError(t, err)

	assert.Equal(t, domain.WeekKey("week_42"), resp.Week)
	assert.Equal(t, []domain.WeekKey{"week_42"}, resp.SourceWeeks)
	assert.Equal(t, 3, resp.Days)
	assert.False(t, resp.NoData)
	assert.Equal(t, []domain.AggregatedRecord{
		{Weekday: time.Monday, IntervalIndex: 0, AverageOccupied: 2},
		{Weekday: time.Monday, IntervalIndex: 1, AverageOccupied: 0},
		{Weekday: time.Tuesday, IntervalIndex: 0, AverageOccupied: 5},
		{Weekday: time.Tuesday, IntervalIndex: 1, AverageOccupied: 1},
	}, store.aggregated["week_42"])
	assert.Equal(t, 1, m["week:ok"])
}

func TestExecute_ProfileWeeksAveragesMondays(t *testing.T) {
	store := newMockStore()
	store.put(date(2025, 10, 6), 2)  // Пн week_41
	store.put(date(2025, 10, 13), 4) // Пн week_42

	uc := NewUseCase(store, inlineTx{}, runs{}, Settings{ProfileWeeks: 2}, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{Date: date(2025, 10, 13)})
	require.NoError(t, err)

	assert.Equal(t, []domain.WeekKey{"week_41", "week_42"}, resp.SourceWeeks)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, 3.0, resp.Records[0].AverageOccupied)
}

func TestExecute_IgnoresDaysOfOtherYears(t *testing.T) {
	store := newMockStore()
	store.put(date(2025, 10, 13), 4)
	store.put(date(2024, 10, 14), 100) // тот же бакет week_42 год назад

	uc := NewUseCase(store, inlineTx{}, runs{}, Settings{}, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{Date: date(2025, 10, 13)})
	require.NoError(t, err)

	require.Len(t, resp.Records, 1)
	assert.Equal(t, 4.0, resp.Records[0].AverageOccupied)
	assert.Equal(t, 1, resp.Days)
}

func TestExecute_NoData(t *testing.T) {
	store := newMockStore()
	m := runs{}

	uc := NewUseCase(store, inlineTx{}, m, Settings{ProfileWeeks: 1}, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{Date: date(2025, 10, 13)})
	require.NoError(t, err)

	assert.True(t, resp.NoData)
	assert.Empty(t, resp.Records)
	assert.NotContains(t, store.aggregated, domain.WeekKey("week_42"))
	assert.Equal(t, 1, m["week:no_data"])
}

func TestExecute_Idempotent(t *testing.T) {
	store := newMockStore()
	store.put(date(2025, 10, 13), 1, 2, 3)
	store.put(date(2025, 10, 17), 3, 2, 1)
	uc := NewUseCase(store, inlineTx{}, runs{}, Settings{ProfileWeeks: 1}, nopLogger{})

	first, err := uc.Execute(context.Background(), &Request{Date: date(2025, 10, 13)})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{Date: date(2025, 10, 13)})
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
}

func TestExecute_Errors(t *testing.T) {
	store := newMockStore()
	store.readErr = errors.New("db down")
	m := runs{}
	uc := NewUseCase(store, inlineTx{}, m, Settings{ProfileWeeks: 1}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: date(2025, 10, 13)})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, m["week:error"])

	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProfileWindow(t *testing.T) {
	from, to := profileWindow(date(2025, 10, 19), 1) // воскресенье
	assert.Equal(t, date(2025, 10, 13), from)
	assert.Equal(t, date(2025, 10, 19), to)

	from, _ = profileWindow(date(2025, 10, 13), 3)
	assert.Equal(t, date(2025, 9, 29), from)
}
