package realtimedb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
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

// fakeDB минимальная in-memory realtime database: дерево узлов, адресуемое путём
type fakeDB struct {
	mu   sync.Mutex
	root map[string]interface{}
	auth []string
}

func newFakeDB() *fakeDB {
	return &fakeDB{root: make(map[string]interface{})}
}

func (f *fakeDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.auth = append(f.auth, r.URL.Query().Get("auth"))
	parts := strings.Split(strings.Trim(strings.TrimSuffix(r.URL.Path, ".json"), "/"), "/")

	switch r.Method {
	case http.MethodPut:
		var value interface{}
		if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		node := f.root
		for _, p := range parts[:len(parts)-1] {
			next, ok := node[p].(map[string]interface{})
			if !ok {
				next = make(map[string]interface{})
				node[p] = next
			}
			node = next
		}
		node[parts[len(parts)-1]] = value
		json.NewEncoder(w).Encode(value)
	case http.MethodGet:
		var value interface{} = f.root
		for _, p := range parts {
			m, ok := value.(map[string]interface{})
			if !ok {
				value = nil
				break
			}
			value = m[p]
		}
		json.NewEncoder(w).Encode(value)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// has проверяет, что по пути лежит значение
func (f *fakeDB) has(path ...string) bool {
	var value interface{} = f.root
	for _, p := range path {
		m, ok := value.(map[string]interface{})
		if !ok {
			return false
		}
		value = m[p]
	}
	return value != nil
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "secret", time.Second, time.UTC, nopLogger{})
}

func TestClient_DetailRoundTrip(t *testing.T) {
	db := newFakeDB()
	c := newTestClient(t, db)
	ctx := context.Background()

	day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	week := domain.WeekKeyOf(day)
	records := []domain.DetailRecord{
		{DayDate: day, IntervalIndex: 1, OccupiedCount: 4, TotalSeats: 16},
		{DayDate: day, IntervalIndex: 0, OccupiedCount: 2, TotalSeats: 16},
	}

	require.NoError(t, c.WriteDetail(ctx, week, day, records))

	assert.True(t, db.has("occupancy_statistics", "week_42", "detail_data", "2025-10-13"))
	assert.Equal(t, "secret", db.auth[0])

	got, err := c.ReadAllDetail(ctx, week)
	require.NoError(t, err)
	require.Len(t, got["2025-10-13"], 2)
	assert.Equal(t, 0, got["2025-10-13"][0].IntervalIndex)
	assert.Equal(t, 2, got["2025-10-13"][0].OccupiedCount)
	assert.Equal(t, day, got["2025-10-13"][0].DayDate)
}

func TestClient_ReadAllDetail_Missing(t *testing.T) {
	c := newTestClient(t, newFakeDB())

	got, err := c.ReadAllDetail(context.Background(), "week_1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_AggregatedRoundTrip(t *testing.T) {
	c := newTestClient(t, newFakeDB())
	ctx := context.Background()

	records := []domain.AggregatedRecord{
		{Weekday: time.Tuesday, IntervalIndex: 0, AverageOccupied: 1.5},
		{Weekday: time.Monday, IntervalIndex: 1, AverageOccupied: 3},
		{Weekday: time.Monday, IntervalIndex: 0, AverageOccupied: 2},
	}
	require.NoError(t, c.WriteAggregated(ctx, "week_42", records))

	got, err := c.ReadAggregated(ctx, "week_42")
	require.NoError(t, err)
	assert.Equal(t, []domain.AggregatedRecord{
		{Weekday: time.Monday, IntervalIndex: 0, AverageOccupied: 2},
		{Weekday: time.Monday, IntervalIndex: 1, AverageOccupied: 3},
		{Weekday: time.Tuesday, IntervalIndex: 0, AverageOccupied: 1.5},
	}, got)
}

func TestClient_GetSeatStatuses(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/seat_status.json", r.URL.Path)
		w.Write([]byte(`{
			"W2": {"status": "available", "status_zh": "空位", "last_update": "2025-10-13 12:00:00"},
			"T1": {"status": "occupied", "last_update": "2025-10-13T12:01:00Z"}
		}`))
	})
	c := newTestClient(t, handler)

	got, err := c.GetSeatStatuses(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "T1", got[0].SeatID)
	assert.True(t, got[0].IsOccupied())
	assert.Equal(t, time.Date(2025, 10, 13, 12, 1, 0, 0, time.UTC), got[0].LastUpdate.UTC())
	assert.Equal(t, domain.SeatAvailable, got[1].Status)
	assert.Equal(t, "空位", got[1].StatusZh)
	assert.Empty(t, got[0].StatusZh)
	assert.Equal(t, time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC), got[1].LastUpdate)
}

func TestClient_StatusCodes(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"server error", http.StatusInternalServerError, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := c.ReadAggregated(context.Background(), "week_1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
