package aggregate_day

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
	aggregateDay "github.com/m04kA/SMC-SeatLive/internal/usecase/aggregate_day"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockUseCase struct {
	req  *aggregateDay.Request
	resp *aggregateDay.Response
	err  error
}

func (m *mockUseCase) Execute(_ context.Context, req *aggregateDay.Request) (*aggregateDay.Response, error) {
	m.req = req
	return m.resp, m.err
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/statistics/days/{date}/aggregate", h.Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	uc := &mockUseCase{resp: &aggregateDay.Response{
		Week:      "week_42",
		Date:      day,
		Events:    1,
		Intervals: []domain.Interval{{Index: 0, Start: day.Add(9 * time.Hour), End: day.Add(9*time.Hour + 15*time.Minute)}},
		Records:   []domain.DetailRecord{{DayDate: day, IntervalIndex: 0, OccupiedCount: 1, TotalSeats: 4}},
		Aggregated: []domain.AggregatedRecord{
			{Weekday: time.Monday, IntervalIndex: 0, AverageOccupied: 1},
		},
	}}
	h := NewHandler(uc, time.UTC, nopLogger{})

	rec := serve(h, "/statistics/days/2025-10-13/aggregate")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, day, uc.req.Date)

	var body AggregateDayResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "week_42", body.Week)
	assert.Equal(t, "09:00-09:15", body.Intervals[0].Interval)
	assert.Equal(t, "Monday", body.Aggregated[0].Weekday)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"bad date", "/statistics/days/13-10-2025/aggregate", nil, http.StatusBadRequest},
		{"future", "/statistics/days/2025-10-13/aggregate", aggregateDay.ErrDateInFuture, http.StatusBadRequest},
		{"invalid events", "/statistics/days/2025-10-13/aggregate",
			fmt.Errorf("%w: overlap", aggregateDay.ErrInvalidEvents), http.StatusUnprocessableEntity},
		{"config", "/statistics/days/2025-10-13/aggregate", aggregateDay.ErrInvalidConfig, http.StatusInternalServerError},
		{"internal", "/statistics/days/2025-10-13/aggregate", aggregateDay.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&mockUseCase{err: tt.err}, time.UTC, nopLogger{})
			rec := serve(h, tt.path)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
