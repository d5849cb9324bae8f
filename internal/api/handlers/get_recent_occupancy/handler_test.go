package get_recent_occupancy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatLive/internal/aggregation"
	"github.com/m04kA/SMC-SeatLive/internal/domain"
	getRecentOccupancy "github.com/m04kA/SMC-SeatLive/internal/usecase/get_recent_occupancy"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockUseCase struct {
	req  *getRecentOccupancy.Request
	resp *getRecentOccupancy.Response
	err  error
}

func (m *mockUseCase) Execute(_ context.Context, req *getRecentOccupancy.Request) (*getRecentOccupancy.Response, error) {
	m.req = req
	return m.resp, m.err
}

func TestHandle_OK(t *testing.T) {
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	uc := &mockUseCase{resp: &getRecentOccupancy.Response{
		From: day.AddDate(0, 0, -2),
		To:   day,
		Days: []getRecentOccupancy.DayOccupancy{{
			Date:     day,
			Weekday:  day.Weekday(),
			Records:  []domain.DetailRecord{{DayDate: day, OccupiedCount: 1, TotalSeats: 3}},
			Hourly:   []aggregation.HourlyOccupancy{{Hour: 9, AverageOccupied: 1.0 / 3}},
			PeakRate: 100.0 / 3,
		}},
	}}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/statistics/recent?days=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, uc.req.Days)

	var body RecentOccupancyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2025-10-13", body.From)
	require.Len(t, body.Days, 1)
	assert.Equal(t, "Wednesday", body.Days[0].Weekday)
	assert.Equal(t, 33.33, body.Days[0].PeakRate)
	assert.Equal(t, 0.33, body.Days[0].Hourly[0].AverageOccupied)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{"not a number", "?days=abc", nil, http.StatusBadRequest},
		{"zero", "?days=0", nil, http.StatusBadRequest},
		{"too many", "?days=99", getRecentOccupancy.ErrInvalidInput, http.StatusBadRequest},
		{"no data", "", getRecentOccupancy.ErrNoData, http.StatusNotFound},
		{"internal", "", getRecentOccupancy.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&mockUseCase{err: tt.err}, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/statistics/recent"+tt.query, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
