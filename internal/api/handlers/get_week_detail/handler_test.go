package get_week_detail

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SeatLive/internal/service/statistics"
	"github.com/m04kA/SMC-SeatLive/internal/service/statistics/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct {
	week string
	resp *models.DetailResponse
	err  error
}

func (m *mockService) GetDetail(_ context.Context, week string) (*models.DetailResponse, error) {
	m.week = week
	return m.resp, m.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		svc    *mockService
		status int
	}{
		{"ok", &mockService{resp: &models.DetailResponse{Week: "week_42"}}, http.StatusOK},
		{"invalid week", &mockService{err: statistics.ErrInvalidWeek}, http.StatusBadRequest},
		{"not found", &mockService{err: statistics.ErrWeekNotFound}, http.StatusNotFound},
		{"internal", &mockService{err: statistics.ErrInternal}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.svc, nopLogger{})
			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/statistics/weeks/week_42/detail", nil),
				map[string]string{"week": "week_42"})
			rec := httptest.NewRecorder()

			h.Handle(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "week_42", tt.svc.week)
		})
	}
}
