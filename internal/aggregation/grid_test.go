package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func TestBuildGrid_Default(t *testing.T) {
	grid, err := BuildGrid(monday, domain.DefaultGridConfig())
	require.NoError(t, err)

	require.Len(t, grid, 48)
	assert.Equal(t, time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC), grid[0].Start)
	assert.Equal(t, time.Date(2025, 10, 13, 9, 15, 0, 0, time.UTC), grid[0].End)
	assert.Equal(t, time.Date(2025, 10, 13, 21, 0, 0, 0, time.UTC), grid[47].End)

	for i := 1; i < len(grid); i++ {
		assert.Equal(t, i, grid[i].Index)
		assert.Equal(t, grid[i-1].End, grid[i].Start, "intervals must be contiguous")
	}
}

func TestBuildGrid_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.GridConfig
	}{
		{"not a multiple", domain.GridConfig{OpenTime: "09:00", CloseTime: "21:10", GranularityMinutes: 15}},
		{"close before open", domain.GridConfig{OpenTime: "21:00", CloseTime: "09:00", GranularityMinutes: 15}},
		{"empty window", domain.GridConfig{OpenTime: "09:00", CloseTime: "09:00", GranularityMinutes: 15}},
		{"zero granularity", domain.GridConfig{OpenTime: "09:00", CloseTime: "21:00", GranularityMinutes: 0}},
		{"bad time", domain.GridConfig{OpenTime: "nine", CloseTime: "21:00", GranularityMinutes: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := BuildGrid(monday, tt.cfg)
			assert.ErrorIs(t, err, ErrConfig)
			assert.Nil(t, grid)
		})
	}
}

func TestBuildGrid_CustomGranularity(t *testing.T) {
	grid, err := BuildGrid(monday, domain.GridConfig{OpenTime: "10:00", CloseTime: "12:00", GranularityMinutes: 30})
	require.NoError(t, err)

	require.Len(t, grid, 4)
	assert.Equal(t, "11:30-12:00", grid[3].Label())

	count, err := IntervalCount(domain.GridConfig{OpenTime: "10:00", CloseTime: "12:00", GranularityMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
