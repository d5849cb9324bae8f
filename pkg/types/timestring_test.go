package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"09:00", false},
		{"21:00", false},
		{"24:00", false},
		{"9:00", true},
		{"25:00", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:45")

	next, err := ts.AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), next)

	end, err := TimeString("23:45").AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:15"))
	assert.False(t, TimeString("09:15").IsBefore("09:15"))
	assert.True(t, TimeString("21:00").IsAfter("09:00"))
	assert.Equal(t, 9*60, TimeString("09:00").Minutes())
}

func TestTimeString_On(t *testing.T) {
	day := time.Date(2025, 10, 13, 17, 30, 0, 0, time.UTC)

	got := TimeString("09:15").On(day)

	assert.Equal(t, time.Date(2025, 10, 13, 9, 15, 0, 0, time.UTC), got)
}

func TestTimeString_UnmarshalText(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.UnmarshalText([]byte("21:00")))
	assert.Equal(t, TimeString("21:00"), ts)

	assert.Error(t, ts.UnmarshalText([]byte("noon")))
}
