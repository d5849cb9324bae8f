package occupancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

func TestEventsForPeriodQuery(t *testing.T) {
	from := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 13, 21, 0, 0, 0, time.UTC)

	query, args, err := eventsForPeriodQuery(domain.OccupancyEventsFilter{From: from, To: to}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, seat_id, occupied_at, vacated_at FROM occupancy_events "+
			"WHERE occupied_at < $1 AND (vacated_at IS NULL OR vacated_at > $2) "+
			"ORDER BY seat_id ASC, occupied_at ASC",
		query)
	// открытое событие попадает всегда, закрытое только если vacated_at строго после начала окна
	assert.Equal(t, []interface{}{to, from}, args)
}

func TestLastTransitionQuery(t *testing.T) {
	query, args, err := lastTransitionQuery("W1").ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT GREATEST((SELECT MAX(last_update) FROM seat_status WHERE seat_id = $1), "+
			"(SELECT MAX(GREATEST(occupied_at, vacated_at)) FROM occupancy_events WHERE seat_id = $2))",
		query)
	assert.Equal(t, []interface{}{"W1", "W1"}, args)
}
