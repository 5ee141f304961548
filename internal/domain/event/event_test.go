package event_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonog/arcraiders-go/internal/domain/event"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
)

// noon UTC on a fixed day keeps the window math deterministic
func noonClock() *shared.MockClock {
	return shared.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
}

func TestWindow_Upcoming_WithinTwoHours(t *testing.T) {
	clock := noonClock()

	assert.True(t, event.Window{Start: "12:30", End: "13:00"}.Upcoming(clock))
	assert.True(t, event.Window{Start: "14:30", End: "15:00"}.Upcoming(clock))
}

func TestWindow_Upcoming_TooFarAhead(t *testing.T) {
	clock := noonClock()

	assert.False(t, event.Window{Start: "15:01", End: "16:00"}.Upcoming(clock))
	assert.False(t, event.Window{Start: "20:00", End: "21:00"}.Upcoming(clock))
}

func TestWindow_Upcoming_PastStartRollsToTomorrow(t *testing.T) {
	// A start earlier today is more than two hours away once it rolls over
	clock := noonClock()

	assert.False(t, event.Window{Start: "11:00", End: "11:30"}.Upcoming(clock))
}

func TestWindow_Upcoming_MalformedTime(t *testing.T) {
	clock := noonClock()

	assert.False(t, event.Window{Start: "25:99", End: "13:00"}.Upcoming(clock))
	assert.False(t, event.Window{Start: "soon", End: "later"}.Upcoming(clock))
}

func TestWindow_NextOccurrence_Tomorrow(t *testing.T) {
	clock := noonClock()

	next, ok := event.Window{Start: "08:00", End: "09:00"}.NextOccurrence(clock)

	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), next)
}

func TestWindow_NextOccurrence_Today(t *testing.T) {
	clock := noonClock()

	next, ok := event.Window{Start: "18:00", End: "19:00"}.NextOccurrence(clock)

	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC), next)
}

func TestWindow_Local_ConvertsTimezone(t *testing.T) {
	clock := noonClock()
	loc := time.FixedZone("UTC+2", 2*3600)

	start, end := event.Window{Start: "22:00", End: "23:30"}.Local(clock, loc)

	assert.Equal(t, "00:00", start)
	assert.Equal(t, "01:30", end)
}

func TestWindow_Local_MalformedFallsBackToRaw(t *testing.T) {
	clock := noonClock()

	start, end := event.Window{Start: "dawn", End: "dusk"}.Local(clock, time.UTC)

	assert.Equal(t, "dawn", start)
	assert.Equal(t, "dusk", end)
}

func TestWindow_MidnightWrap(t *testing.T) {
	// End before start is a window wrapping past midnight; both bounds must
	// still render and the start must still schedule
	clock := noonClock()

	start, end := event.Window{Start: "23:00", End: "00:30"}.Local(clock, time.UTC)
	assert.Equal(t, "23:00", start)
	assert.Equal(t, "00:30", end)

	next, ok := event.Window{Start: "23:00", End: "00:30"}.NextOccurrence(clock)
	require.True(t, ok)
	assert.Equal(t, 23, next.Hour())
}

func TestNewEventID(t *testing.T) {
	assert.Equal(t, "dam_battlegrounds_electromagnetic_storm",
		event.NewEventID("Dam Battlegrounds", "Electromagnetic Storm"))
}

func TestMapEvent_UpcomingWindow(t *testing.T) {
	clock := noonClock()
	e := &event.MapEvent{
		ID:   "spaceport_harvester",
		Name: "Harvester",
		Map:  "Spaceport",
		Times: []event.Window{
			{Start: "06:00", End: "07:00"},
			{Start: "13:00", End: "14:00"},
		},
	}

	window, ok := e.UpcomingWindow(clock)

	require.True(t, ok)
	assert.Equal(t, "13:00", window.Start)
}
