package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
)

const clockLayout = "15:04"

// Window is a recurring daily time window stored as UTC "HH:mm" strings with
// no date component. Windows may wrap past midnight ("23:00"-"00:30").
type Window struct {
	Start string
	End   string
}

// Local converts the stored UTC times to the given location for display.
// Any parse failure falls back to the raw stored strings.
func (w Window) Local(clock shared.Clock, loc *time.Location) (string, string) {
	start, err := w.occurrenceToday(clock, w.Start)
	if err != nil {
		return w.Start, w.End
	}
	end, err := w.occurrenceToday(clock, w.End)
	if err != nil {
		return w.Start, w.End
	}
	return start.In(loc).Format(clockLayout), end.In(loc).Format(clockLayout)
}

// FormatDisplay renders the window as "HH:mm - HH:mm" in the given location
func (w Window) FormatDisplay(clock shared.Clock, loc *time.Location) string {
	start, end := w.Local(clock, loc)
	return fmt.Sprintf("%s - %s", start, end)
}

// NextOccurrence returns the next future start of the window: today's
// occurrence if it is still ahead, otherwise tomorrow's. The second return is
// false when the stored start time does not parse.
func (w Window) NextOccurrence(clock shared.Clock) (time.Time, bool) {
	today, err := w.occurrenceToday(clock, w.Start)
	if err != nil {
		return time.Time{}, false
	}
	if today.After(clock.Now()) {
		return today, true
	}
	return today.AddDate(0, 0, 1), true
}

// Upcoming reports whether the window starts within the next two hours.
// Parse failures report false.
func (w Window) Upcoming(clock shared.Clock) bool {
	next, ok := w.NextOccurrence(clock)
	if !ok {
		return false
	}
	hours := int(next.Sub(clock.Now()).Hours())
	return hours >= 0 && hours <= 2
}

// occurrenceToday combines the stored HH:mm with today's date in UTC
func (w Window) occurrenceToday(clock shared.Clock, value string) (time.Time, error) {
	parsed, err := time.Parse(clockLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	now := clock.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.UTC), nil
}

// MapEvent is a recurring in-game event on one of the maps
type MapEvent struct {
	ID          string
	Name        string
	Map         string
	IconURL     string
	Description string
	Times       []Window
}

// NewEventID derives a stable identifier from map and event name, since the
// event-timer API carries no IDs of its own
func NewEventID(mapName, eventName string) string {
	return strings.ToLower(strings.ReplaceAll(mapName+"_"+eventName, " ", "_"))
}

// UpcomingWindow returns the first window starting within the next two hours,
// if any
func (e *MapEvent) UpcomingWindow(clock shared.Clock) (Window, bool) {
	for _, w := range e.Times {
		if w.Upcoming(clock) {
			return w, true
		}
	}
	return Window{}, false
}
