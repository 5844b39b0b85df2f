package service

import "time"

// Storage layouts for event and session date/time strings.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Clock supplies the current time. Injected so scheduler and filter
// logic can be tested against fixed instants.
type Clock func() time.Time

// midnight truncates t to the start of its day in its own location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parseEventDate interprets a stored "2006-01-02" string in loc. The
// ok result is false for unparseable values.
func parseEventDate(raw string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// daysUntil is the whole-day difference between the event date and now,
// both midnight-normalized. Time of day never influences the result.
func daysUntil(eventDate string, now time.Time) (int, bool) {
	date, ok := parseEventDate(eventDate, now.Location())
	if !ok {
		return 0, false
	}
	diff := midnight(date).Sub(midnight(now))
	return int(diff.Hours() / 24), true
}
