package clock

import "time"

// DayStart returns local midnight of the day containing now.
func DayStart(now time.Time, tz *time.Location) time.Time {
	local := now.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)
}

// PrevDayStart returns local midnight of the day before the one containing now.
func PrevDayStart(now time.Time, tz *time.Location) time.Time {
	// AddDate handles DST correctly, Add(-24h) does not
	return DayStart(now, tz).AddDate(0, 0, -1)
}

// DateIn returns midnight in tz of t's calendar date as read in t's own
// location. DATE columns come back as UTC midnight; this maps them onto tz.
func DateIn(t time.Time, tz *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, tz)
}

// ParseDate parses a YYYY-MM-DD day in tz.
func ParseDate(s string, tz *time.Location) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, tz)
}
