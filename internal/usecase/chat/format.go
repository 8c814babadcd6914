package chat

import "time"

// FormatRelativeTime renders a timestamp the way chat lists show it:
// today as a clock time, yesterday by name, the rest of the last week
// by weekday, anything older as a short date.
func FormatRelativeTime(t, now time.Time) string {
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	startOfDay := func(v time.Time) time.Time {
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, v.Location())
	}
	diffDays := int(startOfDay(now).Sub(startOfDay(t)).Hours() / 24)
	switch {
	case diffDays == 1:
		return "yesterday"
	case diffDays < 7:
		return t.Weekday().String()
	default:
		return t.Format("02/01/06")
	}
}
