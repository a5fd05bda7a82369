package metro

import "time"

// DateOf truncates t to its calendar day. Ledger and pass dates are always
// kept in this form so they can be compared and used as map keys.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonth returns the same day one month later, clamped to the last day of
// the target month (Jan 31 -> Feb 28).
func AddMonth(date time.Time) time.Time {
	date = DateOf(date)
	y, m, d := date.Date()
	firstOfTarget := time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, time.UTC)
}
