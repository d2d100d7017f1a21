// Package schedule derives the calendar-day window offered by the day
// picker and provides day-granularity comparisons.
package schedule

import "time"

// Lookback is how many days before the anchor the window starts, giving
// the picker a short look at the recent past.
const Lookback = 3

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Window returns Lookback+size consecutive days starting Lookback days
// before anchor, each truncated to midnight, in strictly increasing
// order. A non-positive size leaves only the lookback portion.
func Window(anchor time.Time, size int) []time.Time {
	if size < 0 {
		size = 0
	}
	start := StartOfDay(anchor).AddDate(0, 0, -Lookback)
	days := make([]time.Time, 0, Lookback+size)
	for i := 0; i < Lookback+size; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}
