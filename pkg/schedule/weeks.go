package schedule

import "time"

// CurrentWeek reports which week of a rotating schedule the reference
// date falls in, 1-based and always within [1, scheduleWeeks]. A schedule
// that has not started yet has no current week, so nil comes back for a
// future start date. For a one-week rotation the answer is always 1 once
// the schedule is under way.
//
// Weeks turn over on Mondays: the rotation is anchored to the Monday on
// or before the start date, and whole days elapsed since that Monday are
// taken modulo the rotation length.
func CurrentWeek(startDate time.Time, scheduleWeeks int, now time.Time) *int {
	if scheduleWeeks < 1 {
		scheduleWeeks = 1
	}

	today := truncateToDay(now)
	start := truncateToDay(startDate)
	if start.After(today) {
		return nil
	}

	anchor := start.AddDate(0, 0, -isoWeekday(start))
	elapsed := int(today.Sub(anchor).Hours() / 24)
	week := elapsed%(7*scheduleWeeks)/7 + 1
	return &week
}

// isoWeekday is the Monday-first weekday index, Monday=0 .. Sunday=6.
// time.Weekday counts from Sunday, so Sunday folds to the end of the week
// here rather than the start.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// truncateToDay drops the time-of-day component. Dates are compared in
// UTC so a day is exactly 24 hours and the elapsed-days division is safe
// across DST transitions.
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
