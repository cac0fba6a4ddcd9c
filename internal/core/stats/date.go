package stats

import "time"

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// currentWindow returns the trailing 30-day window ending at now.
func currentWindow(now time.Time) Window {
	return Window{Start: now.AddDate(0, 0, -30), End: now}
}

// previousWindow returns the 30-day window immediately preceding currentWindow.
func previousWindow(now time.Time) Window {
	return Window{Start: now.AddDate(0, 0, -60), End: now.AddDate(0, 0, -30)}
}

// startOfMonth truncates t to the first instant of its calendar month.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// trailingMonthsStart returns the first instant of the month n-1 months
// before now's month, so the span covers n calendar months inclusive.
func trailingMonthsStart(now time.Time, n int) time.Time {
	return startOfMonth(now).AddDate(0, -(n - 1), 0)
}

// monthKey formats a month bucket label, e.g. "Jan 2025".
func monthKey(t time.Time) string {
	return t.Format("Jan 2006")
}
