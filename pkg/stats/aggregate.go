package stats

import "math"

// AverageDivisor is the fixed number of days the weekly average is spread over,
// whether or not every day had a session.
const AverageDivisor = 7

// Session is the slice of a study session the calculators need.
type Session struct {
	Date    Day
	Minutes int
}

// Task is the slice of a daily task the calculators need.
type Task struct {
	Date      Day
	Completed bool
}

// Totals is the result of folding sessions over a window.
type Totals struct {
	TotalMinutes int `json:"total_minutes"`
	SessionCount int `json:"session_count"`
}

// Window selects calendar days. From is inclusive; To is inclusive when Bounded.
type Window struct {
	From    Day
	To      Day
	Bounded bool
}

// Today is the single-day window for today.
func Today(today Day) Window {
	return Window{From: today, To: today, Bounded: true}
}

// LastDays is the rolling window of the last n calendar days, today included.
// A session dated exactly n days ago falls outside it.
func LastDays(today Day, n int) Window {
	return Window{From: today.AddDays(-(n - 1))}
}

// LastMonths is the rolling window starting the day after today minus n months.
func LastMonths(today Day, n int) Window {
	return Window{From: today.AddMonths(-n).AddDays(1)}
}

// From is the open-ended window starting at d.
func From(d Day) Window {
	return Window{From: d}
}

func (w Window) Contains(d Day) bool {
	if d.Before(w.From) {
		return false
	}
	if w.Bounded && d.After(w.To) {
		return false
	}
	return true
}

// Aggregate sums the duration of every session inside the window.
func Aggregate(sessions []Session, w Window) Totals {
	var t Totals
	for _, s := range sessions {
		if !w.Contains(s.Date) {
			continue
		}
		t.TotalMinutes += s.Minutes
		t.SessionCount++
	}
	return t
}

// CountCompletedTasks counts completed tasks dated inside the window.
func CountCompletedTasks(tasks []Task, w Window) int {
	n := 0
	for _, t := range tasks {
		if t.Completed && w.Contains(t.Date) {
			n++
		}
	}
	return n
}

// AverageDaily spreads a weekly total over AverageDivisor days, rounded.
func AverageDaily(totalMinutes int) int {
	return int(math.Round(float64(totalMinutes) / AverageDivisor))
}
