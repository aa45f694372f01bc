package stats

import "time"

type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Countdown splits target-now into days, hours, minutes and seconds.
// A target at or before now yields all zeros.
func Countdown(target, now time.Time) Remaining {
	diff := target.Sub(now)
	if diff <= 0 {
		return Remaining{}
	}

	const day = 24 * time.Hour
	r := Remaining{Days: int(diff / day)}
	diff %= day
	r.Hours = int(diff / time.Hour)
	diff %= time.Hour
	r.Minutes = int(diff / time.Minute)
	diff %= time.Minute
	r.Seconds = int(diff / time.Second)
	return r
}

// MonthsLeft counts the calendar months from now's month through the target's
// month, both included. It is never below one so that plans can always be spread over it.
func MonthsLeft(now, target Day) int {
	if !target.After(now) {
		return 1
	}
	months := (target.year-now.year)*12 + int(target.month-now.month) + 1
	if months < 1 {
		return 1
	}
	return months
}

// MonthLabels returns the short month names from now's month up to and including the target's month.
func MonthLabels(now, target Day) []string {
	n := MonthsLeft(now, target)
	labels := make([]string, 0, n)
	first := NewDay(now.year, now.month, 1)
	for i := 0; i < n; i++ {
		labels = append(labels, first.AddMonths(i).month.String()[:3])
	}
	return labels
}

// PerMonth spreads remaining chapters over the months left, rounding up.
func PerMonth(remaining, monthsLeft int) int {
	if remaining <= 0 {
		return 0
	}
	if monthsLeft <= 0 {
		monthsLeft = 1
	}
	return (remaining + monthsLeft - 1) / monthsLeft
}
