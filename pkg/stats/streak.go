package stats

import "sort"

// CurrentStreak returns the length of the run of consecutive study days ending
// at the most recent session. Several sessions on one day count once.
func CurrentStreak(sessions []Session) int {
	days := distinctDaysDesc(sessions)
	if len(days) == 0 {
		return 0
	}

	streak := 1
	prev := days[0]
	for _, d := range days[1:] {
		if d.DaysUntil(prev) > 1 {
			break
		}
		streak++
		prev = d
	}
	return streak
}

func distinctDaysDesc(sessions []Session) []Day {
	seen := make(map[Day]struct{}, len(sessions))
	days := make([]Day, 0, len(sessions))
	for _, s := range sessions {
		if s.Date.IsZero() {
			continue
		}
		if _, ok := seen[s.Date]; ok {
			continue
		}
		seen[s.Date] = struct{}{}
		days = append(days, s.Date)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}
