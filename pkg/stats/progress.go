package stats

import "math"

// Chapter is the slice of a chapter the progress calculator needs.
type Chapter struct {
	Completed bool
}

type ProgressResult struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// Progress counts completed chapters against the subject's declared total.
// Percent is 0 when total is not positive and never exceeds 100.
func Progress(chapters []Chapter, total int) ProgressResult {
	completed := 0
	for _, c := range chapters {
		if c.Completed {
			completed++
		}
	}

	res := ProgressResult{Completed: completed, Total: total}
	if total <= 0 {
		return res
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct > 100 {
		pct = 100
	}
	res.Percent = pct
	return res
}

// Remaining is the number of chapters still to complete, never negative.
func (p ProgressResult) Remaining() int {
	if p.Completed >= p.Total {
		return 0
	}
	return p.Total - p.Completed
}
