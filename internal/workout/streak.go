package workout

import "time"

// CurrentStreak counts consecutive calendar days with at least one
// completed session, walking backward from the most recent one. Input is
// completion timestamps sorted descending. Multiple sessions on the same
// day count once; the walk stops at the first gap of more than one day.
func CurrentStreak(completedAt []time.Time) int {
	streak := 0
	var last time.Time

	for _, ts := range completedAt {
		day := truncateToDay(ts)

		if streak == 0 {
			last = day
			streak = 1
			continue
		}

		diff := int(last.Sub(day).Hours() / 24)
		switch {
		case diff == 1:
			streak++
			last = day
		case diff > 1:
			return streak
		}
		// diff == 0: another session on an already-counted day
	}
	return streak
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
