package workout

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	base := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

// TestCurrentStreak verifies consecutive-day counting: gaps break the walk,
// same-day repeats count once, and an empty history is a zero streak.
func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name        string
		completedAt []time.Time
		want        int
	}{
		{"no history", nil, 0},
		{"single session", []time.Time{day(0)}, 1},
		{"three consecutive days", []time.Time{day(0), day(-1), day(-2)}, 3},
		{"gap after two days", []time.Time{day(0), day(-1), day(-3)}, 2},
		{"gap immediately", []time.Time{day(0), day(-2), day(-3)}, 1},
		{"two sessions same day", []time.Time{day(0), day(0)}, 1},
		{"double day inside a run", []time.Time{day(0), day(-1), day(-1), day(-2)}, 3},
		{"everything after a gap is ignored", []time.Time{day(0), day(-1), day(-5), day(-6)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.completedAt); got != tt.want {
				t.Errorf("CurrentStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestCurrentStreakCrossesMidnight verifies the walk compares calendar days,
// not 24-hour windows: a late session followed by an early one the day
// before still counts as consecutive.
func TestCurrentStreakCrossesMidnight(t *testing.T) {
	late := time.Date(2026, 3, 15, 23, 50, 0, 0, time.UTC)
	early := time.Date(2026, 3, 14, 0, 10, 0, 0, time.UTC)

	if got := CurrentStreak([]time.Time{late, early}); got != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got)
	}
}
