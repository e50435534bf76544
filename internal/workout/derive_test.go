package workout

import (
	"math"
	"testing"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// TestVolume verifies reps*weight derivation, including the null rule:
// either input missing means no volume.
func TestVolume(t *testing.T) {
	tests := []struct {
		name   string
		reps   *int
		weight *float64
		want   *float64
	}{
		{"both present", intPtr(9), floatPtr(125), floatPtr(1125)},
		{"zero reps", intPtr(0), floatPtr(100), floatPtr(0)},
		{"bodyweight zero load", intPtr(12), floatPtr(0), floatPtr(0)},
		{"missing reps", nil, floatPtr(100), nil},
		{"missing weight", intPtr(5), nil, nil},
		{"both missing", nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Volume(tt.reps, tt.weight)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Volume = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Volume = %v, want %v", *got, *tt.want)
			}
		})
	}
}

// TestEstimated1RM verifies the Epley estimate weight*(1+reps/30) is stored
// unrounded.
func TestEstimated1RM(t *testing.T) {
	tests := []struct {
		name   string
		reps   *int
		weight *float64
		want   *float64
	}{
		{"five reps", intPtr(5), floatPtr(225), floatPtr(262.5)},
		{"one rep is the lift itself plus a thirtieth", intPtr(1), floatPtr(100), floatPtr(100 * 31.0 / 30.0)},
		{"zero reps degenerates to the weight", intPtr(0), floatPtr(80), floatPtr(80)},
		{"missing reps", nil, floatPtr(225), nil},
		{"missing weight", intPtr(5), nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimated1RM(tt.reps, tt.weight)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Estimated1RM = %v, want %v", got, tt.want)
			}
			if got != nil && math.Abs(*got-*tt.want) > 1e-9 {
				t.Errorf("Estimated1RM = %v, want %v", *got, *tt.want)
			}
		})
	}
}

// TestEstimated1RMUnrounded pins the eight-rep case to its full precision
// value rather than a display-rounded one.
func TestEstimated1RMUnrounded(t *testing.T) {
	got := Estimated1RM(intPtr(8), floatPtr(217.5))
	want := 217.5 * (1 + 8.0/30.0)
	if got == nil || math.Abs(*got-want) > 1e-9 {
		t.Fatalf("Estimated1RM(8, 217.5) = %v, want %v", got, want)
	}
}

// TestIsPR verifies PR decisions: first estimate is always a PR, later ones
// only on a strict improvement, and a set without an estimate never is.
func TestIsPR(t *testing.T) {
	tests := []struct {
		name      string
		estimate  *float64
		bestPrior *float64
		want      bool
	}{
		{"first ever estimate", floatPtr(200), nil, true},
		{"beats prior best", floatPtr(262.5), floatPtr(260), true},
		{"ties prior best", floatPtr(260), floatPtr(260), false},
		{"below prior best", floatPtr(250), floatPtr(260), false},
		{"no estimate", nil, floatPtr(260), false},
		{"no estimate and no prior", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPR(tt.estimate, tt.bestPrior); got != tt.want {
				t.Errorf("IsPR = %v, want %v", got, tt.want)
			}
		})
	}
}
