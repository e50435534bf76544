package importer

import (
	"strings"
	"testing"
	"time"
)

const sampleCSV = `date,exercise,set_number,reps,weight,rpe,notes
2026-03-02,Squat,1,5,140,8,
2026-03-02,Squat,2,5,140,8.5,grinder
2026-03-02,Bench Press,1,8,90,,
2026-03-01,Deadlift,1,3,180,9,
2026-03-02,Squat,3,5,140,,
`

// TestParseCSV verifies row parsing, including empty optional cells staying
// unset.
func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV error: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}

	first := rows[0]
	if first.Exercise != "Squat" || first.SetNumber != 1 {
		t.Errorf("first row = %+v", first)
	}
	if first.Reps == nil || *first.Reps != 5 {
		t.Errorf("reps = %v, want 5", first.Reps)
	}
	if first.Weight == nil || *first.Weight != 140 {
		t.Errorf("weight = %v, want 140", first.Weight)
	}
	if first.Rpe == nil || *first.Rpe != 8 {
		t.Errorf("rpe = %v, want 8", first.Rpe)
	}
	if !first.Date.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", first.Date)
	}

	bench := rows[2]
	if bench.Rpe != nil || bench.Weight == nil {
		t.Errorf("bench row optionals = %+v", bench)
	}
	if rows[1].Notes != "grinder" {
		t.Errorf("notes = %q, want %q", rows[1].Notes, "grinder")
	}
}

// TestParseCSVRejects verifies malformed input is refused with an error
// rather than silently skipped.
func TestParseCSVRejects(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"empty file", ""},
		{"wrong header", "when,what,n,reps,weight,rpe,notes\n"},
		{"bad date", "date,exercise,set_number,reps,weight,rpe,notes\n03/02/2026,Squat,1,5,140,8,\n"},
		{"zero set number", "date,exercise,set_number,reps,weight,rpe,notes\n2026-03-02,Squat,0,5,140,8,\n"},
		{"negative reps", "date,exercise,set_number,reps,weight,rpe,notes\n2026-03-02,Squat,1,-5,140,8,\n"},
		{"rpe out of range", "date,exercise,set_number,reps,weight,rpe,notes\n2026-03-02,Squat,1,5,140,11,\n"},
		{"empty exercise", "date,exercise,set_number,reps,weight,rpe,notes\n2026-03-02,,1,5,140,8,\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCSV(strings.NewReader(tt.csv)); err == nil {
				t.Error("ParseCSV accepted malformed input")
			}
		})
	}
}

// TestGroupSessions verifies rows bucket into one session per date, oldest
// first, with exercises in first-appearance order and sets sorted by number.
func TestGroupSessions(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV error: %v", err)
	}

	groups := GroupSessions(rows)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}

	if !groups[0].Date.Before(groups[1].Date) {
		t.Error("groups not in chronological order")
	}
	if len(groups[0].Exercises) != 1 || groups[0].Exercises[0].Name != "Deadlift" {
		t.Errorf("first group = %+v", groups[0].Exercises)
	}

	second := groups[1]
	if len(second.Exercises) != 2 {
		t.Fatalf("second group exercises = %d, want 2", len(second.Exercises))
	}
	if second.Exercises[0].Name != "Squat" || second.Exercises[1].Name != "Bench Press" {
		t.Errorf("exercise order = %q, %q", second.Exercises[0].Name, second.Exercises[1].Name)
	}

	squat := second.Exercises[0].Sets
	if len(squat) != 3 {
		t.Fatalf("squat sets = %d, want 3", len(squat))
	}
	for i, set := range squat {
		if set.SetNumber != i+1 {
			t.Errorf("squat set %d number = %d", i, set.SetNumber)
		}
	}
}
