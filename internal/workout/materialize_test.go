package workout

import (
	"testing"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// TestBuildSessionExercisesFromTemplate verifies template materialization:
// planned sets become placeholders carrying only their set number, with no
// actuals and no derived metrics.
func TestBuildSessionExercisesFromTemplate(t *testing.T) {
	benchID := uuid.New()
	tmpl := &models.Template{
		Exercises: []models.TemplateExercise{
			{
				ExerciseID: benchID,
				Order:      0,
				Notes:      "pause reps",
				Sets: []models.TemplateSet{
					{SetNumber: 1, TargetReps: intPtr(5), TargetWeight: floatPtr(100)},
					{SetNumber: 2, TargetReps: intPtr(5), TargetWeight: floatPtr(100)},
					{SetNumber: 3, TargetReps: intPtr(3), TargetWeight: floatPtr(110)},
				},
			},
		},
	}

	got := BuildSessionExercises(tmpl, nil)
	if len(got) != 1 {
		t.Fatalf("exercises = %d, want 1", len(got))
	}
	ex := got[0]
	if ex.ExerciseID != benchID {
		t.Errorf("exerciseID = %v, want %v", ex.ExerciseID, benchID)
	}
	if ex.Notes != "pause reps" {
		t.Errorf("notes = %q, want %q", ex.Notes, "pause reps")
	}
	if len(ex.Sets) != 3 {
		t.Fatalf("sets = %d, want 3", len(ex.Sets))
	}
	for i, set := range ex.Sets {
		if set.SetNumber != i+1 {
			t.Errorf("set %d number = %d, want %d", i, set.SetNumber, i+1)
		}
		if set.ActualReps != nil || set.ActualWeight != nil || set.Volume != nil || set.Estimated1RM != nil {
			t.Errorf("set %d carries actuals or derived values, want bare placeholder", i)
		}
	}
}

// TestBuildSessionExercisesExplicitWins verifies an explicit exercise list
// takes precedence over a template reference, and that seeded sets get
// their derived volume and 1RM but no PR flag.
func TestBuildSessionExercisesExplicitWins(t *testing.T) {
	squatID := uuid.New()
	tmpl := &models.Template{
		Exercises: []models.TemplateExercise{{ExerciseID: uuid.New(), Sets: []models.TemplateSet{{SetNumber: 1}}}},
	}
	explicit := []models.StartExerciseInput{
		{
			ExerciseID: squatID,
			Sets: []models.StartSetInput{
				{ActualReps: intPtr(9), ActualWeight: floatPtr(125)},
				{ActualReps: intPtr(5)},
			},
		},
	}

	got := BuildSessionExercises(tmpl, explicit)
	if len(got) != 1 || got[0].ExerciseID != squatID {
		t.Fatalf("explicit exercises did not take precedence: %+v", got)
	}

	sets := got[0].Sets
	if len(sets) != 2 {
		t.Fatalf("sets = %d, want 2", len(sets))
	}
	if sets[0].SetNumber != 1 || sets[1].SetNumber != 2 {
		t.Errorf("set numbers = %d,%d, want 1,2", sets[0].SetNumber, sets[1].SetNumber)
	}
	if sets[0].Volume == nil || *sets[0].Volume != 1125 {
		t.Errorf("volume = %v, want 1125", sets[0].Volume)
	}
	if sets[0].Estimated1RM == nil || *sets[0].Estimated1RM != 125*(1+9.0/30) {
		t.Errorf("estimated1RM = %v, want %v", sets[0].Estimated1RM, 125*(1+9.0/30))
	}
	if sets[0].IsPR {
		t.Error("seeded set flagged as PR at materialization time")
	}
	if sets[1].Volume != nil || sets[1].Estimated1RM != nil {
		t.Errorf("weightless set has derived values: %+v", sets[1])
	}
}

// TestBuildSessionExercisesEmpty verifies a session with neither template
// nor explicit exercises starts with none.
func TestBuildSessionExercisesEmpty(t *testing.T) {
	if got := BuildSessionExercises(nil, nil); len(got) != 0 {
		t.Errorf("exercises = %d, want 0", len(got))
	}
}

// TestMergeSetInputFirstLog verifies first-time logging of a set number
// starts from zero values.
func TestMergeSetInputFirstLog(t *testing.T) {
	merged := MergeSetInput(nil, models.LogSetInput{
		ActualReps:   intPtr(8),
		ActualWeight: floatPtr(80),
	})

	if merged.ActualReps == nil || *merged.ActualReps != 8 {
		t.Errorf("reps = %v, want 8", merged.ActualReps)
	}
	if merged.Volume == nil || *merged.Volume != 640 {
		t.Errorf("volume = %v, want 640", merged.Volume)
	}
	if merged.ActualRpe != nil || merged.Notes != "" {
		t.Errorf("unset fields populated: %+v", merged)
	}
}

// TestMergeSetInputPartialUpdate verifies re-logging merges supplied fields
// over stored ones and recomputes derived metrics from the merged state.
func TestMergeSetInputPartialUpdate(t *testing.T) {
	prev := &models.SessionSet{
		SetNumber:    2,
		ActualReps:   intPtr(5),
		ActualWeight: floatPtr(100),
		ActualRpe:    floatPtr(8),
		Notes:        "felt heavy",
		Volume:       floatPtr(500),
		Estimated1RM: floatPtr(100 * (1 + 5.0/30)),
	}

	merged := MergeSetInput(prev, models.LogSetInput{ActualWeight: floatPtr(105)})

	if merged.ActualReps == nil || *merged.ActualReps != 5 {
		t.Errorf("reps = %v, want preserved 5", merged.ActualReps)
	}
	if merged.ActualWeight == nil || *merged.ActualWeight != 105 {
		t.Errorf("weight = %v, want 105", merged.ActualWeight)
	}
	if merged.Notes != "felt heavy" {
		t.Errorf("notes = %q, want preserved", merged.Notes)
	}
	if merged.Volume == nil || *merged.Volume != 525 {
		t.Errorf("volume = %v, want recomputed 525", merged.Volume)
	}
	if merged.Estimated1RM == nil || *merged.Estimated1RM != 105*(1+5.0/30) {
		t.Errorf("estimated1RM = %v, want recomputed", merged.Estimated1RM)
	}
}

// TestMergeSetInputClearsDerivedWhenIncomplete verifies that a merge ending
// with a missing input drops the derived metrics rather than keeping stale
// ones.
func TestMergeSetInputClearsDerivedWhenIncomplete(t *testing.T) {
	prev := &models.SessionSet{ActualReps: intPtr(5), Volume: floatPtr(500)}

	merged := MergeSetInput(prev, models.LogSetInput{ActualRpe: floatPtr(9)})

	if merged.Volume != nil || merged.Estimated1RM != nil {
		t.Errorf("derived values present without weight: %+v", merged)
	}
}

// TestMergeSetInputNotes verifies notes merge by pointer presence: absent
// leaves the stored note, present (even empty) replaces it.
func TestMergeSetInputNotes(t *testing.T) {
	prev := &models.SessionSet{Notes: "old"}

	if got := MergeSetInput(prev, models.LogSetInput{}); got.Notes != "old" {
		t.Errorf("notes = %q, want %q", got.Notes, "old")
	}

	empty := ""
	if got := MergeSetInput(prev, models.LogSetInput{Notes: &empty}); got.Notes != "" {
		t.Errorf("notes = %q, want cleared", got.Notes)
	}
}
