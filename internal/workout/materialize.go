package workout

import "github.com/claude/ironlog/internal/models"

// BuildSessionExercises produces the exercise/set rows a new session starts
// with. Explicit exercises win over a template; with neither the session
// starts empty. Template sets become placeholders carrying only their set
// number, while explicit sets seed actual values (and their derived volume
// and 1RM) directly. PR flags are not assigned here: a seeded set only
// gains PR status when it is logged through the usual path.
func BuildSessionExercises(tmpl *models.Template, explicit []models.StartExerciseInput) []models.SessionExercise {
	if explicit != nil {
		out := make([]models.SessionExercise, 0, len(explicit))
		for i, ex := range explicit {
			se := models.SessionExercise{
				ExerciseID: ex.ExerciseID,
				Order:      i,
				Notes:      ex.Notes,
			}
			for j, set := range ex.Sets {
				se.Sets = append(se.Sets, models.SessionSet{
					SetNumber:    j + 1,
					ActualReps:   set.ActualReps,
					ActualWeight: set.ActualWeight,
					ActualRpe:    set.ActualRpe,
					Notes:        set.Notes,
					Volume:       Volume(set.ActualReps, set.ActualWeight),
					Estimated1RM: Estimated1RM(set.ActualReps, set.ActualWeight),
				})
			}
			out = append(out, se)
		}
		return out
	}

	if tmpl != nil {
		out := make([]models.SessionExercise, 0, len(tmpl.Exercises))
		for _, ex := range tmpl.Exercises {
			se := models.SessionExercise{
				ExerciseID: ex.ExerciseID,
				Order:      ex.Order,
				Notes:      ex.Notes,
			}
			for _, set := range ex.Sets {
				se.Sets = append(se.Sets, models.SessionSet{SetNumber: set.SetNumber})
			}
			out = append(out, se)
		}
		return out
	}

	return nil
}

// MergeSetInput overlays the supplied fields of a log-set payload onto the
// previously stored values and recomputes the derived metrics. prev is nil
// on first log of a set number.
func MergeSetInput(prev *models.SessionSet, in models.LogSetInput) models.SessionSet {
	var merged models.SessionSet
	if prev != nil {
		merged = *prev
	}
	if in.ActualReps != nil {
		merged.ActualReps = in.ActualReps
	}
	if in.ActualWeight != nil {
		merged.ActualWeight = in.ActualWeight
	}
	if in.ActualRpe != nil {
		merged.ActualRpe = in.ActualRpe
	}
	if in.Notes != nil {
		merged.Notes = *in.Notes
	}
	merged.Volume = Volume(merged.ActualReps, merged.ActualWeight)
	merged.Estimated1RM = Estimated1RM(merged.ActualReps, merged.ActualWeight)
	return merged
}
