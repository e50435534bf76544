package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/workout"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LogSet upserts the set at (session, exercise, setNumber), merging the
// supplied fields over any previously stored values and recomputing the
// derived volume, estimated 1RM, and PR flag. The PR comparison looks at
// the best prior estimate for the same user/exercise pair across all
// sessions, excluding the set being logged itself; repeating an identical
// log is therefore a no-op unless another set moved the maximum in between.
//
// The read-max-then-write sequence runs in one transaction, but the flag is
// still best-effort under concurrent logging of the same exercise: two
// interleaved logs can both read a stale maximum. Not linearizable.
func (db *DB) LogSet(ctx context.Context, sessionID, exerciseID uuid.UUID, setNumber int, in models.LogSetInput) (*models.SessionSet, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning log-set tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var sessionExerciseID uuid.UUID
	var userID int
	err = tx.QueryRow(ctx,
		`SELECT se.id, s.user_id
		 FROM session_exercises se
		 JOIN workout_sessions s ON s.id = se.session_id
		 WHERE se.session_id = $1 AND se.exercise_id = $2`,
		sessionID, exerciseID).Scan(&sessionExerciseID, &userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("locating session exercise: %w", err)
	}

	var prev *models.SessionSet
	var existing models.SessionSet
	err = tx.QueryRow(ctx,
		`SELECT id, set_number, actual_reps, actual_weight, actual_rpe, notes,
		        volume, estimated_1rm, is_pr, created_at, updated_at
		 FROM session_sets
		 WHERE session_exercise_id = $1 AND set_number = $2`,
		sessionExerciseID, setNumber).Scan(
		&existing.ID, &existing.SetNumber, &existing.ActualReps, &existing.ActualWeight,
		&existing.ActualRpe, &existing.Notes, &existing.Volume, &existing.Estimated1RM,
		&existing.IsPR, &existing.CreatedAt, &existing.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// first log of this set number
	case err != nil:
		return nil, fmt.Errorf("querying existing set: %w", err)
	default:
		prev = &existing
	}

	merged := workout.MergeSetInput(prev, in)

	var bestPrior *float64
	err = tx.QueryRow(ctx,
		`SELECT MAX(ss.estimated_1rm)
		 FROM session_sets ss
		 JOIN session_exercises se ON se.id = ss.session_exercise_id
		 JOIN workout_sessions s ON s.id = se.session_id
		 WHERE se.exercise_id = $1 AND s.user_id = $2
		   AND ss.estimated_1rm IS NOT NULL
		   AND NOT (ss.session_exercise_id = $3 AND ss.set_number = $4)`,
		exerciseID, userID, sessionExerciseID, setNumber).Scan(&bestPrior)
	if err != nil {
		return nil, fmt.Errorf("querying best prior 1RM: %w", err)
	}

	isPR := workout.IsPR(merged.Estimated1RM, bestPrior)

	var out models.SessionSet
	err = tx.QueryRow(ctx,
		`INSERT INTO session_sets (id, session_exercise_id, set_number,
		   actual_reps, actual_weight, actual_rpe, notes, volume, estimated_1rm, is_pr)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (session_exercise_id, set_number) DO UPDATE SET
		   actual_reps = EXCLUDED.actual_reps,
		   actual_weight = EXCLUDED.actual_weight,
		   actual_rpe = EXCLUDED.actual_rpe,
		   notes = EXCLUDED.notes,
		   volume = EXCLUDED.volume,
		   estimated_1rm = EXCLUDED.estimated_1rm,
		   is_pr = EXCLUDED.is_pr,
		   updated_at = NOW()
		 RETURNING id, set_number, actual_reps, actual_weight, actual_rpe, notes,
		   volume, estimated_1rm, is_pr, created_at, updated_at`,
		uuid.New(), sessionExerciseID, setNumber,
		merged.ActualReps, merged.ActualWeight, merged.ActualRpe, merged.Notes,
		merged.Volume, merged.Estimated1RM, isPR).Scan(
		&out.ID, &out.SetNumber, &out.ActualReps, &out.ActualWeight, &out.ActualRpe,
		&out.Notes, &out.Volume, &out.Estimated1RM, &out.IsPR, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upserting set: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing log-set: %w", err)
	}
	return &out, nil
}
