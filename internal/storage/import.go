package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FindExerciseByName resolves a catalog entry by case-insensitive name,
// restricted to what the user can see. Used by the bulk importer to map
// free-text exercise names onto catalog rows.
func (db *DB) FindExerciseByName(ctx context.Context, userID int, name string) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+`
		 FROM exercises
		 WHERE lower(name) = lower($1)
		   AND ((is_global AND is_approved) OR created_by = $2)
		 ORDER BY is_global DESC
		 LIMIT 1`, name, userID)

	var e models.Exercise
	err := scanExercise(row, &e)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise by name: %w", err)
	}
	return &e, nil
}

// BestEstimated1RM returns the user's highest stored estimated 1RM for an
// exercise across all sessions, or nil when no set has one.
func (db *DB) BestEstimated1RM(ctx context.Context, userID int, exerciseID uuid.UUID) (*float64, error) {
	var best *float64
	err := db.Pool.QueryRow(ctx,
		`SELECT MAX(ss.estimated_1rm)
		 FROM session_sets ss
		 JOIN session_exercises se ON se.id = ss.session_exercise_id
		 JOIN workout_sessions s ON s.id = se.session_id
		 WHERE se.exercise_id = $1 AND s.user_id = $2 AND ss.estimated_1rm IS NOT NULL`,
		exerciseID, userID).Scan(&best)
	if err != nil {
		return nil, fmt.Errorf("querying best 1rm: %w", err)
	}
	return best, nil
}

// InsertCompletedSession writes a fully materialized historical session in
// one transaction: timestamps, duration and per-set derived metrics come in
// precomputed rather than being stamped at insert time.
func (db *DB) InsertCompletedSession(ctx context.Context, s *models.Session) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning import tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO workout_sessions (id, user_id, template_id, started_at, completed_at,
		 duration_sec, is_completed, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)`,
		s.ID, s.UserID, s.TemplateID, s.StartedAt, s.CompletedAt, s.DurationSec, s.Notes)
	if err != nil {
		return fmt.Errorf("inserting imported session: %w", err)
	}

	for _, ex := range s.Exercises {
		_, err = tx.Exec(ctx,
			`INSERT INTO session_exercises (id, session_id, exercise_id, position, notes)
			 VALUES ($1, $2, $3, $4, $5)`,
			ex.ID, s.ID, ex.ExerciseID, ex.Order, ex.Notes)
		if err != nil {
			return fmt.Errorf("inserting imported exercise: %w", err)
		}
		for _, set := range ex.Sets {
			_, err = tx.Exec(ctx,
				`INSERT INTO session_sets (id, session_exercise_id, set_number,
				 actual_reps, actual_weight, actual_rpe, notes, volume, estimated_1rm, is_pr)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				set.ID, ex.ID, set.SetNumber,
				set.ActualReps, set.ActualWeight, set.ActualRpe, set.Notes,
				set.Volume, set.Estimated1RM, set.IsPR)
			if err != nil {
				return fmt.Errorf("inserting imported set: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}
