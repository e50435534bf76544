package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/workout"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StartSession creates a session in the active state. A template reference
// materializes its planned sets into empty placeholders; an explicit
// exercise list seeds actual sets directly. With neither the session starts
// with zero exercises. The whole tree is created in one transaction.
func (db *DB) StartSession(ctx context.Context, userID int, in models.StartSessionInput) (*models.Session, error) {
	var tmpl *models.Template
	if in.TemplateID != nil {
		t, err := db.getTemplate(ctx, *in.TemplateID)
		if err != nil {
			return nil, err
		}
		tmpl = t
	}

	exercises := workout.BuildSessionExercises(tmpl, in.Exercises)

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning session tx: %w", err)
	}
	defer tx.Rollback(ctx)

	sessionID := uuid.New()
	_, err = tx.Exec(ctx,
		`INSERT INTO workout_sessions (id, user_id, template_id) VALUES ($1, $2, $3)`,
		sessionID, userID, in.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}

	for _, ex := range exercises {
		exID := uuid.New()
		_, err = tx.Exec(ctx,
			`INSERT INTO session_exercises (id, session_id, exercise_id, position, notes)
			 VALUES ($1, $2, $3, $4, $5)`,
			exID, sessionID, ex.ExerciseID, ex.Order, ex.Notes)
		if err != nil {
			return nil, fmt.Errorf("inserting session exercise: %w", err)
		}
		for _, set := range ex.Sets {
			_, err = tx.Exec(ctx,
				`INSERT INTO session_sets (id, session_exercise_id, set_number,
				 actual_reps, actual_weight, actual_rpe, notes, volume, estimated_1rm)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				uuid.New(), exID, set.SetNumber,
				set.ActualReps, set.ActualWeight, set.ActualRpe, set.Notes,
				set.Volume, set.Estimated1RM)
			if err != nil {
				return nil, fmt.Errorf("inserting session set: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing session: %w", err)
	}

	return db.GetSession(ctx, sessionID, userID)
}

// GetSession retrieves a session with its exercises and sets. A session
// owned by another user reads as absent.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID, userID int) (*models.Session, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, template_id, started_at, completed_at, duration_sec, is_completed, notes
		 FROM workout_sessions WHERE id = $1 AND user_id = $2`,
		id, userID)

	var s models.Session
	err := row.Scan(&s.ID, &s.UserID, &s.TemplateID, &s.StartedAt,
		&s.CompletedAt, &s.DurationSec, &s.IsCompleted, &s.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	sessions := []*models.Session{&s}
	if err := db.loadSessionItems(ctx, sessions); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSessions retrieves a user's sessions, newest started first,
// optionally bounded to a started-at range.
func (db *DB) ListSessions(ctx context.Context, userID int, start, end *time.Time) ([]*models.Session, error) {
	query := `SELECT id, user_id, template_id, started_at, completed_at, duration_sec, is_completed, notes
		 FROM workout_sessions WHERE user_id = $1`
	args := []any{userID}
	if start != nil && end != nil {
		query += ` AND started_at >= $2 AND started_at <= $3`
		args = append(args, *start, *end)
	}
	query += ` ORDER BY started_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []*models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.TemplateID, &s.StartedAt,
			&s.CompletedAt, &s.DurationSec, &s.IsCompleted, &s.Notes); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.loadSessionItems(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteSession marks a session completed, freezing completed_at and the
// duration in whole seconds since started_at. Completion is terminal:
// re-completing returns ErrSessionCompleted instead of silently extending
// the duration.
func (db *DB) CompleteSession(ctx context.Context, id uuid.UUID, userID int, notes string) (*models.Session, error) {
	var startedAt time.Time
	var isCompleted bool
	err := db.Pool.QueryRow(ctx,
		`SELECT started_at, is_completed FROM workout_sessions WHERE id = $1 AND user_id = $2`,
		id, userID).Scan(&startedAt, &isCompleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	if isCompleted {
		return nil, ErrSessionCompleted
	}

	now := time.Now().UTC()
	duration := int(now.Sub(startedAt).Seconds())

	_, err = db.Pool.Exec(ctx,
		`UPDATE workout_sessions
		 SET is_completed = TRUE, completed_at = $1, duration_sec = $2, notes = $3
		 WHERE id = $4 AND user_id = $5 AND NOT is_completed`,
		now, duration, notes, id, userID)
	if err != nil {
		return nil, fmt.Errorf("completing session: %w", err)
	}

	return db.GetSession(ctx, id, userID)
}

// DeleteSession removes a session; exercises and sets cascade.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// loadSessionItems populates Exercises (with catalog entries) and Sets for
// the given sessions.
func (db *DB) loadSessionItems(ctx context.Context, sessions []*models.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(sessions))
	byID := make(map[uuid.UUID]*models.Session, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
		byID[s.ID] = s
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT se.id, se.session_id, se.exercise_id, se.position, se.notes,
		        e.id, e.name, e.description, e.instructions, e.video_url,
		        e.muscle_groups, e.equipment, e.is_global, e.is_approved,
		        e.created_by, e.created_at, e.updated_at
		 FROM session_exercises se
		 JOIN exercises e ON e.id = se.exercise_id
		 WHERE se.session_id = ANY($1)
		 ORDER BY se.position ASC`, ids)
	if err != nil {
		return fmt.Errorf("querying session exercises: %w", err)
	}
	defer rows.Close()

	exByID := make(map[uuid.UUID]*models.SessionExercise)
	var order []uuid.UUID
	parent := make(map[uuid.UUID]uuid.UUID)
	for rows.Next() {
		var se models.SessionExercise
		var sessionID uuid.UUID
		var e models.Exercise
		if err := rows.Scan(&se.ID, &sessionID, &se.ExerciseID, &se.Order, &se.Notes,
			&e.ID, &e.Name, &e.Description, &e.Instructions, &e.VideoURL,
			&e.MuscleGroups, &e.Equipment, &e.IsGlobal, &e.IsApproved,
			&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return fmt.Errorf("scanning session exercise: %w", err)
		}
		se.Exercise = &e
		se.Sets = []models.SessionSet{}
		exByID[se.ID] = &se
		parent[se.ID] = sessionID
		order = append(order, se.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(order) > 0 {
		setRows, err := db.Pool.Query(ctx,
			`SELECT id, session_exercise_id, set_number, actual_reps, actual_weight,
			        actual_rpe, notes, volume, estimated_1rm, is_pr, created_at, updated_at
			 FROM session_sets
			 WHERE session_exercise_id = ANY($1)
			 ORDER BY set_number ASC`, order)
		if err != nil {
			return fmt.Errorf("querying session sets: %w", err)
		}
		defer setRows.Close()

		for setRows.Next() {
			var set models.SessionSet
			var exID uuid.UUID
			if err := setRows.Scan(&set.ID, &exID, &set.SetNumber, &set.ActualReps,
				&set.ActualWeight, &set.ActualRpe, &set.Notes, &set.Volume,
				&set.Estimated1RM, &set.IsPR, &set.CreatedAt, &set.UpdatedAt); err != nil {
				return fmt.Errorf("scanning session set: %w", err)
			}
			exByID[exID].Sets = append(exByID[exID].Sets, set)
		}
		if err := setRows.Err(); err != nil {
			return err
		}
	}

	for _, s := range sessions {
		s.Exercises = []models.SessionExercise{}
	}
	for _, exID := range order {
		s := byID[parent[exID]]
		s.Exercises = append(s.Exercises, *exByID[exID])
	}
	return nil
}
