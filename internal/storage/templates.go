package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateTemplate creates a template with its ordered exercises and planned
// sets in one transaction. Exercise order and set numbers are positional
// in the submitted input.
func (db *DB) CreateTemplate(ctx context.Context, userID int, in models.CreateTemplateInput) (*models.Template, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning template tx: %w", err)
	}
	defer tx.Rollback(ctx)

	templateID := uuid.New()
	_, err = tx.Exec(ctx,
		`INSERT INTO workout_templates (id, user_id, name, description) VALUES ($1, $2, $3, $4)`,
		templateID, userID, in.Name, in.Description)
	if err != nil {
		return nil, fmt.Errorf("inserting template: %w", err)
	}

	if err := insertTemplateItems(ctx, tx, templateID, in.Exercises); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing template: %w", err)
	}
	return db.GetTemplate(ctx, templateID, userID)
}

// GetTemplate retrieves a template with its exercises and planned sets.
// Returns ErrForbidden when it belongs to another user.
func (db *DB) GetTemplate(ctx context.Context, id uuid.UUID, userID int) (*models.Template, error) {
	t, err := db.getTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrForbidden
	}
	return t, nil
}

// getTemplate loads a template without an ownership check. Session start
// uses it directly: any known template may be materialized.
func (db *DB) getTemplate(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, description, status, created_at, updated_at
		 FROM workout_templates WHERE id = $1`, id)

	var t models.Template
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying template: %w", err)
	}

	if err := db.loadTemplateItems(ctx, []*models.Template{&t}); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTemplates retrieves the user's non-archived templates, most recently
// updated first.
func (db *DB) ListTemplates(ctx context.Context, userID int) ([]*models.Template, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, description, status, created_at, updated_at
		 FROM workout_templates
		 WHERE user_id = $1 AND status = $2
		 ORDER BY updated_at DESC`, userID, models.TemplateActive)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []*models.Template
	for rows.Next() {
		var t models.Template
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Status,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.loadTemplateItems(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateTemplate updates name/description and, when a non-nil exercise list
// is supplied, replaces the exercise list wholesale.
func (db *DB) UpdateTemplate(ctx context.Context, id uuid.UUID, userID int, in models.UpdateTemplateInput) (*models.Template, error) {
	if _, err := db.GetTemplate(ctx, id, userID); err != nil {
		return nil, err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning template update tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE workout_templates
		 SET name = COALESCE($1, name), description = COALESCE($2, description), updated_at = NOW()
		 WHERE id = $3`,
		in.Name, in.Description, id)
	if err != nil {
		return nil, fmt.Errorf("updating template: %w", err)
	}

	if in.Exercises != nil {
		if _, err := tx.Exec(ctx,
			`DELETE FROM template_exercises WHERE template_id = $1`, id); err != nil {
			return nil, fmt.Errorf("clearing template exercises: %w", err)
		}
		if err := insertTemplateItems(ctx, tx, id, in.Exercises); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing template update: %w", err)
	}
	return db.GetTemplate(ctx, id, userID)
}

// ArchiveTemplate soft-deletes a template. Sessions keep referencing it.
func (db *DB) ArchiveTemplate(ctx context.Context, id uuid.UUID, userID int) error {
	if _, err := db.GetTemplate(ctx, id, userID); err != nil {
		return err
	}
	_, err := db.Pool.Exec(ctx,
		`UPDATE workout_templates SET status = $1, updated_at = NOW() WHERE id = $2`,
		models.TemplateArchived, id)
	if err != nil {
		return fmt.Errorf("archiving template: %w", err)
	}
	return nil
}

// DuplicateTemplate copies a template (exercises, planned sets, superset
// group IDs) under a " (Copy)" name.
func (db *DB) DuplicateTemplate(ctx context.Context, id uuid.UUID, userID int) (*models.Template, error) {
	original, err := db.GetTemplate(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	in := models.CreateTemplateInput{
		Name:        original.Name + " (Copy)",
		Description: original.Description,
	}
	for _, ex := range original.Exercises {
		exIn := models.TemplateExerciseInput{ExerciseID: ex.ExerciseID, Notes: ex.Notes}
		for _, set := range ex.Sets {
			exIn.Sets = append(exIn.Sets, models.TemplateSetInput{
				TargetReps:   set.TargetReps,
				TargetWeight: set.TargetWeight,
				TargetRpe:    set.TargetRpe,
				RestTime:     set.RestTime,
				Tempo:        set.Tempo,
				Notes:        set.Notes,
				GroupID:      set.GroupID,
			})
		}
		in.Exercises = append(in.Exercises, exIn)
	}
	return db.CreateTemplate(ctx, userID, in)
}

func insertTemplateItems(ctx context.Context, tx pgx.Tx, templateID uuid.UUID, exercises []models.TemplateExerciseInput) error {
	for i, ex := range exercises {
		exID := uuid.New()
		_, err := tx.Exec(ctx,
			`INSERT INTO template_exercises (id, template_id, exercise_id, position, notes)
			 VALUES ($1, $2, $3, $4, $5)`,
			exID, templateID, ex.ExerciseID, i, ex.Notes)
		if err != nil {
			return fmt.Errorf("inserting template exercise: %w", err)
		}
		for j, set := range ex.Sets {
			_, err := tx.Exec(ctx,
				`INSERT INTO template_sets (id, template_exercise_id, set_number,
				 target_reps, target_weight, target_rpe, rest_time, tempo, notes, group_id)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				uuid.New(), exID, j+1,
				set.TargetReps, set.TargetWeight, set.TargetRpe, set.RestTime,
				set.Tempo, set.Notes, set.GroupID)
			if err != nil {
				return fmt.Errorf("inserting template set: %w", err)
			}
		}
	}
	return nil
}

// loadTemplateItems populates Exercises (with catalog entries) and planned
// sets for the given templates.
func (db *DB) loadTemplateItems(ctx context.Context, templates []*models.Template) error {
	if len(templates) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(templates))
	byID := make(map[uuid.UUID]*models.Template, len(templates))
	for i, t := range templates {
		ids[i] = t.ID
		byID[t.ID] = t
		t.Exercises = []models.TemplateExercise{}
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT te.id, te.template_id, te.exercise_id, te.position, te.notes,
		        e.id, e.name, e.description, e.instructions, e.video_url,
		        e.muscle_groups, e.equipment, e.is_global, e.is_approved,
		        e.created_by, e.created_at, e.updated_at
		 FROM template_exercises te
		 JOIN exercises e ON e.id = te.exercise_id
		 WHERE te.template_id = ANY($1)
		 ORDER BY te.position ASC`, ids)
	if err != nil {
		return fmt.Errorf("querying template exercises: %w", err)
	}
	defer rows.Close()

	exByID := make(map[uuid.UUID]*models.TemplateExercise)
	var order []uuid.UUID
	parent := make(map[uuid.UUID]uuid.UUID)
	for rows.Next() {
		var te models.TemplateExercise
		var templateID uuid.UUID
		var e models.Exercise
		if err := rows.Scan(&te.ID, &templateID, &te.ExerciseID, &te.Order, &te.Notes,
			&e.ID, &e.Name, &e.Description, &e.Instructions, &e.VideoURL,
			&e.MuscleGroups, &e.Equipment, &e.IsGlobal, &e.IsApproved,
			&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return fmt.Errorf("scanning template exercise: %w", err)
		}
		te.Exercise = &e
		te.Sets = []models.TemplateSet{}
		exByID[te.ID] = &te
		parent[te.ID] = templateID
		order = append(order, te.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(order) > 0 {
		setRows, err := db.Pool.Query(ctx,
			`SELECT id, template_exercise_id, set_number, target_reps, target_weight,
			        target_rpe, rest_time, tempo, notes, group_id
			 FROM template_sets
			 WHERE template_exercise_id = ANY($1)
			 ORDER BY set_number ASC`, order)
		if err != nil {
			return fmt.Errorf("querying template sets: %w", err)
		}
		defer setRows.Close()

		for setRows.Next() {
			var set models.TemplateSet
			var exID uuid.UUID
			if err := setRows.Scan(&set.ID, &exID, &set.SetNumber, &set.TargetReps,
				&set.TargetWeight, &set.TargetRpe, &set.RestTime, &set.Tempo,
				&set.Notes, &set.GroupID); err != nil {
				return fmt.Errorf("scanning template set: %w", err)
			}
			exByID[exID].Sets = append(exByID[exID].Sets, set)
		}
		if err := setRows.Err(); err != nil {
			return err
		}
	}

	for _, exID := range order {
		t := byID[parent[exID]]
		t.Exercises = append(t.Exercises, *exByID[exID])
	}
	return nil
}
