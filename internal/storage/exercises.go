package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const exerciseColumns = `id, name, description, instructions, video_url,
	muscle_groups, equipment, is_global, is_approved, created_by, created_at, updated_at`

// CreateExercise inserts a private (non-global, unapproved) catalog entry
// owned by the caller. Moderation flips the global/approved flags elsewhere.
func (db *DB) CreateExercise(ctx context.Context, userID int, in models.CreateExerciseInput) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`INSERT INTO exercises (id, name, description, instructions, video_url, muscle_groups, equipment, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+exerciseColumns,
		uuid.New(), in.Name, in.Description, in.Instructions, in.VideoURL,
		in.MuscleGroups, in.Equipment, userID)

	var e models.Exercise
	if err := scanExercise(row, &e); err != nil {
		return nil, fmt.Errorf("inserting exercise: %w", err)
	}
	return &e, nil
}

// ListExercises returns the page of catalog entries visible to the user
// (global approved ones plus their own), with the total match count.
func (db *DB) ListExercises(ctx context.Context, userID int, f models.ExerciseFilter) ([]models.Exercise, int64, error) {
	conds := []string{`((is_global AND is_approved) OR created_by = $1)`}
	args := []any{userID}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		conds = append(conds, fmt.Sprintf(`name ILIKE $%d`, len(args)))
	}
	if f.Muscle != "" {
		args = append(args, f.Muscle)
		conds = append(conds, fmt.Sprintf(`$%d = ANY(muscle_groups)`, len(args)))
	}
	if f.Equipment != "" {
		args = append(args, f.Equipment)
		conds = append(conds, fmt.Sprintf(`$%d = ANY(equipment)`, len(args)))
	}
	where := strings.Join(conds, " AND ")

	var total int64
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exercises WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting exercises: %w", err)
	}

	orderBy := `created_at DESC`
	if f.Sort == "name" {
		orderBy = `name ASC`
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE `+where+
			` ORDER BY `+orderBy+
			fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	result := []models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		if err := scanExercise(rows, &e); err != nil {
			return nil, 0, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, total, rows.Err()
}

// GetExercise retrieves a single catalog entry.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id)

	var e models.Exercise
	err := scanExercise(row, &e)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return &e, nil
}

// UpdateExercise applies the supplied fields. Only the creator may edit a
// private exercise; global entries accept edits (moderation surface).
func (db *DB) UpdateExercise(ctx context.Context, id uuid.UUID, userID int, in models.UpdateExerciseInput) (*models.Exercise, error) {
	existing, err := db.GetExercise(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != userID && !existing.IsGlobal {
		return nil, ErrForbidden
	}

	row := db.Pool.QueryRow(ctx,
		`UPDATE exercises SET
		   name = COALESCE($1, name),
		   description = COALESCE($2, description),
		   instructions = COALESCE($3, instructions),
		   video_url = COALESCE($4, video_url),
		   muscle_groups = COALESCE($5, muscle_groups),
		   equipment = COALESCE($6, equipment),
		   updated_at = NOW()
		 WHERE id = $7
		 RETURNING `+exerciseColumns,
		in.Name, in.Description, in.Instructions, in.VideoURL,
		in.MuscleGroups, in.Equipment, id)

	var e models.Exercise
	if err := scanExercise(row, &e); err != nil {
		return nil, fmt.Errorf("updating exercise: %w", err)
	}
	return &e, nil
}

// DeleteExercise removes a catalog entry. Creator only.
func (db *DB) DeleteExercise(ctx context.Context, id uuid.UUID, userID int) error {
	existing, err := db.GetExercise(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != userID {
		return ErrForbidden
	}
	_, err = db.Pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	return nil
}

func scanExercise(row pgx.Row, e *models.Exercise) error {
	return row.Scan(&e.ID, &e.Name, &e.Description, &e.Instructions, &e.VideoURL,
		&e.MuscleGroups, &e.Equipment, &e.IsGlobal, &e.IsApproved,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
}
