package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// CreateCalendarEntry schedules a template reference or free-text entry.
func (db *DB) CreateCalendarEntry(ctx context.Context, userID int, in models.CalendarEntryInput) (*models.CalendarEntry, error) {
	var e models.CalendarEntry
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO calendar_entries (id, user_id, date, template_id, title, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, date, template_id, title, notes, created_at`,
		uuid.New(), userID, in.Date, in.TemplateID, in.Title, in.Notes).Scan(
		&e.ID, &e.UserID, &e.Date, &e.TemplateID, &e.Title, &e.Notes, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting calendar entry: %w", err)
	}
	return &e, nil
}

// ListCalendarEntries returns the user's entries ordered by date ascending,
// optionally bounded to a range.
func (db *DB) ListCalendarEntries(ctx context.Context, userID int, start, end *time.Time) ([]models.CalendarEntry, error) {
	query := `SELECT id, user_id, date, template_id, title, notes, created_at
		 FROM calendar_entries WHERE user_id = $1`
	args := []any{userID}
	if start != nil && end != nil {
		query += ` AND date >= $2 AND date <= $3`
		args = append(args, *start, *end)
	}
	query += ` ORDER BY date ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying calendar entries: %w", err)
	}
	defer rows.Close()

	result := []models.CalendarEntry{}
	for rows.Next() {
		var e models.CalendarEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.TemplateID, &e.Title, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning calendar entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// UpdateCalendarEntry rewrites an entry's fields. Scoped by user; a foreign
// or missing entry returns ErrNotFound.
func (db *DB) UpdateCalendarEntry(ctx context.Context, id uuid.UUID, userID int, in models.CalendarEntryInput) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE calendar_entries SET date = $1, template_id = $2, title = $3, notes = $4
		 WHERE id = $5 AND user_id = $6`,
		in.Date, in.TemplateID, in.Title, in.Notes, id, userID)
	if err != nil {
		return fmt.Errorf("updating calendar entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCalendarEntry removes an entry. Scoped by user.
func (db *DB) DeleteCalendarEntry(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM calendar_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting calendar entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
