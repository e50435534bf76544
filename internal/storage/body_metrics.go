package storage

import (
	"context"
	"fmt"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// ListBodyMetrics returns the user's samples, oldest first.
func (db *DB) ListBodyMetrics(ctx context.Context, userID int) ([]models.BodyMetric, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, date, weight, body_fat, created_at
		 FROM body_metrics WHERE user_id = $1 ORDER BY date ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying body metrics: %w", err)
	}
	defer rows.Close()

	result := []models.BodyMetric{}
	for rows.Next() {
		var m models.BodyMetric
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &m.Weight, &m.BodyFat, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning body metric: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// CreateBodyMetric inserts one sample.
func (db *DB) CreateBodyMetric(ctx context.Context, userID int, in models.BodyMetricInput) (*models.BodyMetric, error) {
	var m models.BodyMetric
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO body_metrics (id, user_id, date, weight, body_fat)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, date, weight, body_fat, created_at`,
		uuid.New(), userID, in.Date, in.Weight, in.BodyFat).Scan(
		&m.ID, &m.UserID, &m.Date, &m.Weight, &m.BodyFat, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting body metric: %w", err)
	}
	return &m, nil
}
