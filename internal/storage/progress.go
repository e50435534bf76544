package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/claude/ironlog/internal/workout"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PersonalRecord reports the best-estimated-1RM set for an exercise, plus
// the best single-set volume, which may come from a different set.
type PersonalRecord struct {
	ExerciseID       uuid.UUID `json:"exerciseId"`
	ExerciseName     string    `json:"exerciseName"`
	BestWeight       float64   `json:"bestWeight"`
	BestReps         int       `json:"bestReps"`
	BestEstimated1RM float64   `json:"bestEstimated1RM"`
	BestVolume       float64   `json:"bestVolume"`
	AchievedAt       time.Time `json:"achievedAt"`
}

// DashboardStats is the at-a-glance summary for the progress dashboard.
type DashboardStats struct {
	WeeklyVolume  float64          `json:"weeklyVolume"`
	CurrentStreak int              `json:"currentStreak"`
	TotalWorkouts int64            `json:"totalWorkouts"`
	CurrentWeight *float64         `json:"currentWeight,omitempty"`
	RecentPRs     []PersonalRecord `json:"recentPRs"`
}

// VolumeDataPoint is one completed session's total volume.
type VolumeDataPoint struct {
	Date   time.Time `json:"date"`
	Volume float64   `json:"volume"`
}

// OneRMDataPoint is one logged set's estimated 1RM, tagged with its exercise.
type OneRMDataPoint struct {
	Date         time.Time `json:"date"`
	ExerciseID   uuid.UUID `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName"`
	Estimated1RM float64   `json:"estimated1RM"`
}

// GetDashboardStats computes the dashboard summary: trailing-7-day volume
// over completed sessions, current daily streak, lifetime completed count,
// latest body-weight sample, and the five most recent PR sets.
func (db *DB) GetDashboardStats(ctx context.Context, userID int) (*DashboardStats, error) {
	stats := &DashboardStats{RecentPRs: []PersonalRecord{}}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)

	err := db.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(ss.volume), 0)
		 FROM session_sets ss
		 JOIN session_exercises se ON se.id = ss.session_exercise_id
		 JOIN workout_sessions s ON s.id = se.session_id
		 WHERE s.user_id = $1 AND s.is_completed AND s.completed_at >= $2`,
		userID, weekAgo).Scan(&stats.WeeklyVolume)
	if err != nil {
		return nil, fmt.Errorf("summing weekly volume: %w", err)
	}
	stats.WeeklyVolume = math.Round(stats.WeeklyVolume)

	rows, err := db.Pool.Query(ctx,
		`SELECT completed_at FROM workout_sessions
		 WHERE user_id = $1 AND is_completed AND completed_at IS NOT NULL
		 ORDER BY completed_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying completion times: %w", err)
	}
	defer rows.Close()

	var completions []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning completion time: %w", err)
		}
		completions = append(completions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	stats.CurrentStreak = workout.CurrentStreak(completions)
	stats.TotalWorkouts = int64(len(completions))

	var weight float64
	err = db.Pool.QueryRow(ctx,
		`SELECT weight FROM body_metrics WHERE user_id = $1 ORDER BY date DESC LIMIT 1`,
		userID).Scan(&weight)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// no samples yet
	case err != nil:
		return nil, fmt.Errorf("querying latest weight: %w", err)
	default:
		stats.CurrentWeight = &weight
	}

	prRows, err := db.Pool.Query(ctx,
		`SELECT se.exercise_id, e.name,
		        COALESCE(ss.actual_weight, 0), COALESCE(ss.actual_reps, 0),
		        COALESCE(ss.estimated_1rm, 0), COALESCE(ss.volume, 0), ss.created_at
		 FROM session_sets ss
		 JOIN session_exercises se ON se.id = ss.session_exercise_id
		 JOIN workout_sessions s ON s.id = se.session_id
		 JOIN exercises e ON e.id = se.exercise_id
		 WHERE s.user_id = $1 AND ss.is_pr
		 ORDER BY ss.created_at DESC
		 LIMIT 5`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying recent PRs: %w", err)
	}
	defer prRows.Close()

	for prRows.Next() {
		var pr PersonalRecord
		if err := prRows.Scan(&pr.ExerciseID, &pr.ExerciseName, &pr.BestWeight,
			&pr.BestReps, &pr.BestEstimated1RM, &pr.BestVolume, &pr.AchievedAt); err != nil {
			return nil, fmt.Errorf("scanning recent PR: %w", err)
		}
		stats.RecentPRs = append(stats.RecentPRs, pr)
	}
	if err := prRows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetVolumeSeries returns one data point per completed session in the
// trailing N-day window, ordered by completion time ascending.
func (db *DB) GetVolumeSeries(ctx context.Context, userID, days int) ([]VolumeDataPoint, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := db.Pool.Query(ctx,
		`SELECT s.completed_at, COALESCE(SUM(ss.volume), 0)
		 FROM workout_sessions s
		 LEFT JOIN session_exercises se ON se.session_id = s.id
		 LEFT JOIN session_sets ss ON ss.session_exercise_id = se.id
		 WHERE s.user_id = $1 AND s.is_completed AND s.completed_at >= $2
		 GROUP BY s.id, s.completed_at
		 ORDER BY s.completed_at ASC`,
		userID, since)
	if err != nil {
		return nil, fmt.Errorf("querying volume series: %w", err)
	}
	defer rows.Close()

	result := []VolumeDataPoint{}
	for rows.Next() {
		var p VolumeDataPoint
		if err := rows.Scan(&p.Date, &p.Volume); err != nil {
			return nil, fmt.Errorf("scanning volume point: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GetOneRMSeries returns one data point per logged set with a non-null
// estimated 1RM in the user's completed sessions, ordered by set creation
// time ascending. exerciseID nil means all exercises.
func (db *DB) GetOneRMSeries(ctx context.Context, userID int, exerciseID *uuid.UUID) ([]OneRMDataPoint, error) {
	query := `SELECT COALESCE(s.completed_at, ss.created_at), se.exercise_id, e.name, ss.estimated_1rm
		 FROM session_sets ss
		 JOIN session_exercises se ON se.id = ss.session_exercise_id
		 JOIN workout_sessions s ON s.id = se.session_id
		 JOIN exercises e ON e.id = se.exercise_id
		 WHERE s.user_id = $1 AND s.is_completed AND ss.estimated_1rm IS NOT NULL`
	args := []any{userID}
	if exerciseID != nil {
		query += ` AND se.exercise_id = $2`
		args = append(args, *exerciseID)
	}
	query += ` ORDER BY ss.created_at ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying 1RM series: %w", err)
	}
	defer rows.Close()

	result := []OneRMDataPoint{}
	for rows.Next() {
		var p OneRMDataPoint
		if err := rows.Scan(&p.Date, &p.ExerciseID, &p.ExerciseName, &p.Estimated1RM); err != nil {
			return nil, fmt.Errorf("scanning 1RM point: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GetPersonalRecords reports, for each exercise performed in a completed
// session, the single best-estimated-1RM set plus the single best-volume
// set. The two bests can come from different sets.
func (db *DB) GetPersonalRecords(ctx context.Context, userID int) ([]PersonalRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT ON (se.exercise_id)
		        se.exercise_id, e.name,
		        COALESCE(ss.actual_weight, 0), COALESCE(ss.actual_reps, 0),
		        ss.estimated_1rm, ss.created_at
		 FROM session_sets ss
		 JOIN session_exercises se ON se.id = ss.session_exercise_id
		 JOIN workout_sessions s ON s.id = se.session_id
		 JOIN exercises e ON e.id = se.exercise_id
		 WHERE s.user_id = $1 AND s.is_completed AND ss.estimated_1rm IS NOT NULL
		 ORDER BY se.exercise_id, ss.estimated_1rm DESC, ss.created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying best 1RM sets: %w", err)
	}
	defer rows.Close()

	result := []PersonalRecord{}
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var pr PersonalRecord
		if err := rows.Scan(&pr.ExerciseID, &pr.ExerciseName, &pr.BestWeight,
			&pr.BestReps, &pr.BestEstimated1RM, &pr.AchievedAt); err != nil {
			return nil, fmt.Errorf("scanning best 1RM set: %w", err)
		}
		index[pr.ExerciseID] = len(result)
		result = append(result, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	volRows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT ON (se.exercise_id) se.exercise_id, ss.volume
		 FROM session_sets ss
		 JOIN session_exercises se ON se.id = ss.session_exercise_id
		 JOIN workout_sessions s ON s.id = se.session_id
		 WHERE s.user_id = $1 AND s.is_completed AND ss.volume IS NOT NULL
		 ORDER BY se.exercise_id, ss.volume DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying best volume sets: %w", err)
	}
	defer volRows.Close()

	for volRows.Next() {
		var id uuid.UUID
		var volume float64
		if err := volRows.Scan(&id, &volume); err != nil {
			return nil, fmt.Errorf("scanning best volume set: %w", err)
		}
		if i, ok := index[id]; ok {
			result[i].BestVolume = volume
		}
	}
	return result, volRows.Err()
}
