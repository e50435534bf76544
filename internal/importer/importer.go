package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
	"github.com/claude/ironlog/internal/workout"
	"github.com/google/uuid"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed   int
	FilesSkipped     int
	FilesErrored     int
	SessionsInserted int
	SetsInserted     int
	ExercisesCreated int
	PRsFlagged       int
}

// Importer reads training-log CSV files from a directory and inserts the
// sessions they describe as completed historical workouts.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	userID int
	dryRun bool
	stats  Stats

	// per-run caches, keyed by lowercase exercise name / exercise ID
	exercises map[string]uuid.UUID
	best1RM   map[uuid.UUID]*float64
}

// New creates a new Importer. State may be nil, in which case files are
// never skipped as already imported.
func New(db *storage.DB, state *StateDB, log *slog.Logger, userID int, dryRun bool) *Importer {
	return &Importer{
		db:        db,
		state:     state,
		log:       log,
		userID:    userID,
		dryRun:    dryRun,
		exercises: make(map[string]uuid.UUID),
		best1RM:   make(map[uuid.UUID]*float64),
	}
}

// Import processes all .csv files under dir in filename order. Each file is
// parsed into one completed session per calendar date, with per-set volume
// and estimated 1RM derived on the way in. PR flags are assigned
// chronologically: a set is a PR when its estimated 1RM strictly beats the
// best seen so far for that exercise, seeded from what is already in the
// database.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return &imp.stats, err
	}

	for _, f := range files {
		if err := imp.importFile(ctx, f); err != nil {
			imp.log.Warn("file import failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", path, err)
	}

	rel := filepath.Base(path)
	if imp.state != nil {
		done, err := imp.state.IsImported(rel, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking import state: %w", err)
		}
		if done {
			imp.stats.FilesSkipped++
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	rows, err := ParseCSV(f)
	f.Close()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}

	for _, group := range GroupSessions(rows) {
		session, err := imp.buildSession(ctx, group)
		if err != nil {
			return err
		}
		if !imp.dryRun {
			if err := imp.db.InsertCompletedSession(ctx, session); err != nil {
				return err
			}
		}
		imp.stats.SessionsInserted++
	}

	imp.stats.FilesProcessed++
	if imp.state != nil && !imp.dryRun {
		if err := imp.state.MarkImported(rel, info.Size(), hash); err != nil {
			return fmt.Errorf("recording import state: %w", err)
		}
	}
	return nil
}

// buildSession turns one grouped calendar date into a completed session.
// Started/completed timestamps bracket the date at a nominal hour since the
// CSV carries no time of day.
func (imp *Importer) buildSession(ctx context.Context, group SessionGroup) (*models.Session, error) {
	startedAt := group.Date.Add(12 * time.Hour)
	completedAt := startedAt.Add(time.Hour)
	duration := int(completedAt.Sub(startedAt).Seconds())

	session := &models.Session{
		ID:          uuid.New(),
		UserID:      imp.userID,
		StartedAt:   startedAt,
		CompletedAt: &completedAt,
		DurationSec: &duration,
		IsCompleted: true,
	}

	for i, eg := range group.Exercises {
		exerciseID, err := imp.resolveExercise(ctx, eg.Name)
		if err != nil {
			return nil, err
		}

		se := models.SessionExercise{
			ID:         uuid.New(),
			ExerciseID: exerciseID,
			Order:      i,
		}

		for _, row := range eg.Sets {
			set := models.SessionSet{
				ID:           uuid.New(),
				SetNumber:    row.SetNumber,
				ActualReps:   row.Reps,
				ActualWeight: row.Weight,
				ActualRpe:    row.Rpe,
				Notes:        row.Notes,
			}
			set.Volume = workout.Volume(row.Reps, row.Weight)
			set.Estimated1RM = workout.Estimated1RM(row.Reps, row.Weight)

			if set.Estimated1RM != nil {
				best, err := imp.bestFor(ctx, exerciseID)
				if err != nil {
					return nil, err
				}
				if workout.IsPR(set.Estimated1RM, best) {
					set.IsPR = true
					imp.stats.PRsFlagged++
				}
				if best == nil || *set.Estimated1RM > *best {
					v := *set.Estimated1RM
					imp.best1RM[exerciseID] = &v
				}
			}

			se.Sets = append(se.Sets, set)
			imp.stats.SetsInserted++
		}

		session.Exercises = append(session.Exercises, se)
	}

	return session, nil
}

// resolveExercise maps a free-text name to a catalog entry, creating a
// private unclassified entry when no visible exercise matches.
func (imp *Importer) resolveExercise(ctx context.Context, name string) (uuid.UUID, error) {
	key := normalizeName(name)
	if id, ok := imp.exercises[key]; ok {
		return id, nil
	}

	e, err := imp.db.FindExerciseByName(ctx, imp.userID, name)
	if err == nil {
		imp.exercises[key] = e.ID
		return e.ID, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return uuid.Nil, err
	}

	if imp.dryRun {
		id := uuid.New()
		imp.exercises[key] = id
		imp.stats.ExercisesCreated++
		return id, nil
	}

	created, err := imp.db.CreateExercise(ctx, imp.userID, models.CreateExerciseInput{
		Name:         name,
		Description:  "Imported from training log",
		MuscleGroups: []string{},
		Equipment:    []string{string(models.EquipOther)},
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating exercise %q: %w", name, err)
	}
	imp.log.Info("created catalog entry for imported exercise", "name", name, "id", created.ID)
	imp.exercises[key] = created.ID
	imp.stats.ExercisesCreated++
	return created.ID, nil
}

// bestFor returns the running best estimated 1RM for an exercise, loading
// the stored best on first use.
func (imp *Importer) bestFor(ctx context.Context, exerciseID uuid.UUID) (*float64, error) {
	if best, ok := imp.best1RM[exerciseID]; ok {
		return best, nil
	}
	best, err := imp.db.BestEstimated1RM(ctx, imp.userID, exerciseID)
	if err != nil {
		return nil, err
	}
	imp.best1RM[exerciseID] = best
	return best, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
