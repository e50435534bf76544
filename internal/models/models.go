package models

import (
	"time"

	"github.com/google/uuid"
)

// MuscleGroup is a targeted muscle group for an exercise.
type MuscleGroup string

const (
	MuscleChest      MuscleGroup = "CHEST"
	MuscleBack       MuscleGroup = "BACK"
	MuscleShoulders  MuscleGroup = "SHOULDERS"
	MuscleBiceps     MuscleGroup = "BICEPS"
	MuscleTriceps    MuscleGroup = "TRICEPS"
	MuscleForearms   MuscleGroup = "FOREARMS"
	MuscleAbs        MuscleGroup = "ABS"
	MuscleQuads      MuscleGroup = "QUADS"
	MuscleHamstrings MuscleGroup = "HAMSTRINGS"
	MuscleGlutes     MuscleGroup = "GLUTES"
	MuscleCalves     MuscleGroup = "CALVES"
)

// Equipment is the gear an exercise requires.
type Equipment string

const (
	EquipBarbell        Equipment = "BARBELL"
	EquipDumbbell       Equipment = "DUMBBELL"
	EquipMachine        Equipment = "MACHINE"
	EquipCable          Equipment = "CABLE"
	EquipBodyweight     Equipment = "BODYWEIGHT"
	EquipResistanceBand Equipment = "RESISTANCE_BAND"
	EquipKettlebell     Equipment = "KETTLEBELL"
	EquipOther          Equipment = "OTHER"
)

// TemplateStatus is the lifecycle tag for a workout template.
// Archival is a status, not a boolean, so a template cannot be
// accidentally "un-archived" by a stray flag flip.
type TemplateStatus string

const (
	TemplateActive   TemplateStatus = "active"
	TemplateArchived TemplateStatus = "archived"
)

// ValidMuscleGroup reports whether s is a known muscle group.
func ValidMuscleGroup(s string) bool {
	switch MuscleGroup(s) {
	case MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps,
		MuscleForearms, MuscleAbs, MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves:
		return true
	}
	return false
}

// ValidEquipment reports whether s is a known equipment value.
func ValidEquipment(s string) bool {
	switch Equipment(s) {
	case EquipBarbell, EquipDumbbell, EquipMachine, EquipCable,
		EquipBodyweight, EquipResistanceBand, EquipKettlebell, EquipOther:
		return true
	}
	return false
}

// Exercise is a catalog entry. Global + approved exercises are visible to
// everyone; private ones only to their creator.
type Exercise struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	VideoURL     string    `json:"videoUrl,omitempty"`
	MuscleGroups []string  `json:"muscleGroups"`
	Equipment    []string  `json:"equipment"`
	IsGlobal     bool      `json:"isGlobal"`
	IsApproved   bool      `json:"isApproved"`
	CreatedBy    int       `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TemplateSet is a planned set inside a template exercise.
type TemplateSet struct {
	ID           uuid.UUID  `json:"id"`
	SetNumber    int        `json:"setNumber"`
	TargetReps   *int       `json:"targetReps,omitempty"`
	TargetWeight *float64   `json:"targetWeight,omitempty"`
	TargetRpe    *float64   `json:"targetRpe,omitempty"`
	RestTime     *int       `json:"restTime,omitempty"`
	Tempo        string     `json:"tempo,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	GroupID      *uuid.UUID `json:"groupId,omitempty"`
}

// TemplateExercise is one exercise slot in a template, with its planned sets.
type TemplateExercise struct {
	ID         uuid.UUID     `json:"id"`
	ExerciseID uuid.UUID     `json:"exerciseId"`
	Order      int           `json:"order"`
	Notes      string        `json:"notes,omitempty"`
	Exercise   *Exercise     `json:"exercise,omitempty"`
	Sets       []TemplateSet `json:"sets"`
}

// Template is a reusable planned workout.
type Template struct {
	ID          uuid.UUID          `json:"id"`
	UserID      int                `json:"-"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Status      TemplateStatus     `json:"status"`
	Exercises   []TemplateExercise `json:"exercises"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// SessionSet holds the actual performance of one set plus the metrics
// derived from it at log time. Volume and Estimated1RM are present iff
// both ActualReps and ActualWeight are.
type SessionSet struct {
	ID           uuid.UUID `json:"id"`
	SetNumber    int       `json:"setNumber"`
	ActualReps   *int      `json:"actualReps,omitempty"`
	ActualWeight *float64  `json:"actualWeight,omitempty"`
	ActualRpe    *float64  `json:"actualRpe,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Volume       *float64  `json:"volume,omitempty"`
	Estimated1RM *float64  `json:"estimated1RM,omitempty"`
	IsPR         bool      `json:"isPR"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SessionExercise is one exercise performed (or planned) in a session.
type SessionExercise struct {
	ID         uuid.UUID    `json:"id"`
	ExerciseID uuid.UUID    `json:"exerciseId"`
	Order      int          `json:"order"`
	Notes      string       `json:"notes,omitempty"`
	Exercise   *Exercise    `json:"exercise,omitempty"`
	Sets       []SessionSet `json:"sets"`
}

// Session is one concrete, timestamped performance of a workout.
type Session struct {
	ID          uuid.UUID         `json:"id"`
	UserID      int               `json:"-"`
	TemplateID  *uuid.UUID        `json:"templateId,omitempty"`
	StartedAt   time.Time         `json:"startedAt"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
	DurationSec *int              `json:"duration,omitempty"`
	IsCompleted bool              `json:"isCompleted"`
	Notes       string            `json:"notes,omitempty"`
	Exercises   []SessionExercise `json:"exercises"`
}

// Status returns the session lifecycle tag.
func (s *Session) Status() SessionStatus {
	if s.IsCompleted {
		return SessionCompleted
	}
	return SessionActive
}

// SessionStatus is the explicit two-state session lifecycle:
// active until completed, completed is terminal.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// BodyMetric is one body-composition sample. Pure time series, no derivation.
type BodyMetric struct {
	ID        uuid.UUID `json:"id"`
	UserID    int       `json:"-"`
	Date      time.Time `json:"date"`
	Weight    float64   `json:"weight"`
	BodyFat   *float64  `json:"bodyFat,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CalendarEntry schedules a template reference or free-text note onto a date.
type CalendarEntry struct {
	ID         uuid.UUID  `json:"id"`
	UserID     int        `json:"-"`
	Date       time.Time  `json:"date"`
	TemplateID *uuid.UUID `json:"templateId,omitempty"`
	Title      string     `json:"title"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
