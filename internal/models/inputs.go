package models

import (
	"time"

	"github.com/google/uuid"
)

// StartSessionInput is the POST /sessions/start payload. Exactly one of
// TemplateID / Exercises is honored; with neither the session starts empty.
type StartSessionInput struct {
	TemplateID *uuid.UUID           `json:"templateId,omitempty"`
	Exercises  []StartExerciseInput `json:"exercises,omitempty"`
}

// StartExerciseInput seeds one exercise (and optionally pre-filled sets)
// on an ad-hoc session start.
type StartExerciseInput struct {
	ExerciseID uuid.UUID       `json:"exerciseId"`
	Notes      string          `json:"notes,omitempty"`
	Sets       []StartSetInput `json:"sets,omitempty"`
}

// StartSetInput is a pre-filled set on an ad-hoc session start.
type StartSetInput struct {
	ActualReps   *int     `json:"actualReps,omitempty"`
	ActualWeight *float64 `json:"actualWeight,omitempty"`
	ActualRpe    *float64 `json:"actualRpe,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// LogSetInput is the set-logging payload. Every field is optional; supplied
// fields are merged over any previously stored values for that set number.
type LogSetInput struct {
	ActualReps   *int     `json:"actualReps,omitempty"`
	ActualWeight *float64 `json:"actualWeight,omitempty"`
	ActualRpe    *float64 `json:"actualRpe,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// CompleteSessionInput is the session-completion payload.
type CompleteSessionInput struct {
	Notes string `json:"notes,omitempty"`
}

// TemplateSetInput is one planned set in a template create/update.
type TemplateSetInput struct {
	TargetReps   *int       `json:"targetReps,omitempty"`
	TargetWeight *float64   `json:"targetWeight,omitempty"`
	TargetRpe    *float64   `json:"targetRpe,omitempty"`
	RestTime     *int       `json:"restTime,omitempty"`
	Tempo        string     `json:"tempo,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	GroupID      *uuid.UUID `json:"groupId,omitempty"`
}

// TemplateExerciseInput is one exercise slot in a template create/update.
// Order is positional in the submitted slice.
type TemplateExerciseInput struct {
	ExerciseID uuid.UUID          `json:"exerciseId"`
	Notes      string             `json:"notes,omitempty"`
	Sets       []TemplateSetInput `json:"sets"`
}

// CreateTemplateInput is the POST /templates payload.
type CreateTemplateInput struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Exercises   []TemplateExerciseInput `json:"exercises"`
}

// UpdateTemplateInput is the PATCH /templates/{id} payload. A nil Exercises
// slice leaves the exercise list untouched; a non-nil one replaces it.
type UpdateTemplateInput struct {
	Name        *string                 `json:"name,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Exercises   []TemplateExerciseInput `json:"exercises,omitempty"`
}

// CreateExerciseInput is the POST /exercises payload.
type CreateExerciseInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	VideoURL     string   `json:"videoUrl,omitempty"`
	MuscleGroups []string `json:"muscleGroups"`
	Equipment    []string `json:"equipment"`
}

// UpdateExerciseInput is the PATCH /exercises/{id} payload.
type UpdateExerciseInput struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Instructions *string  `json:"instructions,omitempty"`
	VideoURL     *string  `json:"videoUrl,omitempty"`
	MuscleGroups []string `json:"muscleGroups,omitempty"`
	Equipment    []string `json:"equipment,omitempty"`
}

// ExerciseFilter narrows catalog listings.
type ExerciseFilter struct {
	Query     string
	Muscle    string
	Equipment string
	Sort      string // "name" or "" (newest first)
	Page      int
	PageSize  int
}

// CalendarEntryInput is the calendar create/update payload.
type CalendarEntryInput struct {
	Date       time.Time  `json:"date"`
	TemplateID *uuid.UUID `json:"templateId,omitempty"`
	Title      string     `json:"title"`
	Notes      string     `json:"notes,omitempty"`
}

// BodyMetricInput is the POST /metrics/body payload.
type BodyMetricInput struct {
	Date    time.Time `json:"date"`
	Weight  float64   `json:"weight"`
	BodyFat *float64  `json:"bodyFat,omitempty"`
}
