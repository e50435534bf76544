package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/claude/ironlog/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// exercisePage is the paginated catalog listing response.
type exercisePage struct {
	Data       []models.Exercise `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalCount int64             `json:"totalCount"`
	TotalPages int64             `json:"totalPages"`
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.ExerciseFilter{
		Query:     q.Get("q"),
		Muscle:    q.Get("muscle"),
		Equipment: q.Get("equipment"),
		Sort:      q.Get("sort"),
		Page:      1,
		PageSize:  50,
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		f.Page = n
	}
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			writeError(w, http.StatusBadRequest, "pageSize must be between 1 and 200")
			return
		}
		f.PageSize = n
	}
	if f.Muscle != "" && !models.ValidMuscleGroup(f.Muscle) {
		writeError(w, http.StatusBadRequest, "unknown muscle group: "+f.Muscle)
		return
	}
	if f.Equipment != "" && !models.ValidEquipment(f.Equipment) {
		writeError(w, http.StatusBadRequest, "unknown equipment: "+f.Equipment)
		return
	}

	data, total, err := s.db.ListExercises(r.Context(), userIDFromContext(r), f)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	pages := total / int64(f.PageSize)
	if total%int64(f.PageSize) != 0 {
		pages++
	}
	writeJSON(w, http.StatusOK, exercisePage{
		Data:       data,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalCount: total,
		TotalPages: pages,
	})
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var in models.CreateExerciseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := validateExerciseEnums(in.Name, in.MuscleGroups, in.Equipment); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := s.db.CreateExercise(r.Context(), userIDFromContext(r), in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}

	exercise, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}

	var in models.UpdateExerciseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	name := "-"
	if in.Name != nil {
		name = *in.Name
	}
	if err := validateExerciseEnums(name, in.MuscleGroups, in.Equipment); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := s.db.UpdateExercise(r.Context(), id, userIDFromContext(r), in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}

	if err := s.db.DeleteExercise(r.Context(), id, userIDFromContext(r)); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateExerciseEnums(name string, muscles, equipment []string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	for _, m := range muscles {
		if !models.ValidMuscleGroup(m) {
			return fmt.Errorf("unknown muscle group: %s", m)
		}
	}
	for _, e := range equipment {
		if !models.ValidEquipment(e) {
			return fmt.Errorf("unknown equipment: %s", e)
		}
	}
	return nil
}
