package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/claude/ironlog/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var in models.StartSessionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	session, err := s.db.StartSession(r.Context(), userIDFromContext(r), in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleLogSet(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}
	exerciseID, err := uuid.Parse(chi.URLParam(r, "exerciseID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}
	setNumber, err := strconv.Atoi(chi.URLParam(r, "setNumber"))
	if err != nil || setNumber < 1 {
		writeError(w, http.StatusBadRequest, "setNumber must be a positive integer")
		return
	}

	var in models.LogSetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := validateLogSet(in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	set, err := s.db.LogSet(r.Context(), sessionID, exerciseID, setNumber, in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	var in models.CompleteSessionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	session, err := s.db.CompleteSession(r.Context(), id, userIDFromContext(r), in.Notes)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessions, err := s.db.ListSessions(r.Context(), userIDFromContext(r), start, end)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	if sessions == nil {
		sessions = []*models.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	session, err := s.db.GetSession(r.Context(), id, userIDFromContext(r))
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	if err := s.db.DeleteSession(r.Context(), id, userIDFromContext(r)); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateLogSet rejects negative numeric fields. All fields are optional.
func validateLogSet(in models.LogSetInput) error {
	if in.ActualReps != nil && *in.ActualReps < 0 {
		return errNegative("actualReps")
	}
	if in.ActualWeight != nil && *in.ActualWeight < 0 {
		return errNegative("actualWeight")
	}
	if in.ActualRpe != nil && (*in.ActualRpe < 0 || *in.ActualRpe > 10) {
		return errRange("actualRpe", 0, 10)
	}
	return nil
}
