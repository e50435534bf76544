package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/ironlog/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListCalendar(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := s.db.ListCalendarEntries(r.Context(), userIDFromContext(r), start, end)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateCalendarEntry(w http.ResponseWriter, r *http.Request) {
	var in models.CalendarEntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if in.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	entry, err := s.db.CreateCalendarEntry(r.Context(), userIDFromContext(r), in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUpdateCalendarEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	var in models.CalendarEntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if in.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	if err := s.db.UpdateCalendarEntry(r.Context(), id, userIDFromContext(r), in); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCalendarEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	if err := s.db.DeleteCalendarEntry(r.Context(), id, userIDFromContext(r)); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
