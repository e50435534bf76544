package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/claude/ironlog/internal/storage"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStorageError maps storage sentinel errors to HTTP statuses.
// Anything unexpected is a 500; the error propagates unmodified.
func (s *Server) writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, storage.ErrSessionCompleted):
		writeError(w, http.StatusConflict, "session already completed")
	default:
		s.log.Error("storage error", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// parseDateRange reads optional startDate/endDate query params. Both must
// be present for a range to apply; values accept RFC 3339 or YYYY-MM-DD
// (the latter end-of-day extended for endDate).
func parseDateRange(r *http.Request) (start, end *time.Time, err error) {
	startStr := r.URL.Query().Get("startDate")
	endStr := r.URL.Query().Get("endDate")
	if startStr == "" || endStr == "" {
		return nil, nil, nil
	}

	st, err := parseFlexTime(startStr)
	if err != nil {
		return nil, nil, err
	}
	en, err := parseFlexTime(endStr)
	if err != nil {
		return nil, nil, err
	}
	if len(endStr) == len("2006-01-02") {
		en = en.Add(24 * time.Hour)
	}
	return &st, &en, nil
}

func errNegative(field string) error {
	return fmt.Errorf("%s must be non-negative", field)
}

func errRange(field string, lo, hi float64) error {
	return fmt.Errorf("%s must be between %g and %g", field, lo, hi)
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
