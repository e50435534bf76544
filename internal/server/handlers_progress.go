package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDashboardStats(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleVolumeSeries(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	points, err := s.db.GetVolumeSeries(r.Context(), userIDFromContext(r), days)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleOneRMSeries(w http.ResponseWriter, r *http.Request) {
	var exerciseID *uuid.UUID
	if v := r.URL.Query().Get("exerciseId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid exercise ID")
			return
		}
		exerciseID = &id
	}

	points, err := s.db.GetOneRMSeries(r.Context(), userIDFromContext(r), exerciseID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.GetPersonalRecords(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleListBodyMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.db.ListBodyMetrics(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (s *Server) handleCreateBodyMetric(w http.ResponseWriter, r *http.Request) {
	var in models.BodyMetricInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if in.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	if in.Weight <= 0 {
		writeError(w, http.StatusBadRequest, "weight must be positive")
		return
	}

	metric, err := s.db.CreateBodyMetric(r.Context(), userIDFromContext(r), in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, metric)
}
