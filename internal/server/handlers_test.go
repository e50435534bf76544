package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

func testServer() *Server {
	return &Server{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// withURLParams attaches chi route parameters to a request so handlers can
// be exercised without a full router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestHandleMeDefault verifies the /api/v1/me endpoint returns the dev user
// identity when no Tailscale middleware is active.
func TestHandleMeDefault(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
	if info.DisplayName != "Local Dev User" {
		t.Errorf("display_name = %q, want %q", info.DisplayName, "Local Dev User")
	}
}

// TestHandleMeTailscaleUser verifies the /api/v1/me endpoint returns the
// Tailscale user identity when set in context.
func TestHandleMeTailscaleUser(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "alice@example.com", DisplayName: "Alice"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "alice@example.com" {
		t.Errorf("login = %q, want %q", info.Login, "alice@example.com")
	}
}

// TestWriteStorageError verifies the sentinel-to-status mapping.
func TestWriteStorageError(t *testing.T) {
	s := testServer()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"forbidden", storage.ErrForbidden, http.StatusForbidden},
		{"already completed", storage.ErrSessionCompleted, http.StatusConflict},
		{"unexpected", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.writeStorageError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

// TestHandleLogSetRejectsBadParams verifies malformed path parameters are
// rejected before any storage call.
func TestHandleLogSetRejectsBadParams(t *testing.T) {
	s := testServer()
	tests := []struct {
		name   string
		params map[string]string
	}{
		{"bad session id", map[string]string{"sessionID": "nope", "exerciseID": "4a3d4f0e-7f5f-4a39-9f18-0d2c1c9f2a11", "setNumber": "1"}},
		{"bad exercise id", map[string]string{"sessionID": "4a3d4f0e-7f5f-4a39-9f18-0d2c1c9f2a11", "exerciseID": "nope", "setNumber": "1"}},
		{"zero set number", map[string]string{"sessionID": "4a3d4f0e-7f5f-4a39-9f18-0d2c1c9f2a11", "exerciseID": "4a3d4f0e-7f5f-4a39-9f18-0d2c1c9f2a11", "setNumber": "0"}},
		{"non-numeric set number", map[string]string{"sessionID": "4a3d4f0e-7f5f-4a39-9f18-0d2c1c9f2a11", "exerciseID": "4a3d4f0e-7f5f-4a39-9f18-0d2c1c9f2a11", "setNumber": "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
			req = withURLParams(req, tt.params)
			rec := httptest.NewRecorder()

			s.handleLogSet(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// TestValidateLogSet verifies numeric bounds on the set-logging payload.
func TestValidateLogSet(t *testing.T) {
	reps := -1
	weight := -5.0
	rpeHigh := 10.5
	rpeOK := 8.5

	if err := validateLogSet(models.LogSetInput{}); err != nil {
		t.Errorf("empty payload rejected: %v", err)
	}
	if err := validateLogSet(models.LogSetInput{ActualRpe: &rpeOK}); err != nil {
		t.Errorf("valid rpe rejected: %v", err)
	}
	if err := validateLogSet(models.LogSetInput{ActualReps: &reps}); err == nil {
		t.Error("negative reps accepted")
	}
	if err := validateLogSet(models.LogSetInput{ActualWeight: &weight}); err == nil {
		t.Error("negative weight accepted")
	}
	if err := validateLogSet(models.LogSetInput{ActualRpe: &rpeHigh}); err == nil {
		t.Error("rpe above 10 accepted")
	}
}

// TestParseDateRange verifies the both-or-none rule and the end-of-day
// extension for date-only endDate values.
func TestParseDateRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?startDate=2026-03-01&endDate=2026-03-07", nil)
	start, end, err := parseDateRange(req)
	if err != nil {
		t.Fatalf("parseDateRange error: %v", err)
	}
	if start == nil || end == nil {
		t.Fatal("range not parsed")
	}
	wantEnd := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v (end of day)", end, wantEnd)
	}

	req = httptest.NewRequest(http.MethodGet, "/?startDate=2026-03-01", nil)
	start, end, err = parseDateRange(req)
	if err != nil || start != nil || end != nil {
		t.Errorf("lone startDate: start=%v end=%v err=%v, want all nil", start, end, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/?startDate=bogus&endDate=2026-03-07", nil)
	if _, _, err := parseDateRange(req); err == nil {
		t.Error("bogus startDate accepted")
	}
}

// TestValidateExerciseEnums verifies catalog enum validation.
func TestValidateExerciseEnums(t *testing.T) {
	if err := validateExerciseEnums("Bench Press", []string{"CHEST", "TRICEPS"}, []string{"BARBELL"}); err != nil {
		t.Errorf("valid enums rejected: %v", err)
	}
	if err := validateExerciseEnums("", nil, nil); err == nil {
		t.Error("empty name accepted")
	}
	if err := validateExerciseEnums("X", []string{"WINGS"}, nil); err == nil {
		t.Error("unknown muscle group accepted")
	}
	if err := validateExerciseEnums("X", nil, []string{"TRACTOR"}); err == nil {
		t.Error("unknown equipment accepted")
	}
}
