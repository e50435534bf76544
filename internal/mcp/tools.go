package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// --- Tool definitions ---

var toolGetDashboardStats = mcp.NewTool("get_dashboard_stats",
	mcp.WithDescription("Dashboard summary: trailing-7-day training volume, current daily streak, total completed workouts, latest bodyweight, and the five most recent personal-record sets."),
)

var toolGetVolumeSeries = mcp.NewTool("get_volume_series",
	mcp.WithDescription("Per-session total training volume (reps x weight summed over all sets) for completed sessions in a trailing window, oldest first."),
	mcp.WithNumber("days", mcp.Description("Window size in days. Defaults to 30.")),
)

var toolGet1RMProgression = mcp.NewTool("get_1rm_progression",
	mcp.WithDescription("Estimated one-rep-max (Epley) per logged set in completed sessions, in log order. Optionally filtered to one exercise."),
	mcp.WithString("exercise_id", mcp.Description("Exercise UUID to filter by. Omit for all exercises.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Per-exercise bests: the set with the highest estimated 1RM (weight, reps, 1RM, date) and the highest single-set volume. The two can come from different sets."),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Workout sessions with their exercises and sets, newest first. Includes derived volume/1RM/PR flags per set."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("Exercise catalog entries visible to the user, with muscle groups and equipment."),
	mcp.WithString("q", mcp.Description("Substring filter on the exercise name.")),
)

// --- Tool handlers ---

func (h *handlers) getDashboardStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.db.GetDashboardStats(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_dashboard_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats)
}

func (h *handlers) getVolumeSeries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 30)
	if days < 1 {
		return mcp.NewToolResultError("days must be positive"), nil
	}

	points, err := h.db.GetVolumeSeries(ctx, UserIDFromContext(ctx), days)
	if err != nil {
		h.log.Error("mcp get_volume_series", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(points)
}

func (h *handlers) get1RMProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var exerciseID *uuid.UUID
	if v := req.GetString("exercise_id", ""); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return mcp.NewToolResultError("invalid exercise_id"), nil
		}
		exerciseID = &id
	}

	points, err := h.db.GetOneRMSeries(ctx, UserIDFromContext(ctx), exerciseID)
	if err != nil {
		h.log.Error("mcp get_1rm_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(points)
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := h.db.GetPersonalRecords(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(records)
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if v := req.GetString("start", ""); v != "" {
		t, err := parseFlexTime(v)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
		start = t
	}
	if v := req.GetString("end", ""); v != "" {
		t, err := parseFlexTime(v)
		if err != nil {
			return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
		}
		end = t
	}

	sessions, err := h.db.ListSessions(ctx, UserIDFromContext(ctx), &start, &end)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(sessions)
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := models.ExerciseFilter{Query: req.GetString("q", ""), Sort: "name", Page: 1, PageSize: 200}

	exercises, _, err := h.db.ListExercises(ctx, UserIDFromContext(ctx), f)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(exercises)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Resource handlers ---

func (h *handlers) trainingSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats, err := h.db.GetDashboardStats(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return resourceJSON(req.Params.URI, stats)
}

func (h *handlers) personalRecords(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := h.db.GetPersonalRecords(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return resourceJSON(req.Params.URI, records)
}

func resourceJSON(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
