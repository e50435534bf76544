package mcp

import (
	"context"
	"log/slog"

	"github.com/claude/ironlog/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(db *storage.DB, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("IronLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("IronLog workout tracking server. Query training sessions, volume and 1RM progression, and personal records. All data is scoped to the authenticated user."),
	)

	h := &handlers{db: db, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetDashboardStats, Handler: h.getDashboardStats},
		server.ServerTool{Tool: toolGetVolumeSeries, Handler: h.getVolumeSeries},
		server.ServerTool{Tool: toolGet1RMProgression, Handler: h.get1RMProgression},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
	)

	s.AddResources(
		server.ServerResource{Resource: resTrainingSummary, Handler: h.trainingSummary},
		server.ServerResource{Resource: resPersonalRecords, Handler: h.personalRecords},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db  *storage.DB
	log *slog.Logger
}

// --- Resource definitions ---

var resTrainingSummary = mcp.NewResource(
	"ironlog://training_summary",
	"Training Summary",
	mcp.WithResourceDescription("Dashboard summary: weekly volume, current streak, total workouts, latest bodyweight, recent PRs"),
	mcp.WithMIMEType("application/json"),
)

var resPersonalRecords = mcp.NewResource(
	"ironlog://personal_records",
	"Personal Records",
	mcp.WithResourceDescription("Best estimated 1RM and best single-set volume per exercise"),
	mcp.WithMIMEType("application/json"),
)
