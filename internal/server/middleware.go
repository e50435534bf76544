package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userInfoKey
)

// UserInfo is the resolved request identity.
type UserInfo struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

func userIDFromContext(r *http.Request) int {
	if id, ok := r.Context().Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

func userInfoFromContext(r *http.Request) UserInfo {
	if info, ok := r.Context().Value(userInfoKey).(UserInfo); ok {
		return info
	}
	return UserInfo{Login: "local", DisplayName: "Local Dev User"}
}

// identity resolves the request user: tailnet WhoIs when a LocalClient is
// set, otherwise the dev fallback (user 1).
func (s *Server) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.lc == nil {
			DevIdentity(next).ServeHTTP(w, r)
			return
		}

		who, err := s.lc.WhoIs(r.Context(), r.RemoteAddr)
		if err != nil || who.UserProfile == nil {
			s.log.Warn("tailscale whois failed", "remote", r.RemoteAddr, "error", err)
			http.Error(w, `{"error":"identity unavailable"}`, http.StatusForbidden)
			return
		}

		userID, err := s.db.GetOrCreateUser(r.Context(), who.UserProfile.LoginName, who.UserProfile.DisplayName)
		if err != nil {
			s.log.Error("user upsert failed", "login", who.UserProfile.LoginName, "error", err)
			http.Error(w, `{"error":"identity unavailable"}`, http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userInfoKey, UserInfo{
			Login:       who.UserProfile.LoginName,
			DisplayName: who.UserProfile.DisplayName,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DevIdentity pins every request to user 1, enabling local development
// without Tailscale.
func DevIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), userIDKey, 1)
		ctx = context.WithValue(ctx, userInfoKey, UserInfo{Login: "local", DisplayName: "Local Dev User"})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogging returns middleware that logs each request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// CORS adds permissive CORS headers for local development.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
