// Package api provides a read-only HTTP view of the running colony.
// All endpoints are GET: the simulation is driven from the command loop,
// the API exists so dashboards and scripts can watch it.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hollowfield/warrensim/internal/engine"
	"github.com/hollowfield/warrensim/internal/leaderboard"
	"github.com/hollowfield/warrensim/internal/persistence"
)

// Server serves colony state over HTTP.
type Server struct {
	// State returns a snapshot of the current colony. Must be safe to call
	// from any goroutine.
	State func() engine.ColonyState

	Eng         *engine.Engine
	DB          *persistence.DB
	Leaderboard *leaderboard.Client
	Port        int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// The leaderboard endpoint hits a remote service on every request.
	leaderboardLimiter := NewRateLimiter(60, time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/state", s.handleState)
	mux.HandleFunc("/api/v1/runs", s.handleRuns)
	mux.HandleFunc("/api/v1/achievements", s.handleAchievements)
	mux.HandleFunc("/api/v1/leaderboard", RateLimitMiddleware(leaderboardLimiter, s.handleLeaderboard))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.State()
	counts := st.BreedCounts()

	status := map[string]any{
		"day":                st.Day,
		"rabbits":            len(st.Population),
		"rabbits_common":     counts["common"],
		"rabbits_rare":       counts["rare"],
		"rabbits_legendary":  counts["legendary"],
		"coins":              st.Coins,
		"food":               st.Food,
		"water":              st.Water,
		"houses":             st.Houses,
		"capacity":           s.Eng.Capacity(st),
		"food_tier":          string(st.FoodTier),
		"water_tier":         string(st.WaterTier),
		"epidemic_active":    st.EpidemicActive,
		"epidemic_days_left": st.EpidemicDaysLeft,
		"infected":           len(st.InfectedIDs),
		"achievements":       len(st.UnlockedAchievements),
		"total_born":         st.TotalBorn,
		"total_coins_earned": st.TotalCoinsEarned,
		"game_over":          st.GameOver(),
	}
	if st.PendingEvent != nil {
		status["pending_event"] = map[string]any{
			"id":     st.PendingEvent.ID,
			"name":   st.PendingEvent.Name,
			"rarity": string(st.PendingEvent.Rarity),
		}
	}
	writeJSON(w, status)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.State())
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	runs, err := s.DB.ListRuns(limit)
	if err != nil {
		slog.Error("run history query failed", "error", err)
		writeJSON(w, []engine.RunRecord{})
		return
	}
	if runs == nil {
		runs = []engine.RunRecord{}
	}
	writeJSON(w, runs)
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	st := s.State()

	type achievementEntry struct {
		ID          string `json:"id"`
		UnlockedDay int    `json:"unlocked_day"`
	}

	entries := make([]achievementEntry, 0, len(st.UnlockedAchievements))
	for _, id := range st.UnlockedAchievements {
		entries = append(entries, achievementEntry{
			ID:          id,
			UnlockedDay: st.AchievementUnlockDay[id],
		})
	}
	writeJSON(w, entries)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if !s.Leaderboard.Enabled() {
		http.Error(w, "leaderboard not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	rows, err := s.Leaderboard.TopProgress(r.Context(), limit)
	if err != nil {
		slog.Error("leaderboard fetch failed", "error", err)
		http.Error(w, "leaderboard unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, rows)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("JSON encode failed", "error", err)
	}
}
