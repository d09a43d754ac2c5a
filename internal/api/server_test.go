package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowfield/warrensim/internal/config"
	"github.com/hollowfield/warrensim/internal/engine"
	"github.com/hollowfield/warrensim/internal/entropy"
)

func testServer() *Server {
	state := engine.NewGame(config.Default())
	state.Day = 9
	state.Coins = 123
	return &Server{
		State: func() engine.ColonyState { return state },
		Eng:   engine.New(config.Default(), entropy.NewSeeded(1)),
	}
}

func TestHandleStatus(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(9), got["day"])
	assert.Equal(t, float64(123), got["coins"])
	assert.Equal(t, float64(1), got["rabbits"])
	assert.Equal(t, float64(4), got["capacity"])
	assert.Equal(t, false, got["game_over"])
	assert.NotContains(t, got, "pending_event")
}

func TestHandleState(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleState(rec, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got engine.ColonyState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 9, got.Day)
	assert.Len(t, got.Population, 1)
}

func TestHandleRunsWithoutDB(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleRuns(rec, httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleLeaderboardUnconfigured(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleLeaderboard(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSAllowsLocalhost(t *testing.T) {
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "buckets are per address")
}
