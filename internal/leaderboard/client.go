// Package leaderboard syncs player progress to a remote PostgREST-style
// endpoint. All calls are best-effort: the game never blocks on them and
// the host decides whether to log failures.
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hollowfield/warrensim/internal/engine"
)

// Client talks to the remote leaderboard service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Progress is one player's row in the shared progress table.
type Progress struct {
	PlayerID          string   `json:"player_id"`
	AchievementsCount int      `json:"achievements_count"`
	Achievements      []string `json:"achievements"`
	Day               int      `json:"day"`
	HouseCapacity     int      `json:"house_capacity"`
	RabbitsCommon     int      `json:"rabbits_common"`
	RabbitsRare       int      `json:"rabbits_rare"`
	RabbitsLegendary  int      `json:"rabbits_legendary"`
	CurrentCoins      int      `json:"current_coins"`
	TotalRabbitsBorn  int      `json:"total_rabbits_born"`
	TotalCoinsEarned  int      `json:"total_coins_earned"`
	LastUpdated       string   `json:"last_updated"`
}

// RunSubmission is a finished run posted to the shared run table.
type RunSubmission struct {
	PlayerID         string   `json:"player_id"`
	Day              int      `json:"day"`
	Rabbits          int      `json:"rabbits"`
	Houses           int      `json:"houses"`
	TotalCoinsEarned int      `json:"total_coins_earned"`
	Achievements     []string `json:"achievements"`
	EndedAt          string   `json:"ended_at"`
}

// New creates a leaderboard client. Returns nil when baseURL is empty so
// callers can treat an unconfigured leaderboard as a no-op.
func New(baseURL, apiKey string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		return nil
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Enabled reports whether the client is configured.
func (c *Client) Enabled() bool { return c != nil }

// ProgressFrom builds a Progress row from the live colony state.
func ProgressFrom(playerID string, s engine.ColonyState, capacity int) Progress {
	counts := s.BreedCounts()
	return Progress{
		PlayerID:          playerID,
		AchievementsCount: len(s.UnlockedAchievements),
		Achievements:      s.UnlockedAchievements,
		Day:               s.Day,
		HouseCapacity:     capacity,
		RabbitsCommon:     counts["common"],
		RabbitsRare:       counts["rare"],
		RabbitsLegendary:  counts["legendary"],
		CurrentCoins:      s.Coins,
		TotalRabbitsBorn:  s.TotalBorn,
		TotalCoinsEarned:  s.TotalCoinsEarned,
		LastUpdated:       time.Now().UTC().Format(time.RFC3339),
	}
}

func (p Progress) totalRabbits() int {
	return p.RabbitsCommon + p.RabbitsRare + p.RabbitsLegendary
}

// SyncProgress upserts the player's progress row, but only when the
// current herd beats the remote best. Shrinking herds never downgrade a
// leaderboard entry.
func (c *Client) SyncProgress(ctx context.Context, p Progress) error {
	if c == nil {
		return nil
	}

	existing, found, err := c.fetchProgress(ctx, p.PlayerID)
	if err != nil {
		return fmt.Errorf("fetch progress: %w", err)
	}
	if found && existing.totalRabbits() >= p.totalRabbits() {
		return nil
	}

	return c.postJSON(ctx, "/rest/v1/player_progress", p, map[string]string{
		"Prefer": "resolution=merge-duplicates",
	})
}

// SubmitRun posts a finished run to the shared run table.
func (c *Client) SubmitRun(ctx context.Context, r RunSubmission) error {
	if c == nil {
		return nil
	}
	return c.postJSON(ctx, "/rest/v1/player_runs", r, nil)
}

// TopProgress fetches the current leaderboard, largest herds first.
func (c *Client) TopProgress(ctx context.Context, limit int) ([]Progress, error) {
	if c == nil {
		return nil, nil
	}
	path := fmt.Sprintf("/rest/v1/player_progress?order=total_rabbits_born.desc&limit=%d", limit)
	var out []Progress
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) fetchProgress(ctx context.Context, playerID string) (Progress, bool, error) {
	path := "/rest/v1/player_progress?player_id=eq." + playerID + "&limit=1"
	var rows []Progress
	if err := c.getJSON(ctx, path, &rows); err != nil {
		return Progress{}, false, err
	}
	if len(rows) == 0 {
		return Progress{}, false, nil
	}
	return rows[0], true, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req, nil)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("leaderboard status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) postJSON(ctx context.Context, path string, in any, extra map[string]string) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req, extra)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("leaderboard status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, extra map[string]string) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
}
