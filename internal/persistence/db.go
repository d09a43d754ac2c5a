// Package persistence provides SQLite-based storage for the colony save,
// the append-only run history and the persistent player identity.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/hollowfield/warrensim/internal/engine"
)

// schemaVersion is bumped whenever the save payload shape changes in a way
// load-time defaulting cannot absorb.
const schemaVersion = 1

// DB wraps a SQLite connection for game state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS colony_save (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		schema_version INTEGER NOT NULL,
		payload TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS player_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_ended_at TEXT NOT NULL,
		day INTEGER NOT NULL,
		total_coins_earned INTEGER NOT NULL,
		rabbits INTEGER NOT NULL,
		houses INTEGER NOT NULL,
		achievements_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_player_runs_ended ON player_runs(run_ended_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveState writes the current colony state as the single save slot.
func (db *DB) SaveState(s engine.ColonyState) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = db.conn.Exec(
		`INSERT OR REPLACE INTO colony_save (id, schema_version, payload, saved_at) VALUES (1, ?, ?, ?)`,
		schemaVersion, string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LoadState reads the save slot. ok is false when no save exists. The
// payload is unmarshaled over a blank state so fields missing from older
// saves keep their schema defaults.
func (db *DB) LoadState() (engine.ColonyState, bool, error) {
	var payload string
	err := db.conn.Get(&payload, "SELECT payload FROM colony_save WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return engine.ColonyState{}, false, nil
	}
	if err != nil {
		return engine.ColonyState{}, false, err
	}

	s := engine.BlankState()
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return engine.ColonyState{}, false, fmt.Errorf("unmarshal state: %w", err)
	}
	repairState(&s)
	return s, true, nil
}

// DeleteState clears the save slot (used on game over before a new run).
func (db *DB) DeleteState() error {
	_, err := db.conn.Exec("DELETE FROM colony_save WHERE id = 1")
	return err
}

// repairState restores internal consistency after loading: nil collections
// become empty and infection references to missing rabbits are dropped.
func repairState(s *engine.ColonyState) {
	if s.Day < 1 {
		s.Day = 1
	}
	if s.Houses < 1 {
		s.Houses = 1
	}
	alive := make(map[string]bool, len(s.Population))
	for _, ind := range s.Population {
		alive[ind.ID] = true
	}
	s.InfectedIDs = filterIDs(s.InfectedIDs, alive)
	infected := make(map[string]bool, len(s.InfectedIDs))
	for _, id := range s.InfectedIDs {
		infected[id] = true
	}
	s.IsolatedIDs = filterIDs(s.IsolatedIDs, infected)
	if s.EpidemicActive && len(s.InfectedIDs) == 0 {
		s.EpidemicActive = false
		s.EpidemicDaysLeft = 0
		s.IsolationChosen = false
	}
}

func filterIDs(ids []string, keep map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if keep[id] {
			out = append(out, id)
		}
	}
	return out
}

// SaveRun appends a finished run to the history.
func (db *DB) SaveRun(r engine.RunRecord) error {
	achievements, err := json.Marshal(r.Achievements)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(
		`INSERT INTO player_runs (run_ended_at, day, total_coins_earned, rabbits, houses, achievements_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.EndedAt.UTC().Format(time.RFC3339), r.Day, r.TotalCoinsEarned, r.Rabbits, r.Houses, string(achievements),
	)
	return err
}

type runRow struct {
	RunEndedAt       string `db:"run_ended_at"`
	Day              int    `db:"day"`
	TotalCoinsEarned int    `db:"total_coins_earned"`
	Rabbits          int    `db:"rabbits"`
	Houses           int    `db:"houses"`
	AchievementsJSON string `db:"achievements_json"`
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]engine.RunRecord, error) {
	var rows []runRow
	err := db.conn.Select(&rows,
		"SELECT run_ended_at, day, total_coins_earned, rabbits, houses, achievements_json FROM player_runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}

	out := make([]engine.RunRecord, 0, len(rows))
	for _, row := range rows {
		endedAt, _ := time.Parse(time.RFC3339, row.RunEndedAt)
		var achievements []string
		if err := json.Unmarshal([]byte(row.AchievementsJSON), &achievements); err != nil {
			achievements = nil
		}
		out = append(out, engine.RunRecord{
			Day:              row.Day,
			TotalCoinsEarned: row.TotalCoinsEarned,
			EndedAt:          endedAt,
			Rabbits:          row.Rabbits,
			Houses:           row.Houses,
			Achievements:     achievements,
		})
	}
	return out, nil
}

// BestRun returns the historical run with the most rabbits, ok false when
// no run has finished yet.
func (db *DB) BestRun() (engine.RunRecord, bool, error) {
	var rows []runRow
	err := db.conn.Select(&rows,
		"SELECT run_ended_at, day, total_coins_earned, rabbits, houses, achievements_json FROM player_runs ORDER BY rabbits DESC, day DESC LIMIT 1",
	)
	if err != nil || len(rows) == 0 {
		return engine.RunRecord{}, false, err
	}
	row := rows[0]
	endedAt, _ := time.Parse(time.RFC3339, row.RunEndedAt)
	var achievements []string
	_ = json.Unmarshal([]byte(row.AchievementsJSON), &achievements)
	return engine.RunRecord{
		Day:              row.Day,
		TotalCoinsEarned: row.TotalCoinsEarned,
		EndedAt:          endedAt,
		Rabbits:          row.Rabbits,
		Houses:           row.Houses,
		Achievements:     achievements,
	}, true, nil
}

// SetMeta stores a key-value pair.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}

// PlayerID returns the persistent player identifier, generating and
// storing a fresh UUID on first call. The id survives game resets.
func (db *DB) PlayerID() (string, error) {
	id, err := db.GetMeta("player_id")
	if err == nil && strings.TrimSpace(id) != "" {
		return id, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	id = uuid.NewString()
	if err := db.SetMeta("player_id", id); err != nil {
		return "", err
	}
	return id, nil
}
