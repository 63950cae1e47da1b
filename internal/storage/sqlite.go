// Package storage keeps finished snake runs in a local SQLite database.
// It uses the pure-Go modernc.org/sqlite driver, so no CGO is needed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// LocalPlayer is the player name recorded for runs played outside SSH.
const LocalPlayer = "local"

const timeLayout = "2006-01-02 15:04:05"

// Store wraps the database handle.
type Store struct {
	db *sql.DB
}

// Run is one finished game.
type Run struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	Level     int // Level reached, 1-based
	Length    int // Final body length
	Ticks     uint64
	CreatedAt time.Time
}

// Stats aggregates the runs of one game.
type Stats struct {
	GameID       string
	Runs         int
	HighScore    int
	AvgScore     float64
	BestLevel    int
	LongestSnake int
	LastPlayed   time.Time
}

// Open opens (or creates) the database at path and brings the schema up to
// date. A leading ~ is expanded to the home directory.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'local',
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			length INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player, game_id);
	`)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun records a finished run and returns its row ID. An empty player is
// stored as LocalPlayer.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.GameID == "" {
		return 0, errors.New("storage: run has no game id")
	}
	if r.Player == "" {
		r.Player = LocalPlayer
	}

	res, err := s.db.Exec(
		`INSERT INTO runs (game_id, player, score, level, length, ticks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Player, r.Score, max(r.Level, 1), r.Length, int64(r.Ticks),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs of a game, highest score first. Ties go to
// the earlier run. A non-positive limit means 10.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, game_id, player, score, level, length, ticks, created_at
		 FROM runs WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// PlayerRuns returns one player's runs of a game, highest score first.
func (s *Store) PlayerRuns(player, gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, game_id, player, score, level, length, ticks, created_at
		 FROM runs WHERE player = ? AND game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		player, gameID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			ticks   int64
			created any
		)
		if err := rows.Scan(&r.ID, &r.GameID, &r.Player, &r.Score, &r.Level, &r.Length, &ticks, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTimestamp(created)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// HighScore returns the best score of a game, or 0 when it was never played.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE game_id = ?", gameID).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(score.Int64), nil
}

// ClearRuns deletes every run of a game and reports how many were removed.
func (s *Store) ClearRuns(gameID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

// GameStats aggregates every run of a game. A game with no runs yields zero
// stats, not an error.
func (s *Store) GameStats(gameID string) (*Stats, error) {
	st := &Stats{GameID: gameID}

	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(level), 0), COALESCE(MAX(length), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&st.Runs, &st.HighScore, &st.AvgScore, &st.BestLevel, &st.LongestSnake, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	st.LastPlayed = parseTimestamp(last)
	return st, nil
}

// parseTimestamp accepts what the driver hands back for DATETIME columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
