// Package storage provides SQLite-based persistence for finished sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Session is the summary of one finished board.
type Session struct {
	ID            int64
	GameID        string
	MemoriesFound int
	MemoriesTotal int
	MovesUsed     int
	MaxCascade    int // longest cascade of a single turn
	Won           bool
	CreatedAt     time.Time
}

// AlbumEntry tells how often a memory has been uncovered.
type AlbumEntry struct {
	MemoryID   string
	Times      int
	FirstFound time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			memories_found INTEGER NOT NULL DEFAULT 0,
			memories_total INTEGER NOT NULL DEFAULT 0,
			moves_used INTEGER NOT NULL DEFAULT 0,
			max_cascade INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(game_id, won DESC, memories_found DESC, moves_used ASC);

		CREATE TABLE IF NOT EXISTS memory_finds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			memory_id TEXT NOT NULL,
			found_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_memory_finds_memory ON memory_finds(memory_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session and the memories it uncovered.
// Returns the ID of the inserted session.
func (s *Store) SaveSession(sess Session, found []string) (int64, error) {
	if sess.GameID == "" {
		return 0, errors.New("storage: session without game id")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.Exec(
		`INSERT INTO sessions (game_id, memories_found, memories_total, moves_used, max_cascade, won)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.GameID, sess.MemoriesFound, sess.MemoriesTotal, sess.MovesUsed, sess.MaxCascade, boolInt(sess.Won),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, memoryID := range found {
		if _, err := tx.Exec(
			"INSERT INTO memory_finds (session_id, memory_id) VALUES (?, ?)",
			id, memoryID,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save memory %s: %w", memoryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return id, nil
}

// TopSessions retrieves the best N sessions for the given game.
// Wins come first, then more memories, then fewer moves.
func (s *Store) TopSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, memories_found, memories_total, moves_used, max_cascade, won, created_at
		 FROM sessions
		 WHERE game_id = ?
		 ORDER BY won DESC, memories_found DESC, moves_used ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var createdAt any
		if err := rows.Scan(
			&sess.ID, &sess.GameID, &sess.MemoriesFound, &sess.MemoriesTotal,
			&sess.MovesUsed, &sess.MaxCascade, &sess.Won, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// BestMemories returns the most memories uncovered in one session of the game.
// Returns 0 if the game has never been played.
func (s *Store) BestMemories(gameID string) (int, error) {
	var best int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(memories_found), 0) FROM sessions WHERE game_id = ?",
		gameID,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get best memories: %w", err)
	}
	return best, nil
}

// Album lists every memory ever uncovered, most frequent first.
func (s *Store) Album() ([]AlbumEntry, error) {
	rows, err := s.db.Query(
		`SELECT memory_id, COUNT(*), MIN(found_at)
		 FROM memory_finds
		 GROUP BY memory_id
		 ORDER BY COUNT(*) DESC, memory_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query album: %w", err)
	}
	defer rows.Close()

	var album []AlbumEntry
	for rows.Next() {
		var e AlbumEntry
		var first any
		if err := rows.Scan(&e.MemoryID, &e.Times, &first); err != nil {
			return nil, fmt.Errorf("storage: cannot scan album row: %w", err)
		}
		e.FirstFound = parseTime(first)
		album = append(album, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return album, nil
}

// ClearSessions removes all sessions of the given game and their memory finds.
func (s *Store) ClearSessions(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		"DELETE FROM memory_finds WHERE session_id IN (SELECT id FROM sessions WHERE game_id = ?)",
		gameID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear memory finds: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return tx.Commit()
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID       string
	Sessions     int
	Wins         int
	BestMemories int
	AvgMemories  float64
	TotalMoves   int64
	LastPlayed   time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(memories_found), 0),
		        COALESCE(AVG(memories_found), 0), COALESCE(SUM(moves_used), 0), MAX(created_at)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Sessions, &stats.Wins, &stats.BestMemories, &stats.AvgMemories, &stats.TotalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), SUM(won), MAX(memories_found), AVG(memories_found), SUM(moves_used), MAX(created_at)
		 FROM sessions
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.Sessions, &gs.Wins, &gs.BestMemories, &gs.AvgMemories, &gs.TotalMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// boolInt stores booleans as 0/1 so SUM(won) counts wins.
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTime handles both time.Time and string datetime values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
