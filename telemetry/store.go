package telemetry

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoMatch is returned when a match id is unknown to the store.
var ErrNoMatch = errors.New("match not found")

// Match is one game the agent played.
type Match struct {
	ID         string
	Player     string
	Race       string
	Map        string
	Opponent   string
	Profile    string
	StartedAt  time.Time
	FinishedAt time.Time
	Result     string
}

// Store keeps match records and their samples in sqlite.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path. ":memory:" works for tests.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			race TEXT NOT NULL,
			map TEXT NOT NULL,
			opponent TEXT NOT NULL DEFAULT '',
			profile TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL DEFAULT 0,
			result TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS samples (
			match_id TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			time REAL NOT NULL,
			mineral_rate REAL NOT NULL,
			gas_rate REAL NOT NULL,
			supply_used INTEGER NOT NULL,
			workers INTEGER NOT NULL,
			forces INTEGER NOT NULL,
			army_lost INTEGER NOT NULL,
			army_killed INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS samples_match ON samples(match_id, time);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) StartMatch(m Match) error {
	_, err := s.db.Exec(
		`INSERT INTO matches (id, player, race, map, opponent, profile, started_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Player, m.Race, m.Map, m.Opponent, m.Profile, m.StartedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", m.ID, err)
	}
	return nil
}

func (s *Store) RecordSample(matchID string, sm Sample) error {
	_, err := s.db.Exec(
		`INSERT INTO samples (match_id, time, mineral_rate, gas_rate, supply_used, workers, forces, army_lost, army_killed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		matchID, sm.Time, sm.MineralRate, sm.GasRate, sm.SupplyUsed, sm.Workers, sm.Forces, sm.ArmyLost, sm.ArmyKilled,
	)
	if err != nil {
		return fmt.Errorf("insert sample for %s: %w", matchID, err)
	}
	return nil
}

func (s *Store) FinishMatch(matchID, result string, at time.Time) error {
	res, err := s.db.Exec(`UPDATE matches SET result = ?, finished_at = ? WHERE id = ?`, result, at.UnixMilli(), matchID)
	if err != nil {
		return fmt.Errorf("finish match %s: %w", matchID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish match %s: %w", matchID, ErrNoMatch)
	}
	return nil
}

func (s *Store) Match(matchID string) (Match, error) {
	var m Match
	var started, finished int64
	err := s.db.QueryRow(
		`SELECT id, player, race, map, opponent, profile, started_at, finished_at, result FROM matches WHERE id = ?`, matchID,
	).Scan(&m.ID, &m.Player, &m.Race, &m.Map, &m.Opponent, &m.Profile, &started, &finished, &m.Result)
	if errors.Is(err, sql.ErrNoRows) {
		return Match{}, fmt.Errorf("match %s: %w", matchID, ErrNoMatch)
	}
	if err != nil {
		return Match{}, fmt.Errorf("query match %s: %w", matchID, err)
	}
	m.StartedAt = time.UnixMilli(started)
	if finished != 0 {
		m.FinishedAt = time.UnixMilli(finished)
	}
	return m, nil
}

// Samples returns a match's samples in time order.
func (s *Store) Samples(matchID string) ([]Sample, error) {
	rows, err := s.db.Query(
		`SELECT time, mineral_rate, gas_rate, supply_used, workers, forces, army_lost, army_killed
		 FROM samples WHERE match_id = ? ORDER BY time`, matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("query samples %s: %w", matchID, err)
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		var sm Sample
		if err := rows.Scan(&sm.Time, &sm.MineralRate, &sm.GasRate, &sm.SupplyUsed, &sm.Workers, &sm.Forces, &sm.ArmyLost, &sm.ArmyKilled); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }
