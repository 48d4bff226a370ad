// Package storage provides SQLite-based persistence for save slots and run
// history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/save"
)

// ErrNoSave is returned by LoadGame when the slot holds no save.
var ErrNoSave = errors.New("storage: no save")

const (
	kindEnemy = "enemy"
	kindGrass = "grass"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveInfo summarizes one save slot.
type SaveInfo struct {
	Slot      string
	MapID     string
	Exp       float64
	Health    float64
	UpdatedAt time.Time
}

// RunEntry is one finished run, recorded on game over.
type RunEntry struct {
	ID        int64
	Player    string
	MapID     string
	Exp       int
	Kills     int
	Duration  time.Duration
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			map_id TEXT NOT NULL,
			pos_x REAL NOT NULL,
			pos_y REAL NOT NULL,
			health REAL NOT NULL,
			energy REAL NOT NULL,
			exp REAL NOT NULL,
			stats TEXT NOT NULL,
			max_stats TEXT NOT NULL,
			upgrade_cost TEXT NOT NULL,
			weapon_index INTEGER NOT NULL DEFAULT 0,
			magic_index INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS save_cleared (
			slot TEXT NOT NULL,
			kind TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			PRIMARY KEY (slot, kind, x, y)
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			map_id TEXT NOT NULL,
			exp INTEGER NOT NULL,
			kills INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(exp DESC);
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

// SaveGame replaces the contents of a slot with the given state.
func (s *Store) SaveGame(slot string, st save.State) error {
	stats, err := json.Marshal(st.Player.Stats)
	if err != nil {
		return fmt.Errorf("storage: encode stats: %w", err)
	}
	maxStats, err := json.Marshal(st.Player.MaxStats)
	if err != nil {
		return fmt.Errorf("storage: encode max stats: %w", err)
	}
	cost, err := json.Marshal(st.Player.UpgradeCost)
	if err != nil {
		return fmt.Errorf("storage: encode upgrade cost: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	p := st.Player
	_, err = tx.Exec(
		`INSERT INTO saves
		 (slot, map_id, pos_x, pos_y, health, energy, exp, stats, max_stats, upgrade_cost, weapon_index, magic_index, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   map_id = excluded.map_id, pos_x = excluded.pos_x, pos_y = excluded.pos_y,
		   health = excluded.health, energy = excluded.energy, exp = excluded.exp,
		   stats = excluded.stats, max_stats = excluded.max_stats, upgrade_cost = excluded.upgrade_cost,
		   weapon_index = excluded.weapon_index, magic_index = excluded.magic_index,
		   updated_at = CURRENT_TIMESTAMP`,
		slot, st.MapID, p.Pos.X, p.Pos.Y, p.Health, p.Energy, p.Exp,
		string(stats), string(maxStats), string(cost), p.WeaponIndex, p.MagicIndex,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM save_cleared WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot clear tiles: %w", err)
	}
	insert := func(kind string, points []core.Point) error {
		for _, pt := range points {
			if _, err := tx.Exec(
				"INSERT OR IGNORE INTO save_cleared (slot, kind, x, y) VALUES (?, ?, ?, ?)",
				slot, kind, pt.X, pt.Y,
			); err != nil {
				return fmt.Errorf("storage: cannot save %s tile: %w", kind, err)
			}
		}
		return nil
	}
	if err := insert(kindEnemy, st.DefeatedEnemies); err != nil {
		return err
	}
	if err := insert(kindGrass, st.DestroyedGrass); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

// LoadGame reads a slot. Returns ErrNoSave if the slot is empty.
func (s *Store) LoadGame(slot string) (save.State, error) {
	var (
		st                    save.State
		stats, maxStats, cost string
	)
	p := &st.Player
	err := s.db.QueryRow(
		`SELECT map_id, pos_x, pos_y, health, energy, exp, stats, max_stats, upgrade_cost, weapon_index, magic_index
		 FROM saves WHERE slot = ?`,
		slot,
	).Scan(&st.MapID, &p.Pos.X, &p.Pos.Y, &p.Health, &p.Energy, &p.Exp,
		&stats, &maxStats, &cost, &p.WeaponIndex, &p.MagicIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return save.State{}, ErrNoSave
	}
	if err != nil {
		return save.State{}, fmt.Errorf("storage: cannot load game: %w", err)
	}

	for _, col := range []struct {
		raw string
		dst *map[string]float64
	}{
		{stats, &p.Stats},
		{maxStats, &p.MaxStats},
		{cost, &p.UpgradeCost},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
			return save.State{}, fmt.Errorf("storage: corrupt save %q: %w", slot, err)
		}
	}

	rows, err := s.db.Query(
		"SELECT kind, x, y FROM save_cleared WHERE slot = ? ORDER BY kind, y, x",
		slot,
	)
	if err != nil {
		return save.State{}, fmt.Errorf("storage: cannot query tiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var pt core.Point
		if err := rows.Scan(&kind, &pt.X, &pt.Y); err != nil {
			return save.State{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		switch kind {
		case kindEnemy:
			st.DefeatedEnemies = append(st.DefeatedEnemies, pt)
		case kindGrass:
			st.DestroyedGrass = append(st.DestroyedGrass, pt)
		}
	}
	if err := rows.Err(); err != nil {
		return save.State{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return st, nil
}

// HasSave reports whether a slot holds a save.
func (s *Store) HasSave(slot string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM saves WHERE slot = ?", slot).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot query save: %w", err)
	}
	return n > 0, nil
}

// DeleteSave removes a slot and its cleared tiles.
func (s *Store) DeleteSave(slot string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("DELETE FROM save_cleared WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete tiles: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return tx.Commit()
}

// ListSaves returns every slot, most recently updated first.
func (s *Store) ListSaves() ([]SaveInfo, error) {
	rows, err := s.db.Query(
		`SELECT slot, map_id, exp, health, updated_at
		 FROM saves
		 ORDER BY updated_at DESC, slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var infos []SaveInfo
	for rows.Next() {
		var info SaveInfo
		var updatedAt any
		if err := rows.Scan(&info.Slot, &info.MapID, &info.Exp, &info.Health, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTime(updatedAt)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return infos, nil
}

// RecordRun stores a finished run. Returns the ID of the inserted record.
func (s *Store) RecordRun(run RunEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (player, map_id, exp, kills, duration_ms) VALUES (?, ?, ?, ?, ?)",
		run.Player, run.MapID, run.Exp, run.Kills, run.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the best N runs by experience.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, map_id, exp, kills, duration_ms, created_at
		 FROM runs
		 ORDER BY exp DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.MapID, &e.Exp, &e.Kills, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
