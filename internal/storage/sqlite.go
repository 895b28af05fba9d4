// Package storage provides SQLite-based persistence for save slots.
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

	"github.com/vovakirdan/tui-parallax/internal/layers"
	"github.com/vovakirdan/tui-parallax/internal/world"
)

// ErrSlotNotFound is returned when loading a slot that was never saved.
var ErrSlotNotFound = errors.New("storage: slot not found")

const (
	scopeMap    = "map"
	scopeBattle = "battle"
)

// Store manages the SQLite database connection for save slots.
type Store struct {
	db *sql.DB
}

// SlotInfo summarises one save slot.
type SlotInfo struct {
	Name      string
	MapID     int
	Layers    int
	UpdatedAt time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			map_id INTEGER NOT NULL,
			current_map INTEGER NOT NULL,
			player_x INTEGER NOT NULL,
			player_y INTEGER NOT NULL,
			direction INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS save_variables (
			slot TEXT NOT NULL,
			var_id INTEGER NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (slot, var_id)
		);

		CREATE TABLE IF NOT EXISTS save_layers (
			slot TEXT NOT NULL,
			scope TEXT NOT NULL,
			map_id INTEGER NOT NULL,
			layer_id INTEGER NOT NULL,
			blank INTEGER NOT NULL DEFAULT 0,
			kind INTEGER NOT NULL DEFAULT 0,
			graphic TEXT NOT NULL DEFAULT '',
			opacity REAL NOT NULL DEFAULT 0,
			z REAL NOT NULL DEFAULT 0,
			blend REAL NOT NULL DEFAULT 0,
			x_speed REAL NOT NULL DEFAULT 0,
			y_speed REAL NOT NULL DEFAULT 0,
			x_shift REAL NOT NULL DEFAULT 0,
			y_shift REAL NOT NULL DEFAULT 0,
			current_x REAL NOT NULL DEFAULT 0,
			current_y REAL NOT NULL DEFAULT 0,
			x REAL NOT NULL DEFAULT 0,
			y REAL NOT NULL DEFAULT 0,
			x_anchor REAL NOT NULL DEFAULT 0,
			y_anchor REAL NOT NULL DEFAULT 0,
			character INTEGER NOT NULL DEFAULT 0,
			rotate INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (slot, scope, map_id, layer_id)
		);
		CREATE INDEX IF NOT EXISTS idx_save_layers_slot ON save_layers(slot);
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

// SaveSlot writes st under name, replacing any previous save in that slot.
func (s *Store) SaveSlot(name string, st world.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteSlot(tx, name); err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT INTO saves (slot, map_id, current_map, player_x, player_y, direction, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		name, st.MapID, st.Layers.CurrentMap, st.PlayerX, st.PlayerY, st.Direction,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot: %w", err)
	}

	for id, val := range st.Variables {
		if _, err := tx.Exec(
			"INSERT INTO save_variables (slot, var_id, value) VALUES (?, ?, ?)",
			name, id, val,
		); err != nil {
			return fmt.Errorf("storage: cannot save variable %d: %w", id, err)
		}
	}

	for mapID, table := range st.Layers.Maps {
		for id, d := range table {
			if err := insertLayer(tx, name, scopeMap, mapID, id, d); err != nil {
				return err
			}
		}
	}
	for id, d := range st.Layers.Battle {
		if err := insertLayer(tx, name, scopeBattle, 0, id, d); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit slot: %w", err)
	}
	return nil
}

func insertLayer(tx *sql.Tx, slot, scope string, mapID, id int, d *layers.Descriptor) error {
	blank := d == nil
	if blank {
		d = &layers.Descriptor{}
	}
	_, err := tx.Exec(
		`INSERT INTO save_layers
		 (slot, scope, map_id, layer_id, blank, kind, graphic, opacity, z, blend,
		  x_speed, y_speed, x_shift, y_shift, current_x, current_y,
		  x, y, x_anchor, y_anchor, character, rotate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		slot, scope, mapID, id, blank, int(d.Kind), d.Graphic, d.Opacity, d.Z, d.Blend,
		d.XSpeed, d.YSpeed, d.XShift, d.YShift, d.CurrentX, d.CurrentY,
		d.X, d.Y, d.XAnchor, d.YAnchor, d.Character, d.Rotate,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save layer %s/%d/%d: %w", scope, mapID, id, err)
	}
	return nil
}

// LoadSlot reads the save stored under name.
// Returns ErrSlotNotFound if the slot does not exist.
func (s *Store) LoadSlot(name string) (world.State, error) {
	st := world.State{
		Variables: make(map[int]float64),
		Layers: layers.Snapshot{
			Maps:   make(map[int]map[int]*layers.Descriptor),
			Battle: make(map[int]*layers.Descriptor),
		},
	}

	err := s.db.QueryRow(
		`SELECT map_id, current_map, player_x, player_y, direction
		 FROM saves WHERE slot = ?`,
		name,
	).Scan(&st.MapID, &st.Layers.CurrentMap, &st.PlayerX, &st.PlayerY, &st.Direction)
	if errors.Is(err, sql.ErrNoRows) {
		return st, ErrSlotNotFound
	}
	if err != nil {
		return st, fmt.Errorf("storage: cannot query slot: %w", err)
	}

	if err := s.loadVariables(name, st.Variables); err != nil {
		return st, err
	}
	if err := s.loadLayers(name, &st.Layers); err != nil {
		return st, err
	}
	return st, nil
}

func (s *Store) loadVariables(slot string, out map[int]float64) error {
	rows, err := s.db.Query("SELECT var_id, value FROM save_variables WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot query variables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var val float64
		if err := rows.Scan(&id, &val); err != nil {
			return fmt.Errorf("storage: cannot scan variable: %w", err)
		}
		out[id] = val
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("storage: row iteration error: %w", err)
	}
	return nil
}

func (s *Store) loadLayers(slot string, snap *layers.Snapshot) error {
	rows, err := s.db.Query(
		`SELECT scope, map_id, layer_id, blank, kind, graphic, opacity, z, blend,
		        x_speed, y_speed, x_shift, y_shift, current_x, current_y,
		        x, y, x_anchor, y_anchor, character, rotate
		 FROM save_layers WHERE slot = ?`,
		slot,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot query layers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			scope     string
			mapID, id int
			blank     bool
			kind      int
			d         layers.Descriptor
		)
		if err := rows.Scan(
			&scope, &mapID, &id, &blank, &kind, &d.Graphic, &d.Opacity, &d.Z, &d.Blend,
			&d.XSpeed, &d.YSpeed, &d.XShift, &d.YShift, &d.CurrentX, &d.CurrentY,
			&d.X, &d.Y, &d.XAnchor, &d.YAnchor, &d.Character, &d.Rotate,
		); err != nil {
			return fmt.Errorf("storage: cannot scan layer: %w", err)
		}
		d.Kind = layers.Kind(kind)

		var desc *layers.Descriptor
		if !blank {
			desc = &d
		}
		switch scope {
		case scopeBattle:
			snap.Battle[id] = desc
		default:
			t, ok := snap.Maps[mapID]
			if !ok {
				t = make(map[int]*layers.Descriptor)
				snap.Maps[mapID] = t
			}
			t[id] = desc
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("storage: row iteration error: %w", err)
	}
	return nil
}

// ListSlots returns every save slot, most recently updated first.
func (s *Store) ListSlots() ([]SlotInfo, error) {
	rows, err := s.db.Query(
		`SELECT s.slot, s.map_id, s.updated_at,
		        (SELECT COUNT(*) FROM save_layers l WHERE l.slot = s.slot AND l.blank = 0)
		 FROM saves s
		 ORDER BY s.updated_at DESC, s.slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query slots: %w", err)
	}
	defer rows.Close()

	var slots []SlotInfo
	for rows.Next() {
		var info SlotInfo
		var updatedAt any
		if err := rows.Scan(&info.Name, &info.MapID, &updatedAt, &info.Layers); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTime(updatedAt)
		slots = append(slots, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return slots, nil
}

// DeleteSlot removes a save slot. Deleting a missing slot is not an error.
func (s *Store) DeleteSlot(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteSlot(tx, name); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

func deleteSlot(tx *sql.Tx, name string) error {
	for _, table := range []string{"saves", "save_variables", "save_layers"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE slot = ?", name); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	return nil
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
