// Package world holds the game state a viewer session plays through:
// variables, characters, the current map with its camera, and the layer
// registry that persists across map transitions.
package world

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-parallax/internal/layers"
	"github.com/vovakirdan/tui-parallax/internal/maps"
)

// Options configures a Session.
type Options struct {
	TileW, TileH int     // Tile size in screen cells
	ViewW, ViewH int     // Map viewport in screen cells
	PlayerSpeed  float64 // Tiles per tick
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		TileW:       2,
		TileH:       1,
		ViewW:       80,
		ViewH:       22,
		PlayerSpeed: DefaultSpeed,
	}
}

// State is a detached copy of a session for saving.
// Uses plain values only so storage needs no knowledge of live objects.
type State struct {
	MapID     int
	PlayerX   int
	PlayerY   int
	Direction int
	Variables map[int]float64
	Layers    layers.Snapshot
}

// Session is one player's run: the variable store, the layer registry and
// the map currently being played.
type Session struct {
	Vars     *Variables
	Layers   *layers.Registry
	Commands *layers.Commands
	Maps     *maps.Set
	Map      *GameMap
	Player   *Character

	opts   Options
	logger *log.Logger
}

// NewSession creates a session over the given map set. No map is entered
// until SetupMap is called. A nil logger discards output.
func NewSession(set *maps.Set, opts Options, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.PlayerSpeed <= 0 {
		opts.PlayerSpeed = DefaultSpeed
	}

	vars := NewVariables()
	reg := layers.NewRegistry(logger)
	player := NewCharacter(0, 0, maps.DirDown)
	player.Speed = opts.PlayerSpeed

	return &Session{
		Vars:     vars,
		Layers:   reg,
		Commands: layers.NewCommands(reg, vars),
		Maps:     set,
		Player:   player,
		opts:     opts,
		logger:   logger,
	}
}

// Options returns the session options.
func (s *Session) Options() Options {
	return s.opts
}

// MapID returns the id of the current map, or 0 before any map is entered.
func (s *Session) MapID() int {
	if s.Map == nil {
		return 0
	}
	return s.Map.Def.ID
}

// SetupMap enters map id with the player on its start position.
func (s *Session) SetupMap(id int) error {
	def, ok := s.Maps.Get(id)
	if !ok {
		return fmt.Errorf("world: map %d not found", id)
	}
	s.enter(def, def.Start.X, def.Start.Y, def.Start.Direction)
	return nil
}

// Transfer moves the player to (x, y) on map id, facing dir. A dir of 0
// keeps the current facing.
func (s *Session) Transfer(id, x, y, dir int) error {
	def, ok := s.Maps.Get(id)
	if !ok {
		return fmt.Errorf("world: transfer to unknown map %d", id)
	}
	if dir == 0 {
		dir = s.Player.Direction()
	}
	s.enter(def, x, y, dir)
	return nil
}

func (s *Session) enter(def *maps.Definition, x, y, dir int) {
	s.Layers.EnterMap(def.ID, def.Note, s.Vars)

	s.Player.Locate(x, y)
	s.Player.SetDirection(dir)
	s.Map = NewGameMap(def, s.Player, s.opts.TileW, s.opts.TileH, s.opts.ViewW, s.opts.ViewH)

	s.logger.Info("entered map", "map", def.ID, "name", def.Name, "x", x, "y", y)
}

// Resize changes the map viewport.
func (s *Session) Resize(viewW, viewH int) {
	s.opts.ViewW, s.opts.ViewH = viewW, viewH
	if s.Map != nil {
		s.Map.SetView(viewW, viewH)
	}
}

// MovePlayer starts a player step toward dir.
func (s *Session) MovePlayer(dir int) bool {
	if s.Map == nil {
		return false
	}
	return s.Player.TryMove(dir, s.Map.Passable)
}

// Update advances the current map one tick. It reports whether the player
// finished a step onto a transfer tile and changed map.
func (s *Session) Update() (bool, error) {
	if s.Map == nil {
		return false, nil
	}
	wasMoving := s.Player.Moving()
	s.Map.Update()
	if !wasMoving || s.Player.Moving() {
		return false, nil
	}

	t, ok := s.Map.Def.TransferAt(s.Player.X(), s.Player.Y())
	if !ok {
		return false, nil
	}
	if err := s.Transfer(t.MapID, t.ToX, t.ToY, 0); err != nil {
		return false, err
	}
	return true, nil
}

// Snapshot captures the session for saving.
func (s *Session) Snapshot() State {
	return State{
		MapID:     s.MapID(),
		PlayerX:   s.Player.X(),
		PlayerY:   s.Player.Y(),
		Direction: s.Player.Direction(),
		Variables: s.Vars.All(),
		Layers:    s.Layers.Export(),
	}
}

// Restore replaces the session contents with st and re-enters its map.
// Entering runs the usual map setup, so scroll accumulators restart at 0.
func (s *Session) Restore(st State) error {
	if _, ok := s.Maps.Get(st.MapID); !ok {
		return fmt.Errorf("world: saved map %d not found", st.MapID)
	}
	s.Vars.Replace(st.Variables)
	s.Layers.Import(st.Layers)
	return s.Transfer(st.MapID, st.PlayerX, st.PlayerY, st.Direction)
}
