package tui

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/layers"
	"github.com/vovakirdan/tui-parallax/internal/maps"
	"github.com/vovakirdan/tui-parallax/internal/registry"
	"github.com/vovakirdan/tui-parallax/internal/scene"
	"github.com/vovakirdan/tui-parallax/internal/storage"
	"github.com/vovakirdan/tui-parallax/internal/world"
)

// ErrNoStore is returned by Save and Load when no save database is open.
var ErrNoStore = errors.New("no save database")

// Viewer drives one session: it owns the map scene, the optional battle
// scene and the save store, and runs prompt commands against them.
// It has no Bubble Tea dependency so the CLI can run it headless.
type Viewer struct {
	Session *world.Session

	loader     layers.Loader
	store      *storage.Store
	slotPrefix string
	logger     *log.Logger

	mapScene *scene.MapScene
	battle   *scene.BattleScene
}

// NewViewer builds the scenes for a session whose map is already set up.
// store may be nil, in which case saving is unavailable. A nil logger
// discards output.
func NewViewer(s *world.Session, loader layers.Loader, store *storage.Store, logger *log.Logger) *Viewer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Viewer{
		Session:  s,
		loader:   loader,
		store:    store,
		logger:   logger,
		mapScene: scene.NewMapScene(s, loader, logger),
	}
}

// SetSlotPrefix namespaces every save slot this viewer touches.
func (v *Viewer) SetSlotPrefix(prefix string) {
	v.slotPrefix = prefix
}

// Scene returns the scene on screen.
func (v *Viewer) Scene() scene.Scene {
	if v.battle != nil {
		return v.battle
	}
	return v.mapScene
}

// InBattle reports whether the battle scene is showing.
func (v *Viewer) InBattle() bool {
	return v.battle != nil
}

// ToggleBattle switches between the map and the battle scene. Battle
// layers stay in the registry when the battle ends.
func (v *Viewer) ToggleBattle() {
	if v.battle != nil {
		v.battle.Close()
		v.battle = nil
		v.logger.Debug("battle ended")
		return
	}
	v.battle = scene.NewBattleScene(v.Session.Layers, v.loader, v.logger)
	v.logger.Debug("battle started", "layers", v.battle.Layers())
}

// Step advances one tick with the given input.
func (v *Viewer) Step(in core.InputFrame) error {
	if in.Has(core.ActionBattle) {
		v.ToggleBattle()
	}

	if v.battle == nil {
		for _, m := range moveActions {
			if in.Has(m.action) {
				v.Session.MovePlayer(m.dir)
				break
			}
		}
		if _, err := v.Session.Update(); err != nil {
			return err
		}
	}

	v.Scene().Update()
	return nil
}

var moveActions = []struct {
	action core.Action
	dir    int
}{
	{core.ActionUp, maps.DirUp},
	{core.ActionDown, maps.DirDown},
	{core.ActionLeft, maps.DirLeft},
	{core.ActionRight, maps.DirRight},
}

// Render draws the current scene.
func (v *Viewer) Render(dst *core.Screen) {
	v.Scene().Render(dst)
}

// Resize sets the map viewport in screen cells.
func (v *Viewer) Resize(w, h int) {
	v.Session.Resize(w, h)
}

// Exec runs one prompt command line.
func (v *Viewer) Exec(line string) (string, error) {
	return registry.Execute(v, line)
}

// Layers implements registry.Env.
func (v *Viewer) Layers() *layers.Commands {
	return v.Session.Commands
}

// Variables implements registry.Env.
func (v *Viewer) Variables() registry.Variables {
	return v.Session.Vars
}

// Refresh implements registry.Env by re-materializing the scene on screen.
func (v *Viewer) Refresh() layers.Result {
	return v.Scene().Refresh()
}

// Save implements registry.Env.
func (v *Viewer) Save(slot string) error {
	if v.store == nil {
		return ErrNoStore
	}
	if err := v.store.SaveSlot(v.slotPrefix+slot, v.Session.Snapshot()); err != nil {
		return err
	}
	v.logger.Info("saved", "slot", v.slotPrefix+slot, "map", v.Session.MapID())
	return nil
}

// Load implements registry.Env.
func (v *Viewer) Load(slot string) error {
	if v.store == nil {
		return ErrNoStore
	}
	st, err := v.store.LoadSlot(v.slotPrefix + slot)
	if err != nil {
		return err
	}
	if err := v.Session.Restore(st); err != nil {
		return err
	}

	// The map scene rebuilds on its next update; the battle scene does not
	// track the session, so rebuild it now.
	if v.battle != nil {
		v.battle.Close()
		v.battle = scene.NewBattleScene(v.Session.Layers, v.loader, v.logger)
	}
	v.mapScene.Sync()
	v.logger.Info("loaded", "slot", v.slotPrefix+slot, "map", v.Session.MapID())
	return nil
}

// Slots lists the save slots visible to this viewer, without prefix.
func (v *Viewer) Slots() ([]storage.SlotInfo, error) {
	if v.store == nil {
		return nil, ErrNoStore
	}
	all, err := v.store.ListSlots()
	if err != nil {
		return nil, err
	}
	var out []storage.SlotInfo
	for _, s := range all {
		name, ok := strings.CutPrefix(s.Name, v.slotPrefix)
		if !ok {
			continue
		}
		s.Name = name
		out = append(out, s)
	}
	return out, nil
}

var _ registry.Env = (*Viewer)(nil)
