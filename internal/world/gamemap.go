package world

import (
	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/layers"
	"github.com/vovakirdan/tui-parallax/internal/maps"
)

// GameMap is a map being played: the definition, its events, the player
// and the camera. It implements layers.Camera and layers.Characters.
type GameMap struct {
	Def *maps.Definition

	player *Character
	events []*Character

	tileW, tileH int
	viewW, viewH int

	displayX, displayY float64
}

// NewGameMap sets up def for play with the given tile size in screen cells.
// The view size is in screen cells as well.
func NewGameMap(def *maps.Definition, player *Character, tileW, tileH, viewW, viewH int) *GameMap {
	m := &GameMap{
		Def:    def,
		player: player,
		tileW:  max(tileW, 1),
		tileH:  max(tileH, 1),
	}
	for _, e := range def.Events {
		m.events = append(m.events, NewEventCharacter(e))
	}
	m.SetView(viewW, viewH)
	return m
}

// SetView changes the viewport size and re-centres the camera.
func (m *GameMap) SetView(w, h int) {
	m.viewW, m.viewH = max(w, 1), max(h, 1)
	m.CenterOnPlayer()
}

// DisplayX returns the camera's left edge in tiles.
func (m *GameMap) DisplayX() float64 { return m.displayX }

// DisplayY returns the camera's top edge in tiles.
func (m *GameMap) DisplayY() float64 { return m.displayY }

// TileWidth returns the width of one tile in screen cells.
func (m *GameMap) TileWidth() float64 { return float64(m.tileW) }

// TileHeight returns the height of one tile in screen cells.
func (m *GameMap) TileHeight() float64 { return float64(m.tileH) }

// Player returns the player character.
func (m *GameMap) Player() layers.Character { return m.player }

// Event returns the event character with the given id.
func (m *GameMap) Event(id int) (layers.Character, bool) {
	c := m.EventCharacter(id)
	if c == nil {
		return nil, false
	}
	return c, true
}

// EventCharacter returns the concrete event character, or nil.
func (m *GameMap) EventCharacter(id int) *Character {
	for _, c := range m.events {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Events returns the event characters in definition order.
func (m *GameMap) Events() []*Character {
	return m.events
}

// PlayerCharacter returns the concrete player character.
func (m *GameMap) PlayerCharacter() *Character {
	return m.player
}

// Passable reports whether (x, y) is free terrain not occupied by an event.
func (m *GameMap) Passable(x, y int) bool {
	if !m.Def.Passable(x, y) {
		return false
	}
	for _, c := range m.events {
		if c.X() == x && c.Y() == y {
			return false
		}
	}
	return true
}

func (m *GameMap) passableForEvent(self *Character) func(x, y int) bool {
	return func(x, y int) bool {
		if !m.Def.Passable(x, y) {
			return false
		}
		if m.player != nil && m.player.X() == x && m.player.Y() == y {
			return false
		}
		for _, c := range m.events {
			if c != self && c.X() == x && c.Y() == y {
				return false
			}
		}
		return true
	}
}

// Update advances events and the player by one tick, then scrolls.
func (m *GameMap) Update() {
	for _, c := range m.events {
		c.FollowRoute(m.passableForEvent(c))
		c.Update()
	}
	if m.player != nil {
		m.player.Update()
	}
	m.CenterOnPlayer()
}

// CenterOnPlayer scrolls so the player sits in the middle of the view,
// clamped to the map edges.
func (m *GameMap) CenterOnPlayer() {
	if m.player == nil {
		return
	}
	visW := float64(m.viewW) / float64(m.tileW)
	visH := float64(m.viewH) / float64(m.tileH)
	m.displayX = scrollClamp(m.player.RealX()-(visW-1)/2, visW, float64(m.Def.Width))
	m.displayY = scrollClamp(m.player.RealY()-(visH-1)/2, visH, float64(m.Def.Height))
}

func scrollClamp(pos, visible, size float64) float64 {
	if size <= visible {
		return 0
	}
	return core.ClampF(pos, 0, size-visible)
}

// ScreenPos projects a continuous tile position to a screen cell.
func (m *GameMap) ScreenPos(realX, realY float64) (int, int) {
	return core.Round((realX - m.displayX) * float64(m.tileW)),
		core.Round((realY - m.displayY) * float64(m.tileH))
}
