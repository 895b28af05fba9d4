package scene

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/layers"
	"github.com/vovakirdan/tui-parallax/internal/maps"
	"github.com/vovakirdan/tui-parallax/internal/render"
	"github.com/vovakirdan/tui-parallax/internal/world"
)

// CharacterZ is the stage z of map characters. Layers below it draw under
// the characters, layers above it over them.
const CharacterZ = 3

// MapScene shows the session's current map.
type MapScene struct {
	base

	session *world.Session
	gm      *world.GameMap
	loader  layers.Loader
	logger  *log.Logger
}

// NewMapScene builds the scene for the session's current map: characters
// go on the stage and the map's layers are materialized.
func NewMapScene(s *world.Session, loader layers.Loader, logger *log.Logger) *MapScene {
	m := &MapScene{session: s, loader: loader, logger: logger}
	m.build()
	return m
}

func (m *MapScene) build() {
	m.gm = m.session.Map
	m.scope = layers.MapScope(m.gm.Def.ID)
	m.stage = render.NewStage()
	m.table = make(layers.Table)
	m.mat = layers.NewMaterializer(m.session.Layers, layers.Env{
		Factory:    render.Factory{},
		Loader:     m.loader,
		Camera:     m.gm,
		Characters: m.gm,
	}, m.logger)

	for _, c := range m.gm.Events() {
		m.stage.Add(&characterNode{c: c, gm: m.gm})
	}
	m.stage.Add(&characterNode{c: m.gm.PlayerCharacter(), gm: m.gm})

	m.Refresh()
}

// Sync rebuilds the scene if the session has moved to another map since
// the scene was built.
func (m *MapScene) Sync() {
	if m.session.Map != m.gm {
		m.Close()
		m.build()
	}
}

// Update syncs with the session's map, then drives the map layers.
// Character movement is advanced by the session.
func (m *MapScene) Update() {
	m.Sync()
	m.updateLayers()
}

// Render draws the tiles, then every stage node in z order.
func (m *MapScene) Render(dst *core.Screen) {
	drawTiles(dst, m.gm)
	m.stage.Draw(dst)
}

// Map returns the map the scene was built for.
func (m *MapScene) Map() *world.GameMap {
	return m.gm
}

func drawTiles(dst *core.Screen, gm *world.GameMap) {
	tw, th := int(gm.TileWidth()), int(gm.TileHeight())
	offX := core.Round(gm.DisplayX() * gm.TileWidth())
	offY := core.Round(gm.DisplayY() * gm.TileHeight())

	for sy, n := 0, dst.Height(); sy < n; sy++ {
		ty := floorDiv(sy+offY, th)
		for sx, n := 0, dst.Width(); sx < n; sx++ {
			tx := floorDiv(sx+offX, tw)
			r, c := tileLook(gm.Def.Tile(tx, ty))
			if r != ' ' {
				dst.SetCell(sx, sy, r, c)
			}
		}
	}
}

func tileLook(t rune) (rune, core.Color) {
	switch t {
	case maps.TileWall:
		return '#', core.ColorWhite
	case maps.TileWater:
		return '~', core.ColorBlue
	case maps.TileGrass:
		return '"', core.ColorGreen
	case maps.TileTransfer:
		return '=', core.ColorYellow
	case maps.TileFloor:
		return ' ', core.ColorDefault
	default:
		return t, core.ColorDefault
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// characterNode draws one map character at its projected position.
type characterNode struct {
	c  *world.Character
	gm *world.GameMap
}

func (n *characterNode) Z() float64 { return CharacterZ }

func (n *characterNode) Draw(dst *core.Screen) {
	x, y := n.gm.ScreenPos(n.c.RealX(), n.c.RealY())
	x += int(n.gm.TileWidth()) / 2
	if dst.InBounds(x, y) {
		dst.SetCell(x, y, n.c.Glyph, n.c.Color)
	}
}
