package scene

import (
	"testing"

	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/layers"
	"github.com/vovakirdan/tui-parallax/internal/maps"
	"github.com/vovakirdan/tui-parallax/internal/render"
	"github.com/vovakirdan/tui-parallax/internal/world"
)

const hallMap = `id: 1
name: Hall
start: {x: 2, y: 1}
tiles:
  - "##########"
  - "#........="
  - "#........#"
  - "##########"
note: |
  LAYER 1 band 1 0 255 1 0 0 3
  LAYER_S 2 dot 0 0 255 5 0 0.5 1 7 0
events:
  - {id: 7, x: 5, y: 2, glyph: "&"}
transfers:
  - {x: 9, y: 1, map: 2, to_x: 1, to_y: 1}
`

const yardMap = `id: 2
name: Yard
start: {x: 1, y: 1}
tiles:
  - "#####"
  - "#...#"
  - "#####"
note: |
  LAYER 4 band 2 0 255 1 0 0 0
`

// art is a solid raster of one rune.
type art struct {
	w, h int
	r    rune
}

func (a art) Width() int { return a.w }
func (a art) Height() int { return a.h }
func (a art) At(x, y int) core.Cell {
	return core.Cell{Rune: a.r, Color: core.ColorCyan}
}

type artLoader map[string]art

func (l artLoader) Load(name string) layers.Bitmap {
	return l[name]
}

var testArt = artLoader{
	"band": {w: 1, h: 1, r: '*'},
	"dot":  {w: 1, h: 1, r: 'o'},
}

func newSession(t *testing.T) *world.Session {
	t.Helper()
	var defs []*maps.Definition
	for _, data := range []string{hallMap, yardMap} {
		def, err := maps.Parse([]byte(data))
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		defs = append(defs, def)
	}
	opts := world.DefaultOptions()
	opts.ViewW, opts.ViewH = 20, 4
	opts.PlayerSpeed = 1
	s := world.NewSession(maps.NewSet(defs...), opts, nil)
	if err := s.SetupMap(1); err != nil {
		t.Fatalf("SetupMap() error: %v", err)
	}
	return s
}

func TestMapSceneMaterializesNoteLayers(t *testing.T) {
	s := newSession(t)
	m := NewMapScene(s, testArt, nil)

	if m.Layers() != 2 {
		t.Fatalf("Layers() = %d, expected 2", m.Layers())
	}
	if m.Scope() != layers.MapScope(1) {
		t.Errorf("Scope() = %v, expected map 1", m.Scope())
	}
	// Two layers plus the event and the player.
	if m.stage.Len() != 4 {
		t.Errorf("stage has %d nodes, expected 4", m.stage.Len())
	}
	if res := m.Refresh(); res.Changed() {
		t.Errorf("second Refresh() = %+v, expected no actions", res)
	}
}

func TestMapSceneRefreshPicksUpCommands(t *testing.T) {
	s := newSession(t)
	m := NewMapScene(s, testArt, nil)

	s.Commands.CreateTiling([]string{"0", "3", "band", "0", "0", "255", "9", "0", "0", "0"})
	if m.Layers() != 2 {
		t.Error("new layers should not appear before Refresh")
	}
	if res := m.Refresh(); res.Created != 1 || res.Removed != 0 {
		t.Errorf("Refresh() = %+v, expected 1 created", res)
	}

	before := m.stage.Nodes()
	s.Commands.RemoveLayer(0, 1)
	if res := m.Refresh(); res.Removed != 1 {
		t.Errorf("Refresh() after remove = %+v, expected 1 removed", res)
	}
	after := m.stage.Nodes()
	if len(after) != len(before)-1 {
		t.Fatalf("stage has %d nodes, expected %d", len(after), len(before)-1)
	}

	// Remaining nodes keep their relative order.
	j := 0
	for _, n := range before {
		if j < len(after) && n == after[j] {
			j++
		}
	}
	if j != len(after) {
		t.Error("remove + refresh reordered the other nodes")
	}
}

func TestMapSceneScrollFollowsFrames(t *testing.T) {
	s := newSession(t)
	m := NewMapScene(s, testArt, nil)
	currentX := func(mapID, id int) float64 {
		t.Helper()
		d := s.Layers.Get(layers.MapScope(mapID), id)
		if d == nil {
			t.Fatalf("no descriptor for layer %d on map %d", id, mapID)
		}
		return d.CurrentX
	}

	if got := currentX(1, 1); got != 0 {
		t.Errorf("CurrentX after construction = %v, expected 0", got)
	}

	for i := 0; i < 10; i++ {
		m.Update()
	}
	if got := currentX(1, 1); got != 10 {
		t.Errorf("CurrentX after 10 frames = %v, expected 10", got)
	}

	// Adding a layer leaves the running ones alone.
	s.Commands.CreateTiling([]string{"0", "9", "band", "3", "0", "255", "0", "0", "0", "0"})
	if res := m.Refresh(); res.Created != 1 {
		t.Fatalf("Refresh() = %+v, expected 1 created", res)
	}
	if got := currentX(1, 1); got != 10 {
		t.Errorf("CurrentX after refresh = %v, expected 10", got)
	}
	if got := currentX(1, 9); got != 0 {
		t.Errorf("new layer CurrentX after refresh = %v, expected 0", got)
	}

	m.Update()
	if got := currentX(1, 1); got != 11 {
		t.Errorf("CurrentX after 11 frames = %v, expected 11", got)
	}
	if got := currentX(1, 9); got != 3 {
		t.Errorf("new layer CurrentX after 1 frame = %v, expected 3", got)
	}

	// Removing one does too.
	s.Commands.RemoveLayer(0, 9)
	if res := m.Refresh(); res.Removed != 1 {
		t.Fatalf("Refresh() after remove = %+v, expected 1 removed", res)
	}
	if got := currentX(1, 1); got != 11 {
		t.Errorf("CurrentX after removing another layer = %v, expected 11", got)
	}

	// A transfer counts frames from the new map's entry.
	if err := s.Transfer(2, 1, 1, 0); err != nil {
		t.Fatal(err)
	}
	m.Update()
	if got := currentX(2, 4); got != 2 {
		t.Errorf("map 2 CurrentX on the transfer frame = %v, expected 2", got)
	}
	for i := 0; i < 4; i++ {
		m.Update()
	}
	if got := currentX(2, 4); got != 10 {
		t.Errorf("map 2 CurrentX after 5 frames = %v, expected 10", got)
	}

	// Coming back restarts map 1 from zero.
	if err := s.Transfer(1, 2, 1, 0); err != nil {
		t.Fatal(err)
	}
	m.Update()
	if got := currentX(1, 1); got != 1 {
		t.Errorf("map 1 CurrentX after re-entry frame = %v, expected 1", got)
	}
}

func TestMapSceneRender(t *testing.T) {
	s := newSession(t)
	m := NewMapScene(s, testArt, nil)
	m.Update()

	dst := core.NewScreen(20, 4)
	m.Render(dst)

	if got := dst.Get(0, 0); got != '#' {
		t.Errorf("wall cell = %q, expected '#'", got)
	}
	// The band layer uses screen blending, so it only fills empty floor cells.
	if got := dst.Get(3, 1); got != '*' {
		t.Errorf("floor cell = %q, expected tiling layer '*'", got)
	}
	// Player at tile (2,1) with 2x1 tiles, drawn in the tile's second column.
	if got := dst.Get(5, 1); got != '@' {
		t.Errorf("player cell = %q, expected '@'", got)
	}
	// Static layer 2 follows event 7 at tile (5,2) and is above the characters.
	if got := dst.Get(11, 2); got != 'o' {
		t.Errorf("event cell = %q, expected static layer 'o' over the event", got)
	}
}

func TestMapSceneRebuildsOnTransfer(t *testing.T) {
	s := newSession(t)
	m := NewMapScene(s, testArt, nil)
	first := m.Map()

	if err := s.Transfer(2, 1, 1, 0); err != nil {
		t.Fatal(err)
	}
	m.Update()

	if m.Map() == first {
		t.Fatal("scene should rebuild for the new map")
	}
	if m.Scope() != layers.MapScope(2) || m.Layers() != 1 {
		t.Errorf("after transfer: scope %v with %d layers, expected map 2 with 1", m.Scope(), m.Layers())
	}
	if s.Layers.Get(layers.MapScope(1), 1) == nil {
		t.Error("map 1 descriptors must survive the transfer")
	}
}

func TestBattleScene(t *testing.T) {
	s := newSession(t)
	s.Commands.SetBattle([]string{"1", "band", "2", "-1", "255", "0", "0"})

	b := NewBattleScene(s.Layers, testArt, nil)
	if b.Layers() != 1 || b.Scope() != layers.BattleScope {
		t.Fatalf("battle scene: %d layers on %v", b.Layers(), b.Scope())
	}

	ts, ok := b.table[1].Primitive().(*render.TilingSprite)
	if !ok {
		t.Fatalf("battle layer primitive = %T, expected *render.TilingSprite", b.table[1].Primitive())
	}
	d := s.Layers.Get(layers.BattleScope, 1)

	// Construction shows the layer without advancing it.
	if x, y := ts.Origin(); x != 0 || y != 0 || d.CurrentX != 0 {
		t.Errorf("after construction: Origin() = (%v,%v), CurrentX = %v, expected (0,0) and 0", x, y, d.CurrentX)
	}

	b.Update()
	b.Update()
	// The second frame draws at one frame of speed.
	if x, y := ts.Origin(); x != 2 || y != -1 {
		t.Errorf("Origin() = (%v,%v), expected (2,-1)", x, y)
	}
	if d.CurrentX != 4 || d.CurrentY != -2 {
		t.Errorf("accumulators = (%v,%v), expected (4,-2)", d.CurrentX, d.CurrentY)
	}

	dst := core.NewScreen(10, 5)
	b.Render(dst)
	if dst.Get(0, 0) != '┌' {
		t.Error("battle frame not drawn")
	}

	s.Commands.SetBattle([]string{"1"})
	if res := b.Refresh(); res.Removed != 1 || b.Layers() != 0 {
		t.Errorf("Refresh() after clear = %+v, %d layers left", res, b.Layers())
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{5, 2, 2}, {4, 2, 2}, {-1, 2, -1}, {-2, 2, -1}, {-3, 2, -2}, {0, 3, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d,%d) = %d, expected %d", tt.a, tt.b, got, tt.want)
		}
	}
}
