package maps

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleMap = `id: 7
name: Test Field
start: {x: 1, y: 1}
tiles:
  - "#####"
  - "#..~#"
  - "#.=.#"
note: |
  LAYER 1 clouds 1 0 255 0 0 0 0
events:
  - id: 2
    name: Guard
    x: 3
    y: 2
    glyph: "G"
transfers:
  - {x: 2, y: 2, map: 1, to_x: 4, to_y: 4}
`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(sampleMap))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if def.ID != 7 || def.Name != "Test Field" {
		t.Errorf("Parse() = id %d name %q, expected 7 %q", def.ID, def.Name, "Test Field")
	}
	if def.Width != 5 || def.Height != 3 {
		t.Errorf("size = %dx%d, expected 5x3", def.Width, def.Height)
	}
	if def.Start.Direction != DirDown {
		t.Errorf("Start.Direction = %d, expected default %d", def.Start.Direction, DirDown)
	}
	if !strings.HasPrefix(def.Note, "LAYER 1 clouds") {
		t.Errorf("Note = %q, expected LAYER line", def.Note)
	}

	e, ok := def.Event(2)
	if !ok {
		t.Fatal("Event(2) not found")
	}
	if e.Glyph != 'G' || e.Direction != DirDown {
		t.Errorf("Event(2) = %+v, expected glyph G facing down", e)
	}
	if _, ok := def.Event(3); ok {
		t.Error("Event(3) should not exist")
	}

	tr, ok := def.TransferAt(2, 2)
	if !ok || tr.MapID != 1 || tr.ToX != 4 || tr.ToY != 4 {
		t.Errorf("TransferAt(2,2) = %+v, %v", tr, ok)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "id: [1"},
		{"missing id", "name: x\ntiles: [\"...\"]"},
		{"no size", "id: 1"},
		{"duplicate event", "id: 1\ntiles: [\"..\"]\nevents:\n  - {id: 1}\n  - {id: 1}"},
		{"zero event id", "id: 1\ntiles: [\"..\"]\nevents:\n  - {id: 0}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Errorf("Parse(%q) expected error", tt.data)
			}
		})
	}
}

func TestTileAndPassable(t *testing.T) {
	def, err := Parse([]byte("id: 1\nwidth: 4\nheight: 3\ntiles:\n  - \"#~\"\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	tests := []struct {
		x, y     int
		tile     rune
		passable bool
	}{
		{0, 0, TileWall, false},
		{1, 0, TileWater, false},
		{3, 0, TileFloor, true},
		{2, 2, TileFloor, true},
		{-1, 0, TileWall, false},
		{4, 0, TileWall, false},
		{0, 3, TileWall, false},
	}

	for _, tt := range tests {
		if got := def.Tile(tt.x, tt.y); got != tt.tile {
			t.Errorf("Tile(%d,%d) = %q, expected %q", tt.x, tt.y, got, tt.tile)
		}
		if got := def.Passable(tt.x, tt.y); got != tt.passable {
			t.Errorf("Passable(%d,%d) = %v, expected %v", tt.x, tt.y, got, tt.passable)
		}
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "region")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		filepath.Join(dir, "b.yaml"):    "id: 9\ntiles: [\"..\"]\n",
		filepath.Join(sub, "a.yml"):     "id: 4\ntiles: [\"..\"]\n",
		filepath.Join(dir, "bad.yaml"):  "id: [",
		filepath.Join(dir, "readme.md"): "not a map",
	}
	for path, data := range files {
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	defs, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("LoadAll() returned %d maps, expected 2", len(defs))
	}
	if defs[0].ID != 4 || defs[1].ID != 9 {
		t.Errorf("LoadAll() ids = %d,%d, expected 4,9", defs[0].ID, defs[1].ID)
	}
	if defs[0].FilePath != filepath.Join(sub, "a.yml") {
		t.Errorf("FilePath = %q", defs[0].FilePath)
	}
}

func TestDefaults(t *testing.T) {
	defs, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults() error: %v", err)
	}
	if len(defs) < 3 {
		t.Fatalf("Defaults() returned %d maps, expected at least 3", len(defs))
	}

	set := NewSet(defs...)
	forest, ok := set.Get(1)
	if !ok {
		t.Fatal("default map 1 missing")
	}
	if !strings.Contains(forest.Note, "LAYER_S") {
		t.Error("forest note should declare a static layer")
	}

	// Every transfer must land on a passable tile of an existing map.
	for _, def := range defs {
		for _, tr := range def.Transfers {
			dest, ok := set.Get(tr.MapID)
			if !ok {
				t.Errorf("map %d transfer targets unknown map %d", def.ID, tr.MapID)
				continue
			}
			if !dest.Passable(tr.ToX, tr.ToY) {
				t.Errorf("map %d transfer lands on blocked tile (%d,%d) of map %d", def.ID, tr.ToX, tr.ToY, tr.MapID)
			}
		}
		if !def.Passable(def.Start.X, def.Start.Y) {
			t.Errorf("map %d start (%d,%d) is blocked", def.ID, def.Start.X, def.Start.Y)
		}
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	override := "id: 1\nname: Replaced\ntiles: [\"...\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "one.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	def, _ := set.Get(1)
	if def.Name != "Replaced" {
		t.Errorf("Get(1).Name = %q, expected Replaced", def.Name)
	}
	if _, ok := set.Get(2); !ok {
		t.Error("embedded map 2 should survive overlay")
	}

	list := set.List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted at %d", i)
		}
	}
	if set.Len() != len(list) {
		t.Errorf("Len() = %d, expected %d", set.Len(), len(list))
	}
}

func TestLoadMissingDir(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if set.Len() == 0 {
		t.Error("Load() of missing dir should fall back to embedded maps")
	}
}
