package layers

import "testing"

const forestNote = "LAYER 1 trees 0 0 255 5 10 0 0\nLAYER 2 mist 1 0 120 6 0 0 1"

func TestCurrentMapResolved(t *testing.T) {
	reg := NewRegistry(nil)
	reg.EnterMap(4, "", nil)

	key := reg.CreateOrUpdate(MapScope(0), 1, &Descriptor{Graphic: "sky"})
	if key.Scope.MapID() != 4 {
		t.Errorf("key map = %d, expected 4", key.Scope.MapID())
	}
	if reg.Get(MapScope(4), 1) == nil {
		t.Fatal("descriptor not stored under the resolved map id")
	}
	for _, id := range reg.MapIDs() {
		if id == 0 {
			t.Error("map id 0 stored literally")
		}
	}
}

func TestCurrentMapUnsetIgnored(t *testing.T) {
	reg := NewRegistry(nil)

	reg.CreateOrUpdate(MapScope(0), 1, &Descriptor{Graphic: "sky"})
	reg.Remove(MapScope(0), 2)
	reg.Remove(MapScope(0), -1)
	if ids := reg.MapIDs(); len(ids) != 0 {
		t.Errorf("MapIDs() = %v, expected none before EnterMap", ids)
	}
	if reg.Has(MapScope(0), 1) {
		t.Error("layer stored with no current map")
	}

	// Battle layers need no map.
	reg.CreateOrUpdate(BattleScope, 1, &Descriptor{Graphic: "fog"})
	if reg.Get(BattleScope, 1) == nil {
		t.Error("battle layer should be stored before EnterMap")
	}
}

func TestRedefinitionPreservesAccumulators(t *testing.T) {
	reg := NewRegistry(nil)
	reg.EnterMap(1, "", nil)
	cmds := NewCommands(reg, nil)
	loader := &fakeLoader{}

	key := cmds.CreateTiling([]string{"0", "1", "clouds", "2", "0", "255", "0", "0", "0", "0"})
	layer := NewTilingMapLayer(key, reg, loader, &fakeCamera{tw: 1, th: 1}, &fakePrim{})
	for i := 0; i < 10; i++ {
		layer.Update()
	}
	if got := reg.Get(key.Scope, 1).CurrentX; got != 20 {
		t.Fatalf("CurrentX = %v after 10 frames, expected 20", got)
	}

	cmds.CreateTiling([]string{"0", "1", "rain", "0", "3", "128", "4", "0", "0", "0"})
	d := reg.Get(key.Scope, 1)
	if d.CurrentX != 20 || d.CurrentY != 0 {
		t.Errorf("accumulators = (%v, %v), expected (20, 0)", d.CurrentX, d.CurrentY)
	}
	if d.Graphic != "rain" || d.XSpeed != 0 || d.YSpeed != 3 || d.Opacity != 128 || d.Z != 4 {
		t.Errorf("other fields not replaced: %+v", *d)
	}

	layer.Update()
	d = reg.Get(key.Scope, 1)
	if d.CurrentX != 20 || d.CurrentY != 3 {
		t.Errorf("after one more frame accumulators = (%v, %v), expected (20, 3)", d.CurrentX, d.CurrentY)
	}
}

func TestEnterMapSeedsNoteOnce(t *testing.T) {
	reg := NewRegistry(nil)
	cmds := NewCommands(reg, nil)

	reg.EnterMap(3, forestNote, nil)
	d := reg.Get(MapScope(3), 1)
	if d == nil || d.Graphic != "trees" || d.XShift != 10 {
		t.Fatalf("note layer 1 = %+v, expected trees", d)
	}

	// Edit the note-defined layer at runtime, leave, come back.
	cmds.CreateTiling([]string{"3", "1", "palms", "0", "0", "90", "5", "0", "0", "0"})
	reg.EnterMap(8, "", nil)
	reg.EnterMap(3, forestNote, nil)

	d = reg.Get(MapScope(3), 1)
	if d.Graphic != "palms" || d.Opacity != 90 {
		t.Errorf("note re-applied over runtime edit: %+v", *d)
	}
	if reg.Get(MapScope(3), 2).Graphic != "mist" {
		t.Error("untouched note layer 2 missing")
	}
}

func TestEnterMapResetsAccumulators(t *testing.T) {
	reg := NewRegistry(nil)
	reg.EnterMap(3, forestNote, nil)

	mist := reg.Get(MapScope(3), 2)
	mist.CurrentX, mist.CurrentY = 42, -7

	reg.EnterMap(3, forestNote, nil)
	if mist.CurrentX != 0 || mist.CurrentY != 0 {
		t.Errorf("accumulators = (%v, %v), expected reset to 0", mist.CurrentX, mist.CurrentY)
	}
}

func TestRemoveBlanksSlot(t *testing.T) {
	reg := NewRegistry(nil)
	reg.EnterMap(3, forestNote, nil)

	reg.Remove(MapScope(0), 1)
	if reg.Get(MapScope(3), 1) != nil {
		t.Error("removed layer still returned")
	}
	if !reg.Has(MapScope(3), 1) {
		t.Error("blanked slot should stay allocated")
	}

	// The blank slot keeps the note from re-seeding the id.
	reg.EnterMap(3, forestNote, nil)
	if reg.Get(MapScope(3), 1) != nil {
		t.Error("note re-seeded a removed layer")
	}
}

func TestRemoveNegativeClearsMap(t *testing.T) {
	reg := NewRegistry(nil)
	reg.EnterMap(3, forestNote, nil)

	reg.Remove(MapScope(3), -1)
	if n := len(reg.AllForScope(MapScope(3))); n != 0 {
		t.Errorf("AllForScope() returned %d entries, expected 0", n)
	}

	// The table is gone, so the note seeds again on the next visit.
	reg.EnterMap(3, forestNote, nil)
	if reg.Get(MapScope(3), 1) == nil {
		t.Error("note layers should return after the table was cleared")
	}
}

func TestBattleLayers(t *testing.T) {
	reg := NewRegistry(nil)
	reg.EnterMap(1, "", nil)
	cmds := NewCommands(reg, nil)

	id, active := cmds.SetBattle([]string{"1", "stars", "1", "0", "255", "0", "0"})
	if id != 1 || !active {
		t.Fatalf("SetBattle() = (%d, %v), expected (1, true)", id, active)
	}
	if reg.Get(BattleScope, 1) == nil {
		t.Fatal("battle layer not stored")
	}
	if reg.Get(MapScope(1), 1) != nil {
		t.Error("battle layer leaked into the map scope")
	}

	// Battle layers survive map changes.
	reg.EnterMap(2, "", nil)
	if reg.Get(BattleScope, 1) == nil {
		t.Error("battle layer lost on map change")
	}

	if _, active := cmds.SetBattle([]string{"1"}); active {
		t.Error("SetBattle() without graphic should clear")
	}
	if reg.Has(BattleScope, 1) {
		t.Error("cleared battle id should be deleted outright")
	}

	cmds.SetBattle([]string{"2", "sun"})
	reg.ClearBattle()
	if len(reg.AllForScope(BattleScope)) != 0 {
		t.Error("ClearBattle() left layers behind")
	}
}

func TestAllForScopeOrdered(t *testing.T) {
	reg := NewRegistry(nil)
	reg.EnterMap(1, "", nil)
	for _, id := range []int{5, 1, 3} {
		reg.CreateOrUpdate(MapScope(1), id, &Descriptor{Graphic: "g"})
	}

	entries := reg.AllForScope(MapScope(1))
	if len(entries) != 3 || entries[0].ID != 1 || entries[1].ID != 3 || entries[2].ID != 5 {
		t.Errorf("AllForScope() = %+v, expected ids 1, 3, 5", entries)
	}
}

func TestExportImport(t *testing.T) {
	reg := NewRegistry(nil)
	reg.EnterMap(3, forestNote, nil)
	reg.Remove(MapScope(3), 2)
	reg.CreateOrUpdate(BattleScope, 1, &Descriptor{Graphic: "stars"})

	snap := reg.Export()
	snap.Maps[3][1].Graphic = "mutated"

	other := NewRegistry(nil)
	other.Import(reg.Export())

	if other.CurrentMap() != 3 {
		t.Errorf("CurrentMap() = %d, expected 3", other.CurrentMap())
	}
	if other.Get(MapScope(3), 1).Graphic != "trees" {
		t.Error("Export() should return a deep copy")
	}
	if !other.Has(MapScope(3), 2) || other.Get(MapScope(3), 2) != nil {
		t.Error("blank slot not preserved through export/import")
	}
	if other.Get(BattleScope, 1) == nil {
		t.Error("battle layer not imported")
	}
}
