package layers

import "testing"

type materializerFixture struct {
	reg       *Registry
	factory   *fakeFactory
	loader    *fakeLoader
	container *fakeContainer
	mat       *Materializer
	table     Table
}

func newMaterializerFixture(note string) *materializerFixture {
	f := &materializerFixture{
		reg:       NewRegistry(nil),
		factory:   &fakeFactory{},
		loader:    &fakeLoader{},
		container: &fakeContainer{},
		table:     make(Table),
	}
	f.reg.EnterMap(3, note, nil)
	f.mat = NewMaterializer(f.reg, Env{
		Factory:    f.factory,
		Loader:     f.loader,
		Camera:     &fakeCamera{tw: 2, th: 1},
		Characters: &fakeChars{player: &fakeChar{}},
	}, nil)
	return f
}

func TestMaterializeCreatesVariants(t *testing.T) {
	f := newMaterializerFixture("LAYER 1 trees 0 0 255 5 0 0 0\nLAYER_S 2 lamp 0 0 255 3 0 0 0 0 0")

	res := f.mat.Materialize(MapScope(0), f.table, f.container)
	if res.Created != 2 || res.Removed != 0 {
		t.Fatalf("Materialize() = %+v, expected 2 created", res)
	}
	if _, ok := f.table[1].(*TilingLayer); !ok {
		t.Errorf("layer 1 is %T, expected *TilingLayer", f.table[1])
	}
	if _, ok := f.table[2].(*StaticLayer); !ok {
		t.Errorf("layer 2 is %T, expected *StaticLayer", f.table[2])
	}
	if f.table[1].Graphic() != "trees" || f.table[1].Z() != 5 {
		t.Errorf("layer 1 graphic=%q z=%v", f.table[1].Graphic(), f.table[1].Z())
	}
	if len(f.container.children) != 2 {
		t.Errorf("container has %d children, expected 2", len(f.container.children))
	}
}

func TestMaterializeAppliesWithoutAdvancing(t *testing.T) {
	f := newMaterializerFixture("LAYER 1 trees 2 1 200 5 0 0 1")

	f.mat.Materialize(MapScope(0), f.table, f.container)
	prim := f.factory.made[0]
	if prim.opacity != 200 || prim.z != 5 || prim.blend != BlendAdd {
		t.Errorf("new primitive opacity=%v z=%v blend=%v, expected 200, 5, add", prim.opacity, prim.z, prim.blend)
	}
	d := f.reg.Get(MapScope(3), 1)
	if d.CurrentX != 0 || d.CurrentY != 0 {
		t.Errorf("accumulators after Materialize() = (%v, %v), expected (0, 0)", d.CurrentX, d.CurrentY)
	}

	f.table[1].Update()
	if d.CurrentX != 2 || d.CurrentY != 1 {
		t.Errorf("accumulators after one frame = (%v, %v), expected (2, 1)", d.CurrentX, d.CurrentY)
	}
}

func TestMaterializeIdempotent(t *testing.T) {
	f := newMaterializerFixture(forestNote)

	f.mat.Materialize(MapScope(3), f.table, f.container)
	inserts, removes := f.container.inserts, f.container.removes

	res := f.mat.Materialize(MapScope(3), f.table, f.container)
	if res.Changed() {
		t.Errorf("second Materialize() = %+v, expected no actions", res)
	}
	if f.container.inserts != inserts || f.container.removes != removes {
		t.Error("container touched by an idempotent materialization")
	}
}

func TestMaterializeSkipsInactive(t *testing.T) {
	f := newMaterializerFixture("LAYER 1\nLAYER 2 trees 0 0 255 5 0 0 0")

	res := f.mat.Materialize(MapScope(3), f.table, f.container)
	if res.Created != 1 {
		t.Errorf("Created = %d, expected 1", res.Created)
	}
	if _, ok := f.table[1]; ok {
		t.Error("layer without graphic should not be materialized")
	}
}

func TestRemoveThenRefresh(t *testing.T) {
	f := newMaterializerFixture("LAYER 1 a 0 0 255 1 0 0 0\nLAYER 2 b 0 0 255 2 0 0 0\nLAYER 3 c 0 0 255 3 0 0 0")
	f.mat.Materialize(MapScope(3), f.table, f.container)
	first, third := f.table[1].Primitive(), f.table[3].Primitive()

	NewCommands(f.reg, nil).RemoveLayer(0, 2)
	res := f.mat.Materialize(MapScope(3), f.table, f.container)

	if res.Removed != 1 || res.Created != 0 {
		t.Errorf("Materialize() = %+v, expected 1 removed", res)
	}
	if len(f.container.children) != 2 || f.container.children[0] != first || f.container.children[1] != third {
		t.Error("remaining layers changed order")
	}
	if _, ok := f.table[2]; ok {
		t.Error("removed layer still in table")
	}
}

func TestMaterializeBlankGraphicTearsDown(t *testing.T) {
	f := newMaterializerFixture(forestNote)
	f.mat.Materialize(MapScope(3), f.table, f.container)

	f.reg.CreateOrUpdate(MapScope(3), 1, &Descriptor{})
	res := f.mat.Materialize(MapScope(3), f.table, f.container)
	if res.Removed != 1 {
		t.Errorf("Removed = %d, expected 1", res.Removed)
	}

	// Reactivating the same id reuses the slot.
	f.reg.CreateOrUpdate(MapScope(3), 1, &Descriptor{Graphic: "trees"})
	res = f.mat.Materialize(MapScope(3), f.table, f.container)
	if res.Created != 1 {
		t.Errorf("Created = %d, expected 1", res.Created)
	}
}

func TestMaterializeKindChangeRecreates(t *testing.T) {
	f := newMaterializerFixture(forestNote)
	f.mat.Materialize(MapScope(3), f.table, f.container)

	NewCommands(f.reg, nil).CreateStatic([]string{"3", "1", "lamp", "4", "4", "255", "5"})
	res := f.mat.Materialize(MapScope(3), f.table, f.container)

	if res.Created != 1 || res.Removed != 1 {
		t.Errorf("Materialize() = %+v, expected 1 created and 1 removed", res)
	}
	if f.table[1].Kind() != KindStatic {
		t.Errorf("layer 1 kind = %v, expected static", f.table[1].Kind())
	}
}

func TestMaterializeOrphans(t *testing.T) {
	f := newMaterializerFixture(forestNote)
	f.mat.Materialize(MapScope(3), f.table, f.container)

	f.reg.Remove(MapScope(3), -1)
	res := f.mat.Materialize(MapScope(3), f.table, f.container)
	if res.Removed != 2 || len(f.table) != 0 || len(f.container.children) != 0 {
		t.Errorf("Materialize() = %+v, table=%d children=%d, expected everything removed",
			res, len(f.table), len(f.container.children))
	}
}

func TestMaterializeBattle(t *testing.T) {
	f := newMaterializerFixture("")
	f.reg.CreateOrUpdate(BattleScope, 1, &Descriptor{Graphic: "stars"})
	f.reg.CreateOrUpdate(BattleScope, 2, &Descriptor{Kind: KindStatic, Graphic: "moon"})

	res := f.mat.Materialize(BattleScope, f.table, f.container)
	if res.Created != 2 {
		t.Fatalf("Created = %d, expected 2", res.Created)
	}
	for id, l := range f.table {
		tl, ok := l.(*TilingLayer)
		if !ok {
			t.Errorf("battle layer %d is %T, expected *TilingLayer", id, l)
			continue
		}
		if tl.camera != nil {
			t.Errorf("battle layer %d has a camera", id)
		}
	}

	f.reg.CreateOrUpdate(BattleScope, 1, &Descriptor{})
	res = f.mat.Materialize(BattleScope, f.table, f.container)
	if res.Removed != 1 {
		t.Errorf("Removed = %d, expected 1 after clearing a battle id", res.Removed)
	}

	f.mat.Clear(f.table, f.container)
	if len(f.table) != 0 || len(f.container.children) != 0 {
		t.Error("Clear() left live layers")
	}
}
