package layers

import (
	"math"
	"testing"
)

func newStaticFixture(fields ...string) (*Registry, Key) {
	reg := NewRegistry(nil)
	reg.EnterMap(1, "", nil)
	return reg, NewCommands(reg, nil).CreateStatic(fields)
}

func TestDirectionRotation(t *testing.T) {
	tests := []struct {
		dir      int
		expected float64
	}{
		{8, 0},
		{9, math.Pi / 4},
		{6, math.Pi / 2},
		{3, math.Pi * 3 / 4},
		{2, math.Pi},
		{1, math.Pi * 5 / 4},
		{4, math.Pi * 3 / 2},
		{7, math.Pi * 7 / 4},
		{0, 0},
		{5, 0},
		{-1, 0},
		{10, 0},
	}

	for _, tc := range tests {
		if got := DirectionRotation(tc.dir); got != tc.expected {
			t.Errorf("DirectionRotation(%d) = %v, expected %v", tc.dir, got, tc.expected)
		}
	}
}

func TestStaticFixedPosition(t *testing.T) {
	reg, key := newStaticFixture("0", "1", "sign", "80", "64", "200", "4", "1", "0.5", "1")
	prim := &fakePrim{}
	cam := &fakeCamera{dx: 3, dy: 2, tw: 4, th: 2}
	layer := NewStaticLayer(key, reg, &fakeLoader{}, cam, nil, prim)

	layer.Update()
	if prim.x != 80-3*4 || prim.y != 64-2*2 {
		t.Errorf("position = (%v, %v), expected (68, 60)", prim.x, prim.y)
	}
	if prim.anchorX != 0.5 || prim.anchorY != 1 {
		t.Errorf("anchor = (%v, %v), expected (0.5, 1)", prim.anchorX, prim.anchorY)
	}
	if prim.rotation != 0 || prim.opacity != 200 || prim.blend != BlendAdd {
		t.Errorf("rotation=%v opacity=%v blend=%v", prim.rotation, prim.opacity, prim.blend)
	}
	if prim.bitmapName() != "sign" {
		t.Errorf("bitmap = %q, expected sign", prim.bitmapName())
	}
}

func TestStaticFollowsPlayer(t *testing.T) {
	reg, key := newStaticFixture("0", "1", "glow", "0", "0", "255", "4", "0", "0.5", "0.5", "-1", "1")
	player := &fakeChar{x: 5.5, y: 3, dir: 6}
	prim := &fakePrim{}
	cam := &fakeCamera{dx: 1, dy: 1, tw: 2, th: 1}
	layer := NewStaticLayer(key, reg, &fakeLoader{}, cam, &fakeChars{player: player}, prim)

	layer.Update()
	// (real - display) * tile + tile/2
	if prim.x != (5.5-1)*2+1 || prim.y != (3-1)*1+0.5 {
		t.Errorf("position = (%v, %v), expected (10, 2.5)", prim.x, prim.y)
	}
	if prim.rotation != math.Pi/2 {
		t.Errorf("rotation = %v, expected pi/2 facing right", prim.rotation)
	}

	player.dir = 2
	player.x = 6
	layer.Update()
	if prim.rotation != math.Pi || prim.x != 11 {
		t.Errorf("after turning: rotation=%v x=%v, expected pi and 11", prim.rotation, prim.x)
	}
}

func TestStaticRotateDisabled(t *testing.T) {
	reg, key := newStaticFixture("0", "1", "glow", "0", "0", "255", "4", "0", "0", "0", "-1", "0")
	prim := &fakePrim{rotation: 1}
	layer := NewStaticLayer(key, reg, &fakeLoader{}, &fakeCamera{tw: 1, th: 1},
		&fakeChars{player: &fakeChar{dir: 4}}, prim)

	layer.Update()
	if prim.rotation != 0 {
		t.Errorf("rotation = %v, expected 0 with rotate off", prim.rotation)
	}
}

func TestStaticFollowsEvent(t *testing.T) {
	reg, key := newStaticFixture("0", "1", "halo", "0", "0", "255", "4", "0", "0", "0", "7", "1")
	chars := &fakeChars{
		player: &fakeChar{},
		events: map[int]*fakeChar{7: {x: 2, y: 2, dir: 9}},
	}
	prim := &fakePrim{}
	layer := NewStaticLayer(key, reg, &fakeLoader{}, &fakeCamera{tw: 1, th: 1}, chars, prim)

	layer.Update()
	if prim.x != 2.5 || prim.y != 2.5 || prim.rotation != math.Pi/4 {
		t.Errorf("sprite = (%v, %v) rot %v, expected (2.5, 2.5) rot pi/4", prim.x, prim.y, prim.rotation)
	}

	// A dangling event id leaves the sprite where it was.
	delete(chars.events, 7)
	layer.Update()
	if prim.x != 2.5 || prim.y != 2.5 {
		t.Errorf("sprite moved to (%v, %v) with a dangling binding", prim.x, prim.y)
	}
}
