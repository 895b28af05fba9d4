package layers

import "math"

// directionRotation maps numpad facing codes to sprite rotation, with up as
// 0 and increasing clockwise in 45 degree steps. Codes 0 and 5 do not occur
// as facings and map to 0.
var directionRotation = [10]float64{
	0: 0,
	1: math.Pi * 5 / 4, // down-left
	2: math.Pi,         // down
	3: math.Pi * 3 / 4, // down-right
	4: math.Pi * 3 / 2, // left
	5: 0,
	6: math.Pi / 2,     // right
	7: math.Pi * 7 / 4, // up-left
	8: 0,               // up
	9: math.Pi / 4,     // up-right
}

// DirectionRotation returns the rotation in radians for a facing code.
func DirectionRotation(dir int) float64 {
	if dir < 0 || dir >= len(directionRotation) {
		return 0
	}
	return directionRotation[dir]
}

// StaticLayer drives a non-repeating sprite fixed in world space or bound
// to a character.
//
// A character id that does not resolve is a precondition violation: the
// sprite keeps its previous position and rotation until the binding is
// fixed.
type StaticLayer struct {
	key     Key
	reg     *Registry
	loader  Loader
	camera  Camera
	chars   Characters
	prim    SpritePrimitive
	graphic string
	z       float64
}

// NewStaticLayer creates a static layer.
func NewStaticLayer(key Key, reg *Registry, loader Loader, camera Camera, chars Characters, prim SpritePrimitive) *StaticLayer {
	l := &StaticLayer{key: key, reg: reg, loader: loader, camera: camera, chars: chars, prim: prim}
	if d := reg.Get(key.Scope, key.ID); d != nil {
		l.z = d.Z
		l.graphic = d.Graphic
		prim.SetBitmap(loader.Load(d.Graphic))
	}
	return l
}

// Update applies the live descriptor to the sprite. Static layers have no
// per-frame state, so it is the same as Apply.
func (l *StaticLayer) Update() {
	l.Apply()
}

// Apply applies the live descriptor to the sprite.
func (l *StaticLayer) Apply() {
	d := l.reg.Get(l.key.Scope, l.key.ID)
	if d == nil {
		return
	}

	if d.Graphic != l.graphic {
		l.graphic = d.Graphic
		l.prim.SetBitmap(l.loader.Load(d.Graphic))
	}
	l.prim.SetOpacity(d.Opacity)
	l.prim.SetZ(d.Z)
	l.prim.SetBlendMode(d.BlendMode())
	l.prim.SetAnchor(d.XAnchor, d.YAnchor)
	l.z = d.Z

	dx, dy, tw, th := 0.0, 0.0, 1.0, 1.0
	if l.camera != nil {
		dx, dy = l.camera.DisplayX(), l.camera.DisplayY()
		tw, th = l.camera.TileWidth(), l.camera.TileHeight()
	}

	if d.Character == CharacterNone {
		l.prim.SetPosition(d.X-dx*tw, d.Y-dy*th)
		l.prim.SetRotation(0)
		return
	}

	ch, ok := l.character(d.Character)
	if !ok {
		return
	}
	l.prim.SetPosition(
		(ch.RealX()-dx)*tw+tw/2,
		(ch.RealY()-dy)*th+th/2,
	)
	if d.Rotate {
		l.prim.SetRotation(DirectionRotation(ch.Direction()))
	} else {
		l.prim.SetRotation(0)
	}
}

func (l *StaticLayer) character(id int) (Character, bool) {
	if l.chars == nil {
		return nil, false
	}
	if id == CharacterPlayer {
		p := l.chars.Player()
		return p, p != nil
	}
	return l.chars.Event(id)
}

// Graphic returns the graphic currently bound to the sprite.
func (l *StaticLayer) Graphic() string { return l.graphic }

// Z returns the ordering key last applied.
func (l *StaticLayer) Z() float64 { return l.z }

// Kind returns KindStatic.
func (l *StaticLayer) Kind() Kind { return KindStatic }

// Key returns the registry key this layer reads.
func (l *StaticLayer) Key() Key { return l.key }

// Primitive returns the host sprite.
func (l *StaticLayer) Primitive() Primitive { return l.prim }
