package layers

// TilingLayer drives a repeating, scrolling primitive. The map variant
// follows the camera; the battle variant has no camera and scrolls from a
// fixed origin.
type TilingLayer struct {
	key     Key
	reg     *Registry
	loader  Loader
	camera  Camera // nil for battle layers
	prim    TilingPrimitive
	graphic string
	z       float64
}

// NewTilingMapLayer creates the map variant of a tiling layer.
func NewTilingMapLayer(key Key, reg *Registry, loader Loader, camera Camera, prim TilingPrimitive) *TilingLayer {
	l := &TilingLayer{key: key, reg: reg, loader: loader, camera: camera, prim: prim}
	l.init()
	return l
}

// NewTilingBattleLayer creates the battle variant of a tiling layer.
func NewTilingBattleLayer(key Key, reg *Registry, loader Loader, prim TilingPrimitive) *TilingLayer {
	l := &TilingLayer{key: key, reg: reg, loader: loader, prim: prim}
	l.init()
	return l
}

func (l *TilingLayer) init() {
	d := l.reg.Get(l.key.Scope, l.key.ID)
	if d == nil {
		return
	}
	l.z = d.Z
	l.graphic = d.Graphic
	l.prim.SetBitmap(l.loader.Load(d.Graphic))
}

// Update applies the live descriptor and advances the scroll accumulators.
func (l *TilingLayer) Update() {
	d := l.apply()
	if d == nil {
		return
	}

	// Speed is per frame, not per second.
	d.CurrentX += d.XSpeed
	d.CurrentY += d.YSpeed
}

// Apply pushes the live descriptor to the primitive, leaving the
// accumulators where they are.
func (l *TilingLayer) Apply() {
	l.apply()
}

func (l *TilingLayer) apply() *Descriptor {
	d := l.reg.Get(l.key.Scope, l.key.ID)
	if d == nil {
		return nil
	}

	if d.Graphic != l.graphic {
		l.graphic = d.Graphic
		l.prim.SetBitmap(l.loader.Load(d.Graphic))
	}
	l.prim.SetOpacity(d.Opacity)
	l.prim.SetZ(d.Z)
	l.prim.SetBlendMode(d.BlendMode())
	l.z = d.Z

	var dx, dy, tw, th float64
	if l.camera != nil {
		dx, dy = l.camera.DisplayX(), l.camera.DisplayY()
		tw, th = l.camera.TileWidth(), l.camera.TileHeight()
	}
	l.prim.SetOrigin(
		dx*tw+d.CurrentX+dx*d.XShift,
		dy*th+d.CurrentY+dy*d.YShift,
	)
	return d
}

// Graphic returns the graphic currently bound to the primitive.
func (l *TilingLayer) Graphic() string { return l.graphic }

// Z returns the ordering key last applied.
func (l *TilingLayer) Z() float64 { return l.z }

// Kind returns KindTiling.
func (l *TilingLayer) Kind() Kind { return KindTiling }

// Key returns the registry key this layer reads.
func (l *TilingLayer) Key() Key { return l.key }

// Primitive returns the host primitive.
func (l *TilingLayer) Primitive() Primitive { return l.prim }
