package layers

// The interfaces below describe what the layer engine needs from the host:
// bitmaps and a loader, drawable primitives, a z-ordered container, a camera
// and the characters a static layer can follow.

// Bitmap is a displayable image handle. Handles may be returned before the
// image data is ready; a not-yet-loaded bitmap reports zero size.
type Bitmap interface {
	Width() int
	Height() int
}

// Loader resolves a graphic name to a bitmap. Loading is fire-and-forget:
// Load returns immediately and the handle fills in once ready.
type Loader interface {
	Load(graphic string) Bitmap
}

// Primitive is the part of a drawable both layer variants drive.
type Primitive interface {
	SetBitmap(b Bitmap)
	SetOpacity(opacity float64)
	SetZ(z float64)
	SetBlendMode(mode BlendMode)
}

// TilingPrimitive repeats its bitmap across the viewport, offset by origin.
type TilingPrimitive interface {
	Primitive
	SetOrigin(x, y float64)
}

// SpritePrimitive draws its bitmap once at a position.
type SpritePrimitive interface {
	Primitive
	SetPosition(x, y float64)
	SetAnchor(x, y float64)
	SetRotation(radians float64)
}

// Container is the host's z-ordered child list.
type Container interface {
	Insert(p Primitive, z float64)
	Remove(p Primitive)
}

// Factory creates fresh host primitives.
type Factory interface {
	NewTiling() TilingPrimitive
	NewSprite() SpritePrimitive
}

// Camera exposes the current display offset of the map, in tiles, and the
// tile size used to project world coordinates to the screen.
type Camera interface {
	DisplayX() float64
	DisplayY() float64
	TileWidth() float64
	TileHeight() float64
}

// Character is anything a static layer can follow.
type Character interface {
	// RealX and RealY are the continuous (sub-tile) position in tiles.
	RealX() float64
	RealY() float64
	// Direction is the facing as a numpad code (2 down, 4 left, 6 right,
	// 8 up, diagonals 1/3/7/9).
	Direction() int
}

// Characters resolves character bindings.
type Characters interface {
	Player() Character
	Event(id int) (Character, bool)
}
