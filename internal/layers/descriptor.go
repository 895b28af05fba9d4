// Package layers implements decorative image layers for maps and battles:
// tiling (parallax) layers that scroll and repeat, and static layers pinned
// to a world position or to a character.
//
// Descriptors live in a Registry, scoped per map and per battle session.
// A Materializer reconciles the registry against live layer objects, and
// each live layer reads its descriptor by key every frame so that commands
// take effect on the next tick without a reload.
package layers

import "math"

// Kind distinguishes the two descriptor variants.
type Kind int

const (
	KindTiling Kind = iota
	KindStatic
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTiling:
		return "tiling"
	case KindStatic:
		return "static"
	default:
		return "unknown"
	}
}

// BlendMode is the compositing mode of a layer.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAdd
	BlendMultiply
	BlendScreen
)

// String returns a human-readable name for the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendAdd:
		return "add"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	default:
		return "unknown"
	}
}

// Character binding values for static layers.
const (
	CharacterNone   = 0
	CharacterPlayer = -1
)

// Descriptor is the normalized configuration of one layer.
//
// Tiling layers use the speed, shift and scroll accumulator fields. Static
// layers use the position, anchor, character and rotate fields. Both use
// Graphic, Opacity, Z and Blend.
type Descriptor struct {
	Kind    Kind
	Graphic string // empty means the layer is inactive
	Opacity float64
	Z       float64

	// Blend holds the raw numeric value supplied by the caller. It is
	// normally a small integer; see BlendMode for the enum view.
	Blend float64

	// Tiling
	XSpeed, YSpeed     float64
	XShift, YShift     float64
	CurrentX, CurrentY float64

	// Static
	X, Y             float64
	XAnchor, YAnchor float64
	Character        int
	Rotate           bool
}

// Active reports whether the descriptor should produce a visible layer.
// A nil descriptor or one with an empty graphic is "no layer here".
func (d *Descriptor) Active() bool {
	return d != nil && d.Graphic != ""
}

// BlendMode returns the blend value truncated to a known mode.
// Out-of-range values fall back to BlendNormal.
func (d *Descriptor) BlendMode() BlendMode {
	if d == nil || math.IsNaN(d.Blend) {
		return BlendNormal
	}
	m := BlendMode(math.Trunc(d.Blend))
	if m < BlendNormal || m > BlendScreen {
		return BlendNormal
	}
	return m
}

// Clone returns a copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
