// Package render provides the terminal-side drawing primitives the layer
// engine drives: a z-ordered Stage, a repeating TilingSprite and a Sprite.
package render

import (
	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/layers"
)

// Raster is a bitmap whose cells can be read. Bitmaps that do not
// implement Raster draw as empty.
type Raster interface {
	layers.Bitmap
	At(x, y int) core.Cell
}

// Node is anything the Stage can draw.
type Node interface {
	Z() float64
	Draw(dst *core.Screen)
}

// Factory creates primitives for the layer engine.
type Factory struct{}

// NewTiling returns a new TilingSprite.
func (Factory) NewTiling() layers.TilingPrimitive {
	return NewTilingSprite()
}

// NewSprite returns a new Sprite.
func (Factory) NewSprite() layers.SpritePrimitive {
	return NewSprite()
}

// look holds the state shared by both primitives.
type look struct {
	raster  Raster
	opacity float64
	z       float64
	blend   layers.BlendMode
}

func (l *look) SetBitmap(b layers.Bitmap) {
	r, _ := b.(Raster)
	l.raster = r
}

func (l *look) SetOpacity(opacity float64) { l.opacity = opacity }
func (l *look) SetZ(z float64) { l.z = z }
func (l *look) SetBlendMode(mode layers.BlendMode) { l.blend = mode }

// Z returns the ordering key.
func (l *look) Z() float64 { return l.z }

// size returns the current raster size; zero while not loaded.
func (l *look) size() (int, int) {
	if l.raster == nil {
		return 0, 0
	}
	return l.raster.Width(), l.raster.Height()
}

// paint writes one bitmap cell onto dst honoring opacity and blend mode.
// Spaces are transparent.
func (l *look) paint(dst *core.Screen, x, y int, c core.Cell) {
	if c.Rune == ' ' || c.Rune == 0 || l.opacity <= 0 {
		return
	}
	if !dst.InBounds(x, y) {
		return
	}

	color := c.Color
	if l.opacity < 128 {
		color = core.ColorGray
	}

	switch l.blend {
	case layers.BlendAdd:
		color = color.Bright()
	case layers.BlendMultiply:
		if dst.IsBlank(x, y) {
			return
		}
	case layers.BlendScreen:
		if !dst.IsBlank(x, y) {
			return
		}
	}
	dst.SetCell(x, y, c.Rune, color)
}
