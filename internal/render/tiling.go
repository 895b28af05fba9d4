package render

import "github.com/vovakirdan/tui-parallax/internal/core"

// TilingSprite repeats its bitmap over the whole screen. Increasing the
// origin moves the image left/up.
type TilingSprite struct {
	look
	originX, originY float64
}

// NewTilingSprite creates an empty tiling sprite.
func NewTilingSprite() *TilingSprite {
	return &TilingSprite{}
}

// SetOrigin sets the scroll origin in cells.
func (t *TilingSprite) SetOrigin(x, y float64) {
	t.originX, t.originY = x, y
}

// Origin returns the scroll origin.
func (t *TilingSprite) Origin() (float64, float64) {
	return t.originX, t.originY
}

// Draw paints the repeated bitmap onto dst.
func (t *TilingSprite) Draw(dst *core.Screen) {
	w, h := t.size()
	if w == 0 || h == 0 {
		return
	}

	ox, oy := core.Round(t.originX), core.Round(t.originY)
	for y := 0; y < dst.Height(); y++ {
		by := core.Mod(y+oy, h)
		for x := 0; x < dst.Width(); x++ {
			t.paint(dst, x, y, t.raster.At(core.Mod(x+ox, w), by))
		}
	}
}
