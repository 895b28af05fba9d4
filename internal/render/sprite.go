package render

import (
	"math"

	"github.com/vovakirdan/tui-parallax/internal/core"
)

// Sprite draws its bitmap once, placed by position and anchor. Rotation is
// snapped to the nearest quarter turn since cells cannot be rotated freely.
type Sprite struct {
	look
	x, y             float64
	anchorX, anchorY float64
	rotation         float64
}

// NewSprite creates an empty sprite.
func NewSprite() *Sprite {
	return &Sprite{}
}

// SetPosition sets the screen position of the anchor point.
func (s *Sprite) SetPosition(x, y float64) { s.x, s.y = x, y }

// SetAnchor sets the normalized anchor point (0..1 on each axis).
func (s *Sprite) SetAnchor(x, y float64) { s.anchorX, s.anchorY = x, y }

// SetRotation sets the rotation in radians, clockwise.
func (s *Sprite) SetRotation(radians float64) { s.rotation = radians }

// Position returns the anchor point position.
func (s *Sprite) Position() (float64, float64) { return s.x, s.y }

// QuarterTurns returns the rotation snapped to quarter turns, 0..3.
func (s *Sprite) QuarterTurns() int {
	return core.Mod(core.Round(s.rotation/(math.Pi/2)), 4)
}

// Draw paints the bitmap onto dst.
func (s *Sprite) Draw(dst *core.Screen) {
	w, h := s.size()
	if w == 0 || h == 0 {
		return
	}

	q := s.QuarterTurns()
	rw, rh := w, h
	if q%2 == 1 {
		rw, rh = h, w
	}
	left := core.Round(s.x - s.anchorX*float64(rw))
	top := core.Round(s.y - s.anchorY*float64(rh))

	for ry := 0; ry < rh; ry++ {
		for rx := 0; rx < rw; rx++ {
			var sx, sy int
			switch q {
			case 0:
				sx, sy = rx, ry
			case 1:
				sx, sy = ry, h-1-rx
			case 2:
				sx, sy = w-1-rx, h-1-ry
			case 3:
				sx, sy = w-1-ry, rx
			}
			s.paint(dst, left+rx, top+ry, s.raster.At(sx, sy))
		}
	}
}
