package world

import (
	"math"

	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/maps"
)

// DefaultSpeed is the movement speed in tiles per tick.
const DefaultSpeed = 0.125

// Direction deltas indexed by numpad code.
var directionDelta = map[int][2]int{
	1: {-1, 1}, 2: {0, 1}, 3: {1, 1},
	4: {-1, 0}, 6: {1, 0},
	7: {-1, -1}, 8: {0, -1}, 9: {1, -1},
}

// DirectionDelta returns the tile step for a numpad direction code.
func DirectionDelta(dir int) (dx, dy int) {
	d := directionDelta[dir]
	return d[0], d[1]
}

// Character is a map actor: the player or an event. X and Y are the tile
// the character occupies or is moving to; the real position trails it
// while a step is in progress.
type Character struct {
	ID    int
	Name  string
	Glyph rune
	Color core.Color
	Speed float64

	x, y         int
	realX, realY float64
	dir          int

	route    []rune
	routePos int
	wait     int
}

// NewCharacter creates a character standing on (x, y).
func NewCharacter(x, y, dir int) *Character {
	c := &Character{Glyph: '@', Speed: DefaultSpeed, dir: maps.DirDown}
	c.Locate(x, y)
	c.SetDirection(dir)
	return c
}

// NewEventCharacter creates the character for a map event.
func NewEventCharacter(e maps.Event) *Character {
	c := NewCharacter(e.X, e.Y, e.Direction)
	c.ID = e.ID
	c.Name = e.Name
	c.Glyph = e.Glyph
	if color, ok := core.ParseColor(e.Color); ok {
		c.Color = color
	}
	c.route = []rune(e.Route)
	return c
}

// X returns the tile column.
func (c *Character) X() int { return c.x }

// Y returns the tile row.
func (c *Character) Y() int { return c.y }

// RealX returns the continuous column in tiles.
func (c *Character) RealX() float64 { return c.realX }

// RealY returns the continuous row in tiles.
func (c *Character) RealY() float64 { return c.realY }

// Direction returns the facing as a numpad code.
func (c *Character) Direction() int { return c.dir }

// SetDirection changes the facing. Unknown codes are ignored.
func (c *Character) SetDirection(dir int) {
	if _, ok := directionDelta[dir]; ok {
		c.dir = dir
	}
}

// Locate places the character on (x, y) immediately.
func (c *Character) Locate(x, y int) {
	c.x, c.y = x, y
	c.realX, c.realY = float64(x), float64(y)
}

// Moving reports whether a step is still in progress.
func (c *Character) Moving() bool {
	return c.realX != float64(c.x) || c.realY != float64(c.y)
}

// TryMove turns toward dir and starts a step if the target is passable.
// It returns false while a step is in progress or when blocked.
func (c *Character) TryMove(dir int, passable func(x, y int) bool) bool {
	if c.Moving() {
		return false
	}
	c.SetDirection(dir)
	dx, dy := DirectionDelta(dir)
	if dx == 0 && dy == 0 {
		return false
	}
	nx, ny := c.x+dx, c.y+dy
	if passable != nil && !passable(nx, ny) {
		return false
	}
	c.x, c.y = nx, ny
	return true
}

// Update advances the real position toward the target tile.
func (c *Character) Update() {
	c.realX = approach(c.realX, float64(c.x), c.Speed)
	c.realY = approach(c.realY, float64(c.y), c.Speed)
}

// FollowRoute issues the next step of the event's move route once the
// current step has finished. '.' waits for one step's worth of ticks.
func (c *Character) FollowRoute(passable func(x, y int) bool) {
	if len(c.route) == 0 || c.Moving() {
		return
	}
	if c.wait > 0 {
		c.wait--
		return
	}

	cmd := c.route[c.routePos]
	c.routePos = (c.routePos + 1) % len(c.route)

	var dir int
	switch cmd {
	case 'U', 'u':
		dir = maps.DirUp
	case 'D', 'd':
		dir = maps.DirDown
	case 'L', 'l':
		dir = maps.DirLeft
	case 'R', 'r':
		dir = maps.DirRight
	default:
		c.wait = c.stepTicks()
		return
	}
	if !c.TryMove(dir, passable) {
		c.wait = c.stepTicks()
	}
}

func (c *Character) stepTicks() int {
	if c.Speed <= 0 {
		return 1
	}
	return int(math.Ceil(1 / c.Speed))
}

func approach(cur, target, step float64) float64 {
	if step <= 0 {
		return target
	}
	if math.Abs(target-cur) <= step {
		return target
	}
	if target > cur {
		return cur + step
	}
	return cur - step
}
