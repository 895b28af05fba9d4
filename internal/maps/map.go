// Package maps loads map definitions: the tile grid, the map note that seeds
// layer configuration, events and transfer points.
package maps

// Numpad-style facing codes.
const (
	DirDown  = 2
	DirLeft  = 4
	DirRight = 6
	DirUp    = 8
)

// Tile runes with special meaning.
const (
	TileFloor    = '.'
	TileWall     = '#'
	TileWater    = '~'
	TileGrass    = '"'
	TileTransfer = '='
)

// Start is the player's entry point on a map.
type Start struct {
	X, Y      int
	Direction int
}

// Event is a non-player character placed on the map.
type Event struct {
	ID        int
	Name      string
	X, Y      int
	Direction int
	Glyph     rune
	Color     string
	// Route is a looping move script made of U, D, L, R and '.' (wait).
	Route string
}

// Transfer moves the player to another map when stepped on.
type Transfer struct {
	X, Y     int
	MapID    int
	ToX, ToY int
}

// Definition is a loaded map.
type Definition struct {
	ID        int
	Name      string
	Width     int
	Height    int
	Start     Start
	Note      string
	Events    []Event
	Transfers []Transfer
	FilePath  string

	tiles [][]rune
}

// Tile returns the tile rune at (x, y). Cells outside the drawn rows are
// floor; cells outside the map are walls.
func (d *Definition) Tile(x, y int) rune {
	if x < 0 || y < 0 || x >= d.Width || y >= d.Height {
		return TileWall
	}
	if y >= len(d.tiles) || x >= len(d.tiles[y]) {
		return TileFloor
	}
	return d.tiles[y][x]
}

// Passable reports whether a character can stand on (x, y).
func (d *Definition) Passable(x, y int) bool {
	switch d.Tile(x, y) {
	case TileWall, TileWater:
		return false
	}
	return true
}

// TransferAt returns the transfer placed on (x, y), if any.
func (d *Definition) TransferAt(x, y int) (Transfer, bool) {
	for _, t := range d.Transfers {
		if t.X == x && t.Y == y {
			return t, true
		}
	}
	return Transfer{}, false
}

// Event returns the event with the given id.
func (d *Definition) Event(id int) (Event, bool) {
	for _, e := range d.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}
