// Package assets loads text-art bitmaps for layers. Loading is asynchronous:
// Cache.Load hands back an Image at once and fills it in the background.
package assets

import (
	"bufio"
	"bytes"
	"strings"
	"sync/atomic"

	"github.com/vovakirdan/tui-parallax/internal/core"
)

// DirectivePrefix starts a metadata line in an art file, e.g. "#! color cyan".
const DirectivePrefix = "#!"

// Art is decoded bitmap data.
type Art struct {
	width  int
	height int
	cells  [][]core.Cell
}

// Width returns the art width in cells.
func (a *Art) Width() int { return a.width }

// Height returns the art height in cells.
func (a *Art) Height() int { return a.height }

// At returns the cell at (x, y), or a space outside the art.
func (a *Art) At(x, y int) core.Cell {
	if y < 0 || y >= a.height || x < 0 || x >= a.width {
		return core.Cell{Rune: ' '}
	}
	return a.cells[y][x]
}

// Parse decodes an art file. Rows are padded with spaces to the widest row.
// Unknown directives are ignored.
func Parse(data []byte) *Art {
	color := core.ColorDefault
	var rows [][]rune

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, DirectivePrefix) {
			fields := strings.Fields(strings.TrimPrefix(line, DirectivePrefix))
			if len(fields) == 2 && fields[0] == "color" {
				if c, ok := core.ParseColor(fields[1]); ok {
					color = c
				}
			}
			continue
		}
		rows = append(rows, []rune(line))
	}

	// Trailing blank rows carry no art.
	for len(rows) > 0 && strings.TrimSpace(string(rows[len(rows)-1])) == "" {
		rows = rows[:len(rows)-1]
	}

	art := &Art{height: len(rows)}
	for _, r := range rows {
		art.width = max(art.width, len(r))
	}
	art.cells = make([][]core.Cell, art.height)
	for y, r := range rows {
		line := make([]core.Cell, art.width)
		for x := range line {
			ch := ' '
			if x < len(r) {
				ch = r[x]
			}
			line[x] = core.Cell{Rune: ch, Color: color}
		}
		art.cells[y] = line
	}
	return art
}

var emptyArt = &Art{}

// Image is a bitmap handle. It reports zero size until its art is loaded.
type Image struct {
	name string
	art  atomic.Pointer[Art]
	done atomic.Bool
}

func newImage(name string) *Image {
	img := &Image{name: name}
	img.art.Store(emptyArt)
	return img
}

// Name returns the graphic name the image was loaded for.
func (i *Image) Name() string { return i.name }

// Ready reports whether loading finished, successfully or not.
func (i *Image) Ready() bool { return i.done.Load() }

// Width returns the width in cells, 0 while loading.
func (i *Image) Width() int { return i.art.Load().Width() }

// Height returns the height in cells, 0 while loading.
func (i *Image) Height() int { return i.art.Load().Height() }

// At returns the cell at (x, y).
func (i *Image) At(x, y int) core.Cell { return i.art.Load().At(x, y) }

func (i *Image) finish(a *Art) {
	if a != nil {
		i.art.Store(a)
	}
	i.done.Store(true)
}
