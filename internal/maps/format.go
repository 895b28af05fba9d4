package maps

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlMap is the on-disk shape of a map file.
type yamlMap struct {
	ID        int            `yaml:"id"`
	Name      string         `yaml:"name"`
	Width     int            `yaml:"width,omitempty"`
	Height    int            `yaml:"height,omitempty"`
	Start     yamlStart      `yaml:"start"`
	Tiles     []string       `yaml:"tiles"`
	Note      string         `yaml:"note,omitempty"`
	Events    []yamlEvent    `yaml:"events,omitempty"`
	Transfers []yamlTransfer `yaml:"transfers,omitempty"`
}

type yamlStart struct {
	X         int `yaml:"x"`
	Y         int `yaml:"y"`
	Direction int `yaml:"direction"`
}

type yamlEvent struct {
	ID        int    `yaml:"id"`
	Name      string `yaml:"name"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Direction int    `yaml:"direction"`
	Glyph     string `yaml:"glyph"`
	Color     string `yaml:"color,omitempty"`
	Route     string `yaml:"route,omitempty"`
}

type yamlTransfer struct {
	X   int `yaml:"x"`
	Y   int `yaml:"y"`
	Map int `yaml:"map"`
	ToX int `yaml:"to_x"`
	ToY int `yaml:"to_y"`
}

// Parse decodes a YAML map definition.
func Parse(data []byte) (*Definition, error) {
	var ym yamlMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ym.ID <= 0 {
		return nil, fmt.Errorf("map id must be positive, got %d", ym.ID)
	}

	def := &Definition{
		ID:     ym.ID,
		Name:   ym.Name,
		Width:  ym.Width,
		Height: ym.Height,
		Note:   ym.Note,
		Start: Start{
			X:         ym.Start.X,
			Y:         ym.Start.Y,
			Direction: ym.Start.Direction,
		},
	}

	for _, row := range ym.Tiles {
		r := []rune(strings.TrimRight(row, "\r"))
		def.tiles = append(def.tiles, r)
		if len(r) > def.Width && ym.Width == 0 {
			def.Width = len(r)
		}
	}
	if def.Height == 0 {
		def.Height = len(def.tiles)
	}
	if def.Width <= 0 || def.Height <= 0 {
		return nil, fmt.Errorf("map %d has no size", ym.ID)
	}
	if def.Start.Direction == 0 {
		def.Start.Direction = DirDown
	}

	seen := make(map[int]bool)
	for _, e := range ym.Events {
		if e.ID <= 0 {
			return nil, fmt.Errorf("map %d: event id must be positive, got %d", ym.ID, e.ID)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("map %d: duplicate event id %d", ym.ID, e.ID)
		}
		seen[e.ID] = true

		glyph := '@'
		if g := []rune(e.Glyph); len(g) > 0 {
			glyph = g[0]
		}
		dir := e.Direction
		if dir == 0 {
			dir = DirDown
		}
		def.Events = append(def.Events, Event{
			ID:        e.ID,
			Name:      e.Name,
			X:         e.X,
			Y:         e.Y,
			Direction: dir,
			Glyph:     glyph,
			Color:     e.Color,
			Route:     e.Route,
		})
	}

	for _, t := range ym.Transfers {
		def.Transfers = append(def.Transfers, Transfer{
			X:     t.X,
			Y:     t.Y,
			MapID: t.Map,
			ToX:   t.ToX,
			ToY:   t.ToY,
		})
	}

	return def, nil
}
