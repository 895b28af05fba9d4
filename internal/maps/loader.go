package maps

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaultMaps embed.FS

// Loader reads map files from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a new map loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all map files.
// Returns maps sorted by ID. Files that fail to parse are skipped.
func (l *Loader) LoadAll() ([]*Definition, error) {
	var defs []*Definition

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		def, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		defs = append(defs, def)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortByID(defs)
	return defs, nil
}

// LoadFile loads a single map file.
func (l *Loader) LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	def.FilePath = path
	return def, nil
}

// Defaults returns the embedded map set.
func Defaults() ([]*Definition, error) {
	entries, err := fs.ReadDir(defaultMaps, "defaults")
	if err != nil {
		return nil, fmt.Errorf("reading embedded maps: %w", err)
	}

	var defs []*Definition
	for _, e := range entries {
		name := "defaults/" + e.Name()
		data, err := defaultMaps.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading embedded %s: %w", name, err)
		}
		def, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing embedded %s: %w", name, err)
		}
		def.FilePath = "embedded:" + e.Name()
		defs = append(defs, def)
	}
	sortByID(defs)
	return defs, nil
}

// Set is an id-indexed collection of maps.
type Set struct {
	byID map[int]*Definition
}

// NewSet indexes defs by id. Later definitions replace earlier ones.
func NewSet(defs ...*Definition) *Set {
	s := &Set{byID: make(map[int]*Definition, len(defs))}
	for _, d := range defs {
		s.byID[d.ID] = d
	}
	return s
}

// Load builds a Set from the embedded maps overlaid with the maps found
// under dir. An empty or missing dir yields the embedded set.
func Load(dir string) (*Set, error) {
	defs, err := Defaults()
	if err != nil {
		return nil, err
	}
	if dir != "" {
		custom, err := NewLoader(dir).LoadAll()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		defs = append(defs, custom...)
	}
	return NewSet(defs...), nil
}

// Get returns the map with the given id.
func (s *Set) Get(id int) (*Definition, bool) {
	d, ok := s.byID[id]
	return d, ok
}

// List returns all maps sorted by id.
func (s *Set) List() []*Definition {
	defs := make([]*Definition, 0, len(s.byID))
	for _, d := range s.byID {
		defs = append(defs, d)
	}
	sortByID(defs)
	return defs
}

// Len returns the number of maps.
func (s *Set) Len() int {
	return len(s.byID)
}

func sortByID(defs []*Definition) {
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
