package assets

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-parallax/internal/layers"
)

//go:embed defaults/*.txt
var defaults embed.FS

// Extension is the file extension of art files.
const Extension = ".txt"

// Cache loads and memoizes images by graphic name.
// Search order: <dir>/<name>.txt -> embedded default.
type Cache struct {
	dir    string
	logger *log.Logger

	mu      sync.Mutex
	images  map[string]*Image
	pending sync.WaitGroup
}

// NewCache creates a cache reading from dir. An empty dir uses only the
// embedded defaults. A nil logger discards output.
func NewCache(dir string, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cache{
		dir:    dir,
		logger: logger,
		images: make(map[string]*Image),
	}
}

// Load returns the image for name, starting a background load the first
// time a name is requested. It implements layers.Loader.
func (c *Cache) Load(name string) layers.Bitmap {
	return c.Image(name)
}

// Image is Load with the concrete return type.
func (c *Cache) Image(name string) *Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.images[name]; ok {
		return img
	}

	img := newImage(name)
	c.images[name] = img
	if name == "" {
		img.finish(nil)
		return img
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		art, err := c.read(name)
		if err != nil {
			c.logger.Warn("could not load graphic", "name", name, "error", err)
		}
		img.finish(art)
	}()
	return img
}

// Wait blocks until every load started so far has finished.
func (c *Cache) Wait() {
	c.pending.Wait()
}

// read locates and decodes the art for name.
func (c *Cache) read(name string) (*Art, error) {
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("assets: invalid graphic name %q", name)
	}

	if c.dir != "" {
		data, err := os.ReadFile(filepath.Join(c.dir, name+Extension))
		if err == nil {
			return Parse(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("assets: read %s: %w", name, err)
		}
	}

	data, err := defaults.ReadFile("defaults/" + name + Extension)
	if err != nil {
		return nil, fmt.Errorf("assets: graphic %q not found", name)
	}
	return Parse(data), nil
}

// Names lists the graphics available from dir and the embedded defaults.
func (c *Cache) Names() []string {
	seen := make(map[string]bool)

	add := func(entries []fs.DirEntry) {
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != Extension {
				continue
			}
			seen[strings.TrimSuffix(e.Name(), Extension)] = true
		}
	}

	embedded, _ := defaults.ReadDir("defaults")
	add(embedded)
	if c.dir != "" {
		if entries, err := os.ReadDir(c.dir); err == nil {
			add(entries)
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
