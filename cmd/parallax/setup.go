package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-parallax/internal/assets"
	"github.com/vovakirdan/tui-parallax/internal/config"
	"github.com/vovakirdan/tui-parallax/internal/maps"
	"github.com/vovakirdan/tui-parallax/internal/world"
)

// app is what every subcommand starts from.
type app struct {
	cfg    config.Config
	maps   *maps.Set
	assets *assets.Cache
	logger *log.Logger
	logOut io.Closer
}

// setup loads configuration, maps and the asset cache. Logs go to the
// --log file when given, otherwise to fallback (which may be io.Discard).
func setup(fallback io.Writer) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Display.TickRate = flagFPS
	}

	a := &app{cfg: cfg}

	out := fallback
	if flagLog != "" {
		f, err := os.OpenFile(flagLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, a.logOut = f, f
	}
	a.logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "parallax",
		Level:           log.DebugLevel,
	})

	a.maps, err = maps.Load(config.ExpandHome(cfg.World.MapsDir))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("cannot load maps: %w", err)
	}
	a.assets = assets.NewCache(config.ExpandHome(cfg.World.AssetsDir), a.logger)
	return a, nil
}

func (a *app) close() {
	if a.logOut != nil {
		a.logOut.Close()
	}
}

// worldOptions returns session options for a viewport of w x h cells.
func (a *app) worldOptions(w, h int) world.Options {
	opts := world.DefaultOptions()
	opts.TileW = a.cfg.Display.TileWidth
	opts.TileH = a.cfg.Display.TileHeight
	opts.PlayerSpeed = a.cfg.World.PlayerSpeed
	if w > 0 && h > 0 {
		opts.ViewW, opts.ViewH = w, h
	}
	return opts
}

// newSession creates a session on mapID, or on the configured start map
// when mapID is 0.
func (a *app) newSession(mapID, w, h int) (*world.Session, error) {
	if mapID == 0 {
		mapID = a.cfg.World.StartMap
	}
	s := world.NewSession(a.maps, a.worldOptions(w, h), a.logger)
	if err := s.SetupMap(mapID); err != nil {
		return nil, err
	}
	return s, nil
}

// parseMapID parses a map id argument.
func parseMapID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid map id %q", arg)
	}
	return id, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
