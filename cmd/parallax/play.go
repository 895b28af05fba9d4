package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-parallax/internal/config"
	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/platform/tui"
	"github.com/vovakirdan/tui-parallax/internal/storage"
)

var (
	flagPlayMap  int
	flagPlaySlot string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Explore the maps",
	Long: `Start the viewer on the configured start map.

Controls:
  Arrows/WASD  - Move
  B            - Enter or leave the battle scene
  :            - Command prompt (try ":help")
  O            - Browse save slots
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Examples:
  parallax play
  parallax play --map 2
  parallax play --load quick
  parallax play --log ./parallax.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayMap, "map", 0, "Start map id (default from config)")
	playCmd.Flags().StringVar(&flagPlaySlot, "load", "", "Load this save slot on start")
}

func runPlay(_ *cobra.Command, _ []string) {
	// The UI owns the terminal, so logs only go to --log.
	a, err := setup(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	// Get terminal size
	cfg := core.DefaultConfig()
	cfg.TickRate = a.cfg.Display.TickRate
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	session, err := a.newSession(flagPlayMap, cfg.ScreenW, cfg.ScreenH-2)
	if err != nil {
		fail("%v", err)
	}

	// Open save storage
	store, err := storage.Open(config.ExpandHome(a.cfg.Storage.DBPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save database: %v\n", err)
		// Continue without saves
		store = nil
	}

	viewer := tui.NewViewer(session, a.assets, store, a.logger)
	if flagPlaySlot != "" {
		if err := viewer.Load(flagPlaySlot); err != nil {
			if store != nil {
				store.Close()
			}
			fail("cannot load %q: %v", flagPlaySlot, err)
		}
	}

	runErr := tui.Run(viewer, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running viewer: %v", runErr)
	}
}
