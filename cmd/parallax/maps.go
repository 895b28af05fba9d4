package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/layers"
	"github.com/vovakirdan/tui-parallax/internal/platform/tui"
)

var (
	flagInspectWidth  int
	flagInspectHeight int
	flagInspectFrames int
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List all available maps",
	Long:  `Shows the built-in maps and any found in the configured maps directory.`,
	Args:  cobra.NoArgs,
	Run:   runMaps,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <map>",
	Short: "Show a map's layer setup and a rendered frame",
	Long: `Print the layer directives of a map's note, the registry table the
map starts with, and the first frames rendered as plain text.

Examples:
  parallax inspect 1
  parallax inspect 2 --frames 30 --width 60 --height 16`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&flagInspectWidth, "width", 80, "Frame width in cells")
	inspectCmd.Flags().IntVar(&flagInspectHeight, "height", 20, "Frame height in cells")
	inspectCmd.Flags().IntVar(&flagInspectFrames, "frames", 1, "Frames to advance before rendering")
}

func runMaps(_ *cobra.Command, _ []string) {
	a, err := setup(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	defs := a.maps.List()
	if len(defs) == 0 {
		fmt.Println("No maps available.")
		return
	}

	fmt.Println("Available maps:")
	fmt.Println()

	fmt.Printf("  %-4s  %-24s  %-7s  %s\n", "ID", "Name", "Size", "Layers")
	fmt.Printf("  %-4s  %-24s  %-7s  %s\n", "--", "----", "----", "------")

	for _, d := range defs {
		n := len(layers.ParseNote(d.ID, d.Note, nil))
		size := fmt.Sprintf("%dx%d", d.Width, d.Height)
		fmt.Printf("  %-4d  %-24s  %-7s  %d\n", d.ID, d.Name, size, n)
	}

	fmt.Println()
	fmt.Println("Run 'parallax inspect <id>' to see a map's layers.")
}

func runInspect(_ *cobra.Command, args []string) {
	mapID, err := parseMapID(args[0])
	if err != nil {
		fail("%v", err)
	}

	a, err := setup(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	session, err := a.newSession(mapID, flagInspectWidth, flagInspectHeight)
	if err != nil {
		fail("%v", err)
	}
	def := session.Map.Def

	fmt.Printf("Map %d - %s (%dx%d)\n", def.ID, def.Name, def.Width, def.Height)
	fmt.Println()

	fmt.Println("Note directives:")
	found := false
	for _, line := range strings.Split(def.Note, "\n") {
		f := strings.Fields(line)
		if len(f) > 0 && (f[0] == layers.MarkerTiling || f[0] == layers.MarkerStatic) {
			fmt.Printf("  %s\n", strings.TrimSpace(line))
			found = true
		}
	}
	if !found {
		fmt.Println("  (none)")
	}
	fmt.Println()

	viewer := tui.NewViewer(session, a.assets, nil, a.logger)
	out, err := viewer.Exec("list")
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(out)
	fmt.Println()

	// Graphics load in the background; draw once they are in.
	a.assets.Wait()
	for i, n := 0, max(flagInspectFrames, 1); i < n; i++ {
		if err := viewer.Step(core.NewInputFrame()); err != nil {
			fail("%v", err)
		}
	}

	screen := core.NewScreen(flagInspectWidth, flagInspectHeight)
	viewer.Render(screen)
	fmt.Println(screen.String())
}
