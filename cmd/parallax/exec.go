package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-parallax/internal/config"
	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/platform/tui"
	"github.com/vovakirdan/tui-parallax/internal/storage"
)

var (
	flagExecLoad   string
	flagExecSave   string
	flagExecFrames int
	flagExecRender bool
)

var execCmd = &cobra.Command{
	Use:   "exec <map> <command>...",
	Short: "Run layer commands without the UI",
	Long: `Start a session on a map, run prompt commands against it and print
their output. Commands are separated by ';'. The same commands work at the
':' prompt in 'parallax play'.

Examples:
  parallax exec 1 help
  parallax exec 1 "layer 0 5 stars 0.5 0 255 0; refresh; list"
  parallax exec 2 "remove 0 -1; save" --render
  parallax exec 1 "battle 1 fog 1 0 200 0 0" --save before-battle
  parallax exec 1 list --load quick`,
	Args: cobra.MinimumNArgs(2),
	Run:  runExec,
}

func init() {
	execCmd.Flags().StringVar(&flagExecLoad, "load", "", "Load this save slot before running commands")
	execCmd.Flags().StringVar(&flagExecSave, "save", "", "Save to this slot after running commands")
	execCmd.Flags().IntVar(&flagExecFrames, "frames", 0, "Frames to advance after the commands")
	execCmd.Flags().BoolVar(&flagExecRender, "render", false, "Print the final frame")
}

func runExec(_ *cobra.Command, args []string) {
	mapID, err := parseMapID(args[0])
	if err != nil {
		fail("%v", err)
	}

	a, err := setup(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	session, err := a.newSession(mapID, 80, 20)
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(config.ExpandHome(a.cfg.Storage.DBPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	viewer := tui.NewViewer(session, a.assets, store, a.logger)
	if flagExecLoad != "" {
		if err := viewer.Load(flagExecLoad); err != nil {
			fail("cannot load %q: %v", flagExecLoad, err)
		}
	}

	failed := false
	for _, line := range splitCommands(strings.Join(args[1:], " ")) {
		fmt.Printf("> %s\n", line)
		out, err := viewer.Exec(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}

	for i, n := 0, flagExecFrames; i < n; i++ {
		if err := viewer.Step(core.NewInputFrame()); err != nil {
			fail("%v", err)
		}
	}

	if flagExecSave != "" {
		if err := viewer.Save(flagExecSave); err != nil {
			fail("cannot save %q: %v", flagExecSave, err)
		}
		fmt.Printf("saved to %q\n", flagExecSave)
	}

	if flagExecRender {
		a.assets.Wait()
		if err := viewer.Step(core.NewInputFrame()); err != nil {
			fail("%v", err)
		}
		screen := core.NewScreen(80, 20)
		viewer.Render(screen)
		fmt.Println(screen.String())
	}

	if failed {
		os.Exit(1)
	}
}

// splitCommands splits a ';'-separated command string, dropping empty
// commands.
func splitCommands(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
