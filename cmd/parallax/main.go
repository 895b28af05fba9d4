// parallax is a terminal map viewer built around a layer-graphics engine:
// parallax and static image layers per map and per battle, driven by map
// notes and runtime commands.
//
// Usage:
//
//	parallax play                   - Explore the maps interactively
//	parallax serve                  - Start SSH server for remote sessions
//	parallax maps                   - List available maps
//	parallax inspect <map>          - Show a map's layer setup and first frame
//	parallax exec <map> <command>   - Run layer commands headless
//	parallax saves                  - List or delete save slots
//
// Global flags:
//
//	--config <path>  - Configuration file (default search order applies)
//	--db <path>      - Save database (overrides the configuration)
//	--fps <rate>     - Tick rate (overrides the configuration)
//	--log <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagFPS    int
	flagLog    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "parallax",
	Short: "Parallax - layered map graphics in your terminal",
	Long: `Parallax is a terminal map viewer whose maps carry parallax and
static picture layers. Layers come from LAYER / LAYER_S lines in map notes
and from commands typed at the ':' prompt.

Available commands:
  play     - Explore the maps
  serve    - Start SSH server for remote sessions
  maps     - List available maps
  inspect  - Show a map's layer setup and a rendered frame
  exec     - Run layer commands without the UI
  saves    - List or delete save slots

Examples:
  parallax play
  parallax inspect 2
  parallax exec 1 "layer 0 5 stars 0.5 0 255 0; refresh; list"
  parallax serve`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to save database (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(savesCmd)
}
