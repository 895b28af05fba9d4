package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-parallax/internal/config"
	"github.com/vovakirdan/tui-parallax/internal/platform/tui"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the parallax SSH server",
	Long: `Start an SSH server that gives every connection its own viewer
session.

Each connection starts on the configured start map with fresh variables
and layers. Save slots are stored per server and namespaced by SSH user.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.parallax/host_key

Examples:
  parallax serve                           # Listen on the configured address
  parallax serve --ssh :2222               # Listen on port 2222
  parallax serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	a, err := setup(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = a.cfg.Server.Address
	cfg.HostKeyPath = config.ExpandHome(a.cfg.Server.HostKeyPath)
	cfg.DBPath = config.ExpandHome(a.cfg.Storage.DBPath)
	cfg.IdleTimeout = a.cfg.Server.IdleTimeout
	cfg.TickRate = a.cfg.Display.TickRate
	cfg.StartMap = a.cfg.World.StartMap
	cfg.World = a.worldOptions(0, 0)
	cfg.Maps = a.maps
	cfg.Assets = a.assets
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting parallax SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
