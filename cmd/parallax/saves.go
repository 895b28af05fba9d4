package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-parallax/internal/config"
	"github.com/vovakirdan/tui-parallax/internal/storage"
)

var flagSavesDelete string

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List or delete save slots",
	Long: `Display the save slots in the save database, most recent first.

Slots created over SSH are shown with their "user/" prefix.

Examples:
  parallax saves
  parallax saves --delete quick
  parallax saves --db ./saves.db`,
	Args: cobra.NoArgs,
	Run:  runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagSavesDelete, "delete", "", "Delete this slot")
}

func runSaves(_ *cobra.Command, _ []string) {
	a, err := setup(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	store, err := storage.Open(config.ExpandHome(a.cfg.Storage.DBPath))
	if err != nil {
		fail("opening save database: %v", err)
	}
	defer store.Close()

	if flagSavesDelete != "" {
		if err := store.DeleteSlot(flagSavesDelete); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Deleted %q\n", flagSavesDelete)
		return
	}

	slots, err := store.ListSlots()
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving saves: %v\n", err)
		os.Exit(1)
	}

	if len(slots) == 0 {
		fmt.Println("No saves recorded yet.")
		fmt.Println()
		fmt.Println("Use ':save [slot]' in 'parallax play' to create one.")
		return
	}

	// Print header
	fmt.Printf("  %-20s  %-4s  %-6s  %s\n", "Slot", "Map", "Layers", "Saved")
	fmt.Printf("  %-20s  %-4s  %-6s  %s\n", "----", "---", "------", "-----")

	for _, s := range slots {
		saved := "-"
		if !s.UpdatedAt.IsZero() {
			saved = s.UpdatedAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-20s  %-4d  %-6d  %s\n", s.Name, s.MapID, s.Layers, saved)
	}
}
