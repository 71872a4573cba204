package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-memories/internal/platform/tui"
	"github.com/vovakirdan/sweet-memories/internal/storage"
)

var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Show the memory album",
	Long: `Browse every memory the config knows about. Found memories show
their caption and how often they were uncovered; the rest stay hidden.`,
	Args: cobra.NoArgs,
	RunE: runAlbum,
}

func runAlbum(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening sessions database: %w", err)
	}
	defer store.Close()

	_, err = tui.RunAlbum(store, memoriesForAlbum(), runtimeConfig())
	return err
}
