package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-memories/internal/config"
	"github.com/vovakirdan/sweet-memories/internal/platform/tui"
	"github.com/vovakirdan/sweet-memories/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k   - Choose mode
  Left/Right    - Choose difficulty
  Enter/Space   - Play
  Tab           - Best sessions
  M             - Memory album
  Q             - Quit

Examples:
  memories menu
  memories menu --difficulty hard`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("sessions database unavailable", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	build := gameBuilder(logger)
	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			return err
		}
		cfg = result.Config
		preset = result.Preset

		switch {
		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("scoreboard", "err", err)
			}
			if !goBack {
				return nil
			}
			continue

		case result.WantsAlbum:
			quit, err := tui.RunAlbum(store, memoriesForAlbum(), cfg)
			if err != nil {
				logger.Error("album", "err", err)
			}
			if quit {
				return nil
			}
			continue

		case result.Quit || result.GameID == "":
			return nil
		}

		game, err := build(result.GameID, result.Preset)
		if err != nil {
			logger.Error("cannot create game", "game", result.GameID, "err", err)
			continue
		}

		// A fixed --seed only applies to the first board.
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		logger.Info("starting game", "game", result.GameID, "preset", result.Preset, "seed", cfg.Seed)
		quit, err := tui.Run(game, store, cfg, logger)
		if err != nil {
			logger.Error("running game", "err", err)
		}
		if quit {
			return nil
		}
		cfg.Seed = 0
	}
}
