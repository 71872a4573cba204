package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-memories/internal/config"
	"github.com/vovakirdan/sweet-memories/internal/games/match3"
	"github.com/vovakirdan/sweet-memories/internal/platform/tui"
	"github.com/vovakirdan/sweet-memories/internal/registry"
	"github.com/vovakirdan/sweet-memories/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (match3 if omitted).

Controls:
  Arrows/WASD  - Move cursor
  Space/Enter  - Select tile, then a neighbour to swap
  X            - Cancel selection
  H/?          - Show a hint
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy    - 6x6 board, 4 kinds, 40 moves
  normal  - 8x8 board, 5 kinds, 30 moves
  hard    - 10x10 board, 6 kinds, 25 moves
  zen     - no move limit

Examples:
  memories play
  memories play match3_zen
  memories play --difficulty easy
  memories play --config ./my-memories.yaml --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := string(match3.ModeClassic)
	if len(args) == 1 {
		gameID = args[0]
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'memories list' to see available modes)", gameID)
	}

	cfg, err := loadConfig(preset)
	if err != nil {
		return err
	}
	match3.SetConfig(cfg)
	match3.SetLogger(logger)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("sessions database unavailable", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "game", gameID, "preset", preset, "seed", flagSeed)
	if _, err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
