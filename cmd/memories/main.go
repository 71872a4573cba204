// memories is a match-3 puzzle for the terminal where clearing tiles
// uncovers small memories hidden in the board.
//
// Usage:
//
//	memories list            - List game modes
//	memories play [mode]     - Play a mode (default: match3)
//	memories menu            - Pick a mode interactively
//	memories serve           - Start SSH server for remote play
//	memories scores [mode]   - Show best sessions for a mode
//	memories album           - Show every memory found so far
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.sweet-memories/sessions.db)
//	--config <path>      - Load a custom match3.yaml
//	--difficulty <name>  - easy, normal, hard or zen
//	--log <path>         - Write a debug log to a file
//	--mono               - Grayscale menus (also set by NO_COLOR)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sweet-memories/internal/config"
	"github.com/vovakirdan/sweet-memories/internal/core"
	"github.com/vovakirdan/sweet-memories/internal/games/match3"
	"github.com/vovakirdan/sweet-memories/internal/platform/tui"
	"github.com/vovakirdan/sweet-memories/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagMono       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memories",
	Short: "Sweet Memories - a match-3 puzzle in your terminal",
	Long: `Sweet Memories is a match-3 puzzle played in the terminal.
Swap neighbouring tiles to line up three or more of a kind. Some tiles
hide memories; clear them to add the memory to your album.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View best sessions
  album    - View found memories

Examples:
  memories play
  memories play match3_zen
  memories play --difficulty hard --seed 42
  memories serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagMono || os.Getenv("NO_COLOR") != "" {
			tui.SetTheme(tui.MonochromeTheme())
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sweet-memories/sessions.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match3 config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, zen")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write debug log to this file")
	rootCmd.PersistentFlags().BoolVar(&flagMono, "mono", false, "Use the grayscale theme")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(albumCmd)
}

// openLogger returns a file logger when --log is set. The terminal belongs
// to the TUI, so without a file everything is discarded.
func openLogger() (*log.Logger, func(), error) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "memories",
	})
	return logger, func() { f.Close() }, nil
}

// loadConfig reads the match-3 config and applies a preset on top.
func loadConfig(preset config.DifficultyPreset) (config.Match3Config, error) {
	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyMatch3Preset(&cfg, preset)
	return cfg, nil
}

// gameBuilder creates games with a freshly loaded config for every call,
// so a changed preset in the menu takes effect.
func gameBuilder(logger *log.Logger) func(string, config.DifficultyPreset) (registry.Game, error) {
	return func(gameID string, preset config.DifficultyPreset) (registry.Game, error) {
		if !registry.Exists(gameID) {
			return nil, fmt.Errorf("unknown game %q", gameID)
		}
		cfg, err := loadConfig(preset)
		if err != nil {
			return nil, err
		}
		return match3.New(match3.Mode(gameID), cfg, logger), nil
	}
}

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// memoriesForAlbum lists every configured memory, not only the ones a
// single board would pick.
func memoriesForAlbum() []config.Memory {
	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return cfg.Memories.Items
}
