package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-memories/internal/registry"
	"github.com/vovakirdan/sweet-memories/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best sessions",
	Long: `Display the top 10 sessions for a mode. Won boards rank first, then
more memories found, then fewer moves. Without a mode, shows totals for
every mode.

Examples:
  memories scores
  memories scores match3
  memories scores match3_zen --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored sessions of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening sessions database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printAllStats(store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'memories list' to see available modes)", gameID)
	}

	if flagClear {
		if err := store.ClearSessions(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all sessions of %s.\n", gameID)
		return nil
	}

	sessions, err := store.TopSessions(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	fmt.Printf("Best Sessions - %s\n", game.Title())
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'memories play %s' to start your album!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n", "Rank", "Memories", "Moves", "Chain", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n", "----", "--------", "-----", "-----", "------", "----")
	for i, s := range sessions {
		result := "-"
		if s.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-8s  %-5d  x%-4d  %-6s  %s\n", i+1,
			fmt.Sprintf("%d/%d", s.MemoriesFound, s.MemoriesTotal),
			s.MovesUsed, s.MaxCascade, result, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Sessions: %d  Wins: %d  Best: %d  Avg: %.1f memories\n",
			stats.Sessions, stats.Wins, stats.BestMemories, stats.AvgMemories)
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-8s  %-4s  %-4s  %-6s  %s\n", "Mode", "Sessions", "Wins", "Best", "Moves", "Last played")
	fmt.Printf("  %-12s  %-8s  %-4s  %-4s  %-6s  %s\n", "----", "--------", "----", "----", "-----", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-12s  %-8d  %-4d  %-4d  %-6d  %s\n", id, s.Sessions, s.Wins, s.BestMemories,
			s.TotalMoves, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
