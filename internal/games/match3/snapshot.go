package match3

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StateFailed      GameStateType = "failed"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Board     string // engine board dump, one row per line
	Cursor    [2]int // row, col
	MovesUsed int
	MovesLeft int // -1 in zen mode
	Found     []string
	Total     int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.failed != nil:
		state = StateFailed
	case g.player.busy():
		state = StateAnimating
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	}

	snap := Snapshot{
		Tick:   g.tick,
		Mode:   string(g.mode),
		Cursor: [2]int{g.cursor.Row, g.cursor.Col},
		State:  state,
	}
	if g.eng != nil {
		summary := g.Summary()
		snap.Board = g.eng.Board().String()
		snap.MovesUsed = summary.MovesUsed
		snap.MovesLeft = g.eng.MovesLeft()
		snap.Found = summary.Found
		snap.Total = summary.MemoriesTotal
	}
	return snap
}
