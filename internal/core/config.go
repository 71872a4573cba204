package core

// RuntimeConfig is passed to games on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 30 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int  // Memories uncovered so far
	GameOver bool // The session ended, won or lost
	Won      bool // Every memory was uncovered
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}

// SessionSummary is the end-of-session record a game hands to the platform
// for the scoreboard.
type SessionSummary struct {
	MemoriesFound int
	MemoriesTotal int
	MovesUsed     int
	MaxCascade    int
	Won           bool
	Found         []string // memory IDs in the order they were uncovered
}
