// Package config provides YAML-based configuration loading and difficulty
// presets for the match-3 game.
package config

// Match3Config contains all configuration for a match-3 session.
type Match3Config struct {
	Board    BoardConfig    `yaml:"board"`
	Moves    int            `yaml:"moves"` // 0 = unlimited
	Refill   RefillConfig   `yaml:"refill"`
	Engine   EngineLimits   `yaml:"engine"`
	Memories MemoriesConfig `yaml:"memories"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Size  int `yaml:"size"`
	Kinds int `yaml:"kinds"`
}

// RefillConfig defines how new tiles lean toward nearby memory tiles.
type RefillConfig struct {
	BiasChance float64 `yaml:"bias_chance"`
	BiasRadius int     `yaml:"bias_radius"`
}

// EngineLimits bounds the engine's internal loops.
type EngineLimits struct {
	MaxCascadePasses    int `yaml:"max_cascade_passes"`
	MaxGenerateAttempts int `yaml:"max_generate_attempts"`
	MaxShuffleAttempts  int `yaml:"max_shuffle_attempts"`
}

// MemoriesConfig lists the memory payloads hidden on the board.
type MemoriesConfig struct {
	Count int      `yaml:"count"` // tagged tiles per board
	Items []Memory `yaml:"items"`
}

// Memory is one payload revealed when its tile is cleared.
type Memory struct {
	ID      string `yaml:"id"`
	Caption string `yaml:"caption"`
}

// Limits accepted by the engine.
const (
	MinBoardSize = 6
	MaxBoardSize = 10
	MinKinds     = 3
	MaxKinds     = 8
	MaxBiasRange = 4
)

// Clamp forces every value into the range the engine accepts.
// Zero limits are left alone; the engine fills them with its own defaults.
func (c *Match3Config) Clamp() {
	c.Board.Size = clamp(c.Board.Size, MinBoardSize, MaxBoardSize)
	c.Board.Kinds = clamp(c.Board.Kinds, MinKinds, MaxKinds)
	c.Moves = max(c.Moves, 0)
	c.Refill.BiasChance = clampF(c.Refill.BiasChance, 0, 1)
	c.Refill.BiasRadius = clamp(c.Refill.BiasRadius, 0, MaxBiasRange)
	c.Engine.MaxCascadePasses = max(c.Engine.MaxCascadePasses, 0)
	c.Engine.MaxGenerateAttempts = max(c.Engine.MaxGenerateAttempts, 0)
	c.Engine.MaxShuffleAttempts = max(c.Engine.MaxShuffleAttempts, 0)
	c.Memories.Count = clamp(c.Memories.Count, 0, len(c.Memories.Items))
}

// Pick returns the first Count memories.
func (c Match3Config) Pick() []Memory {
	n := min(c.Memories.Count, len(c.Memories.Items))
	out := make([]Memory, n)
	copy(out, c.Memories.Items[:n])
	return out
}

func clamp(val, lo, hi int) int {
	return max(lo, min(hi, val))
}

func clampF(val, lo, hi float64) float64 {
	return max(lo, min(hi, val))
}
