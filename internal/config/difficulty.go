package config

import "fmt"

// DifficultyPreset is a named set of board and budget overrides.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyZen    DifficultyPreset = "zen"
)

// Presets lists every preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyZen}

// ParsePreset converts a CLI or menu value to a preset.
// The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or zen)", s)
}

// Description returns a one-line summary for menus.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "6x6 board, 4 kinds, 40 moves"
	case DifficultyNormal:
		return "8x8 board, 5 kinds, 30 moves"
	case DifficultyHard:
		return "10x10 board, 6 kinds, 25 moves"
	case DifficultyZen:
		return "8x8 board, no move limit"
	default:
		return ""
	}
}

// ApplyMatch3Preset modifies the config for a preset. Normal keeps the
// loaded values so a user file still controls the default game.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Size = 6
		cfg.Board.Kinds = 4
		cfg.Moves = 40
		cfg.Memories.Count = min(cfg.Memories.Count, 4)
	case DifficultyHard:
		cfg.Board.Size = 10
		cfg.Board.Kinds = 6
		cfg.Moves = 25
		cfg.Refill.BiasChance /= 2
	case DifficultyZen:
		cfg.Moves = 0
	}
	cfg.Clamp()
}
