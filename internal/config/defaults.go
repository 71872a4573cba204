package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the built-in configuration, used when no YAML
// source can be read.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Size:  8,
			Kinds: 5,
		},
		Moves: 30,
		Refill: RefillConfig{
			BiasChance: 0.4,
			BiasRadius: 2,
		},
		Engine: EngineLimits{
			MaxCascadePasses:    100,
			MaxGenerateAttempts: 50,
			MaxShuffleAttempts:  10000,
		},
		Memories: MemoriesConfig{
			Count: 6,
			Items: []Memory{
				{ID: "first-date", Caption: "Our first date, the rain never stopped"},
				{ID: "road-trip", Caption: "Road trip with a broken radio"},
				{ID: "kitchen", Caption: "Burnt pancakes on a Sunday"},
				{ID: "beach", Caption: "Sand in everything, worth it"},
				{ID: "concert", Caption: "Front row, lost our voices"},
				{ID: "snow", Caption: "The snowman that leaned"},
				{ID: "garden", Caption: "Tomatoes we grew ourselves"},
				{ID: "train", Caption: "Night train, one shared blanket"},
			},
		},
	}
}
