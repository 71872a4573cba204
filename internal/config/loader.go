package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const match3File = "match3.yaml"

// LoadMatch3 loads the match-3 configuration.
// Search order: customPath -> ~/.sweet-memories/configs/match3.yaml -> ./configs/match3.yaml -> embedded default.
// Keys missing from a file keep their default values. The result is clamped.
func LoadMatch3(customPath string) (Match3Config, error) {
	cfg, err := loadMatch3(customPath)
	if err != nil {
		return cfg, err
	}
	cfg.Clamp()
	return cfg, nil
}

func loadMatch3(customPath string) (Match3Config, error) {
	// A custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultMatch3Config(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseMatch3(data)
		if err != nil {
			return DefaultMatch3Config(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// User and local files are optional; unreadable ones are skipped
	for _, path := range []string{userConfigPath(match3File), filepath.Join("configs", match3File)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseMatch3(data); err == nil {
				return cfg, nil
			}
		}
	}

	cfg, err := parseMatch3(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseMatch3 decodes YAML on top of the hardcoded defaults.
// A list given in the file replaces the default list entirely.
func parseMatch3(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultMatch3Config(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sweet-memories", "configs", filename)
}
