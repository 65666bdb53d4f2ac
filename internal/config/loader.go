package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSweeper loads the sweeper configuration.
// Search order: customPath -> ~/.arcade/configs/sweeper.yaml -> ./configs/sweeper.yaml -> embedded default.
// Fields missing from the file keep their default values. The result is validated.
func LoadSweeper(customPath string) (SweeperConfig, error) {
	cfg := DefaultSweeperConfig()

	// Custom path must exist and parse
	if customPath != "" {
		if err := readYAML(customPath, &cfg); err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("sweeper.yaml"), filepath.Join("configs", "sweeper.yaml")} {
		if path == "" {
			continue
		}
		candidate := DefaultSweeperConfig()
		if err := readYAML(path, &candidate); err == nil {
			return candidate, candidate.Validate()
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSweeperYAML, &cfg); err != nil {
		return DefaultSweeperConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (SweeperConfig, error) {
	cfg := DefaultSweeperConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, cfg.Validate()
}

func readYAML(path string, cfg *SweeperConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
