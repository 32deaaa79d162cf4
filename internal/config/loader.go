package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a flappy variant.
// Search order: customPath -> ~/.flappy/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default
//
// A bad customPath is an error. Files on the search path that exist but
// cannot be used are skipped with a warning on logger (log.Default() when nil).
func Load(gameID, customPath string, logger *log.Logger) (FlappyConfig, error) {
	if logger == nil {
		logger = log.Default()
	}

	var cfg FlappyConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := gameID + ".yaml"

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		parsed, err := readValid(path)
		switch {
		case err == nil:
			return parsed, nil
		case errors.Is(err, fs.ErrNotExist):
		default:
			logger.Warn("skipping config file", "path", path, "err", err)
		}
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(gameID); data != nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}
	return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
}

// readValid reads and validates a config file. A missing file yields an
// error wrapping fs.ErrNotExist.
func readValid(path string) (FlappyConfig, error) {
	var cfg FlappyConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
