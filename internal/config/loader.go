package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// localConfigPath is the project-relative config location.
const localConfigPath = "configs/snake.yaml"

// LoadSnake loads Snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg, _, err := LoadSnakeSource(customPath)
	return cfg, err
}

// LoadSnakeSource is LoadSnake that also returns the file the configuration
// came from, or "" for the embedded default. Files in the search path that
// fail to read or validate are skipped.
func LoadSnakeSource(customPath string) (SnakeConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := LoadSnakeFile(customPath)
		if err != nil {
			return SnakeConfig{}, "", err
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("snake.yaml"), localConfigPath} {
		if path == "" {
			continue
		}
		if cfg, err := LoadSnakeFile(path); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseSnake(defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), "", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "", nil
}

// LoadSnakeFile reads and validates the configuration at path.
func LoadSnakeFile(path string) (SnakeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SnakeConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := ParseSnake(data)
	if err != nil {
		return SnakeConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseSnake decodes YAML on top of the defaults, so partial files only
// override the keys they set.
func ParseSnake(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SnakeConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg SnakeConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}
