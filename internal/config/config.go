// Package config handles loading and saving user configuration for kanjiview.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration.
type Config struct {
	Database        string   `yaml:"database"`                    // SQLite subject database
	AudioDir        string   `yaml:"audio_dir"`                   // Cached pronunciation audio
	AudioURL        string   `yaml:"audio_url,omitempty"`         // fmt template taking the subject id, e.g. "https://host/%d.mp3"
	Player          string   `yaml:"player,omitempty"`            // Audio player command; detected when empty
	PlayerArgs      []string `yaml:"player_args,omitempty"`       // Extra arguments before the file path
	ShowAllReadings bool     `yaml:"show_all_readings,omitempty"` // Show alternate kanji readings
	AutoPlay        bool     `yaml:"auto_play,omitempty"`         // Play vocabulary audio when a subject is shown
}

// Default returns the configuration used when no file exists.
func Default(dir string) *Config {
	return &Config{
		Database: filepath.Join(dir, "subjects.db"),
		AudioDir: filepath.Join(dir, "audio"),
	}
}

// Load reads dir/config.yaml. A missing file yields Default(dir); empty
// paths in the file are filled from Default(dir).
func Load(dir string) (*Config, error) {
	cfg := Default(dir)

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fromFile Config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if fromFile.Database == "" {
		fromFile.Database = cfg.Database
	}
	if fromFile.AudioDir == "" {
		fromFile.AudioDir = cfg.AudioDir
	}
	return &fromFile, nil
}

// Save writes cfg to dir/config.yaml.
func Save(dir string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kanjiview"), nil
}
