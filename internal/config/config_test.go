package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database != filepath.Join(dir, "subjects.db") {
		t.Fatalf("unexpected database path %q", cfg.Database)
	}
	if cfg.AudioDir != filepath.Join(dir, "audio") {
		t.Fatalf("unexpected audio dir %q", cfg.AudioDir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	want := &Config{
		Database:        "/tmp/s.db",
		AudioDir:        "/tmp/audio",
		AudioURL:        "https://example.com/%d.mp3",
		Player:          "mpg123",
		PlayerArgs:      []string{"-q"},
		ShowAllReadings: true,
	}
	if err := Save(dir, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.AudioURL != want.AudioURL || got.Player != want.Player || !got.ShowAllReadings ||
		len(got.PlayerArgs) != 1 || got.Database != want.Database {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoadFillsEmptyPaths(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("show_all_readings: true\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.ShowAllReadings || cfg.Database == "" || cfg.AudioDir == "" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("player: [unterminated"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}
