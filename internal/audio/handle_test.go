package audio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	const frames = 40
	got, err := Duration(bytes.NewReader(mp3Frames(frames)))
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	want := time.Duration(frames) * 1152 * time.Second / 44100
	if diff := got - want; diff < -want/10 || diff > want/10 {
		t.Fatalf("expected about %s, got %s", want, got)
	}
}

func TestDurationEmpty(t *testing.T) {
	if _, err := Duration(bytes.NewReader(nil)); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
}

func TestOpenHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "7.mp3")
	if err := os.WriteFile(path, mp3Frames(10), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	h, err := OpenHandle(7, path)
	if err != nil {
		t.Fatalf("OpenHandle: %v", err)
	}
	if h.SubjectID != 7 || h.Path != path || h.Duration <= 0 {
		t.Fatalf("unexpected handle %+v", h)
	}

	if _, err := OpenHandle(7, filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
