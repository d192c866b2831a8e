package audio

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTimedPlayerCompletes(t *testing.T) {
	h := &Handle{SubjectID: 1, Duration: 5 * time.Millisecond}
	if err := (TimedPlayer{}).Play(context.Background(), h); err != nil {
		t.Fatalf("Play: %v", err)
	}
}

func TestTimedPlayerCancel(t *testing.T) {
	h := &Handle{SubjectID: 1, Duration: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- (TimedPlayer{}).Play(ctx, h) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Play did not return after cancel")
	}
}

func TestNewCommandPlayerMissing(t *testing.T) {
	if _, err := NewCommandPlayer("definitely-not-a-real-audio-player"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestPlayerFunc(t *testing.T) {
	var got *Handle
	p := PlayerFunc(func(ctx context.Context, h *Handle) error {
		got = h
		return nil
	})
	h := &Handle{SubjectID: 3}
	if err := p.Play(context.Background(), h); err != nil || got != h {
		t.Fatalf("PlayerFunc did not forward handle: %v %v", got, err)
	}
}
