package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// Player plays a handle to completion. Play blocks until the asset finishes,
// ctx is cancelled (returning ctx.Err()) or playback fails.
type Player interface {
	Play(ctx context.Context, h *Handle) error
}

// PlayerFunc adapts a function to the Player interface.
type PlayerFunc func(ctx context.Context, h *Handle) error

// Play calls f(ctx, h).
func (f PlayerFunc) Play(ctx context.Context, h *Handle) error { return f(ctx, h) }

// ErrNoPlayer is returned when no audio player command can be found.
var ErrNoPlayer = errors.New("no audio player available")

// CommandPlayer plays files through an external program.
type CommandPlayer struct {
	Command string
	Args    []string
}

// knownPlayers lists candidate commands per OS, in order of preference.
var knownPlayers = map[string][]CommandPlayer{
	"darwin": {
		{Command: "afplay"},
	},
	"linux": {
		{Command: "mpg123", Args: []string{"-q"}},
		{Command: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
		{Command: "mpv", Args: []string{"--no-video", "--really-quiet"}},
	},
	"windows": {
		{Command: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	},
}

// NewCommandPlayer returns a player for command, or the first known player
// found on PATH when command is empty.
func NewCommandPlayer(command string, args ...string) (*CommandPlayer, error) {
	if command != "" {
		if _, err := exec.LookPath(command); err != nil {
			return nil, fmt.Errorf("finding %s: %w", command, err)
		}
		return &CommandPlayer{Command: command, Args: args}, nil
	}

	candidates := knownPlayers[runtime.GOOS]
	if len(candidates) == 0 {
		// Try the linux players as a fallback
		candidates = knownPlayers["linux"]
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c.Command); err == nil {
			p := c
			return &p, nil
		}
	}
	return nil, ErrNoPlayer
}

// Play runs the player command on h.Path.
func (p *CommandPlayer) Play(ctx context.Context, h *Handle) error {
	args := append(append([]string{}, p.Args...), h.Path)
	cmd := exec.CommandContext(ctx, p.Command, args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("running %s: %w", p.Command, err)
	}
	return nil
}

// TimedPlayer produces no sound; it waits for the handle's duration. It
// stands in for a real device when none is available.
type TimedPlayer struct {
	// Scale multiplies the wait. Zero means 1.
	Scale float64
}

// Play waits for h.Duration or until ctx is cancelled.
func (p TimedPlayer) Play(ctx context.Context, h *Handle) error {
	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	timer := time.NewTimer(time.Duration(float64(h.Duration) * scale))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DefaultPlayer returns a CommandPlayer for command if one can be found and
// a TimedPlayer otherwise.
func DefaultPlayer(command string) Player {
	if p, err := NewCommandPlayer(command); err == nil {
		return p
	}
	return TimedPlayer{}
}
