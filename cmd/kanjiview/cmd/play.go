package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/f3rmion/kanjiview/internal/audio"
	"github.com/f3rmion/kanjiview/internal/display"
	"github.com/f3rmion/kanjiview/internal/subject"
	"github.com/spf13/cobra"
)

var playRepeat int

var playCmd = &cobra.Command{
	Use:   "play <id|characters>",
	Short: "Play pronunciation audio for a vocabulary subject",
	Long: `Fetch (or load from cache) and play the pronunciation of a vocabulary
subject. Press Ctrl+C to stop.

Example:
  kanjiview play 2467
  kanjiview play 一つ --repeat 3`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVarP(&playRepeat, "repeat", "r", 1, "number of times to play")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := db.Store(cmd.Context())
	if err != nil {
		return err
	}
	s := findSubject(st, args[0])
	if s == nil {
		return fmt.Errorf("%s: %w", args[0], subject.ErrNotFound)
	}
	if !s.HasAudio() {
		return fmt.Errorf("%s has no pronunciation audio", s)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session := newPlaySession(audio.NewService(cfg.AudioDir, cfg.AudioURL, nil), newPlayer(cfg), cmd.OutOrStdout())
	defer session.Close()

	for i := 0; i < playRepeat; i++ {
		if err := session.play(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// playSession plays subjects one after another on the calling goroutine,
// which owns the reading item and runs its completions.
type playSession struct {
	svc       *audio.Service
	item      *display.ReadingItem
	callbacks chan func()
	w         io.Writer
	finished  bool
}

func newPlaySession(svc *audio.Service, player audio.Player, w io.Writer) *playSession {
	ps := &playSession{svc: svc, callbacks: make(chan func(), 1), w: w}
	ps.item = display.NewReadingItem("", player,
		display.WithDispatcher(display.DispatcherFunc(func(fn func()) { ps.callbacks <- fn })))
	ps.item.SetObserver(ps)
	return ps
}

func (ps *playSession) AudioStarted(subjectID int) {
	fmt.Fprintf(ps.w, "  ♪ playing audio for subject %d\n", subjectID)
}

func (ps *playSession) AudioFinished(subjectID int) {
	ps.finished = true
}

// Close stops any playback in flight.
func (ps *playSession) Close() {
	ps.item.Close()
}

// play plays s once, returning when playback finishes or ctx is done. The
// handle stays attached, so repeated plays of one subject fetch it once.
func (ps *playSession) play(ctx context.Context, s *subject.Subject) error {
	if id, ok := ps.item.AudioSubjectID(); !ok || id != s.ID {
		h, err := ps.svc.Fetch(ctx, s.ID)
		if err != nil {
			return err
		}
		ps.item.SetAudio(h, s.ID)
	}

	ps.finished = false
	ps.item.PlayAudio()
	for {
		select {
		case fn := <-ps.callbacks:
			fn()
			if ps.item.State() != display.Playing {
				if !ps.finished {
					return fmt.Errorf("playback of subject %d failed", s.ID)
				}
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
