// Package display builds the presentation items shown for a subject and
// coordinates pronunciation playback for them.
package display

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/f3rmion/kanjiview/internal/audio"
)

// ErrNoAudioAttached is logged when PlayAudio is called on an item without
// audio.
var ErrNoAudioAttached = errors.New("no audio attached")

// Observer receives playback notifications. A run that is superseded or
// cancelled never reports AudioFinished. Notifications carry the subject id
// so observers that reuse items can ignore stale ones.
type Observer interface {
	AudioStarted(subjectID int)
	AudioFinished(subjectID int)
}

// Dispatcher runs completion callbacks on the goroutine that owns the item.
type Dispatcher interface {
	Post(fn func())
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(fn func())

// Post calls f(fn).
func (f DispatcherFunc) Post(fn func()) { f(fn) }

// Inline runs callbacks directly on the playback goroutine.
var Inline Dispatcher = DispatcherFunc(func(fn func()) { fn() })

// State is the playback state of a ReadingItem.
type State int

const (
	NoAudio State = iota
	AudioAttached
	Playing
)

func (s State) String() string {
	switch s {
	case NoAudio:
		return "no audio"
	case AudioAttached:
		return "audio attached"
	case Playing:
		return "playing"
	}
	return "unknown"
}

// ReadingItem is the readings row of a subject display. It holds the
// rendered text and at most one audio handle, and plays that handle on
// request.
//
// The item does not own its observer; owners should Close the item (or set
// a nil observer) when they stop listening.
type ReadingItem struct {
	Text string

	player   audio.Player
	dispatch Dispatcher
	logger   *slog.Logger

	mu         sync.Mutex
	observer   Observer
	handle     *audio.Handle
	subjectID  int
	generation uint64
	cancel     context.CancelFunc
}

// Option configures a ReadingItem.
type Option func(*ReadingItem)

// WithDispatcher sets where completion callbacks run. The default is Inline.
func WithDispatcher(d Dispatcher) Option {
	return func(i *ReadingItem) { i.dispatch = d }
}

// WithLogger sets the item's logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *ReadingItem) { i.logger = l }
}

// NewReadingItem creates an item showing text. A nil player is replaced by
// audio.TimedPlayer.
func NewReadingItem(text string, player audio.Player, opts ...Option) *ReadingItem {
	if player == nil {
		player = audio.TimedPlayer{}
	}
	i := &ReadingItem{
		Text:     text,
		player:   player,
		dispatch: Inline,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// SetObserver replaces the observer. Pass nil to stop notifications.
func (i *ReadingItem) SetObserver(o Observer) {
	i.mu.Lock()
	i.observer = o
	i.mu.Unlock()
}

// SetAudio attaches h for subjectID, stopping any playback of the previous
// handle. Repeating the current attachment is a no-op. A nil handle detaches
// audio.
func (i *ReadingItem) SetAudio(h *audio.Handle, subjectID int) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if h != nil && h == i.handle && subjectID == i.subjectID {
		return
	}
	i.stopLocked()
	i.generation++
	i.handle = h
	i.subjectID = subjectID
	if h == nil {
		i.subjectID = 0
	}
}

// PlayAudio starts playback of the attached handle, restarting it if it is
// already playing. It reports false, without notifying the observer, when no
// audio is attached.
func (i *ReadingItem) PlayAudio() bool {
	i.mu.Lock()
	if i.handle == nil {
		i.mu.Unlock()
		i.logger.Debug("play requested", "error", ErrNoAudioAttached)
		return false
	}

	i.stopLocked()
	i.generation++
	gen := i.generation
	ctx, cancel := context.WithCancel(context.Background())
	i.cancel = cancel
	h, id, obs := i.handle, i.subjectID, i.observer
	i.mu.Unlock()

	if obs != nil {
		obs.AudioStarted(id)
	}

	go func() {
		err := i.player.Play(ctx, h)
		i.dispatch.Post(func() { i.finish(gen, id, err) })
	}()
	return true
}

// finish records the end of run gen. Runs that were superseded are dropped.
func (i *ReadingItem) finish(gen uint64, subjectID int, err error) {
	i.mu.Lock()
	if gen != i.generation {
		i.mu.Unlock()
		return
	}
	if i.cancel != nil {
		i.cancel()
		i.cancel = nil
	}
	obs := i.observer
	i.mu.Unlock()

	if err != nil {
		i.logger.Warn("audio playback failed", "subject", subjectID, "error", err)
		return
	}
	if obs != nil {
		obs.AudioFinished(subjectID)
	}
}

// Close cancels playback and detaches audio and observer. A closed item can
// be reused by calling SetAudio again.
func (i *ReadingItem) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.stopLocked()
	i.generation++
	i.handle = nil
	i.subjectID = 0
	i.observer = nil
}

func (i *ReadingItem) stopLocked() {
	if i.cancel != nil {
		i.cancel()
		i.cancel = nil
	}
}

// Audio returns the attached handle, or nil.
func (i *ReadingItem) Audio() *audio.Handle {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.handle
}

// AudioSubjectID returns the subject id of the attached audio. ok is false
// when no audio is attached, which distinguishes it from subject id 0.
func (i *ReadingItem) AudioSubjectID() (id int, ok bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.handle == nil {
		return 0, false
	}
	return i.subjectID, true
}

// State returns the current playback state.
func (i *ReadingItem) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	switch {
	case i.handle == nil:
		return NoAudio
	case i.cancel != nil:
		return Playing
	default:
		return AudioAttached
	}
}
