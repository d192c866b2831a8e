package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/kanjiview/internal/audio"
	"github.com/f3rmion/kanjiview/internal/display"
	"github.com/f3rmion/kanjiview/internal/subject"
	"github.com/f3rmion/kanjiview/internal/tui/glyph"
)

// Fetcher resolves a subject id to an audio handle.
type Fetcher interface {
	Fetch(ctx context.Context, subjectID int) (*audio.Handle, error)
}

// Options configures the details view.
type Options struct {
	ShowAllReadings bool
	AutoPlay        bool
}

// Messages handled by the update loop.
type (
	// callbackMsg runs a reading item completion on the update loop.
	callbackMsg struct{ fn func() }

	audioStartedMsg  struct{ subjectID int }
	audioFinishedMsg struct{ subjectID int }

	audioFetchedMsg struct {
		subjectID int
		handle    *audio.Handle
		err       error
	}
)

// callbacks carries reading item completions from playback goroutines into
// the update loop. Only playback goroutines send on it.
type callbacks chan func()

func (c callbacks) Post(fn func()) { c <- fn }

func (c callbacks) wait() tea.Cmd {
	return func() tea.Msg { return callbackMsg{fn: <-c} }
}

// notices collects observer notifications. The item notifies from inside
// Update (PlayAudio, completions), so they are queued and applied before
// Update returns instead of being sent through a channel.
type notices struct {
	mu      sync.Mutex
	pending []tea.Msg
}

func (n *notices) AudioStarted(subjectID int)  { n.push(audioStartedMsg{subjectID}) }
func (n *notices) AudioFinished(subjectID int) { n.push(audioFinishedMsg{subjectID}) }

func (n *notices) push(msg tea.Msg) {
	n.mu.Lock()
	n.pending = append(n.pending, msg)
	n.mu.Unlock()
}

func (n *notices) drain() []tea.Msg {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}

type keyMap struct {
	Prev, Next, Play, ToggleReadings, Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Play, k.ToggleReadings, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Prev:           key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
	Next:           key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
	Play:           key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "play audio")),
	ToggleReadings: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all readings")),
	Quit:           key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model for the subject details screen. One
// ReadingItem is reused as the user pages between subjects.
type Model struct {
	subjects []*subject.Subject
	index    int

	fetcher  Fetcher
	renderer *display.Renderer
	item      *display.ReadingItem
	callbacks callbacks
	notices   *notices
	opts     Options

	fetching bool
	playing  bool
	status   string
	err      error

	help   help.Model
	width  int
	height int
}

// New creates the details view over subjects, starting at index start.
func New(subjects []*subject.Subject, start int, fetcher Fetcher, player audio.Player, opts Options) Model {
	cbs := make(callbacks, 16)
	obs := &notices{}
	renderer := display.NewRenderer(lipgloss.DefaultRenderer())
	item := display.NewReadingItem("", player, display.WithDispatcher(cbs))
	item.SetObserver(obs)

	if start < 0 || start >= len(subjects) {
		start = 0
	}
	m := Model{
		subjects: subjects,
		index:    start,
		fetcher:  fetcher,
		renderer: renderer,
		item:      item,
		callbacks: cbs,
		notices:   obs,
		opts:     opts,
		help:     help.New(),
	}
	m.refreshText()
	m.fetching = m.needsAudio()
	return m
}

// Current returns the subject on screen, or nil.
func (m Model) Current() *subject.Subject {
	if len(m.subjects) == 0 {
		return nil
	}
	return m.subjects[m.index]
}

// Init starts listening for playback events and loads audio for the first
// subject.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.callbacks.wait(), m.fetchAudio())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handle(msg)
	for _, n := range next.notices.drain() {
		next = next.applyNotice(n)
	}
	return next, cmd
}

func (m Model) handle(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.item.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.Prev):
			return m.show(m.index - 1)
		case key.Matches(msg, keys.Next):
			return m.show(m.index + 1)
		case key.Matches(msg, keys.ToggleReadings):
			m.opts.ShowAllReadings = !m.opts.ShowAllReadings
			m.refreshText()
			return m, nil
		case key.Matches(msg, keys.Play):
			m.play()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case callbackMsg:
		msg.fn()
		return m, m.callbacks.wait()

	case audioFetchedMsg:
		if !m.isCurrent(msg.subjectID) {
			return m, nil
		}
		m.fetching = false
		if msg.err != nil {
			if errors.Is(msg.err, audio.ErrNotFound) {
				m.status = "no audio"
			} else {
				m.err = msg.err
			}
			return m, nil
		}
		m.item.SetAudio(msg.handle, msg.subjectID)
		if m.opts.AutoPlay {
			m.play()
		}
		return m, nil
	}

	return m, nil
}

// applyNotice updates the status for a playback notification. Notifications
// for a subject no longer on screen are ignored.
func (m Model) applyNotice(msg tea.Msg) Model {
	switch msg := msg.(type) {
	case audioStartedMsg:
		if m.isCurrent(msg.subjectID) {
			m.playing = true
			m.status = "playing"
		}
	case audioFinishedMsg:
		if m.isCurrent(msg.subjectID) {
			m.playing = false
			m.status = ""
		}
	}
	return m
}

func (m Model) isCurrent(subjectID int) bool {
	s := m.Current()
	return s != nil && s.ID == subjectID
}

// show moves to subject i, detaching the previous subject's audio.
func (m Model) show(i int) (Model, tea.Cmd) {
	if len(m.subjects) == 0 {
		return m, nil
	}
	m.index = (i + len(m.subjects)) % len(m.subjects)
	m.item.SetAudio(nil, 0)
	m.playing = false
	m.status = ""
	m.err = nil
	m.refreshText()
	m.fetching = m.needsAudio()
	return m, m.fetchAudio()
}

func (m *Model) play() {
	if !m.item.PlayAudio() {
		if m.fetching {
			m.status = "loading audio…"
		} else {
			m.status = "no audio"
		}
	}
}

func (m *Model) refreshText() {
	if s := m.Current(); s != nil {
		m.item.Text = m.renderer.ReadingText(s, m.opts.ShowAllReadings)
	}
}

func (m Model) needsAudio() bool {
	s := m.Current()
	return s != nil && s.HasAudio() && m.fetcher != nil
}

func (m Model) fetchAudio() tea.Cmd {
	if !m.needsAudio() {
		return nil
	}
	id, fetcher := m.Current().ID, m.fetcher
	return func() tea.Msg {
		h, err := fetcher.Fetch(context.Background(), id)
		return audioFetchedMsg{subjectID: id, handle: h, err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	s := m.Current()
	if s == nil {
		return BoxStyle.Render("No subjects loaded. Run 'kanjiview import <file>' first.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf(" %s · level %d · %d/%d ", s.Kind, s.Level, m.index+1, len(m.subjects))))
	b.WriteString("\n")

	if chars, err := subject.Japanese(s); err == nil {
		if big := glyph.Render(chars, 12, 6); big != "" {
			b.WriteString(BigCharStyle.Render(big))
		} else {
			b.WriteString(CharacterStyle.Background(KindColor(s.Kind)).Render(chars))
		}
	} else {
		b.WriteString(CharacterStyle.Background(KindColor(s.Kind)).Render(subject.PrimaryMeaning(s)))
	}
	b.WriteString("\n")

	b.WriteString(row("Meaning", m.renderer.Meanings(s)))
	if s.Kind.HasReadings() {
		b.WriteString(row("Reading", m.readingLine()))
	}
	if pos := m.renderer.PartsOfSpeech(s); pos != "" {
		b.WriteString(row("Type", pos))
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
	case m.playing:
		b.WriteString(PlayingStyle.Render("♪ " + m.status))
	case m.fetching:
		b.WriteString(LoadingStyle.Render("loading audio…"))
	default:
		b.WriteString(HelpStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keys))

	return b.String()
}

func (m Model) readingLine() string {
	text := m.item.Text
	if id, ok := m.item.AudioSubjectID(); ok && m.isCurrent(id) {
		text += HelpStyle.Render("  🔊")
	}
	return text
}

func row(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value) + "\n"
}
