package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/kanjiview/internal/audio"
	"github.com/f3rmion/kanjiview/internal/subject"
)

// Renderer turns subject fields into styled terminal text.
type Renderer struct {
	primary   lipgloss.Style
	alternate lipgloss.Style
	emphasis  lipgloss.Style
	muted     lipgloss.Style
}

// NewRenderer creates a renderer bound to r. Pass lipgloss.DefaultRenderer()
// for stdout.
func NewRenderer(r *lipgloss.Renderer) *Renderer {
	return &Renderer{
		primary:   r.NewStyle().Bold(true),
		alternate: r.NewStyle(),
		emphasis:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffe66d")),
		muted:     r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

// Readings renders a subject's primary readings followed by its alternates,
// joined by ", ". With primaryOnly the alternates are left out. Primaries are
// bold only when they have to stand out from alternates.
func (r *Renderer) Readings(s *subject.Subject, primaryOnly bool) string {
	style := r.alternate
	if !primaryOnly && len(s.Readings) > 1 {
		style = r.primary
	}
	var parts []string
	for _, reading := range subject.PrimaryReadings(s) {
		parts = append(parts, style.Render(reading.Text))
	}
	if !primaryOnly {
		for _, reading := range subject.AlternateReadings(s) {
			parts = append(parts, r.alternate.Render(reading.Text))
		}
	}
	return strings.Join(parts, ", ")
}

// ReadingText renders a subject's readings for its readings row. Kanji show
// only primary readings unless showAll is set. Radicals have no readings and
// yield "".
func (r *Renderer) ReadingText(s *subject.Subject, showAll bool) string {
	if !s.Kind.HasReadings() {
		return ""
	}
	primaryOnly := s.Kind == subject.KindKanji && !showAll
	return r.Readings(s, primaryOnly)
}

// Meanings renders every primary meaning emphasized, followed by the others
// in source order. Without a primary the first meaning takes its place.
func (r *Renderer) Meanings(s *subject.Subject) string {
	var primary, rest []string
	for _, m := range s.Meanings {
		if m.Primary {
			primary = append(primary, r.emphasis.Render(m.Text))
		} else {
			rest = append(rest, r.alternate.Render(m.Text))
		}
	}
	if len(primary) == 0 && len(rest) > 0 {
		primary = []string{r.emphasis.Render(s.Meanings[0].Text)}
		rest = rest[1:]
	}
	return strings.Join(append(primary, rest...), ", ")
}

// PartsOfSpeech renders a vocabulary subject's parts of speech, or "" for
// other kinds.
func (r *Renderer) PartsOfSpeech(s *subject.Subject) string {
	pos, err := subject.CommaSeparatedPartsOfSpeech(s)
	if err != nil || pos == "" {
		return ""
	}
	return r.muted.Render(pos)
}

// NewSubjectItem creates the readings item for s. Callers attach audio with
// SetAudio once a handle is available.
func (r *Renderer) NewSubjectItem(s *subject.Subject, showAll bool, player audio.Player, opts ...Option) *ReadingItem {
	return NewReadingItem(r.ReadingText(s, showAll), player, opts...)
}
