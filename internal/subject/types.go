// Package subject models WaniKani-style study subjects (radicals, kanji and
// vocabulary) and derives display strings from them.
package subject

import "fmt"

// Kind tags which variant a Subject is.
type Kind string

const (
	KindRadical    Kind = "radical"
	KindKanji      Kind = "kanji"
	KindVocabulary Kind = "vocabulary"
)

// Valid reports whether k is one of the known subject kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindRadical, KindKanji, KindVocabulary:
		return true
	}
	return false
}

// HasReadings reports whether subjects of this kind carry readings.
func (k Kind) HasReadings() bool {
	return k == KindKanji || k == KindVocabulary
}

// Meaning is an English gloss for a subject.
type Meaning struct {
	Text    string `json:"text" yaml:"text"`
	Primary bool   `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// Reading is a pronunciation of a kanji or vocabulary subject.
type Reading struct {
	Text    string `json:"text" yaml:"text"`
	Primary bool   `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// Subject is one learnable item. Which fields are meaningful depends on Kind;
// use the accessor functions in this package rather than reading
// variant-specific fields directly.
type Subject struct {
	ID         int       `json:"id"`
	Kind       Kind      `json:"kind"`
	Level      int       `json:"level,omitempty"`
	Characters string    `json:"characters,omitempty"` // empty for image-only radicals
	Meanings   []Meaning `json:"meanings"`
	Readings   []Reading `json:"readings,omitempty"` // kanji and vocabulary only

	PartsOfSpeech []string `json:"parts_of_speech,omitempty"` // vocabulary only
	AudioIDs      []int    `json:"audio_ids,omitempty"`       // vocabulary only
}

// Validate checks the invariants every stored subject must satisfy.
func (s *Subject) Validate() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("subject %d: unknown kind %q", s.ID, s.Kind)
	}
	if len(s.Meanings) == 0 {
		return fmt.Errorf("subject %d: no meanings", s.ID)
	}
	if !s.Kind.HasReadings() {
		if len(s.Readings) > 0 {
			return fmt.Errorf("subject %d: radicals cannot have readings", s.ID)
		}
		return nil
	}
	if len(s.Readings) == 0 {
		return fmt.Errorf("subject %d: no readings", s.ID)
	}
	for _, r := range s.Readings {
		if r.Primary {
			return nil
		}
	}
	return fmt.Errorf("subject %d: no primary reading", s.ID)
}

// HasAudio reports whether pronunciation audio exists for the subject.
func (s *Subject) HasAudio() bool {
	return s.Kind == KindVocabulary && len(s.AudioIDs) > 0
}

// String returns a short label such as "kanji 一 (440)".
func (s *Subject) String() string {
	if s.Characters == "" {
		return fmt.Sprintf("%s %s (%d)", s.Kind, PrimaryMeaning(s), s.ID)
	}
	return fmt.Sprintf("%s %s (%d)", s.Kind, s.Characters, s.ID)
}
