package subject

import "strings"

const listSeparator = ", "

// Japanese returns the subject's characters. Radicals drawn only as images
// have none.
func Japanese(s *Subject) (string, error) {
	if s.Characters == "" {
		return "", missing(s, "characters")
	}
	return s.Characters, nil
}

// PrimaryMeaning returns the first meaning flagged primary, falling back to
// the first meaning.
func PrimaryMeaning(s *Subject) string {
	for _, m := range s.Meanings {
		if m.Primary {
			return m.Text
		}
	}
	if len(s.Meanings) == 0 {
		return ""
	}
	return s.Meanings[0].Text
}

// PrimaryReadings returns the primary readings in source order.
func PrimaryReadings(s *Subject) []Reading {
	return filterReadings(s, true)
}

// AlternateReadings returns the non-primary readings in source order.
func AlternateReadings(s *Subject) []Reading {
	return filterReadings(s, false)
}

func filterReadings(s *Subject, primary bool) []Reading {
	if !s.Kind.HasReadings() {
		return nil
	}
	var out []Reading
	for _, r := range s.Readings {
		if r.Primary == primary {
			out = append(out, r)
		}
	}
	return out
}

// CommaSeparatedMeanings joins every meaning in order. Duplicates are kept.
func CommaSeparatedMeanings(s *Subject) string {
	texts := make([]string, len(s.Meanings))
	for i, m := range s.Meanings {
		texts[i] = m.Text
	}
	return strings.Join(texts, listSeparator)
}

// CommaSeparatedReadings joins every reading in order.
func CommaSeparatedReadings(s *Subject) (string, error) {
	if !s.Kind.HasReadings() {
		return "", missing(s, "readings")
	}
	texts := make([]string, len(s.Readings))
	for i, r := range s.Readings {
		texts[i] = r.Text
	}
	return strings.Join(texts, listSeparator), nil
}

// CommaSeparatedPartsOfSpeech joins a vocabulary subject's parts of speech.
func CommaSeparatedPartsOfSpeech(s *Subject) (string, error) {
	if s.Kind != KindVocabulary {
		return "", missing(s, "parts of speech")
	}
	return strings.Join(s.PartsOfSpeech, listSeparator), nil
}
