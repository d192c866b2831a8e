package subject

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
)

// Store is an in-memory subject index loaded from a JSON Lines file.
type Store struct {
	byID    map[int]*Subject
	byChars map[string]*Subject
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byID:    make(map[int]*Subject),
		byChars: make(map[string]*Subject),
	}
}

// LoadFromFile loads subjects from a JSONL file, one subject per line.
func (st *Store) LoadFromFile(path string) (skipped int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening subjects file: %w", err)
	}
	defer file.Close()

	return st.Load(file)
}

// Load reads JSONL subjects from r. Lines that fail to decode or validate
// are skipped and counted; a later line with the same id replaces an
// earlier one.
func (st *Store) Load(r io.Reader) (skipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var s Subject
		if err := json.Unmarshal(line, &s); err != nil {
			slog.Debug("skipping malformed subject", "line", lineNum, "error", err)
			skipped++
			continue
		}
		if err := s.Validate(); err != nil {
			slog.Debug("skipping invalid subject", "line", lineNum, "error", err)
			skipped++
			continue
		}
		st.Add(&s)
	}

	if err := scanner.Err(); err != nil {
		return skipped, fmt.Errorf("reading subjects file: %w", err)
	}
	return skipped, nil
}

// Add indexes s, replacing any subject with the same id.
func (st *Store) Add(s *Subject) {
	old, replaced := st.byID[s.ID]
	st.byID[s.ID] = s
	if replaced && old.Characters != "" && st.byChars[old.Characters] == old {
		// old may have shadowed other subjects written the same way.
		st.reindex(old.Characters)
	}
	if s.Characters == "" {
		return
	}
	if cur, ok := st.byChars[s.Characters]; !ok || better(s, cur) {
		st.byChars[s.Characters] = s
	}
}

// reindex points chars at the best subject still written with it.
func (st *Store) reindex(chars string) {
	delete(st.byChars, chars)
	for _, s := range st.byID {
		if s.Characters != chars {
			continue
		}
		if cur, ok := st.byChars[chars]; !ok || better(s, cur) {
			st.byChars[chars] = s
		}
	}
}

// better reports whether a should win a character lookup over b. Kanji and
// vocabulary can share characters (一 is both); the more specific kind wins,
// then the lower id.
func better(a, b *Subject) bool {
	if ra, rb := rank(a.Kind), rank(b.Kind); ra != rb {
		return ra > rb
	}
	return a.ID < b.ID
}

func rank(k Kind) int {
	switch k {
	case KindVocabulary:
		return 2
	case KindKanji:
		return 1
	}
	return 0
}

// Lookup returns the subject with the given id, or nil.
func (st *Store) Lookup(id int) *Subject {
	return st.byID[id]
}

// LookupCharacters returns the subject written with chars, or nil.
func (st *Store) LookupCharacters(chars string) *Subject {
	return st.byChars[chars]
}

// Size returns the number of subjects in the store.
func (st *Store) Size() int {
	return len(st.byID)
}

// Subjects returns all subjects ordered by level, then id.
func (st *Store) Subjects() []*Subject {
	out := make([]*Subject, 0, len(st.byID))
	for _, s := range st.byID {
		out = append(out, s)
	}
	sortSubjects(out)
	return out
}

func sortSubjects(subjects []*Subject) {
	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Level != subjects[j].Level {
			return subjects[i].Level < subjects[j].Level
		}
		return subjects[i].ID < subjects[j].ID
	})
}
