package subject

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleJSONL = `{"id": 1, "kind": "radical", "level": 1, "characters": "一", "meanings": [{"text": "Ground", "primary": true}]}
{"id": 440, "kind": "kanji", "level": 1, "characters": "一", "meanings": [{"text": "One", "primary": true}], "readings": [{"text": "いち", "primary": true}]}
not json
{"id": 9, "kind": "kanji", "level": 1, "characters": "x", "meanings": [{"text": "Bad"}]}

{"id": 2467, "kind": "vocabulary", "level": 1, "characters": "一", "meanings": [{"text": "One", "primary": true}], "readings": [{"text": "いち", "primary": true}], "parts_of_speech": ["numeral"], "audio_ids": [1]}
{"id": 8, "kind": "radical", "level": 2, "meanings": [{"text": "Stick", "primary": true}]}
`

func TestStoreLoad(t *testing.T) {
	st := NewStore()
	skipped, err := st.Load(strings.NewReader(sampleJSONL))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if skipped != 2 {
		t.Fatalf("expected 2 skipped lines, got %d", skipped)
	}
	if st.Size() != 4 {
		t.Fatalf("expected 4 subjects, got %d", st.Size())
	}
	if s := st.Lookup(440); s == nil || s.Kind != KindKanji {
		t.Fatalf("expected kanji 440, got %v", s)
	}
	if s := st.LookupCharacters("一"); s == nil || s.ID != 2467 {
		t.Fatalf("expected vocabulary to win character lookup, got %v", s)
	}

	subjects := st.Subjects()
	var ids []int
	for _, s := range subjects {
		ids = append(ids, s.ID)
	}
	want := []int{1, 440, 2467, 8}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestStoreAddRestoresShadowedCharacters(t *testing.T) {
	st := NewStore()
	st.Add(kanji())
	v := vocabulary()
	v.Characters = "一"
	st.Add(v)
	if s := st.LookupCharacters("一"); s == nil || s.ID != 2467 {
		t.Fatalf("expected vocabulary to shadow kanji, got %v", s)
	}

	st.Add(vocabulary())
	if s := st.LookupCharacters("一"); s == nil || s.ID != 440 {
		t.Fatalf("expected kanji after vocabulary moved, got %v", s)
	}
	if s := st.LookupCharacters("一つ"); s == nil || s.ID != 2467 {
		t.Fatalf("expected vocabulary under new characters, got %v", s)
	}
	if st.Size() != 2 {
		t.Fatalf("expected 2 subjects, got %d", st.Size())
	}
}

func TestStoreAddSameCharactersReplaces(t *testing.T) {
	st := NewStore()
	st.Add(kanji())
	k := kanji()
	k.Level = 2
	st.Add(k)
	if s := st.LookupCharacters("一"); s != k {
		t.Fatalf("expected replacement to be indexed, got %v", s)
	}
}

func TestStoreLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subjects.jsonl")
	if err := os.WriteFile(path, []byte(sampleJSONL), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	st := NewStore()
	if _, err := st.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if st.Size() != 4 {
		t.Fatalf("expected 4 subjects, got %d", st.Size())
	}

	if _, err := NewStore().LoadFromFile(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDBRoundTrip(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	if err := db.PutAll(ctx, []*Subject{radical(), kanji()}); err != nil {
		t.Fatalf("PutAll: %v", err)
	}
	v := vocabulary()
	if err := db.Put(ctx, v); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := db.Get(ctx, v.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Characters != v.Characters || len(got.PartsOfSpeech) != 2 || got.AudioIDs[0] != 7 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, err := db.Get(ctx, 12345); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	kanjiOnly, err := db.List(ctx, Filter{Kind: KindKanji})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(kanjiOnly) != 1 || kanjiOnly[0].ID != 440 {
		t.Fatalf("unexpected kanji list %v", kanjiOnly)
	}

	st, err := db.Store(ctx)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if st.Size() != 3 {
		t.Fatalf("expected 3 subjects, got %d", st.Size())
	}
}

func TestDBPutRejectsInvalid(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := db.Put(context.Background(), &Subject{ID: 3, Kind: KindKanji}); err == nil {
		t.Fatalf("expected validation error")
	}
}
