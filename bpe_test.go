package bpe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLearnWordsBasic(t *testing.T) {
	words := map[string]int{
		"low":    5,
		"lower":  2,
		"newest": 6,
		"widest": 3,
	}

	mdl, err := LearnWords(256+10, words)
	if err != nil {
		t.Fatalf("LearnWords: %v", err)
	}
	if mdl.NumRules() != 10 {
		t.Fatalf("want 10 rules, got %d", mdl.NumRules())
	}
	if mdl.VocabSize() != 266 {
		t.Fatalf("want vocab size 266, got %d", mdl.VocabSize())
	}

	tokens, err := mdl.Encode("low")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(tokens) == 0 {
		t.Fatalf("want at least one token for \"low\"")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	words := map[string]int{"aaaa": 10, "bbbb": 10}
	mdl, err := LearnWords(256+4, words)
	if err != nil {
		t.Fatalf("LearnWords: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.txt")
	if err := mdl.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if loaded.NumRules() != mdl.NumRules() {
		t.Fatalf("want %d rules after reload, got %d", mdl.NumRules(), loaded.NumRules())
	}

	want, err := mdl.Encode("aaaabbbb")
	if err != nil {
		t.Fatalf("Encode on original: %v", err)
	}
	got, err := loaded.Encode("aaaabbbb")
	if err != nil {
		t.Fatalf("Encode on reloaded: %v", err)
	}
	if len(want) != len(got) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("token %d: want %v, got %v", i, want, got)
		}
	}
}

func TestEncodeFileWritesTokenLines(t *testing.T) {
	words := map[string]int{"aaaa": 10}
	mdl, err := LearnWords(256+1, words)
	if err != nil {
		t.Fatalf("LearnWords: %v", err)
	}

	in := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(in, []byte("aaaa"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out.txt")

	if err := mdl.EncodeFile(in, out); err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("want non-empty output file")
	}
}
