package crypto

import (
	"strings"
	"testing"
)

func TestNanoIDGenerator_Generate(t *testing.T) {
	gen := NewNanoID()

	id, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(id) != idSize {
		t.Errorf("Generate() length = %d, want %d", len(id), idSize)
	}
	for _, c := range id {
		if !strings.ContainsRune(idAlphabet, c) {
			t.Errorf("Generate() produced character %q outside the alphabet", c)
		}
	}
}

func TestNanoIDGenerator_Unique(t *testing.T) {
	gen := NewNanoID()
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		id, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("Generate() produced duplicate id %q", id)
		}
		seen[id] = true
	}
}
