package roomcode

import (
	"strings"
	"testing"
)

func TestGenerateAlphabetAndLength(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := Generate()
		if len(code) != CodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), CodeLength)
		}
		for _, ch := range code {
			if !strings.ContainsRune(Alphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
	}
}

func TestGenerateExcludesAmbiguousGlyphs(t *testing.T) {
	for _, banned := range "0O1I" {
		if strings.ContainsRune(Alphabet, banned) {
			t.Fatalf("alphabet must not contain %q", banned)
		}
	}
	if len(Alphabet) != 32 {
		t.Fatalf("alphabet has %d symbols, want 32", len(Alphabet))
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"abc234":    "ABC234",
		" abc234 ":  "ABC234",
		"ABC234":    "ABC234",
		"\tabj2x9 ": "ABJ2X9",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewIDDistinct(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Fatalf("ids must be non-empty and distinct, got %q and %q", a, b)
	}
}
