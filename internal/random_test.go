package internal

import (
	"strings"
	"testing"
)

func TestRandomIntBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		n, err := RandomInt(7)
		if err != nil {
			t.Fatalf("RandomInt failed: %v", err)
		}
		if n < 0 || n >= 7 {
			t.Fatalf("RandomInt out of range: %d", n)
		}
	}

	if _, err := RandomInt(0); err == nil {
		t.Fatal("expected error for zero bound")
	}
	if _, err := RandomInt(-5); err == nil {
		t.Fatal("expected error for negative bound")
	}
}

func TestRandomStringDrawsFromAlphabet(t *testing.T) {
	s, err := RandomString(TextAlphabet, 32)
	if err != nil {
		t.Fatalf("RandomString failed: %v", err)
	}
	if len(s) != 32 {
		t.Fatalf("expected 32 characters, got %d", len(s))
	}
	for _, c := range s {
		if !strings.ContainsRune(TextAlphabet, c) {
			t.Fatalf("character %q outside alphabet", c)
		}
	}

	if _, err := RandomString(TextAlphabet, 0); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := RandomString("", 4); err == nil {
		t.Fatal("expected error for empty alphabet")
	}
}

func TestHexSuffixLengthAndCharset(t *testing.T) {
	s, err := HexSuffix(4)
	if err != nil {
		t.Fatalf("HexSuffix failed: %v", err)
	}
	if len(s) != 8 {
		t.Fatalf("expected 8 hex chars, got %q", s)
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Fatalf("non-hex character %q in %q", c, s)
		}
	}

	if _, err := HexSuffix(0); err == nil {
		t.Fatal("expected error for zero size")
	}
}
