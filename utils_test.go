package bitvec

import (
	"strings"
	"testing"
)

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(32)
	if len(s) != 32 {
		t.Fatalf("length should be 32, got %v", len(s))
	}
	for _, c := range s {
		if !strings.ContainsRune(letterBytes, c) {
			t.Fatalf("unexpected character %q in %v", c, s)
		}
	}
}

func TestGenerateRandomKey(t *testing.T) {
	a, b := GenerateRandomKey(), GenerateRandomKey()
	if !strings.HasPrefix(a, "bitvec:") || len(a) != len("bitvec:")+KeyLength {
		t.Fatalf("malformed key %v", a)
	}
	if a == b {
		t.Fatalf("keys should differ, got %v twice", a)
	}
}
