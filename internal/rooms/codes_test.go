package rooms

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	if err != nil {
		t.Fatalf("GenerateCode() error: %v", err)
	}
	if len(code) != codeLength {
		t.Errorf("code length = %d, want %d", len(code), codeLength)
	}
}

func TestGenerateCode_Charset(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error: %v", err)
		}
		if !valid.MatchString(code) {
			t.Errorf("code %q contains characters outside A-Z0-9", code)
		}
	}
}

func TestGenerateCode_UsesFullAlphabet(t *testing.T) {
	seen := make(map[rune]bool)
	for i := 0; i < 1000; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error: %v", err)
		}
		for _, r := range code {
			seen[r] = true
		}
	}

	// With 6000 samples both letters and digits should show up.
	var letters, digits bool
	for r := range seen {
		if r >= 'A' && r <= 'Z' {
			letters = true
		}
		if r >= '0' && r <= '9' {
			digits = true
		}
	}
	if !letters || !digits {
		t.Errorf("expected letters and digits across samples, got letters=%v digits=%v", letters, digits)
	}
	for r := range seen {
		if !strings.ContainsRune(alphabet, r) {
			t.Errorf("character %q not in the alphabet", r)
		}
	}
}

func TestGenerateCode_MostlyUnique(t *testing.T) {
	seen := make(map[string]bool)
	const n = 1000
	for i := 0; i < n; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error: %v", err)
		}
		seen[code] = true
	}

	// 36^6 is over two billion codes, so 1000 draws colliding would
	// point at a broken generator rather than bad luck.
	if len(seen) < n-1 {
		t.Errorf("got %d unique codes out of %d", len(seen), n)
	}
}
