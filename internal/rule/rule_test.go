package rule

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain ascii", "Simple Title", "simple title"},
		{"diacritics stripped", "Café Société", "cafe societe"},
		{"composed and decomposed agree", "résumé", "resume"},
		{"already lowercase", "nothing to do", "nothing to do"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.title); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSetMatchTitle(t *testing.T) {
	set, err := Compile([]string{`jordan`, `neural network`})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"first rule matches", "The Jordan Valley", true},
		{"second rule matches", "A Neural Network Approach", true},
		{"case insensitive", "JORDAN RIVER BASIN", true},
		{"diacritic in title", "Jördan studies", true},
		{"match anywhere in title", "Essays on the lower jordan delta", true},
		{"no rule matches", "Unrelated Work", false},
		{"empty title", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := set.MatchTitle(tt.title); got != tt.want {
				t.Errorf("MatchTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile(nil); !errors.Is(err, ErrNoRules) {
		t.Errorf("Compile(nil) error = %v, want ErrNoRules", err)
	}
	if _, err := Compile([]string{`valid`, `([unclosed`}); err == nil {
		t.Error("Compile() with invalid pattern succeeded, want error")
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()

	jordanPath := filepath.Join(dir, "jordan")
	if err := os.WriteFile(jordanPath, []byte("jordan\n"), 0644); err != nil {
		t.Fatal(err)
	}
	emptyPath := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyPath, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadFiles([]string{jordanPath})
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
	if !set.MatchTitle("Water use in the Jordan basin") {
		t.Error("MatchTitle() = false, want true for loaded rule")
	}

	if _, err := LoadFiles([]string{emptyPath}); !errors.Is(err, ErrEmptyRule) {
		t.Errorf("LoadFiles(empty) error = %v, want ErrEmptyRule", err)
	}
	if _, err := LoadFiles([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("LoadFiles(missing) succeeded, want error")
	}
	if _, err := LoadFiles(nil); !errors.Is(err, ErrNoRules) {
		t.Errorf("LoadFiles(nil) error = %v, want ErrNoRules", err)
	}
}
