package strongs

import (
	"errors"
	"testing"

	kerrors "github.com/FocuswithJustin/Koine/core/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"G25", "G25"},
		{"G0025", "G25"},
		{"g 0025", "G25"},
		{"  g25  ", "G25"},
		{"G000", "G0"},
		{"h7225", "H7225"},
		{"H 0001", "H1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLeadingZeroInvariance(t *testing.T) {
	a, err := Normalize("G0025")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Normalize("G25")
	if err != nil {
		t.Fatal(err)
	}
	if a != b || a != "G25" {
		t.Errorf("G0025 -> %q, G25 -> %q, want both G25", a, b)
	}
}

func TestNormalizeInvalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"X25",
		"25",
		"G",
		"G25a",
		"GG25",
		"G-25",
		"G2.5",
	}
	for _, input := range invalid {
		if _, err := Normalize(input); !errors.Is(err, kerrors.ErrInvalidStrongs) {
			t.Errorf("Normalize(%q) = %v, want ErrInvalidStrongs", input, err)
		}
		if _, ok := TryNormalize(input); ok {
			t.Errorf("TryNormalize(%q) succeeded, want failure", input)
		}
		if IsValid(input) {
			t.Errorf("IsValid(%q) = true, want false", input)
		}
	}
}
