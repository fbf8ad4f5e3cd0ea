package hours

import (
	"slices"
	"testing"
)

func TestLabelKey(t *testing.T) {
	tests := []struct {
		label    string
		expected uint8
	}{
		{"H1", 1},
		{"H24", 24},
		{"H25", 25}, // long DST day
		{"H0", 0},
		{"Base", 0},
		{"Peak", 0},
		{"", 0},
		{"7", 0},
		{"Hx", 0},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := LabelKey(tt.label); got != tt.expected {
				t.Errorf("LabelKey(%q) expected %d, got %d", tt.label, tt.expected, got)
			}
		})
	}
}

func TestLabelKeySortsNumerically(t *testing.T) {
	labels := []string{"H2", "H10", "H1"}
	slices.SortStableFunc(labels, func(a, b string) int {
		return int(LabelKey(a)) - int(LabelKey(b))
	})

	expected := []string{"H1", "H2", "H10"}
	if !slices.Equal(labels, expected) {
		t.Errorf("expected %v, got %v", expected, labels)
	}
}

func TestFormatLabel(t *testing.T) {
	if got := FormatLabel(7); got != "H7" {
		t.Errorf(`FormatLabel(7) expected "H7", got %q`, got)
	}
	if got := FormatLabel(24); got != "H24" {
		t.Errorf(`FormatLabel(24) expected "H24", got %q`, got)
	}
}

func TestLabelRoundTrip(t *testing.T) {
	for h := uint8(1); h <= 25; h++ {
		if got := LabelKey(FormatLabel(h)); got != h {
			t.Errorf("LabelKey(FormatLabel(%d)) expected %d, got %d", h, h, got)
		}
	}
}
