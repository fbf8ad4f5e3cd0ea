package convert

import "testing"

func TestRoundFloat64(t *testing.T) {
	tests := []struct {
		number   float64
		decimals int
		expected float64
	}{
		{1.23456, 2, 1.23},
		{1.23556, 2, 1.24},
		{1.2344999, 3, 1.234},
		{-1.005, 2, -1.0},
		{0, 2, 0},
	}

	for _, tt := range tests {
		if got := RoundFloat64(tt.number, tt.decimals); got != tt.expected {
			t.Errorf("RoundFloat64(%f, %d) expected %f, got %f", tt.number, tt.decimals, tt.expected, got)
		}
	}
}

func TestKWhToMWh(t *testing.T) {
	if got := KWhToMWh(2500); got != 2.5 {
		t.Errorf("KWhToMWh(2500) expected 2.5, got %f", got)
	}
}

func TestWhToKWh(t *testing.T) {
	if got := WhToKWh(1500); got != 1.5 {
		t.Errorf("WhToKWh(1500) expected 1.5, got %f", got)
	}
}
