package calc

import (
	"math"
	"testing"
)

func TestHourValue(t *testing.T) {
	got := HourValue(2.0, 50.0)
	want := 0.1
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %f, wanted %f", got, want)
	}

	if got := HourValue(0, 40.0); got != 0 {
		t.Errorf("got %f, wanted 0", got)
	}
}

func TestWeightedAvgPrice(t *testing.T) {
	got := WeightedAvgPrice(10.0, 0.2)
	want := 50.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %f, wanted %f", got, want)
	}

	if got := WeightedAvgPrice(10.0, 0); got != 0 {
		t.Errorf("got %f, wanted 0 when there is no energy", got)
	}
}

func TestArithmeticMean(t *testing.T) {
	got := ArithmeticMean([]float64{50, 40, 60})
	want := 50.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %f, wanted %f", got, want)
	}

	if got := ArithmeticMean(nil); got != 0 {
		t.Errorf("got %f, wanted 0 for empty input", got)
	}
}
