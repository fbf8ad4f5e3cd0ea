package analysis

import (
	"math"
	"reflect"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestReconcileDayUnionKeepsPriceOnlyHours(t *testing.T) {
	// H2 has zero energy but a price, so the union rule keeps it.
	energy := map[uint8]float64{1: 2.0, 2: 0.0}
	prices := map[uint8]float64{1: 50.0, 2: 40.0}

	da := ReconcileDay("2025-06-01", energy, prices)

	if len(da.Hours) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(da.Hours))
	}

	h1 := da.Hours[0]
	if h1.Hour != 1 || !almostEqual(h1.EnergyKWh, 2.0) || !almostEqual(h1.PricePerMWh, 50.0) || !almostEqual(h1.ValueEur, 0.1) {
		t.Errorf("unexpected H1 row: %+v", h1)
	}

	h2 := da.Hours[1]
	if h2.Hour != 2 || !almostEqual(h2.EnergyKWh, 0) || !almostEqual(h2.PricePerMWh, 40.0) || !almostEqual(h2.ValueEur, 0) {
		t.Errorf("unexpected H2 row: %+v", h2)
	}
}

func TestReconcileDayDropsAllZeroHours(t *testing.T) {
	energy := map[uint8]float64{1: 0, 2: 1.5}
	prices := map[uint8]float64{1: 0, 2: 60}

	da := ReconcileDay("2025-06-01", energy, prices)

	for _, row := range da.Hours {
		if row.Hour == 1 {
			t.Errorf("hour with zero energy and zero price must not appear, got %+v", row)
		}
	}
	if len(da.Hours) != 1 {
		t.Errorf("expected 1 row, got %d", len(da.Hours))
	}
}

func TestReconcileDayValueFormula(t *testing.T) {
	energy := map[uint8]float64{7: 3.217}
	prices := map[uint8]float64{7: 81.55}

	da := ReconcileDay("2025-06-01", energy, prices)

	want := 3.217 / 1000.0 * 81.55
	if !almostEqual(da.Hours[0].ValueEur, want) {
		t.Errorf("value expected %f, got %f", want, da.Hours[0].ValueEur)
	}
	if !almostEqual(da.Summary.TotalValueEur, want) {
		t.Errorf("total value expected %f, got %f", want, da.Summary.TotalValueEur)
	}
}

func TestReconcileDayHourOrdering(t *testing.T) {
	// Hour keys must come out in numeric order regardless of map iteration.
	energy := map[uint8]float64{10: 1, 2: 1, 24: 1, 1: 1}
	prices := map[uint8]float64{}

	da := ReconcileDay("2025-06-01", energy, prices)

	var got []uint8
	for _, row := range da.Hours {
		got = append(got, row.Hour)
	}
	want := []uint8{1, 2, 10, 24}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected hour order %v, got %v", want, got)
	}
}

func TestReconcileDayAverages(t *testing.T) {
	// Non-uniform energy makes the two averages diverge: the weighted
	// average leans toward the price of the hour that produced more.
	energy := map[uint8]float64{1: 1000, 2: 3000}
	prices := map[uint8]float64{1: 100, 2: 50}

	da := ReconcileDay("2025-06-01", energy, prices)

	// total value = 1*100 + 3*50 = 250 EUR over 4 MWh
	if !almostEqual(da.Summary.TotalEnergyKWh, 4000) {
		t.Errorf("total energy expected 4000, got %f", da.Summary.TotalEnergyKWh)
	}
	if !almostEqual(da.Summary.TotalEnergyMWh, 4) {
		t.Errorf("total energy MWh expected 4, got %f", da.Summary.TotalEnergyMWh)
	}
	if !almostEqual(da.Summary.AvgPricePerMWh, 62.5) {
		t.Errorf("weighted average expected 62.5, got %f", da.Summary.AvgPricePerMWh)
	}
	if !almostEqual(da.Summary.ArithmeticAvgPricePerMWh, 75) {
		t.Errorf("arithmetic average expected 75, got %f", da.Summary.ArithmeticAvgPricePerMWh)
	}
	if almostEqual(da.Summary.AvgPricePerMWh, da.Summary.ArithmeticAvgPricePerMWh) {
		t.Errorf("averages should diverge for non-uniform energy")
	}
}

func TestReconcileDayZeroEnergyDay(t *testing.T) {
	// Price-only day: no energy at all, weighted average must be 0.
	energy := map[uint8]float64{}
	prices := map[uint8]float64{1: 50, 2: 40}

	da := ReconcileDay("2025-06-01", energy, prices)

	if len(da.Hours) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(da.Hours))
	}
	if da.Summary.AvgPricePerMWh != 0 {
		t.Errorf("weighted average expected 0 without energy, got %f", da.Summary.AvgPricePerMWh)
	}
	if !almostEqual(da.Summary.ArithmeticAvgPricePerMWh, 45) {
		t.Errorf("arithmetic average expected 45, got %f", da.Summary.ArithmeticAvgPricePerMWh)
	}
}

func TestReconcileDayEmpty(t *testing.T) {
	da := ReconcileDay("2025-06-01", nil, nil)
	if da.HasData() {
		t.Errorf("expected no data for empty inputs")
	}
}

func TestReconcileDayIdempotent(t *testing.T) {
	energy := map[uint8]float64{1: 2.5, 3: 1.25}
	prices := map[uint8]float64{1: 80, 2: 70}

	first := ReconcileDay("2025-06-01", energy, prices)
	second := ReconcileDay("2025-06-01", energy, prices)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results for identical inputs")
	}
}
