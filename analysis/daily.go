// Package analysis reconciles the two hourly series (day-ahead price in
// EUR/MWh, generation in kWh) into per-hour, per-day and per-month
// economics. Everything here is a pure function of the source series for
// the requested period; results are recomputed per request and never
// persisted.
package analysis

import (
	"slices"

	"github.com/angas/solarvalue-go/calc"
)

type HourValue struct {
	Hour        uint8
	EnergyKWh   float64
	PricePerMWh float64
	ValueEur    float64
}

type DailySummary struct {
	TotalEnergyKWh float64
	TotalEnergyMWh float64
	TotalValueEur  float64
	// Production-weighted average price, total value over total energy.
	AvgPricePerMWh float64
	// Unweighted mean of the emitted rows' prices, kept as a reference
	// figure next to the weighted average.
	ArithmeticAvgPricePerMWh float64
}

type DailyAnalysis struct {
	Date    string
	Hours   []HourValue
	Summary DailySummary
}

// HasData reports whether any hour qualified. An empty result means
// there is nothing known for the date and callers should surface
// a not-found condition.
func (da DailyAnalysis) HasData() bool {
	return len(da.Hours) > 0
}

// ReconcileDay combines one day's generation and price series into
// per-hour values and a summary. An hour appears in the result when it
// occurs in either series and at least one side is non-zero; an hour
// where both sides are exactly zero is treated as absence of data, not
// as zero economic activity, and is dropped.
func ReconcileDay(date string, energy, prices map[uint8]float64) DailyAnalysis {
	hourSet := make(map[uint8]struct{}, len(energy)+len(prices))
	for h := range energy {
		hourSet[h] = struct{}{}
	}
	for h := range prices {
		hourSet[h] = struct{}{}
	}

	hourKeys := make([]uint8, 0, len(hourSet))
	for h := range hourSet {
		hourKeys = append(hourKeys, h)
	}
	slices.Sort(hourKeys)

	da := DailyAnalysis{Date: date}
	var emittedPrices []float64
	for _, h := range hourKeys {
		e := energy[h]
		p := prices[h]
		if e <= 0 && p <= 0 {
			continue
		}
		v := calc.HourValue(e, p)
		da.Hours = append(da.Hours, HourValue{
			Hour:        h,
			EnergyKWh:   e,
			PricePerMWh: p,
			ValueEur:    v,
		})
		da.Summary.TotalEnergyKWh += e
		da.Summary.TotalValueEur += v
		emittedPrices = append(emittedPrices, p)
	}

	da.Summary.TotalEnergyMWh = da.Summary.TotalEnergyKWh / 1000.0
	da.Summary.AvgPricePerMWh = calc.WeightedAvgPrice(da.Summary.TotalValueEur, da.Summary.TotalEnergyMWh)
	da.Summary.ArithmeticAvgPricePerMWh = calc.ArithmeticMean(emittedPrices)

	return da
}
