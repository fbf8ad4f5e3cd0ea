package types

import (
	"context"

	"github.com/angas/solarvalue-go/hours"
)

type PricePoint struct {
	Hour  hours.DateHour
	Price float64 // Day-ahead price in EUR/MWh
}

// PriceProvider delivers day-ahead prices for a rolling recent window,
// typically the running week plus tomorrow once published.
type PriceProvider interface {
	GetDayAheadPrices(ctx context.Context) ([]PricePoint, error)
}

// EnergyProvider delivers the hourly generation of one past day,
// keyed by market hour (H1..H24), plus the day's total in kWh.
// daysBack 0 is today, 1 is yesterday and so on.
type EnergyProvider interface {
	GetHourlyGeneration(ctx context.Context, daysBack int) (map[uint8]float64, float64, error)
}
