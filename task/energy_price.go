package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/solarvalue-go/database"
	"github.com/angas/solarvalue-go/hours"
	"github.com/angas/solarvalue-go/types"
)

func NewEnergyPriceTask(logger *slog.Logger, db *database.Database, providers []types.PriceProvider) func() {
	if len(providers) == 0 {
		panic("no energy price providers")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if needImmediateEnergyPriceUpdate(ctx, db) {
		logger.Info("need an immediate update of energy prices")
		runEnergyPriceTask(logger, db, providers)
	} else {
		logger.Debug("no need for immediate update of energy prices")
	}

	return func() { runEnergyPriceTask(logger, db, providers) }
}

func runEnergyPriceTask(logger *slog.Logger, db *database.Database, providers []types.PriceProvider) {
	logger.Debug("running energy price task...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var rows []database.EnergyPriceRow
	for _, provider := range providers {
		prices, err := provider.GetDayAheadPrices(ctx)
		if err != nil {
			logger.Error("energy price task error, fetching energy prices", slog.Any("error", err))
		} else {
			rows = make([]database.EnergyPriceRow, len(prices))
			for i, pp := range prices {
				logger.Debug("energy price", slog.String("hour", pp.Hour.String()), slog.Float64("price", pp.Price))
				rows[i] = database.EnergyPriceRow{When: pp.Hour, Price: pp.Price}
			}
			break
		}
	}

	if len(rows) == 0 {
		logger.Error("energy price task error, no prices fetched")
		return
	}

	if err := db.SaveEnergyPrices(ctx, rows); err != nil {
		logger.Error("energy price task error", slog.Any("error", err))
		return
	}

	logger.Info("energy price task done", slog.Int("noOfHoursUpdated", len(rows)))
}

// The scrape publishes whole days at a time, so a single missing hour
// for tomorrow means the day is absent.
func needImmediateEnergyPriceUpdate(ctx context.Context, db *database.Database) bool {
	tomorrow := hours.AddDays(hours.Today(), 1)
	latest, err := db.GetLatestPriceDate(ctx)
	if err != nil {
		return true
	}
	return latest < tomorrow
}
