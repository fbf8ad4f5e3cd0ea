package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/solarvalue-go/config"
	"github.com/angas/solarvalue-go/database"
	"github.com/angas/solarvalue-go/hours"
	"github.com/angas/solarvalue-go/types"
)

func NewEnergyGenerationTask(logger *slog.Logger, db *database.Database, provider types.EnergyProvider, cnfg config.AppConfigInverter) func() {
	return func() {
		RunEnergyGenerationTask(logger, db, provider, cnfg.GetBackfillDays())
	}
}

// RunEnergyGenerationTask pulls the production log for today and the
// requested number of days back, and upserts the hourly readings. A
// failed day is logged and skipped so stale days never block fresh ones.
func RunEnergyGenerationTask(logger *slog.Logger, db *database.Database, provider types.EnergyProvider, backfillDays int) {
	logger.Debug("running energy generation task...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	saved := 0
	for daysBack := 0; daysBack <= backfillDays; daysBack++ {
		date := hours.AddDays(hours.Today(), -daysBack)

		hourly, totalKWh, err := provider.GetHourlyGeneration(ctx, daysBack)
		if err != nil {
			logger.Error("energy generation task error, fetching generation data",
				slog.String("date", date),
				slog.Any("error", err))
			continue
		}

		rows := make([]database.EnergyGenerationRow, 0, len(hourly))
		for hour, kwh := range hourly {
			rows = append(rows, database.EnergyGenerationRow{
				When:      hours.DateHour{Date: date, Hour: hour},
				EnergyKWh: kwh,
			})
		}

		if err := db.SaveEnergyGeneration(ctx, rows); err != nil {
			logger.Error("energy generation task error", slog.String("date", date), slog.Any("error", err))
			continue
		}

		saved += len(rows)
		logger.Debug("saved generation data",
			slog.String("date", date),
			slog.Int("hours", len(rows)),
			slog.Float64("totalKWh", totalKWh))
	}

	logger.Info("energy generation task done", slog.Int("noOfHoursUpdated", saved))
}
