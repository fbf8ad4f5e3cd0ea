package task

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/angas/solarvalue-go/config"
	"github.com/angas/solarvalue-go/database"
	"github.com/angas/solarvalue-go/types"
)

type Tasks struct {
	cron                 *cron.Cron
	cnfg                 *config.AppConfig
	EnergyPriceTask      func()
	EnergyGenerationTask func()
	MaintenanceTask      func()
}

func NewTasks(
	db *database.Database,
	priceProviders []types.PriceProvider,
	energyProvider types.EnergyProvider,
	cnfg *config.AppConfig,
) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:                 cron.New(),
		cnfg:                 cnfg,
		EnergyPriceTask:      NewEnergyPriceTask(logger.With(slog.String("task", "energy_price")), db, priceProviders),
		EnergyGenerationTask: NewEnergyGenerationTask(logger.With(slog.String("task", "energy_generation")), db, energyProvider, cnfg.Inverter),
		MaintenanceTask:      NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.cnfg.EnergyPrice.GetRunAt(), t.EnergyPriceTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc(t.cnfg.Inverter.GetRunAt(), t.EnergyGenerationTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
