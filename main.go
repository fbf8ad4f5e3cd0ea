package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/angas/solarvalue-go/config"
	"github.com/angas/solarvalue-go/database"
	"github.com/angas/solarvalue-go/hours"
	"github.com/angas/solarvalue-go/hupx"
	"github.com/angas/solarvalue-go/inverter"
	"github.com/angas/solarvalue-go/logging"
	"github.com/angas/solarvalue-go/task"
	"github.com/angas/solarvalue-go/types"
	"github.com/angas/solarvalue-go/www"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := hours.SetGuiTimezone(cnfg.Gui.GetTimezone()); err != nil {
		panic(fmt.Sprintf("failed to set GUI timezone: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("solarvalue is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	inv := inverter.New(cnfg.Inverter.Host)

	live := inverter.NewLiveFeed(
		cnfg.Inverter.Host,
		cnfg.Inverter.GetMqttPort(),
		cnfg.Inverter.GetMqttTopic())
	if isDevMode() {
		logger.Info("dev mode, skipping inverter MQTT connection")
	} else {
		if err := live.Connect(); err != nil {
			// Live telemetry is a nicety; the hourly polling still works
			logger.Warn("inverter MQTT connection error", slog.Any("error", err))
		} else {
			defer live.Disconnect()
		}
	}

	priceProviders := []types.PriceProvider{
		hupx.New(cnfg.EnergyPrice.GetUrl()),
	}

	tasks := task.NewTasks(db, priceProviders, inv, cnfg)
	if isDevMode() {
		logger.Info("dev mode, skipping task scheduling")
	} else {
		tasks.Run()
		defer tasks.Stop()
	}

	fetchEnergy := func(daysBack int) {
		task.RunEnergyGenerationTask(
			logger.With(slog.String("task", "energy_generation")),
			db, inv, daysBack)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server := www.StartServer(db, tasks, live, fetchEnergy, cnfg.Api, Version)
	server.Run(ctx)
}

func isDevMode() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "development")
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}
