// One-shot inverter poll for inspecting what the device reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/angas/solarvalue-go/config"
	"github.com/angas/solarvalue-go/hours"
	"github.com/angas/solarvalue-go/inverter"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	daysBack := flag.Int("days-back", 0, "day offset, 0 = today")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	inv := inverter.New(cnfg.Inverter.Host)
	hourly, total, err := inv.GetHourlyGeneration(context.Background(), *daysBack)
	if err != nil {
		panic(err)
	}

	hs := make([]uint8, 0, len(hourly))
	for h := range hourly {
		hs = append(hs, h)
	}
	slices.Sort(hs)

	for _, h := range hs {
		fmt.Printf("%s: %.3f kWh\n", hours.FormatLabel(h), hourly[h])
	}
	fmt.Printf("Total: %.3f kWh\n", total)
}
