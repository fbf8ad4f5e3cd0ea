// One-shot price fetch, mainly for checking the scrape against the live
// page without starting the service.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/angas/solarvalue-go/config"
	"github.com/angas/solarvalue-go/hupx"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	provider := hupx.New(cnfg.EnergyPrice.GetUrl())
	prices, err := provider.GetDayAheadPrices(context.Background())
	if err != nil {
		panic(err)
	}

	for _, p := range prices {
		fmt.Printf("Date: %s, Hour: %s, Price: %.2f EUR/MWh\n",
			p.Hour.Date, p.Hour.Label(), p.Price)
	}
}
