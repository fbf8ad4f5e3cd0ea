package www

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/angas/solarvalue-go/analysis"
	"github.com/angas/solarvalue-go/hours"
	"github.com/angas/solarvalue-go/www/chartjs"
)

// NewChartHandler serves the Chart.js configuration for one day's
// generation versus price, hour by hour. Missing hours come out as null
// points so the chart shows gaps instead of zeroes.
func NewChartHandler(logger *slog.Logger, store analysis.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			date = hours.Today()
		}
		if !hours.ValidDate(date) {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		energy, err := store.GetEnergyGenerationMap(r.Context(), date)
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		prices, err := store.GetEnergyPriceMap(r.Context(), date)
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		chart := chartjs.NewChart(date)
		for i := 0; i < chartjs.NoOfHours; i++ {
			h := uint8(i + 1)
			if e, ok := energy[h]; ok {
				chart.Data.Datasets[0].Data[i] = chartjs.FixedFloat64(e, 3)
			}
			if p, ok := prices[h]; ok {
				chart.Data.Datasets[1].Data[i] = chartjs.FixedFloat64(p, 2)
			}
		}
		chart.Data.Datasets[0].Label = "Generation"
		chart.Data.Datasets[1].Label = "Price"
		chart.Options.Scales["YAxis1"] = chart.Options.Scales["YAxis1"].
			WithTitle("Generation (kWh)")
		chart.Options.Scales["YAxis2"] = chart.Options.Scales["YAxis2"].
			WithTitle("Price (EUR/MWh)")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(chart); err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, "unable to encode data points", http.StatusInternalServerError)
			return
		}
	}
}
