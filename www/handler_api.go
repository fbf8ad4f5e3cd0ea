package www

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/angas/solarvalue-go/convert"
	"github.com/angas/solarvalue-go/database"
	"github.com/angas/solarvalue-go/hours"
	"github.com/angas/solarvalue-go/slice"
)

type statusBody struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Uptime        string `json:"uptime"`
	LastPriceDate string `json:"last_price_date"`
}

func NewStatusHandler(logger *slog.Logger, db *database.Database, version string, startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastPriceDate, err := db.GetLatestPriceDate(r.Context())
		if err != nil {
			logger.Error("handling status request", slog.Any("error", err))
			writeJSONError(logger, w, http.StatusInternalServerError, "query failed")
			return
		}

		writeJSON(logger, w, http.StatusOK, statusBody{
			Name:          "solarvalue",
			Version:       version,
			Uptime:        time.Since(startedAt).Round(time.Second).String(),
			LastPriceDate: lastPriceDate,
		})
	}
}

type pricePointBody struct {
	Hour  string  `json:"hour"`
	Price float64 `json:"price"`
}

type pricesBody struct {
	Date   string           `json:"date"`
	Prices []pricePointBody `json:"prices"`
}

func NewPricesHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.PathValue("date")
		if !hours.ValidDate(date) {
			writeJSONError(logger, w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}

		rows, err := db.GetEnergyPricesForDate(r.Context(), date)
		if err != nil {
			logger.Error("handling prices request", slog.Any("error", err))
			writeJSONError(logger, w, http.StatusInternalServerError, "query failed")
			return
		}
		if len(rows) == 0 {
			writeJSONError(logger, w, http.StatusNotFound, "no prices for "+date)
			return
		}

		writeJSON(logger, w, http.StatusOK, pricesBody{
			Date: date,
			Prices: slice.Map(rows, func(row database.EnergyPriceRow) pricePointBody {
				return pricePointBody{
					Hour:  row.When.Label(),
					Price: convert.TwoDecimals(row.Price),
				}
			}),
		})
	}
}

type energyPointBody struct {
	Hour      string  `json:"hour"`
	EnergyKWh float64 `json:"energy_kwh"`
}

type energyBody struct {
	Date       string            `json:"date"`
	EnergyData []energyPointBody `json:"energy_data"`
}

func NewEnergyHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.PathValue("date")
		if !hours.ValidDate(date) {
			writeJSONError(logger, w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}

		rows, err := db.GetEnergyGenerationForDate(r.Context(), date)
		if err != nil {
			logger.Error("handling energy request", slog.Any("error", err))
			writeJSONError(logger, w, http.StatusInternalServerError, "query failed")
			return
		}
		if len(rows) == 0 {
			writeJSONError(logger, w, http.StatusNotFound, "no generation data for "+date)
			return
		}

		writeJSON(logger, w, http.StatusOK, energyBody{
			Date: date,
			EnergyData: slice.Map(rows, func(row database.EnergyGenerationRow) energyPointBody {
				return energyPointBody{
					Hour:      row.When.Label(),
					EnergyKWh: convert.ThreeDecimals(row.EnergyKWh),
				}
			}),
		})
	}
}

// NewRefreshPricesHandler kicks off the price task in the background and
// acknowledges immediately; the scrape can take tens of seconds.
func NewRefreshPricesHandler(logger *slog.Logger, refresh func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Info("price refresh requested", slog.String("remoteAddr", r.RemoteAddr))
		go refresh()
		writeJSON(logger, w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

func NewFetchEnergyHandler(logger *slog.Logger, fetch func(daysBack int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		daysBack, err := strconv.Atoi(r.PathValue("days_back"))
		if err != nil || daysBack < 0 || daysBack > 30 {
			writeJSONError(logger, w, http.StatusBadRequest, "days_back must be an integer in [0,30]")
			return
		}

		logger.Info("energy fetch requested",
			slog.Int("daysBack", daysBack),
			slog.String("remoteAddr", r.RemoteAddr))
		go fetch(daysBack)
		writeJSON(logger, w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

type availableDatesBody struct {
	EnergyDates        []string `json:"energy_dates"`
	PriceDates         []string `json:"price_dates"`
	AnalysisReadyDates []string `json:"analysis_ready_dates"`
}

func NewAvailableDatesHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		energyDates, err := db.GetEnergyDates(r.Context())
		if err != nil {
			logger.Error("handling available dates request", slog.Any("error", err))
			writeJSONError(logger, w, http.StatusInternalServerError, "query failed")
			return
		}

		priceDates, err := db.GetPriceDates(r.Context())
		if err != nil {
			logger.Error("handling available dates request", slog.Any("error", err))
			writeJSONError(logger, w, http.StatusInternalServerError, "query failed")
			return
		}

		priceSet := make(map[string]struct{}, len(priceDates))
		for _, d := range priceDates {
			priceSet[d] = struct{}{}
		}
		ready := slice.Filter(energyDates, func(d string) bool {
			_, ok := priceSet[d]
			return ok
		})

		writeJSON(logger, w, http.StatusOK, availableDatesBody{
			EnergyDates:        energyDates,
			PriceDates:         priceDates,
			AnalysisReadyDates: ready,
		})
	}
}
