package www

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angas/solarvalue-go/analysis"
	"github.com/angas/solarvalue-go/convert"
	"github.com/angas/solarvalue-go/hours"
)

type hourValueBody struct {
	Hour        string  `json:"hour"`
	EnergyKWh   float64 `json:"energy_kwh"`
	PricePerMWh float64 `json:"price_per_mwh"`
	Value       float64 `json:"value"`
}

type dailySummaryBody struct {
	TotalEnergyKWh           float64 `json:"total_energy_kwh"`
	TotalEnergyMWh           float64 `json:"total_energy_mwh"`
	TotalValue               float64 `json:"total_value"`
	AveragePricePerMWh       float64 `json:"average_price_per_mwh"`
	ArithmeticAvgPricePerMWh float64 `json:"arithmetic_avg_price_per_mwh"`
}

type dailyAnalysisBody struct {
	Date       string           `json:"date"`
	HourlyData []hourValueBody  `json:"hourly_data"`
	Summary    dailySummaryBody `json:"summary"`
}

// Rounding happens here and nowhere else: energy to three decimals,
// prices and values to two.
func newDailyAnalysisBody(da analysis.DailyAnalysis) dailyAnalysisBody {
	body := dailyAnalysisBody{
		Date:       da.Date,
		HourlyData: make([]hourValueBody, len(da.Hours)),
		Summary: dailySummaryBody{
			TotalEnergyKWh:           convert.ThreeDecimals(da.Summary.TotalEnergyKWh),
			TotalEnergyMWh:           convert.ThreeDecimals(da.Summary.TotalEnergyMWh),
			TotalValue:               convert.TwoDecimals(da.Summary.TotalValueEur),
			AveragePricePerMWh:       convert.TwoDecimals(da.Summary.AvgPricePerMWh),
			ArithmeticAvgPricePerMWh: convert.TwoDecimals(da.Summary.ArithmeticAvgPricePerMWh),
		},
	}
	for i, hv := range da.Hours {
		body.HourlyData[i] = hourValueBody{
			Hour:        hours.FormatLabel(hv.Hour),
			EnergyKWh:   convert.ThreeDecimals(hv.EnergyKWh),
			PricePerMWh: convert.TwoDecimals(hv.PricePerMWh),
			Value:       convert.TwoDecimals(hv.ValueEur),
		}
	}
	return body
}

func NewDailyAnalysisHandler(logger *slog.Logger, store analysis.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.PathValue("date")
		if !hours.ValidDate(date) {
			writeJSONError(logger, w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}

		energy, err := store.GetEnergyGenerationMap(r.Context(), date)
		if err != nil {
			logger.Error("handling daily analysis request", slog.Any("error", err))
			writeJSONError(logger, w, http.StatusInternalServerError, "query failed")
			return
		}

		prices, err := store.GetEnergyPriceMap(r.Context(), date)
		if err != nil {
			logger.Error("handling daily analysis request", slog.Any("error", err))
			writeJSONError(logger, w, http.StatusInternalServerError, "query failed")
			return
		}

		da := analysis.ReconcileDay(date, energy, prices)
		if !da.HasData() {
			writeJSONError(logger, w, http.StatusNotFound, "no data for "+date)
			return
		}

		writeJSON(logger, w, http.StatusOK, newDailyAnalysisBody(da))
	}
}

type monthDayBody struct {
	TotalValue          float64 `json:"total_value"`
	TotalEnergyMWh      float64 `json:"total_energy_mwh"`
	AvgWorkingHourPrice float64 `json:"avg_working_hour_price"`
	WorkingHours        int     `json:"working_hours"`
}

type monthSummaryBody struct {
	TotalValue          float64 `json:"total_value"`
	TotalEnergyMWh      float64 `json:"total_energy_mwh"`
	DaysWithData        int     `json:"days_with_data"`
	AvgWorkingHourPrice float64 `json:"avg_working_hour_price"`
	TotalWorkingHours   int     `json:"total_working_hours"`
}

type noDataDetails struct {
	DaysProcessed int `json:"days_processed"`
	DaysWithData  int `json:"days_with_data"`
}

type noDataBody struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details noDataDetails `json:"details"`
}

func NewMonthlyAnalysisHandler(logger *slog.Logger, store analysis.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, month, ok := parseYearMonth(r.PathValue("month"))
		if !ok {
			writeJSONError(logger, w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
			return
		}

		ma := analysis.Rollup(r.Context(), logger, store, year, month, hours.Today())
		if !ma.HasData() {
			writeJSON(logger, w, http.StatusOK, noDataBody{
				Status:  "no_data",
				Message: "no day in the month has both price and generation data",
				Details: noDataDetails{
					DaysProcessed: ma.DaysProcessed,
					DaysWithData:  ma.DaysWithData,
				},
			})
			return
		}

		// JSON object keyed by date; string keys serialize sorted, so the
		// days come out in calendar order with month_summary last.
		body := make(map[string]any, ma.DaysWithData+1)
		for _, day := range ma.Days {
			if !day.Ok() {
				continue
			}
			body[day.Date] = monthDayBody{
				TotalValue:          convert.TwoDecimals(day.Entry.TotalValueEur),
				TotalEnergyMWh:      convert.ThreeDecimals(day.Entry.TotalEnergyMWh),
				AvgWorkingHourPrice: convert.TwoDecimals(day.Entry.AvgWorkingHourPrice),
				WorkingHours:        day.Entry.WorkingHours,
			}
		}
		body["month_summary"] = monthSummaryBody{
			TotalValue:          convert.TwoDecimals(ma.Summary.TotalValueEur),
			TotalEnergyMWh:      convert.ThreeDecimals(ma.Summary.TotalEnergyMWh),
			DaysWithData:        ma.Summary.DaysWithData,
			AvgWorkingHourPrice: convert.TwoDecimals(ma.Summary.AvgWorkingHourPrice),
			TotalWorkingHours:   ma.Summary.TotalWorkingHours,
		}

		writeJSON(logger, w, http.StatusOK, body)
	}
}

func parseYearMonth(s string) (int, time.Month, bool) {
	y, m, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	year, err := strconv.Atoi(y)
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}
