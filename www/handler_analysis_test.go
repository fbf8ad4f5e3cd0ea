package www

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeStore struct {
	energy map[string]map[uint8]float64
	prices map[string]map[uint8]float64
}

func (s *fakeStore) GetEnergyGenerationMap(_ context.Context, date string) (map[uint8]float64, error) {
	return s.energy[date], nil
}

func (s *fakeStore) GetEnergyPriceMap(_ context.Context, date string) (map[uint8]float64, error) {
	return s.prices[date], nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func getWithPathValue(h http.HandlerFunc, target, key, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.SetPathValue(key, value)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestDailyAnalysisHandler(t *testing.T) {
	store := &fakeStore{
		energy: map[string]map[uint8]float64{
			"2025-06-15": {12: 2.3456, 13: 0.0},
		},
		prices: map[string]map[uint8]float64{
			"2025-06-15": {12: 85.125, 13: 90.0},
		},
	}
	h := NewDailyAnalysisHandler(discard(), store)

	rec := getWithPathValue(h, "/api/analysis/by-date/2025-06-15", "date", "2025-06-15")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Date       string `json:"date"`
		HourlyData []struct {
			Hour        string  `json:"hour"`
			EnergyKWh   float64 `json:"energy_kwh"`
			PricePerMWh float64 `json:"price_per_mwh"`
			Value       float64 `json:"value"`
		} `json:"hourly_data"`
		Summary struct {
			TotalEnergyKWh     float64 `json:"total_energy_kwh"`
			TotalEnergyMWh     float64 `json:"total_energy_mwh"`
			TotalValue         float64 `json:"total_value"`
			AveragePricePerMWh float64 `json:"average_price_per_mwh"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if body.Date != "2025-06-15" {
		t.Errorf("unexpected date %q", body.Date)
	}
	if len(body.HourlyData) != 2 {
		t.Fatalf("expected 2 hour rows, got %d", len(body.HourlyData))
	}
	if body.HourlyData[0].Hour != "H12" || body.HourlyData[1].Hour != "H13" {
		t.Errorf("unexpected hour labels %q, %q", body.HourlyData[0].Hour, body.HourlyData[1].Hour)
	}
	// 2.3456 kWh at 85.125 EUR/MWh is 0.19967... EUR, rounded at the edge
	if body.HourlyData[0].EnergyKWh != 2.346 {
		t.Errorf("energy not rounded to 3 decimals: %v", body.HourlyData[0].EnergyKWh)
	}
	if body.HourlyData[0].PricePerMWh != 85.13 {
		t.Errorf("price not rounded to 2 decimals: %v", body.HourlyData[0].PricePerMWh)
	}
	if body.HourlyData[0].Value != 0.2 {
		t.Errorf("value not rounded to 2 decimals: %v", body.HourlyData[0].Value)
	}
	if body.Summary.TotalEnergyKWh != 2.346 {
		t.Errorf("unexpected total energy %v", body.Summary.TotalEnergyKWh)
	}
}

func TestDailyAnalysisHandlerNoData(t *testing.T) {
	h := NewDailyAnalysisHandler(discard(), &fakeStore{})

	rec := getWithPathValue(h, "/api/analysis/by-date/2025-06-15", "date", "2025-06-15")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestDailyAnalysisHandlerBadDate(t *testing.T) {
	h := NewDailyAnalysisHandler(discard(), &fakeStore{})

	rec := getWithPathValue(h, "/api/analysis/by-date/junk", "date", "junk")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestMonthlyAnalysisHandler(t *testing.T) {
	store := &fakeStore{
		energy: map[string]map[uint8]float64{
			"2025-06-01": {10: 1.0, 11: 2.0},
		},
		prices: map[string]map[uint8]float64{
			"2025-06-01": {10: 100.0, 11: 50.0},
		},
	}
	h := NewMonthlyAnalysisHandler(discard(), store)

	rec := getWithPathValue(h, "/api/analysis/by-month/2025-06", "month", "2025-06")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if _, ok := body["2025-06-01"]; !ok {
		t.Fatalf("expected an entry for 2025-06-01, keys: %v", keys(body))
	}
	if _, ok := body["month_summary"]; !ok {
		t.Fatal("expected a month_summary entry")
	}

	var day struct {
		TotalValue          float64 `json:"total_value"`
		TotalEnergyMWh      float64 `json:"total_energy_mwh"`
		AvgWorkingHourPrice float64 `json:"avg_working_hour_price"`
		WorkingHours        int     `json:"working_hours"`
	}
	if err := json.Unmarshal(body["2025-06-01"], &day); err != nil {
		t.Fatalf("decoding day entry: %v", err)
	}
	// 0.001 MWh at 100 plus 0.002 MWh at 50 is 0.20 EUR over 2 working hours
	if day.TotalValue != 0.2 {
		t.Errorf("unexpected total value %v", day.TotalValue)
	}
	if day.TotalEnergyMWh != 0.003 {
		t.Errorf("unexpected total energy %v", day.TotalEnergyMWh)
	}
	if day.AvgWorkingHourPrice != 75.0 {
		t.Errorf("unexpected avg working hour price %v", day.AvgWorkingHourPrice)
	}
	if day.WorkingHours != 2 {
		t.Errorf("unexpected working hours %d", day.WorkingHours)
	}

	var summary struct {
		DaysWithData      int `json:"days_with_data"`
		TotalWorkingHours int `json:"total_working_hours"`
	}
	if err := json.Unmarshal(body["month_summary"], &summary); err != nil {
		t.Fatalf("decoding month summary: %v", err)
	}
	if summary.DaysWithData != 1 || summary.TotalWorkingHours != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestMonthlyAnalysisHandlerNoData(t *testing.T) {
	h := NewMonthlyAnalysisHandler(discard(), &fakeStore{})

	rec := getWithPathValue(h, "/api/analysis/by-month/2025-06", "month", "2025-06")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Details struct {
			DaysProcessed int `json:"days_processed"`
			DaysWithData  int `json:"days_with_data"`
		} `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Status != "no_data" {
		t.Errorf("expected no_data status, got %q", body.Status)
	}
	if body.Details.DaysProcessed != 30 {
		t.Errorf("expected 30 days processed for June, got %d", body.Details.DaysProcessed)
	}
	if body.Details.DaysWithData != 0 {
		t.Errorf("expected 0 days with data, got %d", body.Details.DaysWithData)
	}
}

func TestMonthlyAnalysisHandlerBadMonth(t *testing.T) {
	h := NewMonthlyAnalysisHandler(discard(), &fakeStore{})

	for _, m := range []string{"junk", "2025-13", "2025", "1999-01"} {
		rec := getWithPathValue(h, "/api/analysis/by-month/"+m, "month", m)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("month %q: expected 400, got %d", m, rec.Code)
		}
	}
}

func keys(m map[string]json.RawMessage) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}
