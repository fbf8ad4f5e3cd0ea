package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/solarvalue-go/calc"
	"github.com/angas/solarvalue-go/hours"
)

// Store is the slice of the persistence layer the rollup needs:
// one day's series at a time, keyed by market hour.
type Store interface {
	GetEnergyGenerationMap(ctx context.Context, date string) (map[uint8]float64, error)
	GetEnergyPriceMap(ctx context.Context, date string) (map[uint8]float64, error)
}

type SkipReason string

const (
	SkipFutureDate      SkipReason = "future date"
	SkipNoEnergyData    SkipReason = "no energy data"
	SkipNoPriceData     SkipReason = "no price data"
	SkipNoMatchingHours SkipReason = "no matching hours"
	SkipQueryFailed     SkipReason = "query failed"
)

type DayEntry struct {
	TotalValueEur  float64
	TotalEnergyMWh float64
	// Mean price over the hours where energy was actually produced.
	AvgWorkingHourPrice float64
	WorkingHours        int
}

// DayOutcome is one calendar day's rollup result: either a qualified
// entry or an explicit skip with its reason. A skipped day is part of
// the contract, not an error.
type DayOutcome struct {
	Date  string
	Entry DayEntry
	Skip  SkipReason
}

func (o DayOutcome) Ok() bool {
	return o.Skip == ""
}

type MonthlySummary struct {
	TotalValueEur  float64
	TotalEnergyMWh float64
	// Mean over the concatenation of all days' working-hour prices,
	// i.e. hour-weighted across the month, not day-weighted.
	AvgWorkingHourPrice float64
	DaysWithData        int
	TotalWorkingHours   int
}

type MonthlyAnalysis struct {
	Year          int
	Month         time.Month
	Days          []DayOutcome // one per calendar day, in order
	Summary       MonthlySummary
	DaysProcessed int
	DaysWithData  int
}

// HasData distinguishes "processed but empty" from a month with results.
func (ma MonthlyAnalysis) HasData() bool {
	return ma.DaysWithData > 0
}

// Rollup walks every calendar day of the month and produces a DayOutcome
// per day plus a month summary. Days after today are skipped, as are days
// where either series is empty or the two series share no hours. Unlike
// the daily reconciliation, only hours present in BOTH series count:
// monthly economics include an hour only when both facts are known, and
// within that intersection every hour counts, zero values too.
//
// A failure while processing one day never aborts the month; the day is
// logged and skipped.
func Rollup(ctx context.Context, logger *slog.Logger, store Store, year int, month time.Month, today string) MonthlyAnalysis {
	ma := MonthlyAnalysis{Year: year, Month: month}

	var monthWorkingHourPrices []float64
	lastDay := hours.DaysInMonth(year, month)
	for day := 1; day <= lastDay; day++ {
		date := hours.MonthDate(year, month, day)
		ma.DaysProcessed++

		outcome := rollupDay(ctx, store, date, today)
		if outcome.Ok() {
			ma.DaysWithData++
			ma.Summary.TotalValueEur += outcome.Entry.TotalValueEur
			ma.Summary.TotalEnergyMWh += outcome.Entry.TotalEnergyMWh
			monthWorkingHourPrices = append(monthWorkingHourPrices, outcome.workingHourPrices...)
		} else if outcome.Skip == SkipQueryFailed {
			logger.Warn("day skipped in monthly rollup",
				slog.String("date", date),
				slog.Any("error", outcome.err))
		} else if outcome.Skip != SkipFutureDate {
			logger.Debug("day skipped in monthly rollup",
				slog.String("date", date),
				slog.String("reason", string(outcome.Skip)))
		}
		ma.Days = append(ma.Days, outcome.DayOutcome)
	}

	ma.Summary.AvgWorkingHourPrice = calc.ArithmeticMean(monthWorkingHourPrices)
	ma.Summary.DaysWithData = ma.DaysWithData
	ma.Summary.TotalWorkingHours = len(monthWorkingHourPrices)

	return ma
}

type dayResult struct {
	DayOutcome
	workingHourPrices []float64
	err               error
}

func rollupDay(ctx context.Context, store Store, date, today string) dayResult {
	skip := func(reason SkipReason, err error) dayResult {
		return dayResult{DayOutcome: DayOutcome{Date: date, Skip: reason}, err: err}
	}

	if date > today {
		return skip(SkipFutureDate, nil)
	}

	energy, err := store.GetEnergyGenerationMap(ctx, date)
	if err != nil {
		return skip(SkipQueryFailed, err)
	}
	if len(energy) == 0 {
		return skip(SkipNoEnergyData, nil)
	}

	prices, err := store.GetEnergyPriceMap(ctx, date)
	if err != nil {
		return skip(SkipQueryFailed, err)
	}
	if len(prices) == 0 {
		return skip(SkipNoPriceData, nil)
	}

	var entry DayEntry
	var totalEnergyKWh float64
	var workingHourPrices []float64
	matchedHours := 0
	for h, e := range energy {
		p, ok := prices[h]
		if !ok {
			continue
		}
		matchedHours++
		totalEnergyKWh += e
		entry.TotalValueEur += calc.HourValue(e, p)
		if e > 0 {
			workingHourPrices = append(workingHourPrices, p)
		}
	}

	// Both series have records but their hour sets are disjoint. Current
	// policy is to skip such a day rather than report it separately.
	if matchedHours == 0 {
		return skip(SkipNoMatchingHours, nil)
	}

	entry.TotalEnergyMWh = totalEnergyKWh / 1000.0
	entry.AvgWorkingHourPrice = calc.ArithmeticMean(workingHourPrices)
	entry.WorkingHours = len(workingHourPrices)

	return dayResult{
		DayOutcome:        DayOutcome{Date: date, Entry: entry},
		workingHourPrices: workingHourPrices,
	}
}
