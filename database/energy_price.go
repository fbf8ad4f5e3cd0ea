package database

import (
	"context"
	"fmt"

	"github.com/angas/solarvalue-go/convert"
	"github.com/angas/solarvalue-go/hours"
)

type EnergyPriceRow struct {
	When  hours.DateHour
	Price float64 // EUR/MWh
}

func (d *Database) SaveEnergyPrices(ctx context.Context, rows []EnergyPriceRow) error {
	for _, row := range rows {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO energy_price (date, hour, price) VALUES (?, ?, ?)
			ON CONFLICT(date, hour) DO UPDATE SET price = excluded.price`,
			row.When.Date,
			row.When.Hour,
			convert.RoundFloat64(row.Price, 4))
		if err != nil {
			return fmt.Errorf("saving energy price for %s: %w", row.When, err)
		}
	}
	return nil
}

func (d *Database) GetEnergyPricesForDate(ctx context.Context, date string) ([]EnergyPriceRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		date, hour, price
		FROM energy_price
		WHERE date = ?
		ORDER BY hour ASC`,
		date)
	if err != nil {
		return nil, fmt.Errorf("fetching energy prices for %s: %w", date, err)
	}

	defer rows.Close()

	var prices []EnergyPriceRow
	for rows.Next() {
		var ep EnergyPriceRow
		if err := rows.Scan(&ep.When.Date, &ep.When.Hour, &ep.Price); err != nil {
			return nil, fmt.Errorf("scanning energy price row: %w", err)
		}
		prices = append(prices, ep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading energy price rows: %w", err)
	}

	return prices, nil
}

// GetEnergyPriceMap is the analysis engine's view of one day's prices.
func (d *Database) GetEnergyPriceMap(ctx context.Context, date string) (map[uint8]float64, error) {
	rows, err := d.GetEnergyPricesForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	m := make(map[uint8]float64, len(rows))
	for _, row := range rows {
		m[row.When.Hour] = row.Price
	}
	return m, nil
}

func (d *Database) GetPriceDates(ctx context.Context) ([]string, error) {
	return d.distinctDates(ctx, "energy_price")
}

// GetLatestPriceDate returns the most recent date with any price row,
// empty string when the table is empty.
func (d *Database) GetLatestPriceDate(ctx context.Context) (string, error) {
	var date string
	err := d.read.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(date), '') FROM energy_price`).Scan(&date)
	if err != nil {
		return "", fmt.Errorf("fetching latest price date: %w", err)
	}
	return date, nil
}

func (d *Database) PurgeEnergyPrice(ctx context.Context, retentionDays int) error {
	return d.purgeTable(ctx, "energy_price", retentionDays)
}

func (d *Database) distinctDates(ctx context.Context, table string) ([]string, error) {
	rows, err := d.read.QueryContext(ctx,
		fmt.Sprintf("SELECT DISTINCT date FROM %s ORDER BY date ASC", table))
	if err != nil {
		return nil, fmt.Errorf("fetching dates from %s: %w", table, err)
	}

	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scanning date from %s: %w", table, err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading dates from %s: %w", table, err)
	}

	return dates, nil
}
