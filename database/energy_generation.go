package database

import (
	"context"
	"fmt"

	"github.com/angas/solarvalue-go/convert"
	"github.com/angas/solarvalue-go/hours"
)

type EnergyGenerationRow struct {
	When      hours.DateHour
	EnergyKWh float64
}

func (d *Database) SaveEnergyGeneration(ctx context.Context, rows []EnergyGenerationRow) error {
	for _, row := range rows {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO energy_generation (date, hour, energy_kwh) VALUES (?, ?, ?)
			ON CONFLICT(date, hour) DO UPDATE SET energy_kwh = excluded.energy_kwh`,
			row.When.Date,
			row.When.Hour,
			convert.ThreeDecimals(row.EnergyKWh))
		if err != nil {
			return fmt.Errorf("saving energy generation for %s: %w", row.When, err)
		}
	}
	return nil
}

func (d *Database) GetEnergyGenerationForDate(ctx context.Context, date string) ([]EnergyGenerationRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		date, hour, energy_kwh
		FROM energy_generation
		WHERE date = ?
		ORDER BY hour ASC`,
		date)
	if err != nil {
		return nil, fmt.Errorf("fetching energy generation for %s: %w", date, err)
	}

	defer rows.Close()

	var gens []EnergyGenerationRow
	for rows.Next() {
		var eg EnergyGenerationRow
		if err := rows.Scan(&eg.When.Date, &eg.When.Hour, &eg.EnergyKWh); err != nil {
			return nil, fmt.Errorf("scanning energy generation row: %w", err)
		}
		gens = append(gens, eg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading energy generation rows: %w", err)
	}

	return gens, nil
}

// GetEnergyGenerationMap is the analysis engine's view of one day's
// generation.
func (d *Database) GetEnergyGenerationMap(ctx context.Context, date string) (map[uint8]float64, error) {
	rows, err := d.GetEnergyGenerationForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	m := make(map[uint8]float64, len(rows))
	for _, row := range rows {
		m[row.When.Hour] = row.EnergyKWh
	}
	return m, nil
}

func (d *Database) GetEnergyDates(ctx context.Context) ([]string, error) {
	return d.distinctDates(ctx, "energy_generation")
}

func (d *Database) PurgeEnergyGeneration(ctx context.Context, retentionDays int) error {
	return d.purgeTable(ctx, "energy_generation", retentionDays)
}
