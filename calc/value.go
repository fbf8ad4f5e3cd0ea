package calc

// HourValue is the economic value of one hour of generation:
// energy in kWh, price in EUR/MWh, result in EUR.
func HourValue(energyKWh, pricePerMWh float64) float64 {
	return energyKWh / 1000.0 * pricePerMWh
}

// WeightedAvgPrice is the production-weighted average price in EUR/MWh,
// the economically meaningful figure: total value over total energy.
func WeightedAvgPrice(totalValueEur, totalEnergyMWh float64) float64 {
	if totalEnergyMWh <= 0 {
		return 0
	}
	return totalValueEur / totalEnergyMWh
}

// ArithmeticMean is the unweighted mean of the values, 0 for an empty list.
func ArithmeticMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
