package convert

import (
	"math"
)

func TwoDecimals(number float64) float64 {
	return RoundFloat64(number, 2)
}

func ThreeDecimals(number float64) float64 {
	return RoundFloat64(number, 3)
}

func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(decimals)) / math.Pow10(decimals)
}

func KWhToMWh(kwh float64) float64 {
	return kwh / 1000.0
}

func WhToKWh(wh float64) float64 {
	return wh / 1000.0
}
