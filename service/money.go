package service

import "github.com/shopspring/decimal"

// roundTo2Decimals rounds half away from zero to two decimal places.
func roundTo2Decimals(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// sumRounded adds values as decimals so repeated cents do not drift.
func sumRounded(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}
