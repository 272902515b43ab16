package models

import "github.com/shopspring/decimal"

// NewDecimal creates a decimal from float64
func NewDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// ToFloat64 safely converts decimal to float64
func ToFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
