package domain

import "github.com/shopspring/decimal"

// MoneyScale decimales que admiten las columnas NUMERIC(18,2).
const MoneyScale = 2

// CheckMoneyScale rechaza importes con más de MoneyScale decimales significativos.
// "1.500" es válido; "1.005" no.
func CheckMoneyScale(amounts ...decimal.Decimal) error {
	for _, a := range amounts {
		if !a.Truncate(MoneyScale).Equal(a) {
			return ErrMoneyScale
		}
	}
	return nil
}
