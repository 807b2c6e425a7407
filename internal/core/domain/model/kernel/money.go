package kernel

import "github.com/shopspring/decimal"

// MoneyDigits is the number of decimal places kept on monetary amounts.
const MoneyDigits int32 = 2

// RoundMoney rounds an amount half away from zero to MoneyDigits places.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyDigits)
}

// LineAmount returns the rounded amount of quantity × unitPrice.
func LineAmount(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return RoundMoney(quantity.Mul(unitPrice))
}

// SplitFraction splits amount into its mathematical floor (toward negative infinity)
// and the non-negative remainder: amount = floored + remainder, 0 <= remainder < 1.
//
//	SplitFraction(200.25)  -> 200, 0.25
//	SplitFraction(-200.25) -> -201, 0.75
func SplitFraction(amount decimal.Decimal) (floored, remainder decimal.Decimal) {
	floored = amount.Floor()
	return floored, amount.Sub(floored)
}
