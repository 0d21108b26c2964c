package domain

import "github.com/shopspring/decimal"

// Monetary division in this package rounds half to even (banker's rounding),
// matching the reference accounting convention. RoundHalfEven(25, 2) == 12,
// RoundHalfEven(35, 2) == 18.

// RoundHalfEven divides numerator by denominator and rounds the quotient
// half to even.
func RoundHalfEven(numerator, denominator int64) int64 {
	return decimal.NewFromInt(numerator).
		DivRound(decimal.NewFromInt(denominator), 8).
		RoundBank(0).
		IntPart()
}

// DailyInterest computes one day's interest on a balance at the given
// yearly percentage rate: round(balance * rate / 100 / 365).
func DailyInterest(balance, yearlyPercent int64) int64 {
	return RoundHalfEven(balance*yearlyPercent, 100*365)
}
