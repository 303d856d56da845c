package expensefox

import (
	"github.com/shopspring/decimal"
)

// Amount represents a monetary value in the ledger's single display currency.
//
// It is a thin wrapper around decimal.Decimal so that balance arithmetic stays
// exact; transaction amounts are always stored positive, with the direction
// encoded in the transaction type.
type Amount struct {
	value decimal.Decimal
}

func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	}
	return decimal.Decimal{}
}

// String returns the plain decimal representation rounded to two places,
// which is the display precision of the app. Currency-aware formatting is
// done by [Currency.Format].
func (a Amount) String() string { return a.value.Round(2).String() }

func (a Amount) Equal(b Amount) bool       { return a.value.Equal(b.value) }
func (a Amount) IsZero() bool              { return a.value.IsZero() }
func (a Amount) IsPositive() bool          { return a.value.IsPositive() }
func (a Amount) IsNegative() bool          { return a.value.IsNegative() }
func (a Amount) LessThan(b Amount) bool    { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool { return a.value.GreaterThan(b.value) }
func (a Amount) Neg() Amount               { return Amount{value: a.value.Neg()} }

// binary operators.
func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value)} }

// Div returns the ratio a/b as a float, used for budget progress and
// category shares where exactness no longer matters.
func (a Amount) Div(b Amount) float64 {
	if b.IsZero() {
		return 0
	}
	return a.value.Div(b.value).InexactFloat64()
}

func (a Amount) Float64() float64 { return a.value.InexactFloat64() }

func (a Amount) MarshalJSON() ([]byte, error) {
	// decimal.MarshalJSONWithoutQuotes is set in encode.go, so amounts
	// persist as plain JSON numbers.
	return a.value.Round(2).MarshalJSON()
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.value.UnmarshalJSON(data)
}
