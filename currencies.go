package expensefox

import (
	"fmt"

	"github.com/Rhymond/go-money"
)

// Currency is the global display currency selection. There is no conversion:
// every amount in the ledger is implicitly denominated in it.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// DefaultCurrency is the currency used until the user picks another one.
var DefaultCurrency = Currency{Code: "USD", Symbol: "$"}

// Format renders an amount for display using the currency's minor-unit
// conventions (fraction digits, grouping, symbol placement).
func (c Currency) Format(a Amount) string {
	cur := *money.New(0, c.Code).Currency()
	shifted := a.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.IntPart())
}

// ValidateCurrency reports whether the code is a known ISO 4217 currency.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code: %q", code)
	}
	return nil
}

// CurrencyOption is one selectable entry of the currency picker.
type CurrencyOption struct {
	Code    string
	Symbol  string
	Country string
}

// CurrencyOptions returns the currencies the app offers for selection.
func CurrencyOptions() []CurrencyOption {
	return []CurrencyOption{
		{Code: "USD", Symbol: "$", Country: "United States"},
		{Code: "EUR", Symbol: "€", Country: "European Union"},
		{Code: "GBP", Symbol: "£", Country: "United Kingdom"},
		{Code: "JPY", Symbol: "¥", Country: "Japan"},
		{Code: "CNY", Symbol: "¥", Country: "China"},
		{Code: "INR", Symbol: "₹", Country: "India"},
		{Code: "AUD", Symbol: "A$", Country: "Australia"},
		{Code: "CAD", Symbol: "C$", Country: "Canada"},
		{Code: "CHF", Symbol: "Fr", Country: "Switzerland"},
		{Code: "HKD", Symbol: "HK$", Country: "Hong Kong"},
		{Code: "SGD", Symbol: "S$", Country: "Singapore"},
		{Code: "KRW", Symbol: "₩", Country: "South Korea"},
		{Code: "MXN", Symbol: "Mex$", Country: "Mexico"},
		{Code: "BRL", Symbol: "R$", Country: "Brazil"},
		{Code: "ZAR", Symbol: "R", Country: "South Africa"},
		{Code: "RUB", Symbol: "₽", Country: "Russia"},
		{Code: "SEK", Symbol: "kr", Country: "Sweden"},
		{Code: "NOK", Symbol: "kr", Country: "Norway"},
		{Code: "DKK", Symbol: "kr", Country: "Denmark"},
		{Code: "PLN", Symbol: "zł", Country: "Poland"},
		{Code: "THB", Symbol: "฿", Country: "Thailand"},
		{Code: "IDR", Symbol: "Rp", Country: "Indonesia"},
		{Code: "MYR", Symbol: "RM", Country: "Malaysia"},
		{Code: "PHP", Symbol: "₱", Country: "Philippines"},
		{Code: "NZD", Symbol: "NZ$", Country: "New Zealand"},
		{Code: "AED", Symbol: "د.إ", Country: "UAE"},
		{Code: "SAR", Symbol: "﷼", Country: "Saudi Arabia"},
		{Code: "TRY", Symbol: "₺", Country: "Turkey"},
		{Code: "ARS", Symbol: "$", Country: "Argentina"},
		{Code: "CLP", Symbol: "$", Country: "Chile"},
	}
}

// LookupCurrencyOption finds a currency picker entry by code.
func LookupCurrencyOption(code string) (CurrencyOption, bool) {
	for _, c := range CurrencyOptions() {
		if c.Code == code {
			return c, true
		}
	}
	return CurrencyOption{}, false
}
