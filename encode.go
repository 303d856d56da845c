package expensefox

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Slot codecs. Every slot is a standalone JSON document; decoding is strict
// here and made tolerant in the load path, where a corrupt slot falls back to
// its default instead of blocking startup.

func encodeSlot(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("could not encode slot: %w", err)
	}
	return data, nil
}

func decodeAccounts(data []byte) ([]Account, error) {
	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("could not decode accounts: %w", err)
	}
	return accounts, nil
}

// decodeTransactions decodes the transaction slot and restores the
// most-recent-first order regardless of how the slot was written.
func decodeTransactions(data []byte) ([]Transaction, error) {
	var transactions []Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("could not decode transactions: %w", err)
	}
	sortTransactions(transactions)
	return transactions, nil
}

func decodeBudgets(data []byte) ([]Budget, error) {
	var budgets []Budget
	if err := json.Unmarshal(data, &budgets); err != nil {
		return nil, fmt.Errorf("could not decode budgets: %w", err)
	}
	return budgets, nil
}

// decodeCategories decodes the custom categories slot. Built-ins are not
// persisted; they ship with the binary.
func decodeCategories(data []byte) ([]Category, error) {
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("could not decode categories: %w", err)
	}
	return categories, nil
}

func decodeCurrency(data []byte) (Currency, error) {
	var currency Currency
	if err := json.Unmarshal(data, &currency); err != nil {
		return Currency{}, fmt.Errorf("could not decode currency: %w", err)
	}
	if currency.Code == "" {
		return Currency{}, fmt.Errorf("could not decode currency: empty code")
	}
	return currency, nil
}

func decodeTheme(data []byte) (Theme, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("could not decode theme: %w", err)
	}
	return ParseTheme(s)
}

func decodeBool(data []byte) (bool, error) {
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return false, fmt.Errorf("could not decode flag: %w", err)
	}
	return b, nil
}
