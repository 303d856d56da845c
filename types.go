package expensefox

import "fmt"

// TransactionType is a typed string for the direction of a transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Account holds money. Balances are signed: a credit card account can go
// negative. Icon and Color are opaque tags resolved by whatever renders them.
type Account struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance Amount `json:"balance"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
}

// Budget caps spending for one category in one month. Spent is maintained
// incrementally by transaction mutations and fully recomputed whenever the
// limit is edited, so incremental drift never survives an edit.
type Budget struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Limit    Amount `json:"limit"`
	Spent    Amount `json:"spent"`
	Month    Month  `json:"month"`
}

// Remaining returns how much of the limit is left, possibly negative.
func (b Budget) Remaining() Amount { return b.Limit.Sub(b.Spent) }

// Progress returns the spent/limit ratio, 0 when no limit is set.
func (b Budget) Progress() float64 { return b.Spent.Div(b.Limit) }

// Category tags transactions and budgets. Transactions reference categories
// by ID without enforcement: deleting a custom category leaves dangling
// references that readers resolve to "Unknown".
type Category struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Icon   string          `json:"icon"`
	Color  string          `json:"color"`
	Type   TransactionType `json:"type"`
	Custom bool            `json:"isCustom"`
}

// Theme is the display theme selection, persisted with the rest of the
// settings but never touched by financial operations.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme parses a string into a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("unknown theme: %q", s)
	}
}
