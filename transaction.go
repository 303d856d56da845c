package expensefox

import (
	"encoding/json"
	"fmt"
	"time"
)

// Transaction records a single income or expense against one account.
//
// Amount is always positive; the direction is carried by Type. AccountID and
// Category are string references that may dangle (the account can be removed
// independently of its history), so lookups through them are optional.
type Transaction struct {
	ID          string
	Type        TransactionType
	Amount      Amount
	Category    string
	AccountID   string
	Description string
	Date        time.Time
}

// MarshalJSON persists the transaction with its date as an ISO-8601 string.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("type", t.Type)
	w.Append("amount", t.Amount)
	w.Append("category", t.Category)
	w.Append("accountId", t.AccountID)
	w.Optional("description", t.Description)
	w.Append("date", t.Date.UTC().Format(time.RFC3339))
	return w.MarshalJSON()
}

// UnmarshalJSON re-hydrates the persisted date string into a time.Time.
// Without this step every month comparison downstream would silently break.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var record struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Amount          `json:"amount"`
		Category    string          `json:"category"`
		AccountID   string          `json:"accountId"`
		Description string          `json:"description"`
		Date        string          `json:"date"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}
	date, err := time.Parse(time.RFC3339, record.Date)
	if err != nil {
		return fmt.Errorf("invalid transaction date %q: %w", record.Date, err)
	}
	*t = Transaction{
		ID:          record.ID,
		Type:        record.Type,
		Amount:      record.Amount,
		Category:    record.Category,
		AccountID:   record.AccountID,
		Description: record.Description,
		Date:        date,
	}
	return nil
}

// Equal reports whether two transactions carry the same data, comparing
// dates by instant rather than by location.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Type == o.Type &&
		t.Amount.Equal(o.Amount) &&
		t.Category == o.Category &&
		t.AccountID == o.AccountID &&
		t.Description == o.Description &&
		t.Date.Equal(o.Date)
}

// Predicates for filtering transactions, combined with [Ledger.Transactions].

// AcceptAll accepts any transaction.
func AcceptAll(Transaction) bool { return true }

// ByType returns a predicate that keeps transactions of the given type.
func ByType(typ TransactionType) func(Transaction) bool {
	return func(t Transaction) bool { return t.Type == typ }
}

// ByCategory returns a predicate that keeps transactions in the given category.
func ByCategory(category string) func(Transaction) bool {
	return func(t Transaction) bool { return t.Category == category }
}

// ByAccount returns a predicate that keeps transactions against the given account.
func ByAccount(accountID string) func(Transaction) bool {
	return func(t Transaction) bool { return t.AccountID == accountID }
}

// ByMonth returns a predicate that keeps transactions dated within the given month.
func ByMonth(m Month) func(Transaction) bool {
	return func(t Transaction) bool { return m.Contains(t.Date) }
}
