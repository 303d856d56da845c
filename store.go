package expensefox

import "context"

// Slot keys used in the durable store. Each slot holds one JSON document.
const (
	SlotAccounts     = "accounts"
	SlotTransactions = "transactions"
	SlotBudgets      = "budgets"
	SlotCategories   = "categories"
	SlotCurrency     = "currency"
	SlotTheme        = "theme"
	SlotTapFeedback  = "tap_feedback"
	SlotFirstRun     = "first_run"
)

// financialSlots are the slots cleared by ResetAllData. Settings slots are
// deliberately not in this list.
var financialSlots = []string{SlotAccounts, SlotTransactions, SlotBudgets}

// Store is the durable key-value storage the engine writes through to.
// It carries no business logic; implementations live in the store package.
type Store interface {
	// Get returns the value stored under key, or ok=false if the slot is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set durably stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// RemoveMany durably removes the given slots. Missing slots are not an error.
	RemoveMany(ctx context.Context, keys ...string) error
}
