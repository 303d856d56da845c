package expensefox

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Load reads the full ledger state from the store. All slots are fetched
// concurrently, like the app loading every key at startup in one go.
//
// Load never fails: a slot that is absent, unreadable, or corrupt falls back
// to its default (seed accounts, empty lists, USD, light theme) so that a
// broken store degrades to a fresh ledger instead of blocking startup. Every
// fallback is logged.
func Load(ctx context.Context, store Store, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	ledger := NewLedger()

	slots := make(map[string][]byte, 8)
	var g errgroup.Group
	results := make([][]byte, 8)
	keys := []string{
		SlotAccounts, SlotTransactions, SlotBudgets, SlotCategories,
		SlotCurrency, SlotTheme, SlotTapFeedback, SlotFirstRun,
	}
	for i, key := range keys {
		g.Go(func() error {
			data, ok, err := store.Get(ctx, key)
			if err != nil {
				logger.Warn("could not read slot, using default", "slot", key, "err", err)
				return nil
			}
			if ok {
				results[i] = data
			}
			return nil
		})
	}
	g.Wait() // goroutines only ever return nil
	for i, key := range keys {
		if results[i] != nil {
			slots[key] = results[i]
		}
	}

	loadSlot(logger, slots, SlotAccounts, decodeAccounts, func(accounts []Account) {
		ledger.accounts = accounts
	})
	loadSlot(logger, slots, SlotTransactions, decodeTransactions, func(transactions []Transaction) {
		ledger.transactions = transactions
	})
	loadSlot(logger, slots, SlotBudgets, decodeBudgets, func(budgets []Budget) {
		ledger.budgets = budgets
	})
	loadSlot(logger, slots, SlotCategories, decodeCategories, func(custom []Category) {
		ledger.categories = append(DefaultCategories(), custom...)
	})
	loadSlot(logger, slots, SlotCurrency, decodeCurrency, func(currency Currency) {
		ledger.currency = currency
	})
	loadSlot(logger, slots, SlotTheme, decodeTheme, func(theme Theme) {
		ledger.theme = theme
	})
	loadSlot(logger, slots, SlotTapFeedback, decodeBool, func(enabled bool) {
		ledger.tapFeedback = enabled
	})
	loadSlot(logger, slots, SlotFirstRun, decodeBool, func(first bool) {
		ledger.firstRun = first
	})

	return ledger
}

// loadSlot decodes one slot and commits it through apply, falling back to the
// ledger default (by not calling apply) when the slot is absent or corrupt.
func loadSlot[T any](logger *slog.Logger, slots map[string][]byte, key string, decode func([]byte) (T, error), apply func(T)) {
	data, ok := slots[key]
	if !ok {
		return
	}
	v, err := decode(data)
	if err != nil {
		logger.Warn("corrupt slot, using default", "slot", key, "err", err)
		return
	}
	apply(v)
}
