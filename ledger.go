package expensefox

import (
	"iter"
	"sort"
)

// Ledger is the in-memory authoritative state of the app: accounts,
// transactions, budgets, and settings.
//
// Only the engine ([Service]) mutates a Ledger; everything else reads it
// through the accessors below. Transactions are kept most-recent-first,
// which is the display convention, not an invariant anyone relies on.
type Ledger struct {
	accounts     []Account
	transactions []Transaction
	budgets      []Budget
	categories   []Category
	currency     Currency
	theme        Theme
	tapFeedback  bool
	firstRun     bool
}

// NewLedger creates a ledger in its first-run state: seed accounts at zero,
// built-in categories, no transactions or budgets, default settings.
func NewLedger() *Ledger {
	return &Ledger{
		accounts:    SeedAccounts(),
		categories:  DefaultCategories(),
		currency:    DefaultCurrency,
		theme:       Light,
		tapFeedback: true,
		firstRun:    true,
	}
}

// Accounts returns a copy of the account list.
func (l *Ledger) Accounts() []Account {
	accounts := make([]Account, len(l.accounts))
	copy(accounts, l.accounts)
	return accounts
}

// Account returns the account with this id, if it exists. A missing account
// is not an error: transactions may reference removed accounts.
func (l *Ledger) Account(id string) (Account, bool) {
	if i := l.accountIndex(id); i >= 0 {
		return l.accounts[i], true
	}
	return Account{}, false
}

func (l *Ledger) accountIndex(id string) int {
	for i, a := range l.accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Transactions returns an iterator over transactions accepted by at least one
// of the filters, in most-recent-first order.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			accept := false
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// Transaction returns the transaction with this id, if it exists.
func (l *Ledger) Transaction(id string) (Transaction, bool) {
	if i := l.transactionIndex(id); i >= 0 {
		return l.transactions[i], true
	}
	return Transaction{}, false
}

func (l *Ledger) transactionIndex(id string) int {
	for i, t := range l.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Budgets returns a copy of the budget list.
func (l *Ledger) Budgets() []Budget {
	budgets := make([]Budget, len(l.budgets))
	copy(budgets, l.budgets)
	return budgets
}

// BudgetFor returns the budget keyed to this category and month, if any.
// There is at most one per (category, month) pair.
func (l *Ledger) BudgetFor(category string, month Month) (Budget, bool) {
	if i := l.budgetIndex(category, month); i >= 0 {
		return l.budgets[i], true
	}
	return Budget{}, false
}

func (l *Ledger) budgetIndex(category string, month Month) int {
	for i, b := range l.budgets {
		if b.Category == category && b.Month == month {
			return i
		}
	}
	return -1
}

// Categories returns a copy of the category list, built-ins first.
func (l *Ledger) Categories() []Category {
	categories := make([]Category, len(l.categories))
	copy(categories, l.categories)
	return categories
}

// Category returns the category with this id, if it exists.
func (l *Ledger) Category(id string) (Category, bool) {
	for _, c := range l.categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName resolves a category reference for display, falling back to
// "Unknown" for dangling references.
func (l *Ledger) CategoryName(id string) string {
	if c, ok := l.Category(id); ok {
		return c.Name
	}
	return "Unknown"
}

// AccountName resolves an account reference for display, falling back to
// "Unknown" for dangling references.
func (l *Ledger) AccountName(id string) string {
	if a, ok := l.Account(id); ok {
		return a.Name
	}
	return "Unknown"
}

// Currency returns the global display currency.
func (l *Ledger) Currency() Currency { return l.currency }

// Theme returns the selected display theme.
func (l *Ledger) Theme() Theme { return l.theme }

// TapFeedback reports whether tap feedback is enabled.
func (l *Ledger) TapFeedback() bool { return l.tapFeedback }

// FirstRun reports whether the one-time welcome flow is still pending.
func (l *Ledger) FirstRun() bool { return l.firstRun }

// TotalBalance returns the sum of all account balances.
func (l *Ledger) TotalBalance() Amount {
	var total Amount
	for _, a := range l.accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// MonthlyIncome sums income transactions dated within the given month.
func (l *Ledger) MonthlyIncome(month Month) Amount {
	return l.sumAmounts(Income, "", month)
}

// MonthlyExpenses sums expense transactions dated within the given month.
func (l *Ledger) MonthlyExpenses(month Month) Amount {
	return l.sumAmounts(Expense, "", month)
}

// SpentIn sums expense transactions of one category dated within the given
// month. This is the recomputation SetBudget relies on to heal drift.
func (l *Ledger) SpentIn(category string, month Month) Amount {
	return l.sumAmounts(Expense, category, month)
}

func (l *Ledger) sumAmounts(typ TransactionType, category string, month Month) Amount {
	var sum Amount
	for _, t := range l.transactions {
		if t.Type != typ || !month.Contains(t.Date) {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		sum = sum.Add(t.Amount)
	}
	return sum
}

// CategorySpend is one row of the per-category expense breakdown.
type CategorySpend struct {
	Category string
	Spent    Amount
	Share    float64 // fraction of the month's total expenses
}

// CategoryBreakdown sums the month's expenses per category and computes each
// category's share of the monthly total. It is recomputed on every call;
// volumes are small enough that caching would only add staleness bugs.
func (l *Ledger) CategoryBreakdown(month Month) []CategorySpend {
	totals := make(map[string]Amount)
	var monthTotal Amount
	for _, t := range l.transactions {
		if t.Type != Expense || !month.Contains(t.Date) {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
		monthTotal = monthTotal.Add(t.Amount)
	}

	breakdown := make([]CategorySpend, 0, len(totals))
	for category, spent := range totals {
		share := 0.0
		if !monthTotal.IsZero() {
			share = spent.Div(monthTotal)
		}
		breakdown = append(breakdown, CategorySpend{Category: category, Spent: spent, Share: share})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Spent.Equal(breakdown[j].Spent) {
			return breakdown[i].Category < breakdown[j].Category
		}
		return breakdown[j].Spent.LessThan(breakdown[i].Spent)
	})
	return breakdown
}

// sortTransactions restores the most-recent-first display order. The sort is
// stable so transactions on the same instant keep their insertion order.
func sortTransactions(transactions []Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[j].Date.Before(transactions[i].Date)
	})
}
