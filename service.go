package expensefox

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Service is the ledger engine: it owns all mutation of accounts,
// transactions, and budgets, keeps their derived values consistent, and
// writes every change through to the store before committing it in memory.
//
// It is constructed once at startup and passed to whatever consumes it.
// Operations are not safe for concurrent use; callers serialize mutations,
// awaiting one before issuing the next, exactly like a single UI thread.
type Service struct {
	ledger *Ledger
	store  Store
	logger *slog.Logger

	// now is the wall clock. Budget tracking always evaluates against the
	// present month, never the transaction's own date, so every "current
	// month" decision funnels through here.
	now func() time.Time

	lastID int64
}

// NewService creates the engine over a loaded ledger and its backing store.
func NewService(ledger *Ledger, store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		ledger: ledger,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Ledger exposes the current state for reading. Callers must not retain the
// pointer across mutations they issue themselves without re-reading.
func (s *Service) Ledger() *Ledger { return s.ledger }

// currentMonth is the wall-clock month every budget decision is keyed to.
func (s *Service) currentMonth() Month { return MonthOf(s.now()) }

// newID returns a fresh unique id derived from the current time, bumped past
// the previously issued one so two ids minted in the same millisecond differ.
func (s *Service) newID() string {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// persistence helpers: encode and write one slot. The in-memory commit only
// happens after every required write succeeded, so a failed mutation leaves
// state at the pre-operation snapshot.

func (s *Service) saveSlot(ctx context.Context, key string, v any) error {
	data, err := encodeSlot(v)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// TransactionInput carries the caller-provided fields of a new transaction.
type TransactionInput struct {
	Type        TransactionType
	Amount      Amount
	Category    string
	AccountID   string
	Description string
	Date        time.Time // zero means "now"
}

// AddTransaction records a new transaction, adjusts the referenced account's
// balance, and, for an expense, bumps the matching current-month budget.
//
// A dangling AccountID is tolerated: the balance step silently becomes a
// no-op. No budget record is created if none exists for the category.
func (s *Service) AddTransaction(ctx context.Context, in TransactionInput) (Transaction, error) {
	if !in.Amount.IsPositive() {
		return Transaction{}, fmt.Errorf("transaction amount must be positive, got %s", in.Amount)
	}
	if in.Type != Income && in.Type != Expense {
		return Transaction{}, fmt.Errorf("unknown transaction type: %q", in.Type)
	}
	if in.Date.IsZero() {
		in.Date = s.now()
	}

	tx := Transaction{
		ID:          s.newID(),
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		AccountID:   in.AccountID,
		Description: in.Description,
		Date:        in.Date,
	}

	transactions := prepend(s.ledger.transactions, tx)

	accounts, accountsChanged := s.applyBalance(s.ledger.accounts, tx.AccountID, signed(tx.Type, tx.Amount))
	budgets, budgetsChanged := s.applySpent(s.ledger.budgets, tx, tx.Amount)

	if err := s.saveSlot(ctx, SlotTransactions, transactions); err != nil {
		return Transaction{}, err
	}
	if accountsChanged {
		if err := s.saveSlot(ctx, SlotAccounts, accounts); err != nil {
			return Transaction{}, err
		}
	}
	if budgetsChanged {
		if err := s.saveSlot(ctx, SlotBudgets, budgets); err != nil {
			return Transaction{}, err
		}
	}

	s.ledger.transactions = transactions
	s.ledger.accounts = accounts
	s.ledger.budgets = budgets
	s.logger.Info("transaction added", "id", tx.ID, "type", tx.Type, "amount", tx.Amount, "category", tx.Category)
	return tx, nil
}

// TransactionUpdate carries a partial transaction edit; nil fields are left
// untouched.
type TransactionUpdate struct {
	Type        *TransactionType
	Amount      *Amount
	Category    *string
	AccountID   *string
	Description *string
	Date        *time.Time
}

// UpdateTransaction merges the provided fields into the transaction and
// reconciles balances and budgets by reversing the old effect before applying
// the new one. Editing a transaction that does not exist is a silent no-op.
//
// When the account reference is unchanged the reversal and the new effect hit
// the same balance in two arithmetic steps; when it changed they hit the old
// and new accounts independently. Doing this naively (one delta) corrupts
// balances when amount and account change together.
func (s *Service) UpdateTransaction(ctx context.Context, id string, upd TransactionUpdate) error {
	i := s.ledger.transactionIndex(id)
	if i < 0 {
		return nil
	}
	old := s.ledger.transactions[i]

	updated := old
	if upd.Type != nil {
		if *upd.Type != Income && *upd.Type != Expense {
			return fmt.Errorf("unknown transaction type: %q", *upd.Type)
		}
		updated.Type = *upd.Type
	}
	if upd.Amount != nil {
		if !upd.Amount.IsPositive() {
			return fmt.Errorf("transaction amount must be positive, got %s", *upd.Amount)
		}
		updated.Amount = *upd.Amount
	}
	if upd.Category != nil {
		updated.Category = *upd.Category
	}
	if upd.AccountID != nil {
		updated.AccountID = *upd.AccountID
	}
	if upd.Description != nil {
		updated.Description = *upd.Description
	}
	if upd.Date != nil {
		updated.Date = *upd.Date
	}

	transactions := make([]Transaction, len(s.ledger.transactions))
	copy(transactions, s.ledger.transactions)
	transactions[i] = updated
	if upd.Date != nil {
		sortTransactions(transactions)
	}

	accounts := s.ledger.accounts
	accountsChanged := false
	if upd.Amount != nil || upd.AccountID != nil || upd.Type != nil {
		// Reverse the old effect, then apply the new one.
		var ch1, ch2 bool
		accounts, ch1 = s.applyBalance(accounts, old.AccountID, signed(old.Type, old.Amount).Neg())
		accounts, ch2 = s.applyBalance(accounts, updated.AccountID, signed(updated.Type, updated.Amount))
		accountsChanged = ch1 || ch2
	}

	budgets := s.ledger.budgets
	budgetsChanged := false
	if upd.Category != nil || upd.Amount != nil || upd.Type != nil {
		var ch1, ch2 bool
		budgets, ch1 = s.applySpent(budgets, old, old.Amount.Neg())
		budgets, ch2 = s.applySpent(budgets, updated, updated.Amount)
		budgetsChanged = ch1 || ch2
	}

	if err := s.saveSlot(ctx, SlotTransactions, transactions); err != nil {
		return err
	}
	if accountsChanged {
		if err := s.saveSlot(ctx, SlotAccounts, accounts); err != nil {
			return err
		}
	}
	if budgetsChanged {
		if err := s.saveSlot(ctx, SlotBudgets, budgets); err != nil {
			return err
		}
	}

	s.ledger.transactions = transactions
	s.ledger.accounts = accounts
	s.ledger.budgets = budgets
	s.logger.Info("transaction updated", "id", id)
	return nil
}

// DeleteTransaction removes the transaction and reverses its balance and
// budget effects, the symmetric inverse of AddTransaction. Deleting a
// transaction that does not exist is a silent no-op.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	i := s.ledger.transactionIndex(id)
	if i < 0 {
		return nil
	}
	tx := s.ledger.transactions[i]

	transactions := make([]Transaction, 0, len(s.ledger.transactions)-1)
	transactions = append(transactions, s.ledger.transactions[:i]...)
	transactions = append(transactions, s.ledger.transactions[i+1:]...)

	accounts, accountsChanged := s.applyBalance(s.ledger.accounts, tx.AccountID, signed(tx.Type, tx.Amount).Neg())
	budgets, budgetsChanged := s.applySpent(s.ledger.budgets, tx, tx.Amount.Neg())

	if err := s.saveSlot(ctx, SlotTransactions, transactions); err != nil {
		return err
	}
	if accountsChanged {
		if err := s.saveSlot(ctx, SlotAccounts, accounts); err != nil {
			return err
		}
	}
	if budgetsChanged {
		if err := s.saveSlot(ctx, SlotBudgets, budgets); err != nil {
			return err
		}
	}

	s.ledger.transactions = transactions
	s.ledger.accounts = accounts
	s.ledger.budgets = budgets
	s.logger.Info("transaction deleted", "id", id)
	return nil
}

// signed converts a stored-positive amount into the balance delta it implies.
func signed(typ TransactionType, amount Amount) Amount {
	if typ == Expense {
		return amount.Neg()
	}
	return amount
}

// applyBalance returns a copy of accounts with delta added to the balance of
// the referenced account. A dangling reference leaves the list untouched.
func (s *Service) applyBalance(accounts []Account, accountID string, delta Amount) ([]Account, bool) {
	for i, a := range accounts {
		if a.ID != accountID {
			continue
		}
		next := make([]Account, len(accounts))
		copy(next, accounts)
		next[i].Balance = next[i].Balance.Add(delta)
		return next, true
	}
	return accounts, false
}

// applySpent returns a copy of budgets with delta added to the spent total of
// the budget matching the transaction's category in the current wall-clock
// month. Income transactions and missing budgets leave the list untouched.
func (s *Service) applySpent(budgets []Budget, tx Transaction, delta Amount) ([]Budget, bool) {
	if tx.Type != Expense {
		return budgets, false
	}
	i := -1
	month := s.currentMonth()
	for j, b := range budgets {
		if b.Category == tx.Category && b.Month == month {
			i = j
			break
		}
	}
	if i < 0 {
		return budgets, false
	}
	next := make([]Budget, len(budgets))
	copy(next, budgets)
	next[i].Spent = next[i].Spent.Add(delta)
	return next, true
}

// AccountInput carries the caller-provided fields of a new account.
type AccountInput struct {
	Name    string
	Balance Amount
	Icon    string
	Color   string
}

// AddAccount creates a new account and returns it. When seedTransaction is
// set and the opening balance is positive, one income transaction for that
// amount is synthesized so the balance is explainable in history. The
// synthesized transaction is persisted through the normal transaction slot
// but deliberately skips AddTransaction's side effects: the balance is
// already set to the requested value, and counting it twice is the classic
// bug this guards against.
func (s *Service) AddAccount(ctx context.Context, in AccountInput, seedTransaction bool) (Account, error) {
	if in.Name == "" {
		return Account{}, fmt.Errorf("account name must not be empty")
	}

	account := Account{
		ID:      s.newID(),
		Name:    in.Name,
		Balance: in.Balance,
		Icon:    in.Icon,
		Color:   in.Color,
	}
	accounts := append(s.ledger.Accounts(), account)

	transactions := s.ledger.transactions
	seeded := false
	if seedTransaction && in.Balance.IsPositive() {
		opening := Transaction{
			ID:          s.newID(),
			Type:        Income,
			Amount:      in.Balance,
			Category:    GenericIncomeCategory,
			AccountID:   account.ID,
			Description: in.Name,
			Date:        s.now(),
		}
		transactions = prepend(transactions, opening)
		seeded = true
	}

	if err := s.saveSlot(ctx, SlotAccounts, accounts); err != nil {
		return Account{}, err
	}
	if seeded {
		if err := s.saveSlot(ctx, SlotTransactions, transactions); err != nil {
			return Account{}, err
		}
	}

	s.ledger.accounts = accounts
	s.ledger.transactions = transactions
	s.logger.Info("account added", "id", account.ID, "name", account.Name, "seeded", seeded)
	return account, nil
}

// RemoveAccount removes a non-seed account. Seed accounts are protected:
// removing one is refused as a silent no-op, visible to the caller only
// through the account still being there. Transactions referencing the
// removed account are kept and become dangling references.
func (s *Service) RemoveAccount(ctx context.Context, accountID string) error {
	if IsSeedAccount(accountID) {
		s.logger.Debug("refusing to remove seed account", "id", accountID)
		return nil
	}
	i := s.ledger.accountIndex(accountID)
	if i < 0 {
		return nil
	}

	accounts := make([]Account, 0, len(s.ledger.accounts)-1)
	accounts = append(accounts, s.ledger.accounts[:i]...)
	accounts = append(accounts, s.ledger.accounts[i+1:]...)

	if err := s.saveSlot(ctx, SlotAccounts, accounts); err != nil {
		return err
	}
	s.ledger.accounts = accounts
	s.logger.Info("account removed", "id", accountID)
	return nil
}

// SetBudget sets the spending limit for a category in the current wall-clock
// month, creating the budget on first use. Spent is always recomputed from
// the transaction set rather than trusted, so any drift the incremental
// bookkeeping accumulated is reconciled here.
func (s *Service) SetBudget(ctx context.Context, category string, limit Amount) (Budget, error) {
	if limit.IsNegative() {
		return Budget{}, fmt.Errorf("budget limit must not be negative, got %s", limit)
	}

	month := s.currentMonth()
	spent := s.ledger.SpentIn(category, month)

	budgets := s.ledger.Budgets()
	if i := s.ledger.budgetIndex(category, month); i >= 0 {
		budgets[i].Limit = limit
		budgets[i].Spent = spent
	} else {
		budgets = append(budgets, Budget{
			ID:       s.newID(),
			Category: category,
			Limit:    limit,
			Spent:    spent,
			Month:    month,
		})
	}

	if err := s.saveSlot(ctx, SlotBudgets, budgets); err != nil {
		return Budget{}, err
	}
	s.ledger.budgets = budgets
	budget, _ := s.ledger.BudgetFor(category, month)
	s.logger.Info("budget set", "category", category, "month", month, "limit", limit, "spent", spent)
	return budget, nil
}

// CategoryInput carries the caller-provided fields of a new custom category.
type CategoryInput struct {
	Name  string
	Icon  string
	Color string
	Type  TransactionType
}

// AddCategory creates a custom category.
func (s *Service) AddCategory(ctx context.Context, in CategoryInput) (Category, error) {
	if in.Name == "" {
		return Category{}, fmt.Errorf("category name must not be empty")
	}
	if in.Type != Income && in.Type != Expense {
		return Category{}, fmt.Errorf("unknown transaction type: %q", in.Type)
	}

	category := Category{
		ID:     s.newID(),
		Name:   in.Name,
		Icon:   in.Icon,
		Color:  in.Color,
		Type:   in.Type,
		Custom: true,
	}
	categories := append(s.ledger.Categories(), category)

	if err := s.saveSlot(ctx, SlotCategories, customOnly(categories)); err != nil {
		return Category{}, err
	}
	s.ledger.categories = categories
	s.logger.Info("category added", "id", category.ID, "name", category.Name)
	return category, nil
}

// RemoveCategory removes a custom category. Built-in categories are
// protected the same way seed accounts are: the call is a silent no-op.
// Transactions and budgets referencing the category become dangling.
func (s *Service) RemoveCategory(ctx context.Context, id string) error {
	category, ok := s.ledger.Category(id)
	if !ok || !category.Custom {
		return nil
	}

	categories := make([]Category, 0, len(s.ledger.categories)-1)
	for _, c := range s.ledger.categories {
		if c.ID != id {
			categories = append(categories, c)
		}
	}

	if err := s.saveSlot(ctx, SlotCategories, customOnly(categories)); err != nil {
		return err
	}
	s.ledger.categories = categories
	s.logger.Info("category removed", "id", id)
	return nil
}

// customOnly filters the persisted subset of the category list.
func customOnly(categories []Category) []Category {
	custom := make([]Category, 0)
	for _, c := range categories {
		if c.Custom {
			custom = append(custom, c)
		}
	}
	return custom
}

// SetCurrency selects the global display currency.
func (s *Service) SetCurrency(ctx context.Context, code, symbol string) error {
	if err := ValidateCurrency(code); err != nil {
		return err
	}
	currency := Currency{Code: code, Symbol: symbol}
	if err := s.saveSlot(ctx, SlotCurrency, currency); err != nil {
		return err
	}
	s.ledger.currency = currency
	s.logger.Info("currency changed", "code", code)
	return nil
}

// SetTheme selects the display theme.
func (s *Service) SetTheme(ctx context.Context, theme Theme) error {
	if theme != Light && theme != Dark {
		return fmt.Errorf("unknown theme: %q", theme)
	}
	if err := s.saveSlot(ctx, SlotTheme, theme); err != nil {
		return err
	}
	s.ledger.theme = theme
	return nil
}

// SetTapFeedback toggles the tap feedback preference.
func (s *Service) SetTapFeedback(ctx context.Context, enabled bool) error {
	if err := s.saveSlot(ctx, SlotTapFeedback, enabled); err != nil {
		return err
	}
	s.ledger.tapFeedback = enabled
	return nil
}

// MarkReturningUser clears the first-run flag once the welcome flow ran.
func (s *Service) MarkReturningUser(ctx context.Context) error {
	if err := s.saveSlot(ctx, SlotFirstRun, false); err != nil {
		return err
	}
	s.ledger.firstRun = false
	return nil
}

// ResetAllData clears all financial records: seed accounts come back at zero
// balance, transactions and budgets are emptied, and their slots removed.
// Currency, theme, and preferences are untouched.
func (s *Service) ResetAllData(ctx context.Context) error {
	if err := s.store.RemoveMany(ctx, financialSlots...); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.ledger.accounts = SeedAccounts()
	s.ledger.transactions = nil
	s.ledger.budgets = nil
	s.logger.Info("all financial data reset")
	return nil
}

// Aggregate queries, keyed to the wall-clock month. Pure reads, no persistence.

// TotalBalance returns the sum of all account balances.
func (s *Service) TotalBalance() Amount { return s.ledger.TotalBalance() }

// MonthlyIncome returns the current month's income total.
func (s *Service) MonthlyIncome() Amount { return s.ledger.MonthlyIncome(s.currentMonth()) }

// MonthlyExpenses returns the current month's expense total.
func (s *Service) MonthlyExpenses() Amount { return s.ledger.MonthlyExpenses(s.currentMonth()) }

// CategoryBreakdown returns the current month's per-category expense shares.
func (s *Service) CategoryBreakdown() []CategorySpend {
	return s.ledger.CategoryBreakdown(s.currentMonth())
}

func prepend(transactions []Transaction, tx Transaction) []Transaction {
	next := make([]Transaction, 0, len(transactions)+1)
	next = append(next, tx)
	next = append(next, transactions...)
	return next
}
