package expensefox

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mgalet/expensefox/store"
)

// testClock is the frozen wall clock the engine tests run under. Budget
// tracking is keyed to the clock's month, so freezing it makes every
// current-month decision deterministic.
var testClock = time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(NewLedger(), mem, logger)
	svc.now = func() time.Time { return testClock }
	return svc, mem
}

func balance(t *testing.T, svc *Service, accountID string) Amount {
	t.Helper()
	account, ok := svc.Ledger().Account(accountID)
	if !ok {
		t.Fatalf("account %q not found", accountID)
	}
	return account.Balance
}

func spent(t *testing.T, svc *Service, category string) Amount {
	t.Helper()
	budget, ok := svc.Ledger().BudgetFor(category, MonthOf(testClock))
	if !ok {
		t.Fatalf("no budget for %q in %s", category, MonthOf(testClock))
	}
	return budget.Spent
}

func TestAddTransactionAdjustsBalance(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Income, Amount: A(2000), Category: "salary", AccountID: "2"}); err != nil {
		t.Fatalf("AddTransaction(income) error: %v", err)
	}
	if got := balance(t, svc, "2"); !got.Equal(A(2000)) {
		t.Errorf("balance after income = %s, want 2000", got)
	}

	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(49.99), Category: "groceries", AccountID: "2"}); err != nil {
		t.Fatalf("AddTransaction(expense) error: %v", err)
	}
	if got := balance(t, svc, "2"); !got.Equal(A(1950.01)) {
		t.Errorf("balance after expense = %s, want 1950.01", got)
	}
	if got := svc.TotalBalance(); !got.Equal(A(1950.01)) {
		t.Errorf("TotalBalance() = %s, want 1950.01", got)
	}
}

func TestAddTransactionRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cases := []struct {
		name string
		in   TransactionInput
	}{
		{"zero amount", TransactionInput{Type: Expense, Amount: A(0), Category: "groceries", AccountID: "1"}},
		{"negative amount", TransactionInput{Type: Expense, Amount: A(-5), Category: "groceries", AccountID: "1"}},
		{"unknown type", TransactionInput{Type: "transfer", Amount: A(5), Category: "groceries", AccountID: "1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddTransaction(ctx, tc.in); err == nil {
				t.Error("AddTransaction() succeeded, want error")
			}
		})
	}
	if got := len(svc.Ledger().Accounts()); got != 3 {
		t.Errorf("accounts after rejected inputs = %d, want the 3 untouched seeds", got)
	}
}

func TestAddTransactionToleratesDanglingAccount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	tx, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(10), Category: "groceries", AccountID: "gone"})
	if err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if _, ok := svc.Ledger().Transaction(tx.ID); !ok {
		t.Error("transaction not recorded")
	}
	if got := svc.TotalBalance(); !got.IsZero() {
		t.Errorf("TotalBalance() = %s, want 0 (no account was touched)", got)
	}
	if got := svc.Ledger().AccountName("gone"); got != "Unknown" {
		t.Errorf("AccountName(gone) = %q, want Unknown", got)
	}
}

// Editing amount and account together must reverse the old effect on the old
// account before applying the new effect on the new one. A single-delta
// shortcut corrupts both balances.
func TestUpdateTransactionMovesAcrossAccounts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	tx, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(50), Category: "groceries", AccountID: "1"})
	if err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if got := balance(t, svc, "1"); !got.Equal(A(-50)) {
		t.Fatalf("balance 1 = %s, want -50", got)
	}

	amount := A(80)
	accountID := "2"
	if err := svc.UpdateTransaction(ctx, tx.ID, TransactionUpdate{Amount: &amount, AccountID: &accountID}); err != nil {
		t.Fatalf("UpdateTransaction() error: %v", err)
	}

	if got := balance(t, svc, "1"); !got.IsZero() {
		t.Errorf("balance 1 after move = %s, want 0", got)
	}
	if got := balance(t, svc, "2"); !got.Equal(A(-80)) {
		t.Errorf("balance 2 after move = %s, want -80", got)
	}
}

func TestUpdateTransactionFlipsType(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	tx, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(100), Category: "groceries", AccountID: "1"})
	if err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	income := Income
	if err := svc.UpdateTransaction(ctx, tx.ID, TransactionUpdate{Type: &income}); err != nil {
		t.Fatalf("UpdateTransaction() error: %v", err)
	}
	// -100 reversed, +100 applied.
	if got := balance(t, svc, "1"); !got.Equal(A(100)) {
		t.Errorf("balance after type flip = %s, want 100", got)
	}
}

func TestUpdateMissingTransactionIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t)

	amount := A(10)
	if err := svc.UpdateTransaction(ctx, "nope", TransactionUpdate{Amount: &amount}); err != nil {
		t.Fatalf("UpdateTransaction(missing) error: %v", err)
	}
	if mem.Len() != 0 {
		t.Errorf("store written for a missing transaction, %d slots", mem.Len())
	}
}

func TestDeleteTransactionRestoresState(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.SetBudget(ctx, "groceries", A(200)); err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}
	tx, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(30), Category: "groceries", AccountID: "1"})
	if err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	if err := svc.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction() error: %v", err)
	}

	if got := balance(t, svc, "1"); !got.IsZero() {
		t.Errorf("balance after add+delete = %s, want 0", got)
	}
	if got := spent(t, svc, "groceries"); !got.IsZero() {
		t.Errorf("spent after add+delete = %s, want 0", got)
	}
	if _, ok := svc.Ledger().Transaction(tx.ID); ok {
		t.Error("transaction still present after delete")
	}

	if err := svc.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction(again) error: %v", err)
	}
}

func TestBudgetTracking(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	budget, err := svc.SetBudget(ctx, "groceries", A(200))
	if err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}
	if !budget.Spent.IsZero() {
		t.Fatalf("fresh budget spent = %s, want 0", budget.Spent)
	}

	first, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(30), Category: "groceries", AccountID: "1"})
	if err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if got := spent(t, svc, "groceries"); !got.Equal(A(30)) {
		t.Errorf("spent = %s, want 30", got)
	}

	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(50), Category: "groceries", AccountID: "1"}); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if got := spent(t, svc, "groceries"); !got.Equal(A(80)) {
		t.Errorf("spent = %s, want 80", got)
	}

	if err := svc.DeleteTransaction(ctx, first.ID); err != nil {
		t.Fatalf("DeleteTransaction() error: %v", err)
	}
	if got := spent(t, svc, "groceries"); !got.Equal(A(50)) {
		t.Errorf("spent after delete = %s, want 50", got)
	}

	// Income and other categories never touch the budget.
	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Income, Amount: A(500), Category: "groceries", AccountID: "1"}); err != nil {
		t.Fatalf("AddTransaction(income) error: %v", err)
	}
	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(12), Category: "transport", AccountID: "1"}); err != nil {
		t.Fatalf("AddTransaction(other category) error: %v", err)
	}
	if got := spent(t, svc, "groceries"); !got.Equal(A(50)) {
		t.Errorf("spent after unrelated transactions = %s, want 50", got)
	}
}

func TestSetBudgetRecomputesSpent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	// Spending before any budget exists is not tracked incrementally.
	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(75), Category: "groceries", AccountID: "1"}); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	budget, err := svc.SetBudget(ctx, "groceries", A(200))
	if err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}
	if !budget.Spent.Equal(A(75)) {
		t.Errorf("spent recomputed from history = %s, want 75", budget.Spent)
	}

	// Editing the limit heals any drift the incremental bookkeeping picked up.
	svc.ledger.budgets[0].Spent = A(999)
	budget, err = svc.SetBudget(ctx, "groceries", A(300))
	if err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}
	if !budget.Spent.Equal(A(75)) {
		t.Errorf("spent after drift heal = %s, want 75", budget.Spent)
	}
	if !budget.Limit.Equal(A(300)) {
		t.Errorf("limit = %s, want 300", budget.Limit)
	}
	if got := len(svc.Ledger().Budgets()); got != 1 {
		t.Errorf("budgets = %d, want the single updated one", got)
	}
}

func TestSetBudgetRejectsNegativeLimit(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.SetBudget(context.Background(), "groceries", A(-1)); err == nil {
		t.Error("SetBudget(-1) succeeded, want error")
	}
}

// A backdated expense recorded today counts against today's budget, not the
// budget of the month it is dated in. Sums over history, by contrast, go by
// the transaction date.
func TestBudgetKeyedToCurrentMonth(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.SetBudget(ctx, "groceries", A(200)); err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}

	lastMonth := testClock.AddDate(0, -1, 0)
	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(40), Category: "groceries", AccountID: "1", Date: lastMonth}); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	if got := spent(t, svc, "groceries"); !got.Equal(A(40)) {
		t.Errorf("current-month spent after backdated expense = %s, want 40", got)
	}
	if got := svc.Ledger().SpentIn("groceries", MonthOf(testClock)); !got.IsZero() {
		t.Errorf("SpentIn(current month) = %s, want 0 (transaction is dated last month)", got)
	}
}

func TestBudgetsIsolatedAcrossMonths(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.SetBudget(ctx, "groceries", A(200)); err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}
	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(30), Category: "groceries", AccountID: "1"}); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	// The clock moves to September: the August budget must not move again.
	svc.now = func() time.Time { return testClock.AddDate(0, 1, 0) }

	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(99), Category: "groceries", AccountID: "1"}); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	august, ok := svc.Ledger().BudgetFor("groceries", MonthOf(testClock))
	if !ok {
		t.Fatal("August budget disappeared")
	}
	if !august.Spent.Equal(A(30)) {
		t.Errorf("August spent after September expense = %s, want 30", august.Spent)
	}

	// A September budget starts from September's own history.
	september, err := svc.SetBudget(ctx, "groceries", A(100))
	if err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}
	if !september.Spent.Equal(A(99)) {
		t.Errorf("September spent = %s, want 99", september.Spent)
	}
}

func TestAddAccountSeedsOpeningTransaction(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	account, err := svc.AddAccount(ctx, AccountInput{Name: "Savings", Balance: A(500)}, true)
	if err != nil {
		t.Fatalf("AddAccount() error: %v", err)
	}

	if got := balance(t, svc, account.ID); !got.Equal(A(500)) {
		t.Errorf("opening balance = %s, want 500", got)
	}
	// The opening income is in history but must not have been double counted.
	if got := svc.TotalBalance(); !got.Equal(A(500)) {
		t.Errorf("TotalBalance() = %s, want 500", got)
	}

	var opening Transaction
	found := false
	for tx := range svc.Ledger().Transactions(ByAccount(account.ID)) {
		opening, found = tx, true
	}
	if !found {
		t.Fatal("no opening transaction recorded")
	}
	if opening.Type != Income || !opening.Amount.Equal(A(500)) || opening.Category != GenericIncomeCategory {
		t.Errorf("opening transaction = %+v, want income of 500 in %q", opening, GenericIncomeCategory)
	}
}

func TestAddAccountWithoutSeed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	account, err := svc.AddAccount(ctx, AccountInput{Name: "Savings", Balance: A(500)}, false)
	if err != nil {
		t.Fatalf("AddAccount() error: %v", err)
	}
	for range svc.Ledger().Transactions(ByAccount(account.ID)) {
		t.Fatal("opening transaction recorded although seeding was off")
	}
	if _, err := svc.AddAccount(ctx, AccountInput{Name: ""}, true); err == nil {
		t.Error("AddAccount with empty name succeeded, want error")
	}
}

func TestSeedAccountsCannotBeRemoved(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, id := range []string{"1", "2", "3"} {
		if err := svc.RemoveAccount(ctx, id); err != nil {
			t.Fatalf("RemoveAccount(%q) error: %v", id, err)
		}
		if _, ok := svc.Ledger().Account(id); !ok {
			t.Errorf("seed account %q was removed", id)
		}
	}

	account, err := svc.AddAccount(ctx, AccountInput{Name: "Savings"}, false)
	if err != nil {
		t.Fatalf("AddAccount() error: %v", err)
	}
	if err := svc.RemoveAccount(ctx, account.ID); err != nil {
		t.Fatalf("RemoveAccount() error: %v", err)
	}
	if _, ok := svc.Ledger().Account(account.ID); ok {
		t.Error("custom account still present after removal")
	}
}

func TestFailedWriteLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t)

	mem.FailWrites = errors.New("disk full")
	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Expense, Amount: A(10), Category: "groceries", AccountID: "1"}); err == nil {
		t.Fatal("AddTransaction() with failing store succeeded, want error")
	}

	if got := balance(t, svc, "1"); !got.IsZero() {
		t.Errorf("balance after failed write = %s, want 0", got)
	}
	for range svc.Ledger().Transactions(AcceptAll) {
		t.Fatal("transaction committed in memory although the write failed")
	}
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	category, err := svc.AddCategory(ctx, CategoryInput{Name: "Gaming", Icon: "game-controller", Color: "#123456", Type: Expense})
	if err != nil {
		t.Fatalf("AddCategory() error: %v", err)
	}
	if !category.Custom {
		t.Error("added category not marked custom")
	}
	if got := svc.Ledger().CategoryName(category.ID); got != "Gaming" {
		t.Errorf("CategoryName() = %q, want Gaming", got)
	}

	// Built-ins are protected, customs are not.
	if err := svc.RemoveCategory(ctx, "groceries"); err != nil {
		t.Fatalf("RemoveCategory(builtin) error: %v", err)
	}
	if _, ok := svc.Ledger().Category("groceries"); !ok {
		t.Error("built-in category was removed")
	}
	if err := svc.RemoveCategory(ctx, category.ID); err != nil {
		t.Fatalf("RemoveCategory() error: %v", err)
	}
	if got := svc.Ledger().CategoryName(category.ID); got != "Unknown" {
		t.Errorf("CategoryName(removed) = %q, want Unknown", got)
	}

	if _, err := svc.AddCategory(ctx, CategoryInput{Name: "", Type: Expense}); err == nil {
		t.Error("AddCategory with empty name succeeded, want error")
	}
	if _, err := svc.AddCategory(ctx, CategoryInput{Name: "x", Type: "transfer"}); err == nil {
		t.Error("AddCategory with unknown type succeeded, want error")
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.SetCurrency(ctx, "EUR", "€"); err != nil {
		t.Fatalf("SetCurrency() error: %v", err)
	}
	if got := svc.Ledger().Currency().Code; got != "EUR" {
		t.Errorf("currency = %q, want EUR", got)
	}
	if err := svc.SetCurrency(ctx, "XXQ", "?"); err == nil {
		t.Error("SetCurrency with unknown code succeeded, want error")
	}

	if err := svc.SetTheme(ctx, Dark); err != nil {
		t.Fatalf("SetTheme() error: %v", err)
	}
	if got := svc.Ledger().Theme(); got != Dark {
		t.Errorf("theme = %q, want dark", got)
	}
	if err := svc.SetTheme(ctx, "sepia"); err == nil {
		t.Error("SetTheme with unknown theme succeeded, want error")
	}

	if err := svc.SetTapFeedback(ctx, false); err != nil {
		t.Fatalf("SetTapFeedback() error: %v", err)
	}
	if svc.Ledger().TapFeedback() {
		t.Error("tap feedback still enabled")
	}

	if err := svc.MarkReturningUser(ctx); err != nil {
		t.Fatalf("MarkReturningUser() error: %v", err)
	}
	if svc.Ledger().FirstRun() {
		t.Error("first-run flag still set")
	}
}

func TestResetAllData(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t)

	if err := svc.SetCurrency(ctx, "EUR", "€"); err != nil {
		t.Fatalf("SetCurrency() error: %v", err)
	}
	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Income, Amount: A(100), Category: "salary", AccountID: "1"}); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if _, err := svc.SetBudget(ctx, "groceries", A(200)); err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}

	if err := svc.ResetAllData(ctx); err != nil {
		t.Fatalf("ResetAllData() error: %v", err)
	}

	ledger := svc.Ledger()
	if got := len(ledger.Accounts()); got != 3 {
		t.Errorf("accounts after reset = %d, want 3 seeds", got)
	}
	if got := ledger.TotalBalance(); !got.IsZero() {
		t.Errorf("TotalBalance() after reset = %s, want 0", got)
	}
	for range ledger.Transactions(AcceptAll) {
		t.Fatal("transactions survived the reset")
	}
	if got := len(ledger.Budgets()); got != 0 {
		t.Errorf("budgets after reset = %d, want 0", got)
	}
	// Preferences survive.
	if got := ledger.Currency().Code; got != "EUR" {
		t.Errorf("currency after reset = %q, want EUR", got)
	}
	for _, slot := range financialSlots {
		if _, ok, _ := mem.Get(ctx, slot); ok {
			t.Errorf("slot %q still present after reset", slot)
		}
	}
	if _, ok, _ := mem.Get(ctx, SlotCurrency); !ok {
		t.Error("currency slot removed by reset")
	}
}

func TestNewIDIsMonotonic(t *testing.T) {
	svc, _ := newTestService(t)
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		id := svc.newID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
