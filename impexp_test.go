package expensefox

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestExport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Income, Amount: A(2000), Category: "salary", AccountID: "2"}); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if _, err := svc.SetBudget(ctx, "groceries", A(200)); err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}

	var b strings.Builder
	if err := Export(&b, svc.Ledger()); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(b.String()), &snapshot); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(snapshot.Accounts) != 3 {
		t.Errorf("exported %d accounts, want 3", len(snapshot.Accounts))
	}
	if len(snapshot.Transactions) != 1 {
		t.Errorf("exported %d transactions, want 1", len(snapshot.Transactions))
	}
	if len(snapshot.Budgets) != 1 {
		t.Errorf("exported %d budgets, want 1", len(snapshot.Budgets))
	}
}

func TestImportTransactions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	doc := `{
	  "rows": [
	    {"value": 12.5, "tag": "groceries", "src": "1", "note": "market", "when": "2025-08-02", "kind": "expense"},
	    {"value": 2000, "tag": "salary", "src": "2", "note": "pay", "when": "2025-08-05T09:00:00Z", "kind": "income"},
	    {"value": 30, "tag": "transport", "src": "1", "note": "fuel", "when": "2025-08-10", "kind": "expense"}
	  ]
	}`
	mapping := ImportMapping{
		Items:       "$.rows",
		Amount:      "$.value",
		Category:    "$.tag",
		Account:     "$.src",
		Description: "$.note",
		Date:        "$.when",
		Type:        "$.kind",
	}

	count, err := svc.ImportTransactions(ctx, strings.NewReader(doc), mapping)
	if err != nil {
		t.Fatalf("ImportTransactions() error: %v", err)
	}
	if count != 3 {
		t.Errorf("imported %d records, want 3", count)
	}

	// Replaying through the engine keeps balances consistent.
	if got := balance(t, svc, "1"); !got.Equal(A(-42.5)) {
		t.Errorf("balance 1 = %s, want -42.5", got)
	}
	if got := balance(t, svc, "2"); !got.Equal(A(2000)) {
		t.Errorf("balance 2 = %s, want 2000", got)
	}
}

func TestImportWithoutTypeDefaultsToExpense(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	doc := `{"rows": [{"value": 10, "tag": "groceries"}]}`
	mapping := ImportMapping{Items: "$.rows", Amount: "$.value", Category: "$.tag"}

	if _, err := svc.ImportTransactions(ctx, strings.NewReader(doc), mapping); err != nil {
		t.Fatalf("ImportTransactions() error: %v", err)
	}
	for tx := range svc.Ledger().Transactions(AcceptAll) {
		if tx.Type != Expense {
			t.Errorf("imported type = %q, want expense", tx.Type)
		}
	}
}

func TestImportStopsAtBadRecord(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	doc := `{"rows": [
	  {"value": 10, "tag": "groceries"},
	  {"value": "not a number", "tag": "groceries"},
	  {"value": 20, "tag": "groceries"}
	]}`
	mapping := ImportMapping{Items: "$.rows", Amount: "$.value", Category: "$.tag"}

	count, err := svc.ImportTransactions(ctx, strings.NewReader(doc), mapping)
	if err == nil {
		t.Fatal("ImportTransactions() with a bad record succeeded, want error")
	}
	if count != 1 {
		t.Errorf("imported %d records before failing, want 1", count)
	}
}

// The defaults of the import mapping accept this app's own export, making
// export and import a full backup cycle.
func TestExportImportCycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.AddTransaction(ctx, TransactionInput{Type: Income, Amount: A(100), Category: "salary", AccountID: "1", Description: "pay"}); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	var b strings.Builder
	if err := Export(&b, svc.Ledger()); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	fresh, _ := newTestService(t)
	mapping := ImportMapping{
		Items:       "$.transactions",
		Amount:      "$.amount",
		Category:    "$.category",
		Account:     "$.accountId",
		Description: "$.description",
		Date:        "$.date",
		Type:        "$.type",
	}
	count, err := fresh.ImportTransactions(ctx, strings.NewReader(b.String()), mapping)
	if err != nil {
		t.Fatalf("ImportTransactions() error: %v", err)
	}
	if count != 1 {
		t.Fatalf("imported %d records, want 1", count)
	}
	if got := balance(t, fresh, "1"); !got.Equal(A(100)) {
		t.Errorf("balance after cycle = %s, want 100", got)
	}
}
