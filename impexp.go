package expensefox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains functions to handle the import/export format.
// It should remain human readable and a single file.

// Snapshot is the export form of the financial state. Settings are not part
// of it: an export moved to another device keeps that device's preferences.
type Snapshot struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	Budgets      []Budget      `json:"budgets"`
}

// Export writes the ledger's financial state to 'w' as one JSON document.
func Export(w io.Writer, l *Ledger) error {
	snapshot := Snapshot{
		Accounts:     l.Accounts(),
		Transactions: nil,
		Budgets:      l.Budgets(),
	}
	for tx := range l.Transactions(AcceptAll) {
		snapshot.Transactions = append(snapshot.Transactions, tx)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("cannot write export: %w", err)
	}
	return nil
}

// ImportMapping maps fields of a third-party JSON export onto transaction
// fields using jsonpath expressions. Items selects the list of records in
// the document; the remaining paths are evaluated against each record.
// Type may be empty when every record is an expense.
type ImportMapping struct {
	Items       string
	Amount      string
	Category    string
	Account     string
	Description string
	Date        string
	Type        string
}

// ImportTransactions reads a third-party JSON export from 'r' and replays
// each mapped record through AddTransaction, so balances and budgets stay
// consistent with the imported history. It returns the number of
// transactions imported; on error nothing after the failing record is
// applied.
func (s *Service) ImportTransactions(ctx context.Context, r io.Reader, mapping ImportMapping) (int, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("cannot parse import document: %w", err)
	}

	jitems, err := jsonpath.Get(mapping.Items, doc)
	if err != nil {
		return 0, fmt.Errorf("cannot evaluate items path %q: %w", mapping.Items, err)
	}
	items, ok := jitems.([]any)
	if !ok {
		return 0, fmt.Errorf("items path %q did not select a list, got %T", mapping.Items, jitems)
	}

	count := 0
	for i, item := range items {
		in, err := s.mapRecord(item, mapping)
		if err != nil {
			return count, fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := s.AddTransaction(ctx, in); err != nil {
			return count, fmt.Errorf("record %d: %w", i, err)
		}
		count++
	}
	return count, nil
}

func (s *Service) mapRecord(item any, mapping ImportMapping) (TransactionInput, error) {
	var in TransactionInput

	amount, err := pathFloat(item, mapping.Amount)
	if err != nil {
		return in, fmt.Errorf("amount: %w", err)
	}
	in.Amount = A(amount)

	in.Type = Expense
	if mapping.Type != "" {
		str, err := pathString(item, mapping.Type)
		if err != nil {
			return in, fmt.Errorf("type: %w", err)
		}
		typ, err := ParseTransactionType(str)
		if err != nil {
			return in, err
		}
		in.Type = typ
	}

	if in.Category, err = pathString(item, mapping.Category); err != nil {
		return in, fmt.Errorf("category: %w", err)
	}
	if mapping.Account != "" {
		if in.AccountID, err = pathString(item, mapping.Account); err != nil {
			return in, fmt.Errorf("account: %w", err)
		}
	}
	if mapping.Description != "" {
		if in.Description, err = pathString(item, mapping.Description); err != nil {
			return in, fmt.Errorf("description: %w", err)
		}
	}
	if mapping.Date != "" {
		str, err := pathString(item, mapping.Date)
		if err != nil {
			return in, fmt.Errorf("date: %w", err)
		}
		date, err := parseImportDate(str)
		if err != nil {
			return in, err
		}
		in.Date = date
	}
	return in, nil
}

// parseImportDate accepts the two date shapes found in the wild: full
// ISO-8601 timestamps and bare dates.
func parseImportDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// pathString evaluates a jsonpath expression expected to produce a string.
func pathString(item any, path string) (string, error) {
	v, err := pathValue(item, path)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("path %q: not a string, got %T", path, v)
	}
	return str, nil
}

// pathFloat evaluates a jsonpath expression expected to produce a number.
func pathFloat(item any, path string) (float64, error) {
	v, err := pathValue(item, path)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("path %q: not a number, got %T", path, v)
	}
	return f, nil
}

func pathValue(item any, path string) (any, error) {
	v, err := jsonpath.Get(path, item)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any.
	if list, ok := v.([]any); ok && len(list) > 0 {
		v = list[0]
	}
	return v, nil
}
