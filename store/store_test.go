package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "slots.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get(ctx, "accounts"); err != nil || ok {
		t.Fatalf("Get() on empty store = ok=%v, err=%v, want absent", ok, err)
	}

	want := []byte(`[{"id":"1"}]`)
	if err := s.Set(ctx, "accounts", want); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, ok, err := s.Get(ctx, "accounts")
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v, err=%v, want value", ok, err)
	}
	if string(got) != string(want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}

	// Overwrite replaces the previous value.
	want = []byte(`[]`)
	if err := s.Set(ctx, "accounts", want); err != nil {
		t.Fatalf("Set() overwrite error: %v", err)
	}
	got, _, _ = s.Get(ctx, "accounts")
	if string(got) != string(want) {
		t.Errorf("Get() after overwrite = %q, want %q", got, want)
	}
}

func TestSQLiteRemoveMany(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "slots.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	defer s.Close()

	for _, key := range []string{"accounts", "transactions", "currency"} {
		if err := s.Set(ctx, key, []byte("{}")); err != nil {
			t.Fatalf("Set(%q) error: %v", key, err)
		}
	}

	// Removing a mix of present and absent slots succeeds.
	if err := s.RemoveMany(ctx, "accounts", "transactions", "budgets"); err != nil {
		t.Fatalf("RemoveMany() error: %v", err)
	}

	if _, ok, _ := s.Get(ctx, "accounts"); ok {
		t.Error("accounts slot still present after RemoveMany")
	}
	if _, ok, _ := s.Get(ctx, "currency"); !ok {
		t.Error("currency slot removed although not listed")
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "slots.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	if err := s.Set(ctx, "theme", []byte(`"dark"`)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()
	got, ok, err := s.Get(ctx, "theme")
	if err != nil || !ok {
		t.Fatalf("Get() after reopen = ok=%v, err=%v, want value", ok, err)
	}
	if string(got) != `"dark"` {
		t.Errorf("Get() after reopen = %q, want %q", got, `"dark"`)
	}
}

func TestMemoryFailWrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	m.FailWrites = context.DeadlineExceeded
	if err := m.Set(ctx, "k", []byte("w")); err == nil {
		t.Fatal("Set() with FailWrites succeeded, want error")
	}
	got, _, _ := m.Get(ctx, "k")
	if string(got) != "v" {
		t.Errorf("value changed by failed write: %q", got)
	}
}
