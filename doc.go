// Package expensefox implements the ledger core of a local-first personal
// finance tracker: accounts, transactions, and per-category monthly budgets,
// kept mutually consistent by a single engine.
//
// The core functionalities include:
//   - Ledger State: the in-memory authoritative copy of accounts,
//     transactions, budgets, and settings, loaded once at startup and read
//     by everything that renders it.
//   - Ledger Engine: the Service type, the only mutation path. Every
//     create/edit/delete of a transaction carries its compensating balance
//     and budget updates; budget limits are recomputed from the transaction
//     set on edit so incremental drift never survives.
//   - Aggregate Queries: total balance, monthly income and expenses, and
//     per-category breakdowns, derived on demand.
//   - Data Persistence: a durable key-value slot contract (see Store) with
//     JSON payloads; writes happen before in-memory commits so a failed
//     write leaves state at the last-known-good snapshot.
//   - Import/Export: a human-readable JSON snapshot of the financial state,
//     and a jsonpath-driven import that replays third-party records through
//     the engine so every invariant holds.
//
// This package serves as the foundational logic for the `efx` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package expensefox
