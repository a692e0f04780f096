/*
store.go - Persistence interface for ledger entries

PURPOSE:
  Defines the interface between the ledger engine and the database.
  Different implementations can use SQLite or in-memory storage; the
  engine never sees SQL.

MUTABILITY CONTRACT:
  Entries are mutable only through explicit correction updates and may be
  hard-deleted. There is no soft-delete or void concept: the store either
  holds an entry or it does not.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go:  Production SQLite
  - ledger/store/memory.go:  In-memory for testing

SEE ALSO:
  - engine.go: Higher-level per-kind engine using Store
*/
package ledger

import "context"

// Store handles persistence of ledger entries across all kinds.
type Store interface {
	// CreateEntry persists a new entry. ID and CreatedAt are already
	// assigned by the caller.
	CreateEntry(ctx context.Context, e Entry) error

	// ListEntries returns entries of the kind matching the filter,
	// sorted by date in the given order.
	ListEntries(ctx context.Context, kind Kind, f Filter, order SortOrder) ([]Entry, error)

	// GetEntry returns one entry, or ErrEntryNotFound.
	GetEntry(ctx context.Context, kind Kind, id string) (Entry, error)

	// UpdateEntry replaces an entry in place (correction update).
	// Returns ErrEntryNotFound if the id does not exist.
	UpdateEntry(ctx context.Context, e Entry) error

	// DeleteEntry removes an entry outright (hard delete).
	// Returns ErrEntryNotFound if the id does not exist.
	DeleteEntry(ctx context.Context, kind Kind, id string) error
}
