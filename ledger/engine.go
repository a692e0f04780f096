/*
engine.go - The per-kind ledger engine

PURPOSE:
  Ties a Config to a Store and exposes the operations every ledger kind
  offers: record, list, get, correct, remove, balance, summary. The seven
  hospital ledgers are seven Engine values over the same store; nothing
  here is kind-specific beyond what Config expresses.

VALIDATION BEFORE PERSISTENCE:
  Record and Correct fully validate the entry (movement enum, positive
  amount, scope/category presence, date) before touching the store. There
  are no partial writes.

SEE ALSO:
  - types.go:   Entry and Config
  - balance.go: The fold behind Balance
  - summary.go: The aggregation behind Summary
*/
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine exposes one ledger kind's operations over a shared Store.
type Engine struct {
	store Store
	cfg   Config
}

// NewEngine creates the engine for one ledger kind.
func NewEngine(store Store, cfg Config) *Engine {
	return &Engine{store: store, cfg: cfg}
}

// Config returns the kind configuration the engine runs under.
func (e *Engine) Config() Config { return e.cfg }

// =============================================================================
// WRITES
// =============================================================================

// Record validates and persists a new entry. The store assigns nothing:
// ID and CreatedAt are set here, before the single store call.
func (e *Engine) Record(ctx context.Context, entry Entry) (Entry, error) {
	entry.Kind = e.cfg.Kind
	if err := e.validate(entry); err != nil {
		return Entry{}, err
	}

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	if err := e.store.CreateEntry(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Correct replaces an existing entry in place. Same validation as Record;
// the id must already exist.
func (e *Engine) Correct(ctx context.Context, entry Entry) (Entry, error) {
	entry.Kind = e.cfg.Kind
	if err := e.validate(entry); err != nil {
		return Entry{}, err
	}

	existing, err := e.store.GetEntry(ctx, e.cfg.Kind, entry.ID)
	if err != nil {
		return Entry{}, err
	}
	entry.CreatedAt = existing.CreatedAt
	if err := e.store.UpdateEntry(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Remove hard-deletes an entry.
func (e *Engine) Remove(ctx context.Context, id string) error {
	return e.store.DeleteEntry(ctx, e.cfg.Kind, id)
}

// =============================================================================
// READS
// =============================================================================

// Entries returns the kind's entries matching the filter, most recent first.
func (e *Engine) Entries(ctx context.Context, f Filter) ([]Entry, error) {
	return e.store.ListEntries(ctx, e.cfg.Kind, f, OrderDateDesc)
}

// Entry returns a single entry by id.
func (e *Engine) Entry(ctx context.Context, id string) (Entry, error) {
	return e.store.GetEntry(ctx, e.cfg.Kind, id)
}

// Balance folds all entries attributed to scopeKey into a signed net
// value. An unknown scope key folds an empty set and yields zero.
// For unscoped kinds, pass an empty scopeKey to fold the whole ledger.
func (e *Engine) Balance(ctx context.Context, scopeKey string) (decimal.Decimal, error) {
	if e.cfg.Scoped && scopeKey == "" {
		return decimal.Zero, ErrScopeRequired
	}
	entries, err := e.store.ListEntries(ctx, e.cfg.Kind, Scope(scopeKey), OrderDateDesc)
	if err != nil {
		return decimal.Zero, err
	}
	return Net(e.cfg, entries), nil
}

// Summary aggregates the whole ledger: grouped totals plus the global
// inflow/outflow split.
func (e *Engine) Summary(ctx context.Context) (Summary, error) {
	entries, err := e.store.ListEntries(ctx, e.cfg.Kind, Filter{}, OrderDateDesc)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(e.cfg, entries), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

func (e *Engine) validate(entry Entry) error {
	if entry.Date.IsZero() {
		return ErrInvalidDate
	}
	if !entry.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if e.cfg.Scoped && entry.ScopeKey == "" {
		return ErrScopeRequired
	}
	if !e.cfg.Scoped && entry.ScopeKey != "" {
		return ErrScopeNotAllowed
	}
	if !e.cfg.AllowsMovement(entry.Movement) {
		allowed := []MovementType{e.cfg.Inflow, e.cfg.Outflow}
		if !e.cfg.HasMovement() {
			allowed = nil
		}
		return &MovementError{Kind: e.cfg.Kind, Movement: entry.Movement, Allowed: allowed}
	}
	return nil
}
