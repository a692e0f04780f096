/*
filter.go - Query parameters to entry predicate

PURPOSE:
  Turns the optional query parameters a caller may supply (date range,
  scope key, movement type, category) into a predicate over entries plus
  a sort order. No filter present means the predicate matches everything.

ORDERING:
  Results are always descending by date (most recent first) so histories
  read newest-to-oldest. Callers that want a forward-looking schedule can
  request ascending order explicitly.

SEE ALSO:
  - store.go:  List takes a Filter
  - engine.go: Entries applies per-kind defaults before querying
*/
package ledger

import "time"

// =============================================================================
// SORT ORDER
// =============================================================================

type SortOrder string

const (
	// OrderDateDesc is the default: histories read most-recent-first.
	OrderDateDesc SortOrder = "date_desc"
	// OrderDateAsc reads as an upcoming schedule rather than a history.
	OrderDateAsc SortOrder = "date_asc"
)

// =============================================================================
// FILTER
// =============================================================================

// Filter narrows a ledger query. Every field is optional; the zero Filter
// matches all entries of the kind.
type Filter struct {
	// From/To bound the entry date inclusively. Either may be nil for an
	// unbounded side.
	From *time.Time
	To   *time.Time

	// Equality filters, applied only when non-empty.
	ScopeKey string
	Movement MovementType
	Category string
}

// Match reports whether the entry satisfies every supplied condition.
func (f Filter) Match(e Entry) bool {
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	if f.ScopeKey != "" && e.ScopeKey != f.ScopeKey {
		return false
	}
	if f.Movement != MovementNone && e.Movement != f.Movement {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return true
}

// IsEmpty reports whether the filter has no conditions at all.
func (f Filter) IsEmpty() bool {
	return f.From == nil && f.To == nil &&
		f.ScopeKey == "" && f.Movement == MovementNone && f.Category == ""
}

// Scope returns a filter matching only entries attributed to scopeKey.
func Scope(scopeKey string) Filter {
	return Filter{ScopeKey: scopeKey}
}
