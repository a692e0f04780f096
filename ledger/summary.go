/*
summary.go - Grouped and global aggregation for reporting

PURPOSE:
  Produces the {dimensionValue, sum(amount)} sequences backing the
  reporting endpoints: per-category spend for the expense ledger,
  per-scope totals for scoped ledgers, and (category, movement) pairs for
  the pharmacy ledger.

TWO AGGREGATIONS, COMPUTED INDEPENDENTLY:
  The global inflow/outflow/net totals are a second, coarser aggregation
  over the same entry set - NOT derived from the per-group sums. Deriving
  one from the other would double-count when grouping dimensions overlap.

SORTING:
  Groups are sorted by descending sum. Dimensions with a natural order
  (e.g., company names) are sorted by their own summarizer instead.

SEE ALSO:
  - balance.go: Totals supplies the global split
  - engine.go:  Summary picks the grouping dimension per kind
*/
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SUMMARY TYPES
// =============================================================================

// GroupTotal is one row of a grouped summary.
type GroupTotal struct {
	Key      string
	Movement MovementType // set only for (category, movement) grouping
	Total    decimal.Decimal
	Count    int
}

// Summary is the full reporting view of one ledger kind.
type Summary struct {
	Kind   Kind
	Groups []GroupTotal

	// Global totals, computed independently of Groups.
	TotalInflow  decimal.Decimal
	TotalOutflow decimal.Decimal
	Net          decimal.Decimal

	EntryCount int
}

// =============================================================================
// GROUPING
// =============================================================================

// groupKey is the dimension extractor for one summary flavor.
type groupKey func(Entry) (key string, movement MovementType)

// ByCategory groups entries on their free-text category.
func ByCategory(e Entry) (string, MovementType) { return e.Category, MovementNone }

// ByScope groups entries on their scope key.
func ByScope(e Entry) (string, MovementType) { return e.ScopeKey, MovementNone }

// ByCategoryAndMovement groups on the (category, movement) pair; the
// pharmacy summary reports income and expense per category separately.
func ByCategoryAndMovement(e Entry) (string, MovementType) { return e.Category, e.Movement }

// Group aggregates entries into per-dimension sums, sorted by descending
// total (ties broken by key so output is deterministic).
func Group(entries []Entry, dim groupKey) []GroupTotal {
	type bucket struct {
		key      string
		movement MovementType
	}
	sums := make(map[bucket]*GroupTotal)
	for _, e := range entries {
		k, m := dim(e)
		b := bucket{key: k, movement: m}
		g, ok := sums[b]
		if !ok {
			g = &GroupTotal{Key: k, Movement: m, Total: decimal.Zero}
			sums[b] = g
		}
		g.Total = g.Total.Add(e.Amount)
		g.Count++
	}

	groups := make([]GroupTotal, 0, len(sums))
	for _, g := range sums {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if !groups[i].Total.Equal(groups[j].Total) {
			return groups[i].Total.GreaterThan(groups[j].Total)
		}
		if groups[i].Key != groups[j].Key {
			return groups[i].Key < groups[j].Key
		}
		return groups[i].Movement < groups[j].Movement
	})
	return groups
}

// Summarize builds the full summary for a kind: grouped rows plus the
// independently computed global split.
func Summarize(cfg Config, entries []Entry) Summary {
	dim := summaryDimension(cfg)

	inflow, outflow := Totals(cfg, entries)
	net := inflow.Sub(outflow)
	if !cfg.HasMovement() {
		// Pure-outflow ledgers report total spent, not a netted figure.
		net = outflow
	}

	return Summary{
		Kind:         cfg.Kind,
		Groups:       Group(entries, dim),
		TotalInflow:  inflow,
		TotalOutflow: outflow,
		Net:          net,
		EntryCount:   len(entries),
	}
}

func summaryDimension(cfg Config) groupKey {
	switch {
	case cfg.Kind == KindPharmacy:
		return ByCategoryAndMovement
	case cfg.HasCategory:
		return ByCategory
	default:
		return ByScope
	}
}
