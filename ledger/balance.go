/*
balance.go - Balance and outstanding calculation

PURPOSE:
  Folds a scoped set of entries into a single signed decimal. This is the
  central calculation that answers "what does this patient owe?" or "what
  is in this bank account?".

THE FOLD:
  balance += amount   when the movement is the kind's inflow (Credit/Income)
  balance -= amount   otherwise

  The fold is commutative, so entry order never changes the result. Kinds
  without a movement type (expense) are summed as pure outflow and reported
  as a positive "total spent", not netted.

PRECISION:
  Sums use decimal.Decimal end to end. Money is never accumulated in
  binary floating point.

EMPTY SCOPES:
  An unknown scope key is a query over an empty set and yields zero,
  not an error.

SEE ALSO:
  - engine.go: Balance fetches the entries and calls Net
*/
package ledger

import "github.com/shopspring/decimal"

// =============================================================================
// BALANCE FOLD
// =============================================================================

// Net folds entries into a signed net value under the kind's config.
// For kinds without a movement type every entry counts as outflow, summed
// positive (total spent).
func Net(cfg Config, entries []Entry) decimal.Decimal {
	total := decimal.Zero
	if !cfg.HasMovement() {
		for _, e := range entries {
			total = total.Add(e.Amount)
		}
		return total
	}
	for _, e := range entries {
		total = total.Add(e.Signed(cfg))
	}
	return total
}

// Totals folds entries into separate inflow and outflow sums.
// Used by summaries, which report both sides before netting.
func Totals(cfg Config, entries []Entry) (inflow, outflow decimal.Decimal) {
	inflow, outflow = decimal.Zero, decimal.Zero
	for _, e := range entries {
		if cfg.HasMovement() && e.Movement == cfg.Inflow {
			inflow = inflow.Add(e.Amount)
		} else {
			outflow = outflow.Add(e.Amount)
		}
	}
	return inflow, outflow
}
