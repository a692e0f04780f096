package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medgrid/hospital-finance/ledger"
)

// =============================================================================
// PHARMACY SUMMARY TESTS
// =============================================================================

func TestPharmacySummary_NetProfit(t *testing.T) {
	// GIVEN: Antibiotics sales of 700 and stock purchases of 500
	// WHEN: Summarizing the pharmacy ledger
	// THEN: Net profit is 200, with income and expense grouped separately

	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindPharmacy)

	_, err := eng.Record(ctx, ledger.Entry{
		Date: day(time.January, 4), Movement: ledger.Income, Amount: amt("700"), Category: "Antibiotics",
	})
	require.NoError(t, err)
	_, err = eng.Record(ctx, ledger.Entry{
		Date: day(time.January, 4), Movement: ledger.Expense, Amount: amt("500"), Category: "Antibiotics",
	})
	require.NoError(t, err)

	summary, err := eng.Summary(ctx)
	require.NoError(t, err)

	assert.True(t, summary.TotalInflow.Equal(amt("700")))
	assert.True(t, summary.TotalOutflow.Equal(amt("500")))
	assert.True(t, summary.Net.Equal(amt("200")), "expected net profit 200, got %s", summary.Net)

	// Income and expense stay distinct rows for the same category.
	require.Len(t, summary.Groups, 2)
	for _, g := range summary.Groups {
		assert.Equal(t, "Antibiotics", g.Key)
	}
	assert.NotEqual(t, summary.Groups[0].Movement, summary.Groups[1].Movement)
}

// =============================================================================
// EXPENSE SUMMARY TESTS
// =============================================================================

func TestExpenseSummary_PerCategoryReconciliation(t *testing.T) {
	// GIVEN: Expenses in three categories
	// WHEN: Summarizing
	// THEN: Per-category rows sum to the global outflow, no double-counting

	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindExpense)

	seed := []ledger.Entry{
		{Date: day(time.January, 10), Amount: amt("3500"), Category: "Electricity"},
		{Date: day(time.January, 12), Amount: amt("2000"), Category: "Housekeeping"},
		{Date: day(time.January, 18), Amount: amt("1500"), Category: "Electricity"},
		{Date: day(time.January, 25), Amount: amt("800"), Category: "Laundry"},
	}
	for _, e := range seed {
		_, err := eng.Record(ctx, e)
		require.NoError(t, err)
	}

	summary, err := eng.Summary(ctx)
	require.NoError(t, err)

	groupSum := decimal.Zero
	for _, g := range summary.Groups {
		groupSum = groupSum.Add(g.Total)
	}
	assert.True(t, groupSum.Equal(summary.TotalOutflow),
		"group rows %s must reconcile with global outflow %s", groupSum, summary.TotalOutflow)

	// Pure-outflow ledgers report total spent, positive.
	assert.True(t, summary.Net.Equal(amt("7800")))
	assert.True(t, summary.TotalInflow.IsZero())
	assert.Equal(t, 4, summary.EntryCount)
}

func TestSummary_GroupsSortedByDescendingTotal(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindExpense)

	seed := []ledger.Entry{
		{Date: day(time.March, 1), Amount: amt("100"), Category: "Small"},
		{Date: day(time.March, 2), Amount: amt("900"), Category: "Large"},
		{Date: day(time.March, 3), Amount: amt("400"), Category: "Medium"},
	}
	for _, e := range seed {
		_, err := eng.Record(ctx, e)
		require.NoError(t, err)
	}

	summary, err := eng.Summary(ctx)
	require.NoError(t, err)

	require.Len(t, summary.Groups, 3)
	assert.Equal(t, "Large", summary.Groups[0].Key)
	assert.Equal(t, "Medium", summary.Groups[1].Key)
	assert.Equal(t, "Small", summary.Groups[2].Key)
}

func TestSummary_EqualTotals_TieBrokenByKey(t *testing.T) {
	// Deterministic output even when totals tie.
	entries := []ledger.Entry{
		{Amount: amt("100"), Category: "Beta"},
		{Amount: amt("100"), Category: "Alpha"},
	}
	groups := ledger.Group(entries, ledger.ByCategory)
	require.Len(t, groups, 2)
	assert.Equal(t, "Alpha", groups[0].Key)
	assert.Equal(t, "Beta", groups[1].Key)
}

// =============================================================================
// SCOPED SUMMARY TESTS
// =============================================================================

func TestScopedSummary_GroupsByScope(t *testing.T) {
	// GIVEN: Movements for two suppliers
	// WHEN: Summarizing the supplier ledger
	// THEN: One row per supplier; global split computed over all entries

	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindSupplier)

	seed := []ledger.Entry{
		{ScopeKey: "MedSupply Co", Date: day(time.January, 5), Movement: ledger.Debit, Amount: amt("8000")},
		{ScopeKey: "MedSupply Co", Date: day(time.January, 18), Movement: ledger.Credit, Amount: amt("5000")},
		{ScopeKey: "OxyGen Ltd", Date: day(time.January, 7), Movement: ledger.Debit, Amount: amt("1200")},
	}
	for _, e := range seed {
		_, err := eng.Record(ctx, e)
		require.NoError(t, err)
	}

	summary, err := eng.Summary(ctx)
	require.NoError(t, err)

	require.Len(t, summary.Groups, 2)
	assert.Equal(t, "MedSupply Co", summary.Groups[0].Key)
	assert.True(t, summary.Groups[0].Total.Equal(amt("13000")), "scope rows sum raw amounts")
	assert.Equal(t, 2, summary.Groups[0].Count)

	assert.True(t, summary.TotalInflow.Equal(amt("5000")))
	assert.True(t, summary.TotalOutflow.Equal(amt("9200")))
	assert.True(t, summary.Net.Equal(amt("-4200")))
}

func TestSummary_EmptyLedger(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindPharmacy)

	summary, err := eng.Summary(ctx)
	require.NoError(t, err)

	assert.Empty(t, summary.Groups)
	assert.True(t, summary.Net.IsZero())
	assert.Equal(t, 0, summary.EntryCount)
}
