package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medgrid/hospital-finance/ledger"
	"github.com/medgrid/hospital-finance/ledger/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestEngine(t *testing.T, kind ledger.Kind) *ledger.Engine {
	t.Helper()
	cfg, ok := ledger.ConfigFor(kind)
	require.True(t, ok)
	return ledger.NewEngine(store.NewMemory(), cfg)
}

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// =============================================================================
// BALANCE TESTS
// =============================================================================

func TestPatientBalance_SignedFold(t *testing.T) {
	// GIVEN: Asha deposits 500, is charged 200, deposits 100
	// WHEN: Computing her balance
	// THEN: 500 - 200 + 100 = 400

	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindPatient)

	entries := []ledger.Entry{
		{ScopeKey: "Asha", Date: day(time.January, 3), Movement: ledger.Credit, Amount: amt("500")},
		{ScopeKey: "Asha", Date: day(time.January, 5), Movement: ledger.Debit, Amount: amt("200")},
		{ScopeKey: "Asha", Date: day(time.January, 9), Movement: ledger.Credit, Amount: amt("100")},
	}
	for _, e := range entries {
		_, err := eng.Record(ctx, e)
		require.NoError(t, err)
	}

	balance, err := eng.Balance(ctx, "Asha")
	require.NoError(t, err)
	assert.True(t, balance.Equal(amt("400")), "expected 400, got %s", balance)
}

func TestBalance_OrderIndependent(t *testing.T) {
	// GIVEN: The same three movements recorded in two different orders
	// WHEN: Computing the balance on each ledger
	// THEN: Both folds produce the same result

	ctx := context.Background()
	forward := newTestEngine(t, ledger.KindPatient)
	reversed := newTestEngine(t, ledger.KindPatient)

	entries := []ledger.Entry{
		{ScopeKey: "Asha", Date: day(time.January, 3), Movement: ledger.Credit, Amount: amt("500")},
		{ScopeKey: "Asha", Date: day(time.January, 5), Movement: ledger.Debit, Amount: amt("200")},
		{ScopeKey: "Asha", Date: day(time.January, 9), Movement: ledger.Credit, Amount: amt("100")},
	}
	for _, e := range entries {
		_, err := forward.Record(ctx, e)
		require.NoError(t, err)
	}
	for i := len(entries) - 1; i >= 0; i-- {
		_, err := reversed.Record(ctx, entries[i])
		require.NoError(t, err)
	}

	a, err := forward.Balance(ctx, "Asha")
	require.NoError(t, err)
	b, err := reversed.Balance(ctx, "Asha")
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "fold must be order independent: %s vs %s", a, b)
}

func TestBalance_UnknownScope_IsZeroNotError(t *testing.T) {
	// GIVEN: A patient ledger with no entries for "Nobody"
	// WHEN: Computing the balance for that scope
	// THEN: Zero, not an error

	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindPatient)

	_, err := eng.Record(ctx, ledger.Entry{
		ScopeKey: "Asha", Date: day(time.January, 3), Movement: ledger.Credit, Amount: amt("500"),
	})
	require.NoError(t, err)

	balance, err := eng.Balance(ctx, "Nobody")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestBalance_ScopedKind_RequiresScope(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindPatient)

	_, err := eng.Balance(ctx, "")
	assert.ErrorIs(t, err, ledger.ErrScopeRequired)
}

func TestExpenseBalance_ReportedAsPositiveTotal(t *testing.T) {
	// GIVEN: Two expense entries, 3500 and 2000
	// WHEN: Computing the ledger total
	// THEN: 5500 positive, even though every entry is an outflow

	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindExpense)

	_, err := eng.Record(ctx, ledger.Entry{Date: day(time.January, 10), Amount: amt("3500"), Category: "Electricity"})
	require.NoError(t, err)
	_, err = eng.Record(ctx, ledger.Entry{Date: day(time.January, 12), Amount: amt("2000"), Category: "Housekeeping"})
	require.NoError(t, err)

	balance, err := eng.Balance(ctx, "")
	require.NoError(t, err)
	assert.True(t, balance.Equal(amt("5500")), "expected 5500, got %s", balance)
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestRecord_ForeignMovement_Rejected(t *testing.T) {
	// GIVEN: A patient ledger (Credit/Debit pair)
	// WHEN: Recording an Income entry
	// THEN: Rejected as an invalid movement, nothing persisted

	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindPatient)

	_, err := eng.Record(ctx, ledger.Entry{
		ScopeKey: "Asha", Date: day(time.January, 3), Movement: ledger.Income, Amount: amt("500"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrInvalidMovement)
	assert.True(t, ledger.IsValidation(err))

	var movErr *ledger.MovementError
	require.ErrorAs(t, err, &movErr)
	assert.Equal(t, ledger.Income, movErr.Movement)

	entries, err := eng.Entries(ctx, ledger.Filter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecord_ExpenseKind_RejectsAnyMovement(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindExpense)

	_, err := eng.Record(ctx, ledger.Entry{
		Date: day(time.January, 3), Movement: ledger.Expense, Amount: amt("100"), Category: "Misc",
	})
	assert.ErrorIs(t, err, ledger.ErrInvalidMovement)
}

func TestRecord_NonPositiveAmount_Rejected(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindCash)

	_, err := eng.Record(ctx, ledger.Entry{
		Date: day(time.January, 3), Movement: ledger.Income, Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, ledger.ErrNonPositiveAmount)

	_, err = eng.Record(ctx, ledger.Entry{
		Date: day(time.January, 3), Movement: ledger.Income, Amount: amt("-5"),
	})
	assert.ErrorIs(t, err, ledger.ErrNonPositiveAmount)
}

func TestRecord_ScopePresence(t *testing.T) {
	ctx := context.Background()

	// Scoped kind without a scope key
	patient := newTestEngine(t, ledger.KindPatient)
	_, err := patient.Record(ctx, ledger.Entry{
		Date: day(time.January, 3), Movement: ledger.Credit, Amount: amt("100"),
	})
	assert.ErrorIs(t, err, ledger.ErrScopeRequired)

	// Unscoped kind with a scope key
	cash := newTestEngine(t, ledger.KindCash)
	_, err = cash.Record(ctx, ledger.Entry{
		ScopeKey: "Asha", Date: day(time.January, 3), Movement: ledger.Income, Amount: amt("100"),
	})
	assert.ErrorIs(t, err, ledger.ErrScopeNotAllowed)
}

func TestRecord_ZeroDate_Rejected(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindCash)

	_, err := eng.Record(ctx, ledger.Entry{Movement: ledger.Income, Amount: amt("100")})
	assert.ErrorIs(t, err, ledger.ErrInvalidDate)
}

// =============================================================================
// CORRECTION AND REMOVAL TESTS
// =============================================================================

func TestCorrect_PreservesCreatedAt(t *testing.T) {
	// GIVEN: A recorded entry
	// WHEN: Correcting its amount
	// THEN: The amount changes but CreatedAt survives the rewrite

	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindPatient)

	created, err := eng.Record(ctx, ledger.Entry{
		ScopeKey: "Asha", Date: day(time.January, 3), Movement: ledger.Credit, Amount: amt("500"),
	})
	require.NoError(t, err)

	corrected := created
	corrected.Amount = amt("550")
	updated, err := eng.Correct(ctx, corrected)
	require.NoError(t, err)

	assert.True(t, updated.Amount.Equal(amt("550")))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	balance, err := eng.Balance(ctx, "Asha")
	require.NoError(t, err)
	assert.True(t, balance.Equal(amt("550")))
}

func TestCorrect_UnknownID_NotFound(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindPatient)

	_, err := eng.Correct(ctx, ledger.Entry{
		ID: "missing", ScopeKey: "Asha", Date: day(time.January, 3),
		Movement: ledger.Credit, Amount: amt("500"),
	})
	assert.True(t, ledger.IsNotFound(err))
}

func TestRemove_EntryLeavesFold(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindPatient)

	created, err := eng.Record(ctx, ledger.Entry{
		ScopeKey: "Asha", Date: day(time.January, 3), Movement: ledger.Credit, Amount: amt("500"),
	})
	require.NoError(t, err)
	_, err = eng.Record(ctx, ledger.Entry{
		ScopeKey: "Asha", Date: day(time.January, 5), Movement: ledger.Debit, Amount: amt("200"),
	})
	require.NoError(t, err)

	require.NoError(t, eng.Remove(ctx, created.ID))

	balance, err := eng.Balance(ctx, "Asha")
	require.NoError(t, err)
	assert.True(t, balance.Equal(amt("-200")), "expected -200 after removing the credit, got %s", balance)

	_, err = eng.Entry(ctx, created.ID)
	assert.True(t, ledger.IsNotFound(err))
}

// =============================================================================
// FILTERED HISTORY TESTS
// =============================================================================

func TestEntries_DateRangeAndMovementFilter(t *testing.T) {
	// GIVEN: Debits in January and February plus a January credit
	// WHEN: Listing January debits
	// THEN: Only the January debit entries come back, newest first

	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindPatient)

	seed := []ledger.Entry{
		{ScopeKey: "Asha", Date: day(time.January, 5), Movement: ledger.Debit, Amount: amt("200")},
		{ScopeKey: "Asha", Date: day(time.January, 20), Movement: ledger.Debit, Amount: amt("300")},
		{ScopeKey: "Asha", Date: day(time.January, 9), Movement: ledger.Credit, Amount: amt("100")},
		{ScopeKey: "Asha", Date: day(time.February, 2), Movement: ledger.Debit, Amount: amt("400")},
	}
	for _, e := range seed {
		_, err := eng.Record(ctx, e)
		require.NoError(t, err)
	}

	from := day(time.January, 1)
	to := day(time.January, 31)
	entries, err := eng.Entries(ctx, ledger.Filter{From: &from, To: &to, Movement: ledger.Debit})
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.True(t, entries[0].Amount.Equal(amt("300")), "newest first")
	assert.True(t, entries[1].Amount.Equal(amt("200")))
}

func TestEntries_EmptyFilterReturnsAll(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t, ledger.KindCash)

	_, err := eng.Record(ctx, ledger.Entry{Date: day(time.January, 3), Movement: ledger.Income, Amount: amt("500")})
	require.NoError(t, err)
	_, err = eng.Record(ctx, ledger.Entry{Date: day(time.January, 6), Movement: ledger.Expense, Amount: amt("150")})
	require.NoError(t, err)

	entries, err := eng.Entries(ctx, ledger.Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

// =============================================================================
// KIND REGISTRY TESTS
// =============================================================================

func TestParseKind(t *testing.T) {
	for _, kind := range ledger.Kinds() {
		parsed, ok := ledger.ParseKind(string(kind))
		assert.True(t, ok)
		assert.Equal(t, kind, parsed)
	}

	_, ok := ledger.ParseKind("laundry")
	assert.False(t, ok)
}

func TestConfigShapes(t *testing.T) {
	cases := []struct {
		kind        ledger.Kind
		scoped      bool
		hasMovement bool
		hasCategory bool
	}{
		{ledger.KindPatient, true, true, false},
		{ledger.KindBank, true, true, false},
		{ledger.KindDoctor, true, true, false},
		{ledger.KindSupplier, true, true, false},
		{ledger.KindCash, false, true, false},
		{ledger.KindPharmacy, false, true, true},
		{ledger.KindExpense, false, false, true},
	}
	for _, tc := range cases {
		cfg, ok := ledger.ConfigFor(tc.kind)
		require.True(t, ok, tc.kind)
		assert.Equal(t, tc.scoped, cfg.Scoped, tc.kind)
		assert.Equal(t, tc.hasMovement, cfg.HasMovement(), tc.kind)
		assert.Equal(t, tc.hasCategory, cfg.HasCategory, tc.kind)
	}
}

func TestMovementError_Message(t *testing.T) {
	err := &ledger.MovementError{
		Kind:     ledger.KindPatient,
		Movement: ledger.Income,
		Allowed:  []ledger.MovementType{ledger.Credit, ledger.Debit},
	}
	assert.True(t, errors.Is(err, ledger.ErrInvalidMovement))
	assert.Contains(t, err.Error(), "Income")
}
