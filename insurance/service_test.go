package insurance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medgrid/hospital-finance/insurance"
	"github.com/medgrid/hospital-finance/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService(t *testing.T) *insurance.Service {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return insurance.NewService(store)
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amtPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func fileClaim(t *testing.T, svc *insurance.Service, patient, company, amount string) insurance.Claim {
	t.Helper()
	c, err := svc.File(context.Background(), insurance.Claim{
		PatientName: patient,
		Company:     company,
		ClaimAmount: amt(amount),
		ClaimDate:   time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return c
}

// =============================================================================
// FILING TESTS
// =============================================================================

func TestFile_AlwaysStartsPending(t *testing.T) {
	// GIVEN: A filing request that tries to smuggle in settlement data
	// WHEN: Filing the claim
	// THEN: Stored as Pending with no approval or settlement data

	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.File(ctx, insurance.Claim{
		PatientName:    "Rohan Das",
		Company:        "MediAssist TPA",
		ClaimAmount:    amt("15000"),
		ApprovedAmount: amtPtr("15000"),
		SettledAmount:  amtPtr("15000"),
		Status:         insurance.StatusSettled,
	})
	require.NoError(t, err)

	assert.Equal(t, insurance.StatusPending, created.Status)
	assert.Nil(t, created.ApprovedAmount)
	assert.Nil(t, created.SettledAmount)
	assert.Nil(t, created.ApprovalDate)
	assert.Nil(t, created.SettlementDate)
}

func TestFile_NonPositiveClaim_Rejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.File(ctx, insurance.Claim{
		PatientName: "Rohan Das", Company: "MediAssist TPA", ClaimAmount: decimal.Zero,
	})
	assert.ErrorIs(t, err, insurance.ErrNonPositiveClaim)
}

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestLifecycle_PendingApprovedSettled(t *testing.T) {
	// GIVEN: A pending 15000 claim
	// WHEN: Approving 12000, then settling 12000
	// THEN: Each step succeeds and stamps its date

	ctx := context.Background()
	svc := newTestService(t)
	c := fileClaim(t, svc, "Rohan Das", "MediAssist TPA", "15000")

	c.Status = insurance.StatusApproved
	c.ApprovedAmount = amtPtr("12000")
	approved, err := svc.Update(ctx, c)
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovalDate)
	assert.Nil(t, approved.SettlementDate)

	approved.Status = insurance.StatusSettled
	approved.SettledAmount = amtPtr("12000")
	settled, err := svc.Update(ctx, approved)
	require.NoError(t, err)
	require.NotNil(t, settled.SettlementDate)
	assert.Equal(t, insurance.StatusSettled, settled.Status)
}

func TestLifecycle_NilDates_PreserveStampedHistory(t *testing.T) {
	// GIVEN: An approved claim whose approval date was stamped
	// WHEN: Settling, then re-saving Settled, each with nil date fields
	//       (as an HTTP client would, since it never sends dates)
	// THEN: The original approval date survives every write

	ctx := context.Background()
	svc := newTestService(t)
	c := fileClaim(t, svc, "Rohan Das", "MediAssist TPA", "15000")

	c.Status = insurance.StatusApproved
	c.ApprovedAmount = amtPtr("12000")
	approved, err := svc.Update(ctx, c)
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovalDate)
	// The store keeps whole seconds, so this is the value every later
	// read must return.
	stamp := approved.ApprovalDate.Truncate(time.Second)

	settle := approved
	settle.Status = insurance.StatusSettled
	settle.SettledAmount = amtPtr("12000")
	settle.ApprovalDate = nil
	settled, err := svc.Update(ctx, settle)
	require.NoError(t, err)
	require.NotNil(t, settled.ApprovalDate)
	assert.True(t, settled.ApprovalDate.Equal(stamp))

	correction := settled
	correction.ApprovalDate = nil
	correction.SettlementDate = nil
	saved, err := svc.Update(ctx, correction)
	require.NoError(t, err)
	require.NotNil(t, saved.ApprovalDate)
	assert.True(t, saved.ApprovalDate.Equal(stamp), "correction must not re-stamp")
	require.NotNil(t, saved.SettlementDate)
	assert.True(t, saved.SettlementDate.Equal(settled.SettlementDate.Truncate(time.Second)))

	stored, err := svc.Claim(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ApprovalDate)
	assert.True(t, stored.ApprovalDate.Equal(stamp))
}

func TestLifecycle_SettleFromPending_Rejected(t *testing.T) {
	// Settlement is only reachable through an approved-type status.
	ctx := context.Background()
	svc := newTestService(t)
	c := fileClaim(t, svc, "Rohan Das", "MediAssist TPA", "15000")

	c.Status = insurance.StatusSettled
	c.SettledAmount = amtPtr("15000")
	_, err := svc.Update(ctx, c)

	var trErr *insurance.TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, insurance.StatusPending, trErr.From)
	assert.Equal(t, insurance.StatusSettled, trErr.To)
}

func TestLifecycle_RejectedIsTerminal(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	c := fileClaim(t, svc, "Rohan Das", "MediAssist TPA", "15000")

	c.Status = insurance.StatusRejected
	rejected, err := svc.Update(ctx, c)
	require.NoError(t, err)

	rejected.Status = insurance.StatusApproved
	rejected.ApprovedAmount = amtPtr("10000")
	_, err = svc.Update(ctx, rejected)

	var trErr *insurance.TransitionError
	assert.ErrorAs(t, err, &trErr)
}

func TestLifecycle_SameStatusCorrection_Allowed(t *testing.T) {
	// A no-op transition lets field corrections save.
	ctx := context.Background()
	svc := newTestService(t)
	c := fileClaim(t, svc, "Rohan Das", "MediAssist TPA", "15000")

	c.PatientName = "Rohan K. Das"
	updated, err := svc.Update(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "Rohan K. Das", updated.PatientName)
	assert.Equal(t, insurance.StatusPending, updated.Status)
}

// =============================================================================
// AMOUNT INVARIANT TESTS
// =============================================================================

func TestUpdate_ApprovedExceedsClaim_Rejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	c := fileClaim(t, svc, "Rohan Das", "MediAssist TPA", "15000")

	c.Status = insurance.StatusApproved
	c.ApprovedAmount = amtPtr("16000")
	_, err := svc.Update(ctx, c)
	assert.ErrorIs(t, err, insurance.ErrApprovedExceedsClaim)
}

func TestUpdate_SettledExceedsApproved_Rejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	c := fileClaim(t, svc, "Rohan Das", "MediAssist TPA", "15000")

	c.Status = insurance.StatusPartiallyApproved
	c.ApprovedAmount = amtPtr("10000")
	approved, err := svc.Update(ctx, c)
	require.NoError(t, err)

	approved.Status = insurance.StatusSettled
	approved.SettledAmount = amtPtr("11000")
	_, err = svc.Update(ctx, approved)
	assert.ErrorIs(t, err, insurance.ErrSettledExceedsApproved)
}

func TestUpdate_ApprovalWithoutAmount_Rejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	c := fileClaim(t, svc, "Rohan Das", "MediAssist TPA", "15000")

	c.Status = insurance.StatusApproved
	_, err := svc.Update(ctx, c)
	assert.ErrorIs(t, err, insurance.ErrAmountRequired)
}

// =============================================================================
// SUMMARY AND OUTSTANDING TESTS
// =============================================================================

func TestSummary_PerCompanyAndGlobal(t *testing.T) {
	// GIVEN: Claims across two companies, one settled
	// WHEN: Summarizing
	// THEN: Alphabetical company rows reconcile with the global totals

	ctx := context.Background()
	svc := newTestService(t)

	a := fileClaim(t, svc, "Asha Verma", "Star Health", "8000")
	fileClaim(t, svc, "Rohan Das", "MediAssist TPA", "15000")
	fileClaim(t, svc, "Kiran Rao", "MediAssist TPA", "5000")

	a.Status = insurance.StatusApproved
	a.ApprovedAmount = amtPtr("7000")
	approved, err := svc.Update(ctx, a)
	require.NoError(t, err)
	approved.Status = insurance.StatusSettled
	approved.SettledAmount = amtPtr("7000")
	_, err = svc.Update(ctx, approved)
	require.NoError(t, err)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	require.Len(t, summary.Companies, 2)
	assert.Equal(t, "MediAssist TPA", summary.Companies[0].Company)
	assert.Equal(t, "Star Health", summary.Companies[1].Company)
	assert.True(t, summary.Companies[0].Claimed.Equal(amt("20000")))
	assert.True(t, summary.Companies[1].Settled.Equal(amt("7000")))

	assert.True(t, summary.TotalClaimed.Equal(amt("28000")))
	assert.True(t, summary.TotalApproved.Equal(amt("7000")))
	assert.True(t, summary.TotalSettled.Equal(amt("7000")))
	assert.Equal(t, 3, summary.ClaimCount)
	assert.Equal(t, 2, summary.PendingCount)
	assert.Equal(t, 1, summary.SettledCount)
}

func TestOutstanding_ClaimedMinusSettled(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	c := fileClaim(t, svc, "Asha Verma", "Star Health", "8000")
	fileClaim(t, svc, "Kiran Rao", "Star Health", "3000")

	c.Status = insurance.StatusApproved
	c.ApprovedAmount = amtPtr("7000")
	approved, err := svc.Update(ctx, c)
	require.NoError(t, err)
	approved.Status = insurance.StatusSettled
	approved.SettledAmount = amtPtr("6500")
	_, err = svc.Update(ctx, approved)
	require.NoError(t, err)

	outstanding, err := svc.Outstanding(ctx, "Star Health")
	require.NoError(t, err)
	assert.True(t, outstanding.Equal(amt("4500")), "8000+3000-6500, got %s", outstanding)
}

func TestOutstanding_UnknownCompany_IsZero(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	outstanding, err := svc.Outstanding(ctx, "Ghost Insurance")
	require.NoError(t, err)
	assert.True(t, outstanding.IsZero())
}
