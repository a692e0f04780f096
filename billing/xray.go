/*
Package billing implements X-ray/diagnostics billing with derived-value
verification.

PURPOSE:
  An X-ray report carries two derived monetary fields alongside the
  figures they derive from:

      netBillAmount = billAmount × (1 − discountPercent/100)
      doctorEarning = netBillAmount × commissionPercent/100

  The validator recomputes both from the submitted inputs and rejects the
  write when either differs from the submitted value by more than 0.01
  absolute. Validation runs before any persistence, so a mismatched
  report never reaches the store.

SEE ALSO:
  - service.go: CRUD and summary over validated reports
*/
package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tolerance is the absolute allowance when comparing submitted derived
// fields against their recomputed values.
var Tolerance = decimal.RequireFromString("0.01")

var hundred = decimal.NewFromInt(100)

// ErrArithmeticMismatch is the class behind both derived-field failures.
var ErrArithmeticMismatch = errors.New("billing arithmetic mismatch")

// =============================================================================
// REPORT
// =============================================================================

// Report is one X-ray/diagnostics bill.
type Report struct {
	ID          string
	PatientName string
	DoctorName  string // referring doctor, paid the commission
	TestName    string
	Date        time.Time

	BillAmount        decimal.Decimal
	DiscountPercent   decimal.Decimal
	NetBillAmount     decimal.Decimal
	CommissionPercent decimal.Decimal
	DoctorEarning     decimal.Decimal

	Remarks   string
	CreatedAt time.Time
}

// =============================================================================
// ARITHMETIC VALIDATOR
// =============================================================================

// ArithmeticError identifies which derived field failed verification.
type ArithmeticError struct {
	Field    string // "netBillAmount" or "doctorEarning"
	Expected decimal.Decimal
	Got      decimal.Decimal
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s mismatch: expected %s, got %s",
		e.Field, e.Expected.StringFixed(2), e.Got.StringFixed(2))
}

func (e *ArithmeticError) Unwrap() error { return ErrArithmeticMismatch }

// ExpectedNet recomputes the net bill from the gross bill and discount.
func ExpectedNet(billAmount, discountPercent decimal.Decimal) decimal.Decimal {
	return billAmount.Mul(decimal.NewFromInt(1).Sub(discountPercent.Div(hundred)))
}

// ExpectedEarning recomputes the doctor's commission from the net bill.
func ExpectedEarning(netBillAmount, commissionPercent decimal.Decimal) decimal.Decimal {
	return netBillAmount.Mul(commissionPercent.Div(hundred))
}

// Verify checks the report's derived fields against recomputed values.
// The net bill is checked first; the earning check uses the recomputed
// net, so a cascaded error is reported at its source.
func Verify(r Report) error {
	net := ExpectedNet(r.BillAmount, r.DiscountPercent)
	if net.Sub(r.NetBillAmount).Abs().GreaterThan(Tolerance) {
		return &ArithmeticError{Field: "netBillAmount", Expected: net, Got: r.NetBillAmount}
	}

	earning := ExpectedEarning(net, r.CommissionPercent)
	if earning.Sub(r.DoctorEarning).Abs().GreaterThan(Tolerance) {
		return &ArithmeticError{Field: "doctorEarning", Expected: earning, Got: r.DoctorEarning}
	}
	return nil
}
