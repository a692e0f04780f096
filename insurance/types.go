/*
Package insurance implements TPA/insurance claim settlement tracking.

PURPOSE:
  The insurance ledger's entries are the claim records themselves: each
  claim carries the amounts claimed, approved, and settled, and walks a
  small state machine:

      Pending → Approved            → Settled
      Pending → Partially Approved  → Settled
      Pending → Rejected            (terminal)

  Status changes outside this table are rejected with a validation error
  rather than silently accepted.

AMOUNT INVARIANTS:
  approvedAmount ≤ claimAmount, and settledAmount ≤ approvedAmount when
  present. Enforced on every write.

SEE ALSO:
  - service.go: Lifecycle operations
  - summary.go: Per-company and global aggregation
*/
package insurance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STATUS
// =============================================================================

type Status string

const (
	StatusPending           Status = "Pending"
	StatusApproved          Status = "Approved"
	StatusRejected          Status = "Rejected"
	StatusPartiallyApproved Status = "Partially Approved"
	StatusSettled           Status = "Settled"
)

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusPartiallyApproved, StatusSettled:
		return true
	}
	return false
}

// ApprovedKind reports whether s is an approved-type status, the only
// gateway to settlement.
func (s Status) ApprovedKind() bool {
	return s == StatusApproved || s == StatusPartiallyApproved
}

// transitions is the sanctioned state table. Rejected and Settled are
// terminal.
var transitions = map[Status][]Status{
	StatusPending:           {StatusApproved, StatusRejected, StatusPartiallyApproved},
	StatusApproved:          {StatusSettled},
	StatusPartiallyApproved: {StatusSettled},
}

// CanTransition reports whether from → to is sanctioned. A no-op (same
// status) is allowed so field corrections can be saved.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// =============================================================================
// CLAIM
// =============================================================================

// Claim is one insurance claim and its settlement progress.
type Claim struct {
	ID          string
	PatientName string
	Company     string // TPA / insurance company name

	ClaimAmount    decimal.Decimal
	ApprovedAmount *decimal.Decimal
	SettledAmount  *decimal.Decimal

	Status Status

	ClaimDate      time.Time
	ApprovalDate   *time.Time
	SettlementDate *time.Time

	CreatedAt time.Time
}

// Filter narrows claim queries. Zero value matches everything.
type Filter struct {
	PatientName string
	Company     string
	Status      Status
	From        *time.Time
	To          *time.Time
}

// Match reports whether the claim satisfies every supplied condition.
func (f Filter) Match(c Claim) bool {
	if f.PatientName != "" && c.PatientName != f.PatientName {
		return false
	}
	if f.Company != "" && c.Company != f.Company {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.From != nil && c.ClaimDate.Before(*f.From) {
		return false
	}
	if f.To != nil && c.ClaimDate.After(*f.To) {
		return false
	}
	return true
}
