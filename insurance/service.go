/*
service.go - Claim lifecycle operations

PURPOSE:
  Validates every status-changing write against the transition table and
  the amount invariants before any persistence. Approval and settlement
  dates are stamped when a claim enters those states.

SEE ALSO:
  - types.go:   Status table, Claim record
  - summary.go: Aggregation over the claim set
*/
package insurance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when an id-scoped operation targets a
	// nonexistent claim.
	ErrNotFound = errors.New("insurance claim not found")

	// ErrInvalidStatus is returned for a status outside the closed set.
	ErrInvalidStatus = errors.New("invalid claim status")

	// ErrApprovedExceedsClaim guards approvedAmount ≤ claimAmount.
	ErrApprovedExceedsClaim = errors.New("approved amount exceeds claim amount")

	// ErrSettledExceedsApproved guards settledAmount ≤ approvedAmount.
	ErrSettledExceedsApproved = errors.New("settled amount exceeds approved amount")

	// ErrAmountRequired is returned when a status implies an amount that
	// was not supplied (approval without approved amount, settlement
	// without settled amount).
	ErrAmountRequired = errors.New("amount required for claim status")

	// ErrNonPositiveClaim is returned for a zero or negative claim amount.
	ErrNonPositiveClaim = errors.New("claim amount must be positive")
)

// TransitionError reports a status change outside the sanctioned table.
type TransitionError struct {
	From, To Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal claim status transition %s → %s", e.From, e.To)
}

// =============================================================================
// STORE
// =============================================================================

// Store persists insurance claims.
type Store interface {
	CreateClaim(ctx context.Context, c Claim) error
	ListClaims(ctx context.Context, f Filter) ([]Claim, error)
	GetClaim(ctx context.Context, id string) (Claim, error)
	UpdateClaim(ctx context.Context, c Claim) error
	DeleteClaim(ctx context.Context, id string) error
}

// =============================================================================
// SERVICE
// =============================================================================

// Service exposes the claim lifecycle over a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// File registers a new claim. Claims always start Pending; approval and
// settlement data on the input is discarded.
func (s *Service) File(ctx context.Context, c Claim) (Claim, error) {
	if !c.ClaimAmount.IsPositive() {
		return Claim{}, ErrNonPositiveClaim
	}
	if c.ClaimDate.IsZero() {
		c.ClaimDate = time.Now().UTC()
	}

	c.ID = uuid.NewString()
	c.Status = StatusPending
	c.ApprovedAmount = nil
	c.SettledAmount = nil
	c.ApprovalDate = nil
	c.SettlementDate = nil
	c.CreatedAt = time.Now().UTC()

	if err := s.store.CreateClaim(ctx, c); err != nil {
		return Claim{}, err
	}
	return c, nil
}

// Claims lists claims matching the filter, most recent first.
func (s *Service) Claims(ctx context.Context, f Filter) ([]Claim, error) {
	return s.store.ListClaims(ctx, f)
}

// Claim returns one claim by id.
func (s *Service) Claim(ctx context.Context, id string) (Claim, error) {
	return s.store.GetClaim(ctx, id)
}

// Update applies a correction or lifecycle step. Status changes are
// checked against the transition table; amount invariants are checked on
// every write; dates are stamped on state entry.
func (s *Service) Update(ctx context.Context, c Claim) (Claim, error) {
	if !c.Status.Valid() {
		return Claim{}, ErrInvalidStatus
	}
	if !c.ClaimAmount.IsPositive() {
		return Claim{}, ErrNonPositiveClaim
	}

	existing, err := s.store.GetClaim(ctx, c.ID)
	if err != nil {
		return Claim{}, err
	}
	if !CanTransition(existing.Status, c.Status) {
		return Claim{}, &TransitionError{From: existing.Status, To: c.Status}
	}
	if err := validateAmounts(c); err != nil {
		return Claim{}, err
	}

	// A nil date on the input means "unchanged", not "clear": stamps
	// survive later lifecycle steps and same-status corrections.
	if c.ApprovalDate == nil {
		c.ApprovalDate = existing.ApprovalDate
	}
	if c.SettlementDate == nil {
		c.SettlementDate = existing.SettlementDate
	}

	now := time.Now().UTC()
	if c.Status.ApprovedKind() && c.ApprovalDate == nil {
		c.ApprovalDate = &now
	}
	if c.Status == StatusSettled && c.SettlementDate == nil {
		c.SettlementDate = &now
	}

	c.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateClaim(ctx, c); err != nil {
		return Claim{}, err
	}
	return c, nil
}

// Remove deletes a claim outright.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.store.DeleteClaim(ctx, id)
}

func validateAmounts(c Claim) error {
	if c.Status.ApprovedKind() && c.ApprovedAmount == nil {
		return ErrAmountRequired
	}
	if c.Status == StatusSettled && c.SettledAmount == nil {
		return ErrAmountRequired
	}
	if c.ApprovedAmount != nil && c.ApprovedAmount.GreaterThan(c.ClaimAmount) {
		return ErrApprovedExceedsClaim
	}
	if c.SettledAmount != nil {
		approved := c.ClaimAmount
		if c.ApprovedAmount != nil {
			approved = *c.ApprovedAmount
		}
		if c.SettledAmount.GreaterThan(approved) {
			return ErrSettledExceedsApproved
		}
	}
	return nil
}

// amountOrZero dereferences an optional amount.
func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
