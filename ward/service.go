/*
service.go - Bed assignment lifecycle operations

PURPOSE:
  Creation always starts Active. The dedicated Discharge operation is the
  only sanctioned path to Discharged; it stamps the discharge date (the
  supplied date, or now when omitted). Discharging an already-exited
  assignment fails with a conflict rather than silently overwriting
  history.

SEE ALSO:
  - types.go: Status table and Assignment record
*/
package ward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when an id-scoped operation targets a
	// nonexistent assignment.
	ErrNotFound = errors.New("bed assignment not found")

	// ErrAlreadyExited is returned when discharging an assignment that
	// already left Active. History is never overwritten.
	ErrAlreadyExited = errors.New("bed assignment already discharged or transferred")

	// ErrBedOccupied is returned when assigning a bed that already has an
	// active assignment.
	ErrBedOccupied = errors.New("bed already has an active assignment")

	// ErrInvalidStatus is returned for a status outside the closed set.
	ErrInvalidStatus = errors.New("invalid bed assignment status")

	// ErrDischargeDateMismatch is returned when DischargeDate and Status
	// disagree: the date is set iff the status is Discharged.
	ErrDischargeDateMismatch = errors.New("discharge date set iff status is Discharged")
)

// TransitionError reports a status change outside the sanctioned table.
type TransitionError struct {
	From, To Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal bed status transition %s → %s", e.From, e.To)
}

// =============================================================================
// STORE
// =============================================================================

// Store persists bed assignments.
type Store interface {
	CreateAssignment(ctx context.Context, a Assignment) error
	ListAssignments(ctx context.Context, f Filter) ([]Assignment, error)
	GetAssignment(ctx context.Context, id string) (Assignment, error)
	UpdateAssignment(ctx context.Context, a Assignment) error
	DeleteAssignment(ctx context.Context, id string) error
}

// =============================================================================
// SERVICE
// =============================================================================

// Service exposes the bed assignment lifecycle over a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Assign creates a new assignment. Status always starts Active; any
// discharge data on the input is discarded. A bed with an active
// assignment cannot be assigned again until it is vacated.
func (s *Service) Assign(ctx context.Context, a Assignment) (Assignment, error) {
	occupied, err := s.store.ListAssignments(ctx, Filter{
		WardNumber: a.WardNumber,
		BedNumber:  a.BedNumber,
		ActiveOnly: true,
	})
	if err != nil {
		return Assignment{}, err
	}
	if len(occupied) > 0 {
		return Assignment{}, ErrBedOccupied
	}

	if a.AllocateDate.IsZero() {
		a.AllocateDate = time.Now().UTC()
	}
	a.ID = uuid.NewString()
	a.Status = StatusActive
	a.DischargeDate = nil
	a.CreatedAt = time.Now().UTC()

	if err := s.store.CreateAssignment(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

// Assignments lists assignments matching the filter; ActiveOnly gives the
// currently-occupied-beds view.
func (s *Service) Assignments(ctx context.Context, f Filter) ([]Assignment, error) {
	return s.store.ListAssignments(ctx, f)
}

// Assignment returns one assignment by id.
func (s *Service) Assignment(ctx context.Context, id string) (Assignment, error) {
	return s.store.GetAssignment(ctx, id)
}

// Update applies a correction update. Status changes must follow the
// transition table, and the discharge-date invariant is re-checked.
func (s *Service) Update(ctx context.Context, a Assignment) (Assignment, error) {
	if !a.Status.Valid() {
		return Assignment{}, ErrInvalidStatus
	}

	existing, err := s.store.GetAssignment(ctx, a.ID)
	if err != nil {
		return Assignment{}, err
	}
	if !CanTransition(existing.Status, a.Status) {
		return Assignment{}, &TransitionError{From: existing.Status, To: a.Status}
	}
	if (a.DischargeDate != nil) != (a.Status == StatusDischarged) {
		return Assignment{}, ErrDischargeDateMismatch
	}

	a.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateAssignment(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

// Discharge moves an Active assignment to Discharged, stamping the given
// date or now when nil. A second discharge is a conflict, never a silent
// overwrite.
func (s *Service) Discharge(ctx context.Context, id string, date *time.Time) (Assignment, error) {
	a, err := s.store.GetAssignment(ctx, id)
	if err != nil {
		return Assignment{}, err
	}
	if a.Status != StatusActive {
		return Assignment{}, ErrAlreadyExited
	}

	when := time.Now().UTC()
	if date != nil {
		when = *date
	}
	a.Status = StatusDischarged
	a.DischargeDate = &when

	if err := s.store.UpdateAssignment(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

// Remove deletes an assignment outright.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.store.DeleteAssignment(ctx, id)
}
