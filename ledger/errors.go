/*
errors.go - Centralized error types for the ledger engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages (ward, insurance, billing) define their own errors but
  reuse the classification helpers here so the API layer maps every error
  to a status the same way.

ERROR CATEGORIES:
  1. Validation errors - malformed or out-of-range input, surfaced before
     any store access
  2. Not-found errors  - id-scoped operation against a missing record
  3. Conflict errors   - illegal state transition or uniqueness violation
  4. Store errors      - database-level failures, never exposed verbatim

USAGE:
  if ledger.IsNotFound(err) {
      // 404
  }

SEE ALSO:
  - engine.go: Returns these errors
  - api/handlers.go: Maps classes to HTTP status codes
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEntryNotFound is returned when an id-scoped operation targets a
	// nonexistent entry. Note: an unknown scope key on a balance query is
	// NOT this error - that is a query over an empty set and yields zero.
	ErrEntryNotFound = errors.New("ledger entry not found")

	// ErrUnknownKind is returned for a kind outside the registry.
	ErrUnknownKind = errors.New("unknown ledger kind")

	// ErrInvalidMovement is returned when a movement type is outside the
	// kind's closed enumeration. Never coerced, always rejected.
	ErrInvalidMovement = errors.New("movement type not allowed for ledger kind")

	// ErrNonPositiveAmount is returned for a zero or negative amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrScopeRequired is returned when a scoped ledger entry omits its
	// scope key, or an unscoped ledger supplies one.
	ErrScopeRequired = errors.New("scope key required for this ledger kind")

	// ErrScopeNotAllowed is the unscoped counterpart of ErrScopeRequired.
	ErrScopeNotAllowed = errors.New("ledger kind is organization-wide, scope key not allowed")

	// ErrInvalidDate is returned when an entry has a zero date.
	ErrInvalidDate = errors.New("entry date is required")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MovementError reports a movement type outside the kind's closed pair.
type MovementError struct {
	Kind     Kind
	Movement MovementType
	Allowed  []MovementType
}

func (e *MovementError) Error() string {
	return fmt.Sprintf("movement %q not allowed for %s ledger (allowed: %v)",
		e.Movement, e.Kind, e.Allowed)
}

func (e *MovementError) Unwrap() error { return ErrInvalidMovement }

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

// IsNotFound reports whether err indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound)
}

// IsValidation reports whether err is caller-correctable input rejection.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUnknownKind) ||
		errors.Is(err, ErrInvalidMovement) ||
		errors.Is(err, ErrNonPositiveAmount) ||
		errors.Is(err, ErrScopeRequired) ||
		errors.Is(err, ErrScopeNotAllowed) ||
		errors.Is(err, ErrInvalidDate)
}
