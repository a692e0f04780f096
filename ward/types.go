/*
Package ward implements bed assignment tracking for hospital wards.

PURPOSE:
  A bed assignment is a small lifecycle record riding on top of the
  financial domain: a patient occupies a bed (Active), then leaves it
  (Discharged) or moves (Transferred). Both exits are terminal - there is
  no re-activation path; a returning patient gets a new assignment.

INVARIANT:
  DischargeDate is set if and only if Status == Discharged. The service
  enforces this on every status-changing write.

SEE ALSO:
  - service.go: Lifecycle operations and transition enforcement
*/
package ward

import "time"

// =============================================================================
// STATUS
// =============================================================================

type Status string

const (
	StatusActive      Status = "Active"
	StatusDischarged  Status = "Discharged"
	StatusTransferred Status = "Transferred"
)

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDischarged, StatusTransferred:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool { return s != StatusActive }

// transitions is the sanctioned state table. Absent pairs are rejected.
var transitions = map[Status][]Status{
	StatusActive: {StatusDischarged, StatusTransferred},
}

// CanTransition reports whether from → to is a sanctioned transition.
// A no-op (same status) is allowed so field corrections can be saved.
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
// ASSIGNMENT
// =============================================================================

// Assignment records one patient's occupancy of one bed.
type Assignment struct {
	ID            string
	WardNumber    string
	BedNumber     string
	PatientName   string
	AllocateDate  time.Time
	DischargeDate *time.Time
	Status        Status
	CreatedAt     time.Time
}

// Filter narrows assignment queries. Zero value matches everything.
type Filter struct {
	WardNumber string
	BedNumber  string
	// ActiveOnly restricts to currently occupied beds.
	ActiveOnly bool
}

// Match reports whether the assignment satisfies every supplied condition.
func (f Filter) Match(a Assignment) bool {
	if f.WardNumber != "" && a.WardNumber != f.WardNumber {
		return false
	}
	if f.BedNumber != "" && a.BedNumber != f.BedNumber {
		return false
	}
	if f.ActiveOnly && a.Status != StatusActive {
		return false
	}
	return true
}
