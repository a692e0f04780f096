/*
service.go - X-ray report CRUD and financial summary

The validator runs on every create and update, before the store call.
*/
package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when an id-scoped operation targets a
	// nonexistent report.
	ErrNotFound = errors.New("x-ray report not found")

	// ErrNonPositiveBill is returned for a zero or negative bill amount.
	ErrNonPositiveBill = errors.New("bill amount must be positive")
)

// Filter narrows report queries. Zero value matches everything.
type Filter struct {
	PatientName string
	DoctorName  string
	From        *time.Time
	To          *time.Time
}

// Match reports whether the report satisfies every supplied condition.
func (f Filter) Match(r Report) bool {
	if f.PatientName != "" && r.PatientName != f.PatientName {
		return false
	}
	if f.DoctorName != "" && r.DoctorName != f.DoctorName {
		return false
	}
	if f.From != nil && r.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && r.Date.After(*f.To) {
		return false
	}
	return true
}

// Store persists X-ray reports.
type Store interface {
	CreateReport(ctx context.Context, r Report) error
	ListReports(ctx context.Context, f Filter) ([]Report, error)
	GetReport(ctx context.Context, id string) (Report, error)
	UpdateReport(ctx context.Context, r Report) error
	DeleteReport(ctx context.Context, id string) error
}

// Service exposes X-ray billing over a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates arithmetic and persists a new report.
func (s *Service) Create(ctx context.Context, r Report) (Report, error) {
	if err := s.validate(r); err != nil {
		return Report{}, err
	}
	if r.Date.IsZero() {
		r.Date = time.Now().UTC()
	}
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()

	if err := s.store.CreateReport(ctx, r); err != nil {
		return Report{}, err
	}
	return r, nil
}

// Reports lists reports matching the filter, most recent first.
func (s *Service) Reports(ctx context.Context, f Filter) ([]Report, error) {
	return s.store.ListReports(ctx, f)
}

// Report returns one report by id.
func (s *Service) Report(ctx context.Context, id string) (Report, error) {
	return s.store.GetReport(ctx, id)
}

// Update applies a correction update; same validation as Create.
func (s *Service) Update(ctx context.Context, r Report) (Report, error) {
	if err := s.validate(r); err != nil {
		return Report{}, err
	}
	existing, err := s.store.GetReport(ctx, r.ID)
	if err != nil {
		return Report{}, err
	}
	r.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateReport(ctx, r); err != nil {
		return Report{}, err
	}
	return r, nil
}

// Remove deletes a report outright.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.store.DeleteReport(ctx, id)
}

func (s *Service) validate(r Report) error {
	if !r.BillAmount.IsPositive() {
		return ErrNonPositiveBill
	}
	return Verify(r)
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary is the financial roll-up over all X-ray reports.
type Summary struct {
	TotalBilled   decimal.Decimal
	TotalNet      decimal.Decimal
	TotalEarnings decimal.Decimal
	ReportCount   int
}

// Summary aggregates all reports.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	reports, err := s.store.ListReports(ctx, Filter{})
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		TotalBilled:   decimal.Zero,
		TotalNet:      decimal.Zero,
		TotalEarnings: decimal.Zero,
	}
	for _, r := range reports {
		sum.TotalBilled = sum.TotalBilled.Add(r.BillAmount)
		sum.TotalNet = sum.TotalNet.Add(r.NetBillAmount)
		sum.TotalEarnings = sum.TotalEarnings.Add(r.DoctorEarning)
		sum.ReportCount++
	}
	return sum, nil
}
