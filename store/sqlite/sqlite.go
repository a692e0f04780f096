/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements every persistence interface the domain packages define
  (ledger.Store, ward.Store, insurance.Store, billing.Store) using
  SQLite. In production the same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

KEY TABLES:
  ledger_entries:   Movements of all seven ledger kinds (kind column)
  bed_assignments:  Ward occupancy lifecycle records
  insurance_claims: Claim settlement lifecycle records
  xray_reports:     Diagnostics bills with verified derived fields

MONEY COLUMNS:
  Amounts are stored as decimal strings (TEXT), never REAL. They
  round-trip through shopspring/decimal without drift.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.
  WAL mode is enabled so readers don't block behind the single writer.

USAGE:
  store, err := sqlite.New("./data/hospital.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - ledger/store.go: Interface definition for ledger entries
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/medgrid/hospital-finance/billing"
	"github.com/medgrid/hospital-finance/insurance"
	"github.com/medgrid/hospital-finance/ledger"
	"github.com/medgrid/hospital-finance/ward"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reset clears all tables. Dev/demo use only (scenario loading).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"ledger_entries", "bed_assignments", "insurance_claims", "xray_reports"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Movements of all seven ledger kinds
	CREATE TABLE IF NOT EXISTS ledger_entries (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		scope_key TEXT NOT NULL DEFAULT '',
		entry_date TEXT NOT NULL,
		movement TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		payment_mode TEXT NOT NULL DEFAULT '',
		transaction_id TEXT NOT NULL DEFAULT '',
		remarks TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	-- Balance calculation (hot path): all entries of a scope
	CREATE INDEX IF NOT EXISTS idx_entries_kind_scope
		ON ledger_entries(kind, scope_key);
	-- Filtered histories, descending by date
	CREATE INDEX IF NOT EXISTS idx_entries_kind_date
		ON ledger_entries(kind, entry_date DESC);
	CREATE INDEX IF NOT EXISTS idx_entries_kind_category
		ON ledger_entries(kind, category);

	-- Bed occupancy lifecycle
	CREATE TABLE IF NOT EXISTS bed_assignments (
		id TEXT PRIMARY KEY,
		ward_number TEXT NOT NULL,
		bed_number TEXT NOT NULL,
		patient_name TEXT NOT NULL,
		allocate_date TEXT NOT NULL,
		discharge_date TEXT,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_beds_ward ON bed_assignments(ward_number);
	CREATE INDEX IF NOT EXISTS idx_beds_status ON bed_assignments(status);

	-- Insurance claim lifecycle
	CREATE TABLE IF NOT EXISTS insurance_claims (
		id TEXT PRIMARY KEY,
		patient_name TEXT NOT NULL,
		company TEXT NOT NULL,
		claim_amount TEXT NOT NULL,
		approved_amount TEXT,
		settled_amount TEXT,
		status TEXT NOT NULL,
		claim_date TEXT NOT NULL,
		approval_date TEXT,
		settlement_date TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_claims_company ON insurance_claims(company);
	CREATE INDEX IF NOT EXISTS idx_claims_status ON insurance_claims(status);

	-- X-ray bills
	CREATE TABLE IF NOT EXISTS xray_reports (
		id TEXT PRIMARY KEY,
		patient_name TEXT NOT NULL,
		doctor_name TEXT NOT NULL DEFAULT '',
		test_name TEXT NOT NULL DEFAULT '',
		report_date TEXT NOT NULL,
		bill_amount TEXT NOT NULL,
		discount_percent TEXT NOT NULL,
		net_bill_amount TEXT NOT NULL,
		commission_percent TEXT NOT NULL,
		doctor_earning TEXT NOT NULL,
		remarks TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_xray_patient ON xray_reports(patient_name);
	CREATE INDEX IF NOT EXISTS idx_xray_doctor ON xray_reports(doctor_name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TIME / DECIMAL HELPERS
// =============================================================================

const dateLayout = time.RFC3339

func fmtTime(t time.Time) string { return t.UTC().Format(dateLayout) }

func parseTime(s string) (time.Time, error) { return time.Parse(dateLayout, s) }

func fmtTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

func parseTimePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func fmtDecPtr(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseDecPtr(s sql.NullString) (*decimal.Decimal, error) {
	if !s.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// =============================================================================
// LEDGER ENTRIES (ledger.Store interface)
// =============================================================================

// CreateEntry persists a ledger entry.
func (s *Store) CreateEntry(ctx context.Context, e ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO ledger_entries
			(id, kind, scope_key, entry_date, movement, amount, category,
			 description, payment_mode, transaction_id, remarks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, string(e.Kind), e.ScopeKey, fmtTime(e.Date), string(e.Movement),
		e.Amount.String(), e.Category, e.Description, e.PaymentMode,
		e.TransactionID, e.Remarks, fmtTime(e.CreatedAt))
	return err
}

// ListEntries returns entries of a kind matching the filter.
func (s *Store) ListEntries(ctx context.Context, kind ledger.Kind, f ledger.Filter, order ledger.SortOrder) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where := []string{"kind = ?"}
	args := []any{string(kind)}

	if f.From != nil {
		where = append(where, "entry_date >= ?")
		args = append(args, fmtTime(*f.From))
	}
	if f.To != nil {
		where = append(where, "entry_date <= ?")
		args = append(args, fmtTime(*f.To))
	}
	if f.ScopeKey != "" {
		where = append(where, "scope_key = ?")
		args = append(args, f.ScopeKey)
	}
	if f.Movement != ledger.MovementNone {
		where = append(where, "movement = ?")
		args = append(args, string(f.Movement))
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}

	dir := "DESC"
	if order == ledger.OrderDateAsc {
		dir = "ASC"
	}

	query := `
		SELECT id, kind, scope_key, entry_date, movement, amount, category,
		       description, payment_mode, transaction_id, remarks, created_at
		FROM ledger_entries
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY entry_date ` + dir + `, created_at ` + dir

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetEntry returns one entry by kind and id.
func (s *Store) GetEntry(ctx context.Context, kind ledger.Kind, id string) (ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, kind, scope_key, entry_date, movement, amount, category,
		       description, payment_mode, transaction_id, remarks, created_at
		FROM ledger_entries
		WHERE kind = ? AND id = ?`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, string(kind), id))
	if err == sql.ErrNoRows {
		return ledger.Entry{}, ledger.ErrEntryNotFound
	}
	return e, err
}

// UpdateEntry replaces an entry in place.
func (s *Store) UpdateEntry(ctx context.Context, e ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE ledger_entries
		SET scope_key = ?, entry_date = ?, movement = ?, amount = ?,
		    category = ?, description = ?, payment_mode = ?,
		    transaction_id = ?, remarks = ?
		WHERE kind = ? AND id = ?`

	res, err := s.db.ExecContext(ctx, query,
		e.ScopeKey, fmtTime(e.Date), string(e.Movement), e.Amount.String(),
		e.Category, e.Description, e.PaymentMode, e.TransactionID, e.Remarks,
		string(e.Kind), e.ID)
	if err != nil {
		return err
	}
	return requireRow(res, ledger.ErrEntryNotFound)
}

// DeleteEntry removes an entry outright.
func (s *Store) DeleteEntry(ctx context.Context, kind ledger.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM ledger_entries WHERE kind = ? AND id = ?", string(kind), id)
	if err != nil {
		return err
	}
	return requireRow(res, ledger.ErrEntryNotFound)
}

func scanEntry(row rowScanner) (ledger.Entry, error) {
	var (
		e                          ledger.Entry
		kind, movement             string
		entryDate, amount, created string
	)
	err := row.Scan(&e.ID, &kind, &e.ScopeKey, &entryDate, &movement, &amount,
		&e.Category, &e.Description, &e.PaymentMode, &e.TransactionID,
		&e.Remarks, &created)
	if err != nil {
		return ledger.Entry{}, err
	}

	e.Kind = ledger.Kind(kind)
	e.Movement = ledger.MovementType(movement)
	if e.Date, err = parseTime(entryDate); err != nil {
		return ledger.Entry{}, err
	}
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return ledger.Entry{}, err
	}
	if e.CreatedAt, err = parseTime(created); err != nil {
		return ledger.Entry{}, err
	}
	return e, nil
}

// =============================================================================
// BED ASSIGNMENTS (ward.Store interface)
// =============================================================================

// CreateAssignment persists a bed assignment.
func (s *Store) CreateAssignment(ctx context.Context, a ward.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO bed_assignments
			(id, ward_number, bed_number, patient_name, allocate_date,
			 discharge_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.WardNumber, a.BedNumber, a.PatientName, fmtTime(a.AllocateDate),
		fmtTimePtr(a.DischargeDate), string(a.Status), fmtTime(a.CreatedAt))
	return err
}

// ListAssignments returns assignments matching the filter, newest first.
func (s *Store) ListAssignments(ctx context.Context, f ward.Filter) ([]ward.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where := []string{"1=1"}
	args := []any{}
	if f.WardNumber != "" {
		where = append(where, "ward_number = ?")
		args = append(args, f.WardNumber)
	}
	if f.BedNumber != "" {
		where = append(where, "bed_number = ?")
		args = append(args, f.BedNumber)
	}
	if f.ActiveOnly {
		where = append(where, "status = ?")
		args = append(args, string(ward.StatusActive))
	}

	query := `
		SELECT id, ward_number, bed_number, patient_name, allocate_date,
		       discharge_date, status, created_at
		FROM bed_assignments
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY allocate_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ward.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAssignment returns one assignment by id.
func (s *Store) GetAssignment(ctx context.Context, id string) (ward.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, ward_number, bed_number, patient_name, allocate_date,
		       discharge_date, status, created_at
		FROM bed_assignments WHERE id = ?`

	a, err := scanAssignment(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return ward.Assignment{}, ward.ErrNotFound
	}
	return a, err
}

// UpdateAssignment replaces an assignment in place.
func (s *Store) UpdateAssignment(ctx context.Context, a ward.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE bed_assignments
		SET ward_number = ?, bed_number = ?, patient_name = ?,
		    allocate_date = ?, discharge_date = ?, status = ?
		WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query,
		a.WardNumber, a.BedNumber, a.PatientName, fmtTime(a.AllocateDate),
		fmtTimePtr(a.DischargeDate), string(a.Status), a.ID)
	if err != nil {
		return err
	}
	return requireRow(res, ward.ErrNotFound)
}

// DeleteAssignment removes an assignment outright.
func (s *Store) DeleteAssignment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM bed_assignments WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, ward.ErrNotFound)
}

func scanAssignment(row rowScanner) (ward.Assignment, error) {
	var (
		a                 ward.Assignment
		status            string
		allocate, created string
		discharge         sql.NullString
	)
	err := row.Scan(&a.ID, &a.WardNumber, &a.BedNumber, &a.PatientName,
		&allocate, &discharge, &status, &created)
	if err != nil {
		return ward.Assignment{}, err
	}

	a.Status = ward.Status(status)
	if a.AllocateDate, err = parseTime(allocate); err != nil {
		return ward.Assignment{}, err
	}
	if a.DischargeDate, err = parseTimePtr(discharge); err != nil {
		return ward.Assignment{}, err
	}
	if a.CreatedAt, err = parseTime(created); err != nil {
		return ward.Assignment{}, err
	}
	return a, nil
}

// =============================================================================
// INSURANCE CLAIMS (insurance.Store interface)
// =============================================================================

// CreateClaim persists an insurance claim.
func (s *Store) CreateClaim(ctx context.Context, c insurance.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO insurance_claims
			(id, patient_name, company, claim_amount, approved_amount,
			 settled_amount, status, claim_date, approval_date,
			 settlement_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.PatientName, c.Company, c.ClaimAmount.String(),
		fmtDecPtr(c.ApprovedAmount), fmtDecPtr(c.SettledAmount),
		string(c.Status), fmtTime(c.ClaimDate), fmtTimePtr(c.ApprovalDate),
		fmtTimePtr(c.SettlementDate), fmtTime(c.CreatedAt))
	return err
}

// ListClaims returns claims matching the filter, newest first.
func (s *Store) ListClaims(ctx context.Context, f insurance.Filter) ([]insurance.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where := []string{"1=1"}
	args := []any{}
	if f.PatientName != "" {
		where = append(where, "patient_name = ?")
		args = append(args, f.PatientName)
	}
	if f.Company != "" {
		where = append(where, "company = ?")
		args = append(args, f.Company)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.From != nil {
		where = append(where, "claim_date >= ?")
		args = append(args, fmtTime(*f.From))
	}
	if f.To != nil {
		where = append(where, "claim_date <= ?")
		args = append(args, fmtTime(*f.To))
	}

	query := `
		SELECT id, patient_name, company, claim_amount, approved_amount,
		       settled_amount, status, claim_date, approval_date,
		       settlement_date, created_at
		FROM insurance_claims
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY claim_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []insurance.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetClaim returns one claim by id.
func (s *Store) GetClaim(ctx context.Context, id string) (insurance.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, patient_name, company, claim_amount, approved_amount,
		       settled_amount, status, claim_date, approval_date,
		       settlement_date, created_at
		FROM insurance_claims WHERE id = ?`

	c, err := scanClaim(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return insurance.Claim{}, insurance.ErrNotFound
	}
	return c, err
}

// UpdateClaim replaces a claim in place.
func (s *Store) UpdateClaim(ctx context.Context, c insurance.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE insurance_claims
		SET patient_name = ?, company = ?, claim_amount = ?,
		    approved_amount = ?, settled_amount = ?, status = ?,
		    claim_date = ?, approval_date = ?, settlement_date = ?
		WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query,
		c.PatientName, c.Company, c.ClaimAmount.String(),
		fmtDecPtr(c.ApprovedAmount), fmtDecPtr(c.SettledAmount),
		string(c.Status), fmtTime(c.ClaimDate), fmtTimePtr(c.ApprovalDate),
		fmtTimePtr(c.SettlementDate), c.ID)
	if err != nil {
		return err
	}
	return requireRow(res, insurance.ErrNotFound)
}

// DeleteClaim removes a claim outright.
func (s *Store) DeleteClaim(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM insurance_claims WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, insurance.ErrNotFound)
}

func scanClaim(row rowScanner) (insurance.Claim, error) {
	var (
		c                             insurance.Claim
		status                        string
		claimAmount, claimDate        string
		created                       string
		approvedAmount, settledAmount sql.NullString
		approvalDate, settlementDate  sql.NullString
	)
	err := row.Scan(&c.ID, &c.PatientName, &c.Company, &claimAmount,
		&approvedAmount, &settledAmount, &status, &claimDate,
		&approvalDate, &settlementDate, &created)
	if err != nil {
		return insurance.Claim{}, err
	}

	c.Status = insurance.Status(status)
	if c.ClaimAmount, err = decimal.NewFromString(claimAmount); err != nil {
		return insurance.Claim{}, err
	}
	if c.ApprovedAmount, err = parseDecPtr(approvedAmount); err != nil {
		return insurance.Claim{}, err
	}
	if c.SettledAmount, err = parseDecPtr(settledAmount); err != nil {
		return insurance.Claim{}, err
	}
	if c.ClaimDate, err = parseTime(claimDate); err != nil {
		return insurance.Claim{}, err
	}
	if c.ApprovalDate, err = parseTimePtr(approvalDate); err != nil {
		return insurance.Claim{}, err
	}
	if c.SettlementDate, err = parseTimePtr(settlementDate); err != nil {
		return insurance.Claim{}, err
	}
	if c.CreatedAt, err = parseTime(created); err != nil {
		return insurance.Claim{}, err
	}
	return c, nil
}

// =============================================================================
// X-RAY REPORTS (billing.Store interface)
// =============================================================================

// CreateReport persists an X-ray report.
func (s *Store) CreateReport(ctx context.Context, r billing.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO xray_reports
			(id, patient_name, doctor_name, test_name, report_date,
			 bill_amount, discount_percent, net_bill_amount,
			 commission_percent, doctor_earning, remarks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.PatientName, r.DoctorName, r.TestName, fmtTime(r.Date),
		r.BillAmount.String(), r.DiscountPercent.String(),
		r.NetBillAmount.String(), r.CommissionPercent.String(),
		r.DoctorEarning.String(), r.Remarks, fmtTime(r.CreatedAt))
	return err
}

// ListReports returns reports matching the filter, newest first.
func (s *Store) ListReports(ctx context.Context, f billing.Filter) ([]billing.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where := []string{"1=1"}
	args := []any{}
	if f.PatientName != "" {
		where = append(where, "patient_name = ?")
		args = append(args, f.PatientName)
	}
	if f.DoctorName != "" {
		where = append(where, "doctor_name = ?")
		args = append(args, f.DoctorName)
	}
	if f.From != nil {
		where = append(where, "report_date >= ?")
		args = append(args, fmtTime(*f.From))
	}
	if f.To != nil {
		where = append(where, "report_date <= ?")
		args = append(args, fmtTime(*f.To))
	}

	query := `
		SELECT id, patient_name, doctor_name, test_name, report_date,
		       bill_amount, discount_percent, net_bill_amount,
		       commission_percent, doctor_earning, remarks, created_at
		FROM xray_reports
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY report_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []billing.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetReport returns one report by id.
func (s *Store) GetReport(ctx context.Context, id string) (billing.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, patient_name, doctor_name, test_name, report_date,
		       bill_amount, discount_percent, net_bill_amount,
		       commission_percent, doctor_earning, remarks, created_at
		FROM xray_reports WHERE id = ?`

	r, err := scanReport(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return billing.Report{}, billing.ErrNotFound
	}
	return r, err
}

// UpdateReport replaces a report in place.
func (s *Store) UpdateReport(ctx context.Context, r billing.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE xray_reports
		SET patient_name = ?, doctor_name = ?, test_name = ?, report_date = ?,
		    bill_amount = ?, discount_percent = ?, net_bill_amount = ?,
		    commission_percent = ?, doctor_earning = ?, remarks = ?
		WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query,
		r.PatientName, r.DoctorName, r.TestName, fmtTime(r.Date),
		r.BillAmount.String(), r.DiscountPercent.String(),
		r.NetBillAmount.String(), r.CommissionPercent.String(),
		r.DoctorEarning.String(), r.Remarks, r.ID)
	if err != nil {
		return err
	}
	return requireRow(res, billing.ErrNotFound)
}

// DeleteReport removes a report outright.
func (s *Store) DeleteReport(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM xray_reports WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, billing.ErrNotFound)
}

func scanReport(row rowScanner) (billing.Report, error) {
	var (
		r                   billing.Report
		reportDate, created string
		bill, discount, net string
		commission, earning string
	)
	err := row.Scan(&r.ID, &r.PatientName, &r.DoctorName, &r.TestName,
		&reportDate, &bill, &discount, &net, &commission, &earning,
		&r.Remarks, &created)
	if err != nil {
		return billing.Report{}, err
	}

	if r.Date, err = parseTime(reportDate); err != nil {
		return billing.Report{}, err
	}
	if r.BillAmount, err = decimal.NewFromString(bill); err != nil {
		return billing.Report{}, err
	}
	if r.DiscountPercent, err = decimal.NewFromString(discount); err != nil {
		return billing.Report{}, err
	}
	if r.NetBillAmount, err = decimal.NewFromString(net); err != nil {
		return billing.Report{}, err
	}
	if r.CommissionPercent, err = decimal.NewFromString(commission); err != nil {
		return billing.Report{}, err
	}
	if r.DoctorEarning, err = decimal.NewFromString(earning); err != nil {
		return billing.Report{}, err
	}
	if r.CreatedAt, err = parseTime(created); err != nil {
		return billing.Report{}, err
	}
	return r, nil
}

// Compile-time interface checks.
var (
	_ ledger.Store    = (*Store)(nil)
	_ ward.Store      = (*Store)(nil)
	_ insurance.Store = (*Store)(nil)
	_ billing.Store   = (*Store)(nil)
)
