/*
Package ledger provides the core multi-ledger financial engine.

PURPOSE:
  This package contains the domain-agnostic types and algorithms shared by
  every ledger the hospital keeps. Whether the movements belong to a patient,
  a bank account, the cash drawer, or the pharmacy counter, the same engine
  handles entry validation, balance calculation, filtering, and summaries.
  Each concrete ledger is a thin Config, not a reimplementation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Entry:        A signed monetary movement (sign derived from MovementType)
  - MovementType: Closed, ledger-specific enumeration (Credit/Debit, Income/Expense)
  - Kind:         Which ledger an entry belongs to
  - Config:       Per-kind shape: scope presence, movement pair, category presence

DESIGN PRINCIPLES:
  1. Positive amounts: amounts are always stored positive; direction comes
     from the movement type at read time
  2. Precision: decimal.Decimal for all money, never binary floats
  3. Closed enums: a movement type outside the kind's pair is rejected,
     never coerced
  4. Configuration over duplication: seven ledgers, one engine

USAGE:
  eng := ledger.NewEngine(store, ledger.ConfigFor(ledger.KindPatient))
  entry, err := eng.Record(ctx, ledger.Entry{
      ScopeKey: "Asha",
      Date:     today,
      Movement: ledger.Credit,
      Amount:   decimal.NewFromInt(500),
  })

SEE ALSO:
  - filter.go:  Query parameters to entry predicate
  - balance.go: Balance fold
  - summary.go: Grouped and global aggregation
  - engine.go:  The per-kind engine tying it together
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LEDGER KINDS
// =============================================================================

// Kind identifies which ledger an entry belongs to.
type Kind string

const (
	KindPatient  Kind = "patient"
	KindBank     Kind = "bank"
	KindCash     Kind = "cash"
	KindDoctor   Kind = "doctor"
	KindSupplier Kind = "supplier"
	KindPharmacy Kind = "pharmacy"
	KindExpense  Kind = "expense"
)

// =============================================================================
// MOVEMENT TYPES
// =============================================================================

// MovementType is the direction label of an entry. Which two values are legal
// depends on the ledger kind; the expense ledger has none (pure outflow).
type MovementType string

const (
	Credit  MovementType = "Credit"
	Debit   MovementType = "Debit"
	Income  MovementType = "Income"
	Expense MovementType = "Expense"

	// MovementNone marks kinds whose entries carry no movement type.
	MovementNone MovementType = ""
)

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one signed monetary movement in a ledger.
// Amount is always positive; sign is derived from Movement at read time.
type Entry struct {
	ID       string
	Kind     Kind
	ScopeKey string // patient/bank/doctor/supplier name; empty for cash and expense
	Date     time.Time
	Movement MovementType
	Amount   decimal.Decimal

	Category string // pharmacy and expense only

	// Descriptive, non-computational fields.
	Description   string
	PaymentMode   string
	TransactionID string
	Remarks       string

	CreatedAt time.Time
}

// Signed returns the amount with its direction applied: positive for the
// kind's inflow movement, negative otherwise.
func (e Entry) Signed(cfg Config) decimal.Decimal {
	if cfg.Inflow != MovementNone && e.Movement == cfg.Inflow {
		return e.Amount
	}
	return e.Amount.Neg()
}

// =============================================================================
// CONFIG - What shape a ledger kind has
// =============================================================================

// Config describes one ledger kind. The engine consults it for validation,
// balance direction, and summary grouping. Seven values of this struct are
// the entire difference between the hospital's movement ledgers.
type Config struct {
	Kind Kind

	// Scoped is true when entries are attributed to a named entity
	// (patient, bank, doctor, supplier). Cash, pharmacy, and expense
	// ledgers are organization-wide.
	Scoped bool

	// Inflow/Outflow are the kind's closed movement pair. Both are
	// MovementNone for the expense ledger, whose entries are implicitly
	// all outflow.
	Inflow  MovementType
	Outflow MovementType

	// HasCategory is true for kinds whose entries carry a free-text
	// grouping dimension (pharmacy, expense).
	HasCategory bool
}

// HasMovement reports whether entries of this kind carry a movement type.
func (c Config) HasMovement() bool { return c.Inflow != MovementNone }

// AllowsMovement reports whether m is legal for this kind.
func (c Config) AllowsMovement(m MovementType) bool {
	if !c.HasMovement() {
		return m == MovementNone
	}
	return m == c.Inflow || m == c.Outflow
}

// =============================================================================
// KIND REGISTRY
// =============================================================================

var configs = map[Kind]Config{
	KindPatient:  {Kind: KindPatient, Scoped: true, Inflow: Credit, Outflow: Debit},
	KindBank:     {Kind: KindBank, Scoped: true, Inflow: Credit, Outflow: Debit},
	KindDoctor:   {Kind: KindDoctor, Scoped: true, Inflow: Credit, Outflow: Debit},
	KindSupplier: {Kind: KindSupplier, Scoped: true, Inflow: Credit, Outflow: Debit},
	KindCash:     {Kind: KindCash, Inflow: Income, Outflow: Expense},
	KindPharmacy: {Kind: KindPharmacy, Inflow: Income, Outflow: Expense, HasCategory: true},
	KindExpense:  {Kind: KindExpense, HasCategory: true},
}

// Kinds returns all registered ledger kinds in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindPatient, KindBank, KindCash, KindDoctor,
		KindSupplier, KindPharmacy, KindExpense,
	}
}

// ConfigFor returns the configuration for a kind.
// The second return is false for an unknown kind.
func ConfigFor(kind Kind) (Config, bool) {
	cfg, ok := configs[kind]
	return cfg, ok
}

// ParseKind converts a URL/string kind into a Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := configs[k]
	return k, ok
}
