/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	hospital data for testing and demos. Each scenario resets the store
	and records entries through the same engines and services the API
	uses, so every demo row passes full validation.

AVAILABLE SCENARIOS:

	general-hospital: Entries across all seven ledgers, a bed assignment,
	                  a filed claim, and a verified x-ray report
	pharmacy-month:   One month of pharmacy sales and purchases by
	                  category, plus the expense ledger

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "general-hospital"}

NOTE:

	Scenarios reset the database. Only use in development/demo
	environments.

SEE ALSO:
  - server.go: Scenario routes
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medgrid/hospital-finance/billing"
	"github.com/medgrid/hospital-finance/insurance"
	"github.com/medgrid/hospital-finance/ledger"
	"github.com/medgrid/hospital-finance/ward"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

// ScenarioDTO describes one loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var scenarios = []ScenarioDTO{
	{
		ID:          "general-hospital",
		Name:        "General Hospital",
		Description: "All seven ledgers plus a bed, a claim, and an x-ray report",
	},
	{
		ID:          "pharmacy-month",
		Name:        "Pharmacy Month",
		Description: "One month of pharmacy sales/purchases by category with expenses",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Scenarios fetched", scenarios)
}

// LoadScenario resets the database and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "general-hospital":
		err = h.loadGeneralHospitalScenario(ctx)
	case "pharmacy-month":
		err = h.loadPharmacyMonthScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	writeJSON(w, http.StatusOK, "Scenario loaded", map[string]string{"scenario": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, "Database reset", nil)
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadGeneralHospitalScenario(ctx context.Context) error {
	day := func(d int) time.Time {
		return time.Date(time.Now().Year(), time.January, d, 0, 0, 0, 0, time.UTC)
	}
	amt := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	// Patient ledger: deposits against treatment charges.
	patientEntries := []ledger.Entry{
		{ScopeKey: "Asha Verma", Date: day(3), Movement: ledger.Credit, Amount: amt("500"), PaymentMode: "Cash", Description: "Admission deposit"},
		{ScopeKey: "Asha Verma", Date: day(5), Movement: ledger.Debit, Amount: amt("200"), Description: "Ward charges"},
		{ScopeKey: "Asha Verma", Date: day(9), Movement: ledger.Credit, Amount: amt("100"), PaymentMode: "UPI"},
		{ScopeKey: "Rohan Das", Date: day(4), Movement: ledger.Credit, Amount: amt("1500"), PaymentMode: "Card", Description: "Surgery advance"},
		{ScopeKey: "Rohan Das", Date: day(8), Movement: ledger.Debit, Amount: amt("1200"), Description: "Surgery charges"},
	}
	for _, e := range patientEntries {
		if _, err := h.Engines[ledger.KindPatient].Record(ctx, e); err != nil {
			return err
		}
	}

	// Bank ledger
	bankEntries := []ledger.Entry{
		{ScopeKey: "HDFC Current", Date: day(2), Movement: ledger.Credit, Amount: amt("50000"), Description: "Opening deposit"},
		{ScopeKey: "HDFC Current", Date: day(15), Movement: ledger.Debit, Amount: amt("12000"), TransactionID: "NEFT-4411", Description: "Equipment vendor payment"},
	}
	for _, e := range bankEntries {
		if _, err := h.Engines[ledger.KindBank].Record(ctx, e); err != nil {
			return err
		}
	}

	// Cash ledger
	cashEntries := []ledger.Entry{
		{Date: day(3), Movement: ledger.Income, Amount: amt("500"), Description: "OPD collections"},
		{Date: day(6), Movement: ledger.Expense, Amount: amt("150"), Description: "Stationery"},
	}
	for _, e := range cashEntries {
		if _, err := h.Engines[ledger.KindCash].Record(ctx, e); err != nil {
			return err
		}
	}

	// Doctor ledger: commissions owed vs paid.
	doctorEntries := []ledger.Entry{
		{ScopeKey: "Dr. Mehta", Date: day(7), Movement: ledger.Credit, Amount: amt("900"), Description: "Referral commission"},
		{ScopeKey: "Dr. Mehta", Date: day(20), Movement: ledger.Debit, Amount: amt("500"), PaymentMode: "Bank Transfer"},
	}
	for _, e := range doctorEntries {
		if _, err := h.Engines[ledger.KindDoctor].Record(ctx, e); err != nil {
			return err
		}
	}

	// Supplier ledger: purchases on credit vs payments.
	supplierEntries := []ledger.Entry{
		{ScopeKey: "MedSupply Co", Date: day(5), Movement: ledger.Debit, Amount: amt("8000"), Description: "Surgical consumables"},
		{ScopeKey: "MedSupply Co", Date: day(18), Movement: ledger.Credit, Amount: amt("5000"), PaymentMode: "Cheque"},
	}
	for _, e := range supplierEntries {
		if _, err := h.Engines[ledger.KindSupplier].Record(ctx, e); err != nil {
			return err
		}
	}

	// Pharmacy ledger
	pharmacyEntries := []ledger.Entry{
		{Date: day(4), Movement: ledger.Income, Amount: amt("700"), Category: "Antibiotics"},
		{Date: day(4), Movement: ledger.Expense, Amount: amt("500"), Category: "Antibiotics", Description: "Stock purchase"},
	}
	for _, e := range pharmacyEntries {
		if _, err := h.Engines[ledger.KindPharmacy].Record(ctx, e); err != nil {
			return err
		}
	}

	// Expense ledger
	expenseEntries := []ledger.Entry{
		{Date: day(10), Amount: amt("3500"), Category: "Electricity"},
		{Date: day(12), Amount: amt("2000"), Category: "Housekeeping"},
	}
	for _, e := range expenseEntries {
		if _, err := h.Engines[ledger.KindExpense].Record(ctx, e); err != nil {
			return err
		}
	}

	// Bed assignment
	if _, err := h.Beds.Assign(ctx, ward.Assignment{
		WardNumber:   "W-2",
		BedNumber:    "12",
		PatientName:  "Asha Verma",
		AllocateDate: day(3),
	}); err != nil {
		return err
	}

	// Insurance claim
	if _, err := h.Claims.File(ctx, insurance.Claim{
		PatientName: "Rohan Das",
		Company:     "MediAssist TPA",
		ClaimAmount: amt("15000"),
		ClaimDate:   day(9),
	}); err != nil {
		return err
	}

	// X-ray report: 1000 gross, 10% discount, 15% commission.
	_, err := h.Xray.Create(ctx, billing.Report{
		PatientName:       "Asha Verma",
		DoctorName:        "Dr. Mehta",
		TestName:          "Chest X-Ray",
		Date:              day(6),
		BillAmount:        amt("1000"),
		DiscountPercent:   amt("10"),
		NetBillAmount:     amt("900"),
		CommissionPercent: amt("15"),
		DoctorEarning:     amt("135"),
	})
	return err
}

func (h *Handler) loadPharmacyMonthScenario(ctx context.Context) error {
	day := func(d int) time.Time {
		return time.Date(time.Now().Year(), time.March, d, 0, 0, 0, 0, time.UTC)
	}
	amt := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	pharmacyEntries := []ledger.Entry{
		{Date: day(1), Movement: ledger.Expense, Amount: amt("4200"), Category: "Antibiotics", Description: "Monthly stock"},
		{Date: day(1), Movement: ledger.Expense, Amount: amt("1800"), Category: "Analgesics", Description: "Monthly stock"},
		{Date: day(5), Movement: ledger.Income, Amount: amt("1600"), Category: "Antibiotics"},
		{Date: day(12), Movement: ledger.Income, Amount: amt("2100"), Category: "Antibiotics"},
		{Date: day(14), Movement: ledger.Income, Amount: amt("950"), Category: "Analgesics"},
		{Date: day(21), Movement: ledger.Income, Amount: amt("1400"), Category: "Antibiotics"},
		{Date: day(27), Movement: ledger.Income, Amount: amt("780"), Category: "Analgesics"},
	}
	for _, e := range pharmacyEntries {
		if _, err := h.Engines[ledger.KindPharmacy].Record(ctx, e); err != nil {
			return err
		}
	}

	expenseEntries := []ledger.Entry{
		{Date: day(8), Amount: amt("1200"), Category: "Refrigeration"},
		{Date: day(15), Amount: amt("600"), Category: "Packaging"},
	}
	for _, e := range expenseEntries {
		if _, err := h.Engines[ledger.KindExpense].Record(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
