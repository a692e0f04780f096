/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

ENVELOPE:
  Every response is wrapped uniformly:

    {"success": true, "message": "...", "data": {...}}

  Errors use the same envelope with success=false and no data.

NAMING CONVENTION:
  - *DTO:     Response types returned to clients
  - *Request: Request body types from clients

AMOUNTS:
  Monetary fields are decimal.Decimal end to end; they marshal as quoted
  decimal strings and unmarshal from either strings or JSON numbers.

DATES:
  Entry/claim/report dates travel as "YYYY-MM-DD".

SEE ALSO:
  - handlers.go: Ledger handlers using these types
  - lifecycle.go: Bed/claim/x-ray handlers
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/medgrid/hospital-finance/billing"
	"github.com/medgrid/hospital-finance/insurance"
	"github.com/medgrid/hospital-finance/ledger"
	"github.com/medgrid/hospital-finance/ward"
)

const dateLayout = "2006-01-02"

// =============================================================================
// ENVELOPE
// =============================================================================

// Envelope is the uniform response wrapper.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// =============================================================================
// LEDGER ENTRIES
// =============================================================================

// EntryRequest is the create/update body for a ledger entry.
type EntryRequest struct {
	ScopeKey      string          `json:"scope_key,omitempty"`
	Date          string          `json:"date"`
	Movement      string          `json:"movement,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	PaymentMode   string          `json:"payment_mode,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Remarks       string          `json:"remarks,omitempty"`
}

// EntryDTO represents a ledger entry in API responses.
type EntryDTO struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	ScopeKey      string          `json:"scope_key,omitempty"`
	Date          string          `json:"date"`
	Movement      string          `json:"movement,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	PaymentMode   string          `json:"payment_mode,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Remarks       string          `json:"remarks,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty"`
}

func toEntryDTO(e ledger.Entry) EntryDTO {
	return EntryDTO{
		ID:            e.ID,
		Kind:          string(e.Kind),
		ScopeKey:      e.ScopeKey,
		Date:          e.Date.Format(dateLayout),
		Movement:      string(e.Movement),
		Amount:        e.Amount,
		Category:      e.Category,
		Description:   e.Description,
		PaymentMode:   e.PaymentMode,
		TransactionID: e.TransactionID,
		Remarks:       e.Remarks,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}

func toEntryDTOs(entries []ledger.Entry) []EntryDTO {
	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toEntryDTO(e))
	}
	return dtos
}

// BalanceDTO is the result of a balance/outstanding query.
type BalanceDTO struct {
	Kind     string          `json:"kind"`
	ScopeKey string          `json:"scope_key,omitempty"`
	Balance  decimal.Decimal `json:"balance"`
}

// GroupTotalDTO is one row of a ledger summary.
type GroupTotalDTO struct {
	Key      string          `json:"key"`
	Movement string          `json:"movement,omitempty"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// SummaryDTO is the full reporting view of one ledger kind.
type SummaryDTO struct {
	Kind         string          `json:"kind"`
	Groups       []GroupTotalDTO `json:"groups"`
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	Net          decimal.Decimal `json:"net"`
	EntryCount   int             `json:"entry_count"`
}

func toSummaryDTO(s ledger.Summary) SummaryDTO {
	groups := make([]GroupTotalDTO, 0, len(s.Groups))
	for _, g := range s.Groups {
		groups = append(groups, GroupTotalDTO{
			Key:      g.Key,
			Movement: string(g.Movement),
			Total:    g.Total,
			Count:    g.Count,
		})
	}
	return SummaryDTO{
		Kind:         string(s.Kind),
		Groups:       groups,
		TotalInflow:  s.TotalInflow,
		TotalOutflow: s.TotalOutflow,
		Net:          s.Net,
		EntryCount:   s.EntryCount,
	}
}

// =============================================================================
// BED ASSIGNMENTS
// =============================================================================

// BedRequest is the create/update body for a bed assignment.
type BedRequest struct {
	WardNumber    string  `json:"ward_number"`
	BedNumber     string  `json:"bed_number"`
	PatientName   string  `json:"patient_name"`
	AllocateDate  string  `json:"allocate_date,omitempty"`
	DischargeDate *string `json:"discharge_date,omitempty"`
	Status        string  `json:"status,omitempty"`
}

// DischargeRequest optionally overrides the discharge date.
type DischargeRequest struct {
	Date string `json:"date,omitempty"`
}

// BedDTO represents a bed assignment in API responses.
type BedDTO struct {
	ID            string `json:"id"`
	WardNumber    string `json:"ward_number"`
	BedNumber     string `json:"bed_number"`
	PatientName   string `json:"patient_name"`
	AllocateDate  string `json:"allocate_date"`
	DischargeDate string `json:"discharge_date,omitempty"`
	Status        string `json:"status"`
}

func toBedDTO(a ward.Assignment) BedDTO {
	dto := BedDTO{
		ID:           a.ID,
		WardNumber:   a.WardNumber,
		BedNumber:    a.BedNumber,
		PatientName:  a.PatientName,
		AllocateDate: a.AllocateDate.Format(dateLayout),
		Status:       string(a.Status),
	}
	if a.DischargeDate != nil {
		dto.DischargeDate = a.DischargeDate.Format(dateLayout)
	}
	return dto
}

// =============================================================================
// INSURANCE CLAIMS
// =============================================================================

// ClaimRequest is the create/update body for an insurance claim.
type ClaimRequest struct {
	PatientName    string           `json:"patient_name"`
	Company        string           `json:"tpa_insurance_company"`
	ClaimAmount    decimal.Decimal  `json:"claim_amount"`
	ApprovedAmount *decimal.Decimal `json:"approved_amount,omitempty"`
	SettledAmount  *decimal.Decimal `json:"settled_amount,omitempty"`
	Status         string           `json:"status,omitempty"`
	ClaimDate      string           `json:"claim_date,omitempty"`
}

// ClaimDTO represents an insurance claim in API responses.
type ClaimDTO struct {
	ID             string           `json:"id"`
	PatientName    string           `json:"patient_name"`
	Company        string           `json:"tpa_insurance_company"`
	ClaimAmount    decimal.Decimal  `json:"claim_amount"`
	ApprovedAmount *decimal.Decimal `json:"approved_amount,omitempty"`
	SettledAmount  *decimal.Decimal `json:"settled_amount,omitempty"`
	Status         string           `json:"status"`
	ClaimDate      string           `json:"claim_date"`
	ApprovalDate   string           `json:"approval_date,omitempty"`
	SettlementDate string           `json:"settlement_date,omitempty"`
}

func toClaimDTO(c insurance.Claim) ClaimDTO {
	dto := ClaimDTO{
		ID:             c.ID,
		PatientName:    c.PatientName,
		Company:        c.Company,
		ClaimAmount:    c.ClaimAmount,
		ApprovedAmount: c.ApprovedAmount,
		SettledAmount:  c.SettledAmount,
		Status:         string(c.Status),
		ClaimDate:      c.ClaimDate.Format(dateLayout),
	}
	if c.ApprovalDate != nil {
		dto.ApprovalDate = c.ApprovalDate.Format(dateLayout)
	}
	if c.SettlementDate != nil {
		dto.SettlementDate = c.SettlementDate.Format(dateLayout)
	}
	return dto
}

// ClaimSummaryDTO is the claim ledger's reporting view.
type ClaimSummaryDTO struct {
	Companies     []CompanyTotalDTO `json:"companies"`
	TotalClaimed  decimal.Decimal   `json:"total_claimed"`
	TotalApproved decimal.Decimal   `json:"total_approved"`
	TotalSettled  decimal.Decimal   `json:"total_settled"`
	ClaimCount    int               `json:"claim_count"`
	PendingCount  int               `json:"pending_count"`
	SettledCount  int               `json:"settled_count"`
}

// CompanyTotalDTO is one per-company row of the claim summary.
type CompanyTotalDTO struct {
	Company    string          `json:"company"`
	Claimed    decimal.Decimal `json:"claimed"`
	Approved   decimal.Decimal `json:"approved"`
	Settled    decimal.Decimal `json:"settled"`
	ClaimCount int             `json:"claim_count"`
}

func toClaimSummaryDTO(s insurance.Summary) ClaimSummaryDTO {
	companies := make([]CompanyTotalDTO, 0, len(s.Companies))
	for _, c := range s.Companies {
		companies = append(companies, CompanyTotalDTO{
			Company:    c.Company,
			Claimed:    c.Claimed,
			Approved:   c.Approved,
			Settled:    c.Settled,
			ClaimCount: c.ClaimCount,
		})
	}
	return ClaimSummaryDTO{
		Companies:     companies,
		TotalClaimed:  s.TotalClaimed,
		TotalApproved: s.TotalApproved,
		TotalSettled:  s.TotalSettled,
		ClaimCount:    s.ClaimCount,
		PendingCount:  s.PendingCount,
		SettledCount:  s.SettledCount,
	}
}

// =============================================================================
// X-RAY REPORTS
// =============================================================================

// XrayRequest is the create/update body for an X-ray report.
type XrayRequest struct {
	PatientName       string          `json:"patient_name"`
	DoctorName        string          `json:"doctor_name,omitempty"`
	TestName          string          `json:"test_name,omitempty"`
	Date              string          `json:"date,omitempty"`
	BillAmount        decimal.Decimal `json:"bill_amount"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
	NetBillAmount     decimal.Decimal `json:"net_bill_amount"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	DoctorEarning     decimal.Decimal `json:"doctor_earning"`
	Remarks           string          `json:"remarks,omitempty"`
}

// XrayDTO represents an X-ray report in API responses.
type XrayDTO struct {
	ID                string          `json:"id"`
	PatientName       string          `json:"patient_name"`
	DoctorName        string          `json:"doctor_name,omitempty"`
	TestName          string          `json:"test_name,omitempty"`
	Date              string          `json:"date"`
	BillAmount        decimal.Decimal `json:"bill_amount"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
	NetBillAmount     decimal.Decimal `json:"net_bill_amount"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	DoctorEarning     decimal.Decimal `json:"doctor_earning"`
	Remarks           string          `json:"remarks,omitempty"`
}

func toXrayDTO(r billing.Report) XrayDTO {
	return XrayDTO{
		ID:                r.ID,
		PatientName:       r.PatientName,
		DoctorName:        r.DoctorName,
		TestName:          r.TestName,
		Date:              r.Date.Format(dateLayout),
		BillAmount:        r.BillAmount,
		DiscountPercent:   r.DiscountPercent,
		NetBillAmount:     r.NetBillAmount,
		CommissionPercent: r.CommissionPercent,
		DoctorEarning:     r.DoctorEarning,
		Remarks:           r.Remarks,
	}
}

// XraySummaryDTO is the diagnostics billing roll-up.
type XraySummaryDTO struct {
	TotalBilled   decimal.Decimal `json:"total_billed"`
	TotalNet      decimal.Decimal `json:"total_net"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
	ReportCount   int             `json:"report_count"`
}
