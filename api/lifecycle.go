/*
lifecycle.go - HTTP handlers for bed assignments, insurance claims, and
X-ray reports

ENDPOINTS:
  POST   /api/beds                       Assign a bed (starts Active)
  GET    /api/beds                       List assignments (?active=true)
  GET    /api/beds/{id}                  Get one assignment
  PUT    /api/beds/{id}                  Correction update
  POST   /api/beds/{id}/discharge        Discharge (conflict if exited)
  DELETE /api/beds/{id}                  Hard delete

  POST   /api/claims                     File a claim (starts Pending)
  GET    /api/claims                     List claims
  GET    /api/claims/summary             Per-company + global totals
  GET    /api/claims/outstanding         Claimed minus settled (?company=)
  GET    /api/claims/{id}                Get one claim
  PUT    /api/claims/{id}                Lifecycle step / correction
  DELETE /api/claims/{id}                Hard delete

  POST   /api/xray-reports               Create (arithmetic verified)
  GET    /api/xray-reports               List reports
  GET    /api/xray-reports/summary       Billing roll-up
  GET    /api/xray-reports/{id}          Get one report
  PUT    /api/xray-reports/{id}          Correction update
  DELETE /api/xray-reports/{id}          Hard delete

SEE ALSO:
  - handlers.go: Ledger handlers, error classification
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medgrid/hospital-finance/billing"
	"github.com/medgrid/hospital-finance/insurance"
	"github.com/medgrid/hospital-finance/ward"
)

// =============================================================================
// BED ASSIGNMENTS
// =============================================================================

// AssignBed creates a bed assignment.
// POST /api/beds
func (h *Handler) AssignBed(w http.ResponseWriter, r *http.Request) {
	var req BedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	a, err := assignmentFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	created, err := h.Beds.Assign(r.Context(), a)
	if err != nil {
		h.writeDomainError(w, "Failed to assign bed", err)
		return
	}

	writeJSON(w, http.StatusCreated, "Bed assigned", toBedDTO(created))
}

// ListBeds lists assignments. ?active=true restricts to occupied beds.
// GET /api/beds?ward=&bed=&active=
func (h *Handler) ListBeds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := ward.Filter{
		WardNumber: q.Get("ward"),
		BedNumber:  q.Get("bed"),
		ActiveOnly: q.Get("active") == "true",
	}

	assignments, err := h.Beds.Assignments(r.Context(), f)
	if err != nil {
		h.writeDomainError(w, "Failed to list bed assignments", err)
		return
	}

	dtos := make([]BedDTO, 0, len(assignments))
	for _, a := range assignments {
		dtos = append(dtos, toBedDTO(a))
	}
	writeJSON(w, http.StatusOK, "Bed assignments fetched", dtos)
}

// GetBed returns one assignment.
// GET /api/beds/{id}
func (h *Handler) GetBed(w http.ResponseWriter, r *http.Request) {
	a, err := h.Beds.Assignment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get bed assignment", err)
		return
	}
	writeJSON(w, http.StatusOK, "Bed assignment fetched", toBedDTO(a))
}

// UpdateBed applies a correction update.
// PUT /api/beds/{id}
func (h *Handler) UpdateBed(w http.ResponseWriter, r *http.Request) {
	var req BedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	a, err := assignmentFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	a.ID = chi.URLParam(r, "id")

	updated, err := h.Beds.Update(r.Context(), a)
	if err != nil {
		h.writeDomainError(w, "Failed to update bed assignment", err)
		return
	}
	writeJSON(w, http.StatusOK, "Bed assignment updated", toBedDTO(updated))
}

// DischargeBed moves an Active assignment to Discharged.
// POST /api/beds/{id}/discharge
func (h *Handler) DischargeBed(w http.ResponseWriter, r *http.Request) {
	var req DischargeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	var date *time.Time
	if req.Date != "" {
		t, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		date = &t
	}

	a, err := h.Beds.Discharge(r.Context(), chi.URLParam(r, "id"), date)
	if err != nil {
		h.writeDomainError(w, "Failed to discharge patient", err)
		return
	}
	writeJSON(w, http.StatusOK, "Patient discharged", toBedDTO(a))
}

// DeleteBed removes an assignment outright.
// DELETE /api/beds/{id}
func (h *Handler) DeleteBed(w http.ResponseWriter, r *http.Request) {
	if err := h.Beds.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, "Failed to delete bed assignment", err)
		return
	}
	writeJSON(w, http.StatusOK, "Bed assignment deleted", nil)
}

func assignmentFromRequest(req BedRequest) (ward.Assignment, error) {
	a := ward.Assignment{
		WardNumber:  req.WardNumber,
		BedNumber:   req.BedNumber,
		PatientName: req.PatientName,
		Status:      ward.Status(req.Status),
	}
	if req.AllocateDate != "" {
		t, err := time.Parse(dateLayout, req.AllocateDate)
		if err != nil {
			return ward.Assignment{}, err
		}
		a.AllocateDate = t
	}
	if req.DischargeDate != nil && *req.DischargeDate != "" {
		t, err := time.Parse(dateLayout, *req.DischargeDate)
		if err != nil {
			return ward.Assignment{}, err
		}
		a.DischargeDate = &t
	}
	return a, nil
}

// =============================================================================
// INSURANCE CLAIMS
// =============================================================================

// FileClaim registers a new claim.
// POST /api/claims
func (h *Handler) FileClaim(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	c, err := claimFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	created, err := h.Claims.File(r.Context(), c)
	if err != nil {
		h.writeDomainError(w, "Failed to file claim", err)
		return
	}
	writeJSON(w, http.StatusCreated, "Claim filed", toClaimDTO(created))
}

// ListClaims lists claims matching the query filters.
// GET /api/claims?patient=&company=&status=&start_date=&end_date=
func (h *Handler) ListClaims(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := insurance.Filter{
		PatientName: q.Get("patient"),
		Company:     q.Get("company"),
		Status:      insurance.Status(q.Get("status")),
	}

	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		f.From = &t
	}
	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.To = &t
	}

	claims, err := h.Claims.Claims(r.Context(), f)
	if err != nil {
		h.writeDomainError(w, "Failed to list claims", err)
		return
	}

	dtos := make([]ClaimDTO, 0, len(claims))
	for _, c := range claims {
		dtos = append(dtos, toClaimDTO(c))
	}
	writeJSON(w, http.StatusOK, "Claims fetched", dtos)
}

// GetClaim returns one claim.
// GET /api/claims/{id}
func (h *Handler) GetClaim(w http.ResponseWriter, r *http.Request) {
	c, err := h.Claims.Claim(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get claim", err)
		return
	}
	writeJSON(w, http.StatusOK, "Claim fetched", toClaimDTO(c))
}

// UpdateClaim applies a lifecycle step or correction.
// PUT /api/claims/{id}
func (h *Handler) UpdateClaim(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	c, err := claimFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	c.ID = chi.URLParam(r, "id")

	updated, err := h.Claims.Update(r.Context(), c)
	if err != nil {
		h.writeDomainError(w, "Failed to update claim", err)
		return
	}
	writeJSON(w, http.StatusOK, "Claim updated", toClaimDTO(updated))
}

// DeleteClaim removes a claim outright.
// DELETE /api/claims/{id}
func (h *Handler) DeleteClaim(w http.ResponseWriter, r *http.Request) {
	if err := h.Claims.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, "Failed to delete claim", err)
		return
	}
	writeJSON(w, http.StatusOK, "Claim deleted", nil)
}

// ClaimSummary returns per-company and global claim totals.
// GET /api/claims/summary
func (h *Handler) ClaimSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Claims.Summary(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to compute claim summary", err)
		return
	}
	writeJSON(w, http.StatusOK, "Claim summary computed", toClaimSummaryDTO(summary))
}

// ClaimOutstanding returns claimed minus settled, optionally per company.
// GET /api/claims/outstanding?company=MediAssist
func (h *Handler) ClaimOutstanding(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	outstanding, err := h.Claims.Outstanding(r.Context(), company)
	if err != nil {
		h.writeDomainError(w, "Failed to compute outstanding", err)
		return
	}
	writeJSON(w, http.StatusOK, "Outstanding computed", map[string]any{
		"company":     company,
		"outstanding": outstanding,
	})
}

func claimFromRequest(req ClaimRequest) (insurance.Claim, error) {
	c := insurance.Claim{
		PatientName:    req.PatientName,
		Company:        req.Company,
		ClaimAmount:    req.ClaimAmount,
		ApprovedAmount: req.ApprovedAmount,
		SettledAmount:  req.SettledAmount,
		Status:         insurance.Status(req.Status),
	}
	if req.ClaimDate != "" {
		t, err := time.Parse(dateLayout, req.ClaimDate)
		if err != nil {
			return insurance.Claim{}, err
		}
		c.ClaimDate = t
	}
	return c, nil
}

// =============================================================================
// X-RAY REPORTS
// =============================================================================

// CreateXray creates a report after arithmetic verification.
// POST /api/xray-reports
func (h *Handler) CreateXray(w http.ResponseWriter, r *http.Request) {
	var req XrayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report, err := reportFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	created, err := h.Xray.Create(r.Context(), report)
	if err != nil {
		h.writeDomainError(w, "Failed to create x-ray report", err)
		return
	}
	writeJSON(w, http.StatusCreated, "X-ray report created", toXrayDTO(created))
}

// ListXrays lists reports matching the query filters.
// GET /api/xray-reports?patient=&doctor=&start_date=&end_date=
func (h *Handler) ListXrays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := billing.Filter{
		PatientName: q.Get("patient"),
		DoctorName:  q.Get("doctor"),
	}

	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		f.From = &t
	}
	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.To = &t
	}

	reports, err := h.Xray.Reports(r.Context(), f)
	if err != nil {
		h.writeDomainError(w, "Failed to list x-ray reports", err)
		return
	}

	dtos := make([]XrayDTO, 0, len(reports))
	for _, rep := range reports {
		dtos = append(dtos, toXrayDTO(rep))
	}
	writeJSON(w, http.StatusOK, "X-ray reports fetched", dtos)
}

// GetXray returns one report.
// GET /api/xray-reports/{id}
func (h *Handler) GetXray(w http.ResponseWriter, r *http.Request) {
	report, err := h.Xray.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get x-ray report", err)
		return
	}
	writeJSON(w, http.StatusOK, "X-ray report fetched", toXrayDTO(report))
}

// UpdateXray applies a correction update; arithmetic is re-verified.
// PUT /api/xray-reports/{id}
func (h *Handler) UpdateXray(w http.ResponseWriter, r *http.Request) {
	var req XrayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report, err := reportFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	report.ID = chi.URLParam(r, "id")

	updated, err := h.Xray.Update(r.Context(), report)
	if err != nil {
		h.writeDomainError(w, "Failed to update x-ray report", err)
		return
	}
	writeJSON(w, http.StatusOK, "X-ray report updated", toXrayDTO(updated))
}

// DeleteXray removes a report outright.
// DELETE /api/xray-reports/{id}
func (h *Handler) DeleteXray(w http.ResponseWriter, r *http.Request) {
	if err := h.Xray.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, "Failed to delete x-ray report", err)
		return
	}
	writeJSON(w, http.StatusOK, "X-ray report deleted", nil)
}

func reportFromRequest(req XrayRequest) (billing.Report, error) {
	report := billing.Report{
		PatientName:       req.PatientName,
		DoctorName:        req.DoctorName,
		TestName:          req.TestName,
		BillAmount:        req.BillAmount,
		DiscountPercent:   req.DiscountPercent,
		NetBillAmount:     req.NetBillAmount,
		CommissionPercent: req.CommissionPercent,
		DoctorEarning:     req.DoctorEarning,
		Remarks:           req.Remarks,
	}
	if req.Date != "" {
		t, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return billing.Report{}, err
		}
		report.Date = t
	}
	return report, nil
}

// XraySummary returns the diagnostics billing roll-up.
// GET /api/xray-reports/summary
func (h *Handler) XraySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Xray.Summary(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to compute x-ray summary", err)
		return
	}
	writeJSON(w, http.StatusOK, "X-ray summary computed", XraySummaryDTO{
		TotalBilled:   summary.TotalBilled,
		TotalNet:      summary.TotalNet,
		TotalEarnings: summary.TotalEarnings,
		ReportCount:   summary.ReportCount,
	})
}
