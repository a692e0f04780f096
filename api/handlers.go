/*
handlers.go - HTTP API handlers for the hospital finance backend

PURPOSE:
  Exposes the financial engine via REST. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS (ledger kinds):
  POST   /api/ledgers/{kind}              Record an entry
  GET    /api/ledgers/{kind}              Filtered history (newest first)
  GET    /api/ledgers/{kind}/balance      Balance/outstanding for a scope
  GET    /api/ledgers/{kind}/summary      Grouped + global totals
  GET    /api/ledgers/{kind}/{id}         Get one entry
  PUT    /api/ledgers/{kind}/{id}         Correction update
  DELETE /api/ledgers/{kind}/{id}         Hard delete

  Lifecycle endpoints (beds, claims, x-ray) live in lifecycle.go.

REQUEST FLOW:
  1. Parse HTTP request
  2. Decode and convert the DTO
  3. Call domain logic (engine, service)
  4. Wrap the result in the {success, message, data} envelope
  5. Map errors to status codes

ERROR HANDLING:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 409: Conflict (illegal state transition, double discharge)
  - 422: Billing arithmetic mismatch
  - 500: Unclassified store failures (logged, detail never exposed)

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/medgrid/hospital-finance/billing"
	"github.com/medgrid/hospital-finance/insurance"
	"github.com/medgrid/hospital-finance/ledger"
	"github.com/medgrid/hospital-finance/store/sqlite"
	"github.com/medgrid/hospital-finance/ward"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Engines map[ledger.Kind]*ledger.Engine
	Beds    *ward.Service
	Claims  *insurance.Service
	Xray    *billing.Service

	log zerolog.Logger
}

// NewHandler wires one engine per ledger kind plus the lifecycle services
// over a shared store.
func NewHandler(store *sqlite.Store, log zerolog.Logger) *Handler {
	engines := make(map[ledger.Kind]*ledger.Engine, len(ledger.Kinds()))
	for _, kind := range ledger.Kinds() {
		cfg, _ := ledger.ConfigFor(kind)
		engines[kind] = ledger.NewEngine(store, cfg)
	}
	return &Handler{
		Store:   store,
		Engines: engines,
		Beds:    ward.NewService(store),
		Claims:  insurance.NewService(store),
		Xray:    billing.NewService(store),
		log:     log,
	}
}

// engine resolves the URL kind parameter to an engine.
func (h *Handler) engine(r *http.Request) (*ledger.Engine, bool) {
	kind, ok := ledger.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		return nil, false
	}
	return h.Engines[kind], true
}

// =============================================================================
// LEDGER HANDLERS
// =============================================================================

// CreateEntry records a new ledger entry.
// POST /api/ledgers/{kind}
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.engine(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown ledger kind", nil)
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := entryFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	created, err := eng.Record(r.Context(), entry)
	if err != nil {
		h.writeDomainError(w, "Failed to record entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, "Entry recorded", toEntryDTO(created))
}

// ListEntries returns a filtered history, most recent first.
// GET /api/ledgers/{kind}?start_date=&end_date=&scope=&type=&category=
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.engine(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown ledger kind", nil)
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	entries, err := eng.Entries(r.Context(), filter)
	if err != nil {
		h.writeDomainError(w, "Failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, "Entries fetched", toEntryDTOs(entries))
}

// GetEntry returns a single entry.
// GET /api/ledgers/{kind}/{id}
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.engine(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown ledger kind", nil)
		return
	}

	entry, err := eng.Entry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get entry", err)
		return
	}

	writeJSON(w, http.StatusOK, "Entry fetched", toEntryDTO(entry))
}

// UpdateEntry applies a correction update.
// PUT /api/ledgers/{kind}/{id}
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.engine(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown ledger kind", nil)
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := entryFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	entry.ID = chi.URLParam(r, "id")

	updated, err := eng.Correct(r.Context(), entry)
	if err != nil {
		h.writeDomainError(w, "Failed to update entry", err)
		return
	}

	writeJSON(w, http.StatusOK, "Entry updated", toEntryDTO(updated))
}

// DeleteEntry removes an entry outright.
// DELETE /api/ledgers/{kind}/{id}
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.engine(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown ledger kind", nil)
		return
	}

	if err := eng.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, "Failed to delete entry", err)
		return
	}

	writeJSON(w, http.StatusOK, "Entry deleted", nil)
}

// GetBalance returns the signed balance for a scope key. An unknown scope
// is an empty fold and returns zero, not 404.
// GET /api/ledgers/{kind}/balance?scope=Asha
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.engine(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown ledger kind", nil)
		return
	}

	scope := r.URL.Query().Get("scope")
	balance, err := eng.Balance(r.Context(), scope)
	if err != nil {
		h.writeDomainError(w, "Failed to compute balance", err)
		return
	}

	writeJSON(w, http.StatusOK, "Balance computed", BalanceDTO{
		Kind:     string(eng.Config().Kind),
		ScopeKey: scope,
		Balance:  balance,
	})
}

// GetSummary returns grouped totals plus the independent global split.
// GET /api/ledgers/{kind}/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.engine(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown ledger kind", nil)
		return
	}

	summary, err := eng.Summary(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to compute summary", err)
		return
	}

	writeJSON(w, http.StatusOK, "Summary computed", toSummaryDTO(summary))
}

// =============================================================================
// REQUEST CONVERSION
// =============================================================================

func entryFromRequest(req EntryRequest) (ledger.Entry, error) {
	var date time.Time
	if req.Date != "" {
		var err error
		if date, err = time.Parse(dateLayout, req.Date); err != nil {
			return ledger.Entry{}, err
		}
	}
	return ledger.Entry{
		ScopeKey:      req.ScopeKey,
		Date:          date,
		Movement:      ledger.MovementType(req.Movement),
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		PaymentMode:   req.PaymentMode,
		TransactionID: req.TransactionID,
		Remarks:       req.Remarks,
	}, nil
}

func filterFromQuery(r *http.Request) (ledger.Filter, error) {
	q := r.URL.Query()
	f := ledger.Filter{
		ScopeKey: q.Get("scope"),
		Movement: ledger.MovementType(q.Get("type")),
		Category: q.Get("category"),
	}

	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return ledger.Filter{}, err
		}
		f.From = &t
	}
	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return ledger.Filter{}, err
		}
		// Inclusive upper bound: cover the whole end day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.To = &t
	}
	return f, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Success: status < 400, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		message = message + ": " + err.Error()
	}
	writeJSON(w, status, message, nil)
}

// writeDomainError classifies a domain error into a status code. Only the
// caller-actionable classes carry the error detail; unclassified store
// failures are logged and answered with a generic message.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case isNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case isConflict(err):
		writeError(w, http.StatusConflict, message, err)
	case errors.Is(err, billing.ErrArithmeticMismatch):
		writeError(w, http.StatusUnprocessableEntity, message, err)
	case isValidation(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.log.Error().Err(err).Msg(message)
		writeError(w, http.StatusInternalServerError, message, nil)
	}
}

func isNotFound(err error) bool {
	return ledger.IsNotFound(err) ||
		errors.Is(err, ward.ErrNotFound) ||
		errors.Is(err, insurance.ErrNotFound) ||
		errors.Is(err, billing.ErrNotFound)
}

func isConflict(err error) bool {
	var wardTr *ward.TransitionError
	var claimTr *insurance.TransitionError
	return errors.Is(err, ward.ErrAlreadyExited) ||
		errors.Is(err, ward.ErrBedOccupied) ||
		errors.As(err, &wardTr) ||
		errors.As(err, &claimTr)
}

func isValidation(err error) bool {
	return ledger.IsValidation(err) ||
		errors.Is(err, ward.ErrInvalidStatus) ||
		errors.Is(err, ward.ErrDischargeDateMismatch) ||
		errors.Is(err, insurance.ErrInvalidStatus) ||
		errors.Is(err, insurance.ErrApprovedExceedsClaim) ||
		errors.Is(err, insurance.ErrSettledExceedsApproved) ||
		errors.Is(err, insurance.ErrAmountRequired) ||
		errors.Is(err, insurance.ErrNonPositiveClaim) ||
		errors.Is(err, billing.ErrNonPositiveBill)
}
