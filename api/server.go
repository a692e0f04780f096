/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Structured request logging (zerolog)
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the admin frontend

ROUTE GROUPS:
  /api/ledgers/{kind}/*   The seven movement ledgers
  /api/beds/*             Bed assignment lifecycle
  /api/claims/*           Insurance claim lifecycle
  /api/xray-reports/*     Diagnostics billing
  /api/scenarios/*        Demo data (dev only)

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Ledger handler implementations
  - lifecycle.go: Bed/claim/x-ray handlers
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Movement ledgers. {kind} is one of: patient, bank, cash, doctor,
		// supplier, pharmacy, expense.
		r.Route("/ledgers/{kind}", func(r chi.Router) {
			r.Get("/", h.ListEntries)
			r.Post("/", h.CreateEntry)
			r.Get("/balance", h.GetBalance)
			r.Get("/summary", h.GetSummary)
			r.Get("/{id}", h.GetEntry)
			r.Put("/{id}", h.UpdateEntry)
			r.Delete("/{id}", h.DeleteEntry)
		})

		// Bed assignments
		r.Route("/beds", func(r chi.Router) {
			r.Get("/", h.ListBeds)
			r.Post("/", h.AssignBed)
			r.Get("/{id}", h.GetBed)
			r.Put("/{id}", h.UpdateBed)
			r.Post("/{id}/discharge", h.DischargeBed)
			r.Delete("/{id}", h.DeleteBed)
		})

		// Insurance claims
		r.Route("/claims", func(r chi.Router) {
			r.Get("/", h.ListClaims)
			r.Post("/", h.FileClaim)
			r.Get("/summary", h.ClaimSummary)
			r.Get("/outstanding", h.ClaimOutstanding)
			r.Get("/{id}", h.GetClaim)
			r.Put("/{id}", h.UpdateClaim)
			r.Delete("/{id}", h.DeleteClaim)
		})

		// X-ray reports
		r.Route("/xray-reports", func(r chi.Router) {
			r.Get("/", h.ListXrays)
			r.Post("/", h.CreateXray)
			r.Get("/summary", h.XraySummary)
			r.Get("/{id}", h.GetXray)
			r.Put("/{id}", h.UpdateXray)
			r.Delete("/{id}", h.DeleteXray)
		})

		// Demo scenarios
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}

// requestLogger logs one line per request with method, path, status, and
// elapsed time.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Str("request_id", middleware.GetReqID(r.Context())).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
