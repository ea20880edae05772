// Package api exposes the cost sheet engine, the editable rate tables and stored proposals
// over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Simplici0/costsheet/internal/costsheet"
	"github.com/Simplici0/costsheet/internal/store"
)

// RateRepository is the rate table storage used by the handlers.
type RateRepository interface {
	Active(ctx context.Context, regime costsheet.Regime) (store.RateRecord, error)
	Put(ctx context.Context, regime costsheet.Regime, rates costsheet.RateTable) (store.RateRecord, error)
	Update(ctx context.Context, regime costsheet.Regime, fn func(costsheet.RateTable) (costsheet.RateTable, error)) (store.RateRecord, error)
	Reset(ctx context.Context, regime costsheet.Regime) (store.RateRecord, error)
}

// ProposalRepository is the proposal storage used by the handlers.
type ProposalRepository interface {
	Save(ctx context.Context, p *store.Proposal) error
	Get(ctx context.Context, id uuid.UUID) (store.Proposal, error)
	List(ctx context.Context, query string) ([]store.ProposalSummary, error)
}

// Options configures a Handler.
type Options struct {
	// AdminToken guards write endpoints. Empty leaves them open.
	AdminToken            string
	DefaultRegime         costsheet.Regime
	DefaultContractMonths int
}

type Handler struct {
	rates     RateRepository
	proposals ProposalRepository
	opts      Options
	now       func() time.Time
}

func New(rates RateRepository, proposals ProposalRepository, opts Options) *Handler {
	if !opts.DefaultRegime.Valid() {
		opts.DefaultRegime = costsheet.RegimeRealProfit
	}
	if opts.DefaultContractMonths < 1 {
		opts.DefaultContractMonths = costsheet.DefaultContractMonths
	}
	return &Handler{rates: rates, proposals: proposals, opts: opts, now: time.Now}
}

// Register mounts every route on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/regimes", h.handleRegimes)
		r.Get("/rates/{regime}", h.handleGetRates)
		r.Post("/calculate", h.handleCalculate)
		r.Get("/proposals", h.handleListProposals)
		r.Get("/proposals/{id}", h.handleGetProposal)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Put("/rates/{regime}", h.handlePutRates)
			r.Patch("/rates/{regime}", h.handlePatchRates)
			r.Post("/rates/{regime}/reset", h.handleResetRates)
			r.Post("/proposals", h.handleCreateProposal)
		})
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
