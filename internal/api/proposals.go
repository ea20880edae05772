package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Simplici0/costsheet/internal/costsheet"
	"github.com/Simplici0/costsheet/internal/store"
)

type createProposalRequest struct {
	calculateRequest
	Title string `json:"title"`
	Notes string `json:"notes"`
}

type createProposalResponse struct {
	Calculation Calculation    `json:"calculation"`
	Proposal    store.Proposal `json:"proposal"`
}

func (h *Handler) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	var req createProposalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}

	params, err := h.params(r.Context(), req.calculateRequest)
	if err != nil {
		fail(w, err)
		return
	}

	services := req.Services
	if services == nil {
		services = []costsheet.ServiceInput{}
	}
	calc, result := h.compute(services, params)

	proposal := store.Proposal{
		CreatedAt: calc.CompletedAt,
		Title:     strings.TrimSpace(req.Title),
		Notes:     strings.TrimSpace(req.Notes),
		Params:    params,
		Services:  services,
		Result:    result,
	}
	if err := h.proposals.Save(r.Context(), &proposal); err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createProposalResponse{Calculation: calc, Proposal: proposal})
}

func (h *Handler) handleListProposals(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	proposals, err := h.proposals.List(r.Context(), query)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposals)
}

// handleGetProposal returns the stored snapshot as saved.
func (h *Handler) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, CodeNotFound, "proposal not found")
		return
	}

	proposal, err := h.proposals.Get(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}
