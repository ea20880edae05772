package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/costsheet/internal/costsheet"
)

type regimeView struct {
	Regime costsheet.Regime    `json:"regime"`
	Slug   string              `json:"slug"`
	Rates  costsheet.RateTable `json:"rates"`
}

func (h *Handler) handleRegimes(w http.ResponseWriter, r *http.Request) {
	regimes := costsheet.Regimes()
	out := make([]regimeView, 0, len(regimes))
	for _, regime := range regimes {
		preset, err := costsheet.PresetFor(regime)
		if err != nil {
			fail(w, err)
			return
		}
		out = append(out, regimeView{Regime: regime, Slug: regime.Slug(), Rates: preset})
	}
	writeJSON(w, http.StatusOK, out)
}

// regimeParam resolves {regime}. It writes a 404 and returns false when unknown.
func regimeParam(w http.ResponseWriter, r *http.Request) (costsheet.Regime, bool) {
	regime, err := costsheet.ParseRegime(chi.URLParam(r, "regime"))
	if err != nil {
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
		return "", false
	}
	return regime, true
}

func (h *Handler) handleGetRates(w http.ResponseWriter, r *http.Request) {
	regime, ok := regimeParam(w, r)
	if !ok {
		return
	}

	record, err := h.rates.Active(r.Context(), regime)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handlePutRates replaces the whole table. Every key is required.
func (h *Handler) handlePutRates(w http.ResponseWriter, r *http.Request) {
	regime, ok := regimeParam(w, r)
	if !ok {
		return
	}

	var body map[string]*decimal.Decimal
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}

	var errs []error
	for _, key := range costsheet.RateKeys() {
		if _, ok := body[key]; !ok {
			errs = append(errs, costsheet.NewFieldError(costsheet.ErrInvalidConfiguration, "rates."+key, "is required"))
		}
	}
	table, err := overrideRates(costsheet.RateTable{}, body)
	if err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		fail(w, err)
		return
	}
	if err := costsheet.ValidateRates(table); err != nil {
		fail(w, err)
		return
	}

	record, err := h.rates.Put(r.Context(), regime, table)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handlePatchRates overrides individual keys of the active table.
func (h *Handler) handlePatchRates(w http.ResponseWriter, r *http.Request) {
	regime, ok := regimeParam(w, r)
	if !ok {
		return
	}

	var body map[string]*decimal.Decimal
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}
	if len(body) == 0 {
		fail(w, costsheet.NewFieldError(costsheet.ErrInvalidConfiguration, "rates", "at least one key is required"))
		return
	}

	record, err := h.rates.Update(r.Context(), regime, func(current costsheet.RateTable) (costsheet.RateTable, error) {
		next, err := overrideRates(current, body)
		if err != nil {
			return current, err
		}
		if err := costsheet.ValidateRates(next); err != nil {
			return current, err
		}
		return next, nil
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *Handler) handleResetRates(w http.ResponseWriter, r *http.Request) {
	regime, ok := regimeParam(w, r)
	if !ok {
		return
	}

	record, err := h.rates.Reset(r.Context(), regime)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
