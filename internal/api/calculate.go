package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/costsheet/internal/costsheet"
)

// OutcomeSuccess is the only outcome served: parameters the engine would flag are
// rejected with a 422 before it runs.
const OutcomeSuccess = "SUCCESS"

// Calculation describes one run of the engine.
type Calculation struct {
	ID          uuid.UUID `json:"calculationId"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
	DurationMs  int64     `json:"durationMs"`
	Outcome     string    `json:"outcome"`
}

// calculateRequest omits rates to use the active table of the regime. Given rates override
// individual keys of that table.
type calculateRequest struct {
	Regime         string                      `json:"regime"`
	ContractMonths *int                        `json:"contractMonths"`
	Rates          map[string]*decimal.Decimal `json:"rates"`
	Services       []costsheet.ServiceInput    `json:"services"`
}

type calculateResponse struct {
	Calculation Calculation            `json:"calculation"`
	Result      costsheet.GlobalResult `json:"result"`
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}

	params, err := h.params(r.Context(), req)
	if err != nil {
		fail(w, err)
		return
	}

	calc, result := h.compute(req.Services, params)
	writeJSON(w, http.StatusOK, calculateResponse{Calculation: calc, Result: result})
}

// params resolves the global parameters of req and validates them with its posts.
func (h *Handler) params(ctx context.Context, req calculateRequest) (costsheet.GlobalParams, error) {
	regime := h.opts.DefaultRegime
	if req.Regime != "" {
		parsed, err := costsheet.ParseRegime(req.Regime)
		if err != nil {
			return costsheet.GlobalParams{}, costsheet.NewFieldError(costsheet.ErrInvalidConfiguration, "regime", err.Error())
		}
		regime = parsed
	}

	months := h.opts.DefaultContractMonths
	if req.ContractMonths != nil {
		months = *req.ContractMonths
	}

	record, err := h.rates.Active(ctx, regime)
	if err != nil {
		return costsheet.GlobalParams{}, err
	}
	rates, err := overrideRates(record.Rates, req.Rates)
	if err != nil {
		return costsheet.GlobalParams{}, err
	}

	params := costsheet.GlobalParams{Regime: regime, ContractMonths: months, Rates: rates}
	if err := errors.Join(costsheet.ValidateParams(params), costsheet.ValidateServices(req.Services)); err != nil {
		return costsheet.GlobalParams{}, err
	}
	return params, nil
}

func (h *Handler) compute(services []costsheet.ServiceInput, params costsheet.GlobalParams) (Calculation, costsheet.GlobalResult) {
	started := h.now()
	result := costsheet.ComputeGlobal(services, params)
	completed := h.now()

	return Calculation{
		ID:          uuid.New(),
		StartedAt:   started.UTC(),
		CompletedAt: completed.UTC(),
		DurationMs:  completed.Sub(started).Milliseconds(),
		Outcome:     OutcomeSuccess,
	}, result
}

// overrideRates applies raw on base. Null values and unknown keys are field errors.
func overrideRates(base costsheet.RateTable, raw map[string]*decimal.Decimal) (costsheet.RateTable, error) {
	if len(raw) == 0 {
		return base, nil
	}
	overrides, err := costsheet.ParseRateOverrides(raw)
	if err != nil {
		return base, err
	}
	return base.Override(overrides)
}
