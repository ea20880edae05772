package costsheet

import "github.com/shopspring/decimal"

// ComputeGlobal computes every post in input order and rolls up the proposal totals.
// An empty list yields an empty result with zero totals.
func ComputeGlobal(services []ServiceInput, params GlobalParams) GlobalResult {
	results := make([]CalculationResult, 0, len(services))
	totalMonthly := decimal.Zero
	for _, s := range services {
		r := ComputeService(s, params)
		totalMonthly = totalMonthly.Add(r.TotalMonthlyService)
		results = append(results, r)
	}

	return GlobalResult{
		Regime:                  params.Regime,
		Services:                results,
		TotalMonthlyAllServices: totalMonthly,
		ContractMonths:          params.ContractMonths,
		GlobalProposalValue:     totalMonthly.Mul(decimal.NewFromInt(int64(params.ContractMonths))),
	}
}
