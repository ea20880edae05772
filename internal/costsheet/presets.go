package costsheet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultContractMonths is the contract duration used when none is given.
const DefaultContractMonths = 12

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// RealProfitRates returns the "Lucro Real" preset, the baseline of the other two.
func RealProfitRates() RateTable {
	return RateTable{
		Thirteenth:    rate("0.0833"),
		VacationBonus: rate("0.03025"),

		INSS:            rate("0.20"),
		SalaryEducation: rate("0.025"),
		RAT:             rate("0.03"), // RAT 3% x FAP 1.0
		SESC:            rate("0.015"),
		SENAC:           rate("0.01"),
		SEBRAE:          rate("0.006"),
		INCRA:           rate("0.002"),
		FGTS:            rate("0.08"),

		NoticeWorked:        rate("0.0194"),
		NoticeIndemnified:   rate("0.0050"),
		FineFGTSWorked:      rate("0.0476"),
		FineFGTSIndemnified: rate("0.0024"),

		VacationReplace: rate("0.09075"),
		AbsencesLegal:   rate("0.0099"),
		Paternity:       rate("0.0002"),
		Maternity:       rate("0.0007"),
		Accident:        rate("0.0004"),
		Sickness:        rate("0.0167"),

		IndirectCosts: rate("0.03"),
		Profit:        rate("0.0679"),
		PIS:           rate("0.0165"),
		COFINS:        rate("0.076"),
		ISS:           rate("0.025"),
	}
}

// PresumedProfitRates returns the "Lucro Presumido" preset: cumulative PIS/COFINS.
func PresumedProfitRates() RateTable {
	t := RealProfitRates()
	t.PIS = rate("0.0065")
	t.COFINS = rate("0.03")
	return t
}

// SimplifiedRates returns the "Simples Nacional" preset (Annex IV approximation).
// System S contributions are not collected under this regime.
func SimplifiedRates() RateTable {
	t := RealProfitRates()
	t.PIS = rate("0.0055")
	t.COFINS = rate("0.0259")
	t.ISS = rate("0.05")
	t.SESC = decimal.Zero
	t.SENAC = decimal.Zero
	t.SEBRAE = decimal.Zero
	t.INCRA = decimal.Zero
	return t
}

// PresetFor returns the default rate table of regime.
func PresetFor(regime Regime) (RateTable, error) {
	switch regime {
	case RegimeRealProfit:
		return RealProfitRates(), nil
	case RegimePresumedProfit:
		return PresumedProfitRates(), nil
	case RegimeSimplified:
		return SimplifiedRates(), nil
	}
	return RateTable{}, fmt.Errorf("%w: %q", ErrUnknownRegime, string(regime))
}

// DefaultParams returns real-profit parameters for a twelve-month contract.
func DefaultParams() GlobalParams {
	return GlobalParams{
		Regime:         RegimeRealProfit,
		ContractMonths: DefaultContractMonths,
		Rates:          RealProfitRates(),
	}
}

// ParamsFor returns params whose rates are reset to the preset of regime.
func ParamsFor(regime Regime, contractMonths int) (GlobalParams, error) {
	rates, err := PresetFor(regime)
	if err != nil {
		return GlobalParams{}, err
	}
	return GlobalParams{Regime: regime, ContractMonths: contractMonths, Rates: rates}, nil
}
