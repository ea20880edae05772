// Package costsheet computes the monthly cost of outsourced labor posts with the six-module
// cost sheet of IN 05/2017 (TCU ruling 648/2016).
//
// The package is pure: no I/O, no shared state. Every value is computed per employee and
// multiplied by the headcount only in the final roll-up.
package costsheet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Module descriptions.
const (
	DescriptionM1 = "Composição da Remuneração"
	DescriptionM2 = "Encargos e Benefícios"
	DescriptionM3 = "Provisão para Rescisão"
	DescriptionM4 = "Reposição Profissional"
	DescriptionM5 = "Insumos Diversos"
	DescriptionM6 = "Custos Ind., Lucro e Tributos"
)

// Detail labels. Export formatters index module details by these keys.
const (
	LabelBaseSalary          = "Salário Base"
	LabelInsalubrity         = "Adicional de Insalubridade"
	LabelNightShiftUnhealthy = "Adicional Noturno/Insalubre"

	LabelSub21Base      = "13º e Adic. Férias (Sub 2.1)"
	LabelSub21Incidence = "Incidência Sub 2.1"
	LabelSub22          = "Encargos sobre M1 (Sub 2.2)"
	LabelSub23          = "Benefícios (Sub 2.3)"

	LabelNoticeIndemnified = "Aviso Prévio Indenizado"
	LabelNoticeWorked      = "Aviso Prévio Trabalhado"
	LabelFGTSFines         = "Multas FGTS"
	LabelM3Incidence       = "Incidências"

	LabelSubstituteBase      = "Férias e Ausências"
	LabelSubstituteIncidence = "Incidência Encargos"

	LabelIndirectCosts = "Custos Indiretos"
	LabelProfit        = "Lucro"
	LabelRevenueTaxes  = "Tributos (PIS/COFINS/ISS)"
)

var one = decimal.NewFromInt(1)

// ComputeService computes the six-module breakdown of one post.
//
// Invalid values are not rejected: they propagate arithmetically. The only guarded case is
// a revenue tax sum >= 100%, which has no gross-up price; the pre-tax price is then used as
// is and the result carries a TAX_RATE_NOT_GROSSABLE warning.
func ComputeService(service ServiceInput, params GlobalParams) CalculationResult {
	rates := params.Rates
	socialSecurityRate := TotalSocialSecurityRate(rates)

	// Module 1: remuneration.
	salary := service.BaseSalary
	insalubrity := salary.Mul(service.HazardLevel)
	m1 := decimal.Sum(salary, insalubrity, service.NightShiftUnhealthy)

	// Module 2: 13th + vacation bonus with incidence, charges on M1, benefits.
	thirteenth := m1.Mul(rates.Thirteenth)
	vacationBonus := m1.Mul(rates.VacationBonus)
	sub21Base := thirteenth.Add(vacationBonus)
	sub21Incidence := sub21Base.Mul(socialSecurityRate)
	sub22 := m1.Mul(socialSecurityRate)
	sub23 := service.BenefitsMonthly
	m2 := decimal.Sum(sub21Base, sub21Incidence, sub22, sub23)

	// Module 3: termination. Indemnified notice renders no labor, so only FGTS falls on it.
	api := m1.Mul(rates.NoticeIndemnified)
	apiIncidence := api.Mul(rates.FGTS)
	apiFine := m1.Mul(rates.FineFGTSIndemnified)
	apt := m1.Mul(rates.NoticeWorked)
	aptIncidence := apt.Mul(socialSecurityRate)
	aptFine := m1.Mul(rates.FineFGTSWorked)
	m3 := decimal.Sum(api, apiIncidence, apiFine, apt, aptIncidence, aptFine)

	// Module 4: substitute cost.
	substituteBase := m1.Mul(SubstituteRate(rates))
	substituteIncidence := substituteBase.Mul(socialSecurityRate)
	m4 := substituteBase.Add(substituteIncidence)

	// Module 5: supplies.
	m5 := service.SuppliesMonthly

	// Module 6: indirect costs, profit, then taxes grossed up on the final price.
	baseCI := decimal.Sum(m1, m2, m3, m4, m5)
	valueCI := baseCI.Mul(rates.IndirectCosts)
	baseProfit := baseCI.Add(valueCI)
	valueProfit := baseProfit.Mul(rates.Profit)
	preTaxPrice := baseProfit.Add(valueProfit)
	taxRateTotal := RevenueTaxRate(rates)

	var messages []Message
	grossPrice := preTaxPrice
	if taxRateTotal.LessThan(one) {
		grossPrice = preTaxPrice.Div(one.Sub(taxRateTotal))
	} else {
		text := fmt.Sprintf("revenue tax rate %s%% is not below 100%%; taxes computed on the pre-tax price",
			taxRateTotal.Shift(2).String())
		messages = append(messages, Message{Level: LevelWarning, Code: CodeTaxRateNotGrossable, Message: text})
	}
	totalTaxes := grossPrice.Mul(taxRateTotal)
	m6 := decimal.Sum(valueCI, valueProfit, totalTaxes)

	totalPerEmployee := baseCI.Add(m6)
	totalMonthlyService := totalPerEmployee.Mul(decimal.NewFromInt(int64(service.EmployeeCount)))

	return CalculationResult{
		ServiceID:     service.ID,
		ServiceName:   service.Name,
		EmployeeCount: service.EmployeeCount,
		Modules: Modules{
			M1: ModuleCost{
				Description: DescriptionM1,
				Value:       m1,
				Details: Details{
					{Label: LabelBaseSalary, Value: salary},
					{Label: LabelInsalubrity, Value: insalubrity},
					{Label: LabelNightShiftUnhealthy, Value: service.NightShiftUnhealthy},
				},
			},
			M2: ModuleCost{
				Description: DescriptionM2,
				Value:       m2,
				Details: Details{
					{Label: LabelSub21Base, Value: sub21Base},
					{Label: LabelSub21Incidence, Value: sub21Incidence},
					{Label: LabelSub22, Value: sub22},
					{Label: LabelSub23, Value: sub23},
				},
			},
			M3: ModuleCost{
				Description: DescriptionM3,
				Value:       m3,
				Details: Details{
					{Label: LabelNoticeIndemnified, Value: api},
					{Label: LabelNoticeWorked, Value: apt},
					{Label: LabelFGTSFines, Value: apiFine.Add(aptFine)},
					{Label: LabelM3Incidence, Value: apiIncidence.Add(aptIncidence)},
				},
			},
			M4: ModuleCost{
				Description: DescriptionM4,
				Value:       m4,
				Details: Details{
					{Label: LabelSubstituteBase, Value: substituteBase},
					{Label: LabelSubstituteIncidence, Value: substituteIncidence},
				},
			},
			M5: ModuleCost{Description: DescriptionM5, Value: m5},
			M6: ModuleCost{
				Description: DescriptionM6,
				Value:       m6,
				Details: Details{
					{Label: LabelIndirectCosts, Value: valueCI},
					{Label: LabelProfit, Value: valueProfit},
					{Label: LabelRevenueTaxes, Value: totalTaxes},
				},
			},
		},
		TotalPerEmployee:    totalPerEmployee,
		TotalMonthlyService: totalMonthlyService,
		Messages:            messages,
	}
}
