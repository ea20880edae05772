package costsheet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateTable holds every percentage of the cascade as a fraction (0.08 = 8%).
// It is a value type: copies never share state.
type RateTable struct {
	// Module 2.1: 13th salary and vacation bonus.
	Thirteenth    decimal.Decimal `json:"m2_1_thirteenth"`
	VacationBonus decimal.Decimal `json:"m2_1_vacationBonus"`

	// Module 2.2: social-security burden.
	INSS            decimal.Decimal `json:"m2_2_inss"`
	SalaryEducation decimal.Decimal `json:"m2_2_salary_education"`
	RAT             decimal.Decimal `json:"m2_2_rat"`
	SESC            decimal.Decimal `json:"m2_2_sesc"`
	SENAC           decimal.Decimal `json:"m2_2_senac"`
	SEBRAE          decimal.Decimal `json:"m2_2_sebrae"`
	INCRA           decimal.Decimal `json:"m2_2_incra"`
	FGTS            decimal.Decimal `json:"m2_2_fgts"`

	// Module 3: termination provision.
	NoticeWorked        decimal.Decimal `json:"m3_notice_worked"`
	NoticeIndemnified   decimal.Decimal `json:"m3_notice_indemnified"`
	FineFGTSWorked      decimal.Decimal `json:"m3_fine_fgts_worked"`
	FineFGTSIndemnified decimal.Decimal `json:"m3_fine_fgts_indemnified"`

	// Module 4: replacement of the absent professional.
	VacationReplace decimal.Decimal `json:"m4_vacation_replace"`
	AbsencesLegal   decimal.Decimal `json:"m4_absences_legal"`
	Paternity       decimal.Decimal `json:"m4_paternity"`
	Maternity       decimal.Decimal `json:"m4_maternity"`
	Accident        decimal.Decimal `json:"m4_accident"`
	Sickness        decimal.Decimal `json:"m4_sickness"`

	// Module 6: indirect costs, profit and revenue taxes.
	IndirectCosts decimal.Decimal `json:"m6_indirect_costs"`
	Profit        decimal.Decimal `json:"m6_profit"`
	PIS           decimal.Decimal `json:"m6_pis"`
	COFINS        decimal.Decimal `json:"m6_cofins"`
	ISS           decimal.Decimal `json:"m6_iss"`
}

// Rate keys, as used in JSON and in partial overrides.
const (
	KeyThirteenth          = "m2_1_thirteenth"
	KeyVacationBonus       = "m2_1_vacationBonus"
	KeyINSS                = "m2_2_inss"
	KeySalaryEducation     = "m2_2_salary_education"
	KeyRAT                 = "m2_2_rat"
	KeySESC                = "m2_2_sesc"
	KeySENAC               = "m2_2_senac"
	KeySEBRAE              = "m2_2_sebrae"
	KeyINCRA               = "m2_2_incra"
	KeyFGTS                = "m2_2_fgts"
	KeyNoticeWorked        = "m3_notice_worked"
	KeyNoticeIndemnified   = "m3_notice_indemnified"
	KeyFineFGTSWorked      = "m3_fine_fgts_worked"
	KeyFineFGTSIndemnified = "m3_fine_fgts_indemnified"
	KeyVacationReplace     = "m4_vacation_replace"
	KeyAbsencesLegal       = "m4_absences_legal"
	KeyPaternity           = "m4_paternity"
	KeyMaternity           = "m4_maternity"
	KeyAccident            = "m4_accident"
	KeySickness            = "m4_sickness"
	KeyIndirectCosts       = "m6_indirect_costs"
	KeyProfit              = "m6_profit"
	KeyPIS                 = "m6_pis"
	KeyCOFINS              = "m6_cofins"
	KeyISS                 = "m6_iss"
)

// RateKeys lists every rate key grouped by module.
func RateKeys() []string {
	return []string{
		KeyThirteenth, KeyVacationBonus,
		KeyINSS, KeySalaryEducation, KeyRAT, KeySESC, KeySENAC, KeySEBRAE, KeyINCRA, KeyFGTS,
		KeyNoticeWorked, KeyNoticeIndemnified, KeyFineFGTSWorked, KeyFineFGTSIndemnified,
		KeyVacationReplace, KeyAbsencesLegal, KeyPaternity, KeyMaternity, KeyAccident, KeySickness,
		KeyIndirectCosts, KeyProfit, KeyPIS, KeyCOFINS, KeyISS,
	}
}

func (t *RateTable) field(key string) *decimal.Decimal {
	switch key {
	case KeyThirteenth:
		return &t.Thirteenth
	case KeyVacationBonus:
		return &t.VacationBonus
	case KeyINSS:
		return &t.INSS
	case KeySalaryEducation:
		return &t.SalaryEducation
	case KeyRAT:
		return &t.RAT
	case KeySESC:
		return &t.SESC
	case KeySENAC:
		return &t.SENAC
	case KeySEBRAE:
		return &t.SEBRAE
	case KeyINCRA:
		return &t.INCRA
	case KeyFGTS:
		return &t.FGTS
	case KeyNoticeWorked:
		return &t.NoticeWorked
	case KeyNoticeIndemnified:
		return &t.NoticeIndemnified
	case KeyFineFGTSWorked:
		return &t.FineFGTSWorked
	case KeyFineFGTSIndemnified:
		return &t.FineFGTSIndemnified
	case KeyVacationReplace:
		return &t.VacationReplace
	case KeyAbsencesLegal:
		return &t.AbsencesLegal
	case KeyPaternity:
		return &t.Paternity
	case KeyMaternity:
		return &t.Maternity
	case KeyAccident:
		return &t.Accident
	case KeySickness:
		return &t.Sickness
	case KeyIndirectCosts:
		return &t.IndirectCosts
	case KeyProfit:
		return &t.Profit
	case KeyPIS:
		return &t.PIS
	case KeyCOFINS:
		return &t.COFINS
	case KeyISS:
		return &t.ISS
	}
	return nil
}

// Get returns the rate stored under key.
func (t RateTable) Get(key string) (decimal.Decimal, error) {
	f := t.field(key)
	if f == nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownRate, key)
	}
	return *f, nil
}

// With returns a copy of t with a single rate replaced.
func (t RateTable) With(key string, value decimal.Decimal) (RateTable, error) {
	f := t.field(key)
	if f == nil {
		return t, fmt.Errorf("%w: %q", ErrUnknownRate, key)
	}
	*f = value
	return t, nil
}

// Override applies every key of overrides on a copy of t. Unknown keys fail the whole call.
func (t RateTable) Override(overrides map[string]decimal.Decimal) (RateTable, error) {
	out := t
	for key, value := range overrides {
		var err error
		if out, err = out.With(key, value); err != nil {
			return t, err
		}
	}
	return out, nil
}

// TotalSocialSecurityRate sums the module 2.2 burden: INSS, salary-education, RAT x FAP,
// SESC/SESI, SENAC/SENAI, SEBRAE, INCRA and FGTS. Out-of-range sums pass through.
func TotalSocialSecurityRate(rates RateTable) decimal.Decimal {
	return decimal.Sum(
		rates.INSS,
		rates.SalaryEducation,
		rates.RAT,
		rates.SESC,
		rates.SENAC,
		rates.SEBRAE,
		rates.INCRA,
		rates.FGTS,
	)
}

// SubstituteRate sums the six module 4 replacement rates.
func SubstituteRate(rates RateTable) decimal.Decimal {
	return decimal.Sum(
		rates.VacationReplace,
		rates.AbsencesLegal,
		rates.Paternity,
		rates.Maternity,
		rates.Accident,
		rates.Sickness,
	)
}

// RevenueTaxRate sums PIS, COFINS and ISS.
func RevenueTaxRate(rates RateTable) decimal.Decimal {
	return decimal.Sum(rates.PIS, rates.COFINS, rates.ISS)
}
