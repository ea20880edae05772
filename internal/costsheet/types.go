package costsheet

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Regime is the company's corporate tax framework. It selects the default rate preset.
type Regime string

const (
	RegimeRealProfit     Regime = "Lucro Real"
	RegimePresumedProfit Regime = "Lucro Presumido"
	RegimeSimplified     Regime = "Simples Nacional"
)

var regimeSlugs = map[Regime]string{
	RegimeRealProfit:     "real-profit",
	RegimePresumedProfit: "presumed-profit",
	RegimeSimplified:     "simplified",
}

// Regimes lists the supported regimes in presentation order.
func Regimes() []Regime {
	return []Regime{RegimeRealProfit, RegimePresumedProfit, RegimeSimplified}
}

// Slug returns the URL-friendly name of the regime.
func (r Regime) Slug() string {
	return regimeSlugs[r]
}

// Valid reports whether r is one of the supported regimes.
func (r Regime) Valid() bool {
	_, ok := regimeSlugs[r]
	return ok
}

// ParseRegime accepts either the canonical name ("Lucro Real") or its slug ("real-profit").
func ParseRegime(raw string) (Regime, error) {
	raw = strings.TrimSpace(raw)
	for regime, slug := range regimeSlugs {
		if strings.EqualFold(raw, string(regime)) || strings.EqualFold(raw, slug) {
			return regime, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRegime, raw)
}

// GlobalParams holds the parameters shared by every post of a proposal.
type GlobalParams struct {
	Regime         Regime    `json:"regime"`
	ContractMonths int       `json:"contractMonths"`
	Rates          RateTable `json:"rates"`
}

// ServiceInput is one outsourced post. Monetary values are per employee and per month.
type ServiceInput struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	EmployeeCount       int             `json:"employeeCount"`
	BaseSalary          decimal.Decimal `json:"baseSalary"`
	HazardLevel         decimal.Decimal `json:"hazardLevel"`
	NightShiftUnhealthy decimal.Decimal `json:"nightShiftUnhealthy"`
	BenefitsMonthly     decimal.Decimal `json:"benefitsMonthly"`
	SuppliesMonthly     decimal.Decimal `json:"suppliesMonthly"`
}

// Detail is one labelled sub-value of a module.
type Detail struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Details is an ordered label -> value mapping. Order is the display order.
type Details []Detail

// Get returns the value stored under label.
func (d Details) Get(label string) (decimal.Decimal, bool) {
	for _, item := range d {
		if item.Label == label {
			return item.Value, true
		}
	}
	return decimal.Zero, false
}

// Labels returns the labels in display order.
func (d Details) Labels() []string {
	labels := make([]string, len(d))
	for i, item := range d {
		labels[i] = item.Label
	}
	return labels
}

// Sum adds every detail value.
func (d Details) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d {
		total = total.Add(item.Value)
	}
	return total
}

// ModuleCost is the cost of one cost-sheet module for a single employee.
type ModuleCost struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Details     Details         `json:"details,omitempty"`
}

// Modules groups the six mandated modules.
type Modules struct {
	M1 ModuleCost `json:"m1"`
	M2 ModuleCost `json:"m2"`
	M3 ModuleCost `json:"m3"`
	M4 ModuleCost `json:"m4"`
	M5 ModuleCost `json:"m5"`
	M6 ModuleCost `json:"m6"`
}

// NamedModule pairs a module with its short key ("M1".."M6").
type NamedModule struct {
	Key string
	ModuleCost
}

// List returns the modules in M1 -> M6 order.
func (m Modules) List() []NamedModule {
	return []NamedModule{
		{Key: "M1", ModuleCost: m.M1},
		{Key: "M2", ModuleCost: m.M2},
		{Key: "M3", ModuleCost: m.M3},
		{Key: "M4", ModuleCost: m.M4},
		{Key: "M5", ModuleCost: m.M5},
		{Key: "M6", ModuleCost: m.M6},
	}
}

// Message levels.
const (
	LevelWarning = "WARNING"
)

// CodeTaxRateNotGrossable flags a revenue tax sum >= 100%, where no gross-up price exists.
const CodeTaxRateNotGrossable = "TAX_RATE_NOT_GROSSABLE"

// Message is a caller-visible condition raised while computing a post.
type Message struct {
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CalculationResult is the breakdown of one post.
type CalculationResult struct {
	ServiceID           string          `json:"serviceId"`
	ServiceName         string          `json:"serviceName"`
	EmployeeCount       int             `json:"employeeCount"`
	Modules             Modules         `json:"modules"`
	TotalPerEmployee    decimal.Decimal `json:"totalPerEmployee"`
	TotalMonthlyService decimal.Decimal `json:"totalMonthlyService"`
	Messages            []Message       `json:"messages,omitempty"`
}

// GlobalResult is the roll-up of every post of a proposal.
type GlobalResult struct {
	Regime                  Regime              `json:"regime"`
	Services                []CalculationResult `json:"services"`
	TotalMonthlyAllServices decimal.Decimal     `json:"totalMonthlyAllServices"`
	ContractMonths          int                 `json:"contractMonths"`
	GlobalProposalValue     decimal.Decimal     `json:"globalProposalValue"`
}

// Messages collects the messages of every post, in post order.
func (g GlobalResult) Messages() []Message {
	var msgs []Message
	for _, s := range g.Services {
		msgs = append(msgs, s.Messages...)
	}
	return msgs
}
