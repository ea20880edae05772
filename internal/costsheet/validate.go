package costsheet

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// The engine never validates. These checks belong to whoever produces the input.

func invalidInput(field, reason string) *FieldError {
	return NewFieldError(ErrInvalidInput, field, reason)
}

func invalidConfig(field, reason string) *FieldError {
	return NewFieldError(ErrInvalidConfiguration, field, reason)
}

// ValidateService checks one post. The returned error joins one *FieldError per bad field.
func ValidateService(s ServiceInput) error {
	return errors.Join(validateService("", s)...)
}

func validateService(prefix string, s ServiceInput) []error {
	var errs []error
	if strings.TrimSpace(s.ID) == "" {
		errs = append(errs, invalidInput(prefix+"id", "is required"))
	}
	if s.EmployeeCount < 1 {
		errs = append(errs, invalidInput(prefix+"employeeCount", "must be at least 1"))
	}
	money := []struct {
		field string
		value decimal.Decimal
	}{
		{"baseSalary", s.BaseSalary},
		{"nightShiftUnhealthy", s.NightShiftUnhealthy},
		{"benefitsMonthly", s.BenefitsMonthly},
		{"suppliesMonthly", s.SuppliesMonthly},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			errs = append(errs, invalidInput(prefix+m.field, "must not be negative"))
		}
	}
	if s.HazardLevel.IsNegative() || s.HazardLevel.GreaterThan(one) {
		errs = append(errs, invalidInput(prefix+"hazardLevel", "must be between 0 and 1"))
	}
	return errs
}

// ValidateServices checks every post and the uniqueness of their ids.
func ValidateServices(services []ServiceInput) error {
	var errs []error
	seen := make(map[string]int, len(services))
	for i, s := range services {
		prefix := fmt.Sprintf("services[%d].", i)
		errs = append(errs, validateService(prefix, s)...)
		if s.ID == "" {
			continue
		}
		if first, dup := seen[s.ID]; dup {
			errs = append(errs, invalidInput(prefix+"id", fmt.Sprintf("duplicates services[%d]", first)))
			continue
		}
		seen[s.ID] = i
	}
	return errors.Join(errs...)
}

// ValidateRates checks that every rate is a fraction in [0, 1) and that revenue taxes can be
// grossed up.
func ValidateRates(rates RateTable) error {
	var errs []error
	for _, key := range RateKeys() {
		v, _ := rates.Get(key)
		if v.IsNegative() || !v.LessThan(one) {
			errs = append(errs, invalidConfig("rates."+key, "must be in [0, 1)"))
		}
	}
	if !RevenueTaxRate(rates).LessThan(one) {
		errs = append(errs, invalidConfig("rates", "m6_pis + m6_cofins + m6_iss must be below 1"))
	}
	return errors.Join(errs...)
}

// ValidateParams checks the global parameters.
func ValidateParams(p GlobalParams) error {
	var errs []error
	if !p.Regime.Valid() {
		errs = append(errs, invalidConfig("regime", fmt.Sprintf("unknown regime %q", string(p.Regime))))
	}
	if p.ContractMonths < 1 {
		errs = append(errs, invalidConfig("contractMonths", "must be at least 1"))
	}
	if err := ValidateRates(p.Rates); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseRateOverrides checks a decoded set of rate overrides. A nil value stands for a JSON
// null and is rejected rather than read as zero, as are unknown keys.
func ParseRateOverrides(raw map[string]*decimal.Decimal) (map[string]decimal.Decimal, error) {
	var errs []error
	out := make(map[string]decimal.Decimal, len(raw))
	var table RateTable
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		if table.field(key) == nil {
			errs = append(errs, NewFieldError(ErrUnknownRate, "rates."+key, "unknown rate key"))
			continue
		}
		value := raw[key]
		if value == nil {
			errs = append(errs, invalidConfig("rates."+key, "must not be null"))
			continue
		}
		out[key] = *value
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}
