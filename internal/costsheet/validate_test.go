package costsheet

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateService_Valid(t *testing.T) {
	if err := ValidateService(cleaningPost()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateService_ReportsEveryField(t *testing.T) {
	post := ServiceInput{
		EmployeeCount:   0,
		BaseSalary:      d("-1"),
		HazardLevel:     d("1.5"),
		BenefitsMonthly: d("-0.01"),
	}

	err := ValidateService(post)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	fields := map[string]bool{}
	for _, fe := range FieldErrors(err) {
		fields[fe.Field] = true
	}
	for _, want := range []string{"id", "employeeCount", "baseSalary", "hazardLevel", "benefitsMonthly"} {
		if !fields[want] {
			t.Fatalf("expected field error for %s, got %v", want, err)
		}
	}
	if fields["suppliesMonthly"] {
		t.Fatalf("suppliesMonthly should be valid")
	}
}

func TestValidateServices_DuplicateIDs(t *testing.T) {
	err := ValidateServices([]ServiceInput{cleaningPost(), cleaningPost()})

	fes := FieldErrors(err)
	if len(fes) != 1 || fes[0].Field != "services[1].id" {
		t.Fatalf("expected duplicate id error on services[1].id, got %v", err)
	}
}

func TestValidateParams_Defaults(t *testing.T) {
	for _, regime := range Regimes() {
		params, _ := ParamsFor(regime, 24)
		if err := ValidateParams(params); err != nil {
			t.Fatalf("%s: unexpected error: %v", regime, err)
		}
	}
}

func TestValidateParams_RejectsBadConfiguration(t *testing.T) {
	params := DefaultParams()
	params.Regime = "Lucro Arbitrado"
	params.ContractMonths = 0
	params.Rates.FGTS = d("-0.08")

	err := ValidateParams(params)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if got := len(FieldErrors(err)); got != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", got, err)
	}
}

func TestValidateRates_RevenueTaxMustBeGrossable(t *testing.T) {
	rates := RealProfitRates()
	rates.PIS = d("0.4")
	rates.COFINS = d("0.4")
	rates.ISS = d("0.2")

	err := ValidateRates(rates)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	fes := FieldErrors(err)
	if len(fes) != 1 || fes[0].Field != "rates" {
		t.Fatalf("expected single rates error, got %v", err)
	}

	rates.ISS = decimal.Zero
	if err := ValidateRates(rates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseRateOverrides(t *testing.T) {
	iss := d("0.03")
	got, err := ParseRateOverrides(map[string]*decimal.Decimal{KeyISS: &iss})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got[KeyISS].Equal(iss) || len(got) != 1 {
		t.Fatalf("unexpected overrides: %v", got)
	}

	_, err = ParseRateOverrides(map[string]*decimal.Decimal{KeyISS: nil, "m9_bogus": &iss})
	if !errors.Is(err, ErrInvalidConfiguration) || !errors.Is(err, ErrUnknownRate) {
		t.Fatalf("expected configuration and unknown-rate errors, got %v", err)
	}
	fes := FieldErrors(err)
	if len(fes) != 2 || fes[0].Field != "rates."+KeyISS || fes[1].Field != "rates.m9_bogus" {
		t.Fatalf("unexpected field errors: %v", err)
	}
}
