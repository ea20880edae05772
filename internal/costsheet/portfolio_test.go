package costsheet

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeGlobal_RollsUpAndKeepsOrder(t *testing.T) {
	security := ServiceInput{
		ID:              "vig-12x36",
		Name:            "Vigilante 12x36 Noturno",
		EmployeeCount:   4,
		BaseSalary:      d("2350.00"),
		HazardLevel:     decimal.Zero,
		BenefitsMonthly: d("720.00"),
		SuppliesMonthly: d("85.50"),
	}
	services := []ServiceInput{cleaningPost(), security}

	result := ComputeGlobal(services, DefaultParams())

	if len(result.Services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(result.Services))
	}
	for i := range services {
		if result.Services[i].ServiceID != services[i].ID {
			t.Fatalf("services[%d].serviceId = %s, want %s", i, result.Services[i].ServiceID, services[i].ID)
		}
	}

	sum := result.Services[0].TotalMonthlyService.Add(result.Services[1].TotalMonthlyService)
	exactly(t, "totalMonthlyAllServices", result.TotalMonthlyAllServices, sum.String())
	exactly(t, "globalProposalValue", result.GlobalProposalValue, sum.Mul(decimal.NewFromInt(12)).String())
	if result.ContractMonths != 12 || result.Regime != RegimeRealProfit {
		t.Fatalf("unexpected header: %s / %d", result.Regime, result.ContractMonths)
	}
}

func TestComputeGlobal_GoldenProposalValue(t *testing.T) {
	result := ComputeGlobal([]ServiceInput{cleaningPost()}, DefaultParams())

	cents(t, "totalMonthlyAllServices", result.TotalMonthlyAllServices, "9136.03")
	cents(t, "globalProposalValue", result.GlobalProposalValue, "109632.32")
}

func TestComputeGlobal_EmptyInput(t *testing.T) {
	result := ComputeGlobal(nil, DefaultParams())

	if result.Services == nil || len(result.Services) != 0 {
		t.Fatalf("expected empty non-nil services, got %#v", result.Services)
	}
	if !result.TotalMonthlyAllServices.IsZero() || !result.GlobalProposalValue.IsZero() {
		t.Fatalf("expected zero totals, got %s / %s", result.TotalMonthlyAllServices, result.GlobalProposalValue)
	}
}

func TestComputeGlobal_CollectsMessages(t *testing.T) {
	params := DefaultParams()
	params.Rates.ISS = d("0.95")

	second := cleaningPost()
	second.ID = "2"
	result := ComputeGlobal([]ServiceInput{cleaningPost(), second}, params)

	if got := len(result.Messages()); got != 2 {
		t.Fatalf("expected 2 messages, got %d", got)
	}
}
