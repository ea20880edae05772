// Command costsheet prices a proposal offline from a JSON file and prints the result.
//
//	costsheet -in posts.json [-regime simplified] [-months 24]
//
// The input holds {"regime", "contractMonths", "rates", "services"}. Rates override keys
// of the regime preset. Exit status is 2 when the input is rejected.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/costsheet/internal/costsheet"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
)

type input struct {
	Regime         string                      `json:"regime"`
	ContractMonths *int                        `json:"contractMonths"`
	Rates          map[string]*decimal.Decimal `json:"rates"`
	Services       []costsheet.ServiceInput    `json:"services"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("costsheet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "-", "input JSON file, - for stdin")
	regimeFlag := fs.String("regime", "", "tax regime name or slug, overrides the input")
	months := fs.Int("months", 0, "contract length in months, overrides the input")
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	raw, err := readInput(*in, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "costsheet: %v\n", err)
		return exitFailure
	}

	var req input
	if err := json.Unmarshal(raw, &req); err != nil {
		fmt.Fprintf(stderr, "costsheet: decode input: %v\n", err)
		return exitInvalid
	}
	if *regimeFlag != "" {
		req.Regime = *regimeFlag
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "months" {
			req.ContractMonths = months
		}
	})

	params, err := buildParams(req)
	if err != nil {
		reportInvalid(stderr, err)
		return exitInvalid
	}

	result := costsheet.ComputeGlobal(req.Services, params)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "costsheet: encode result: %v\n", err)
		return exitFailure
	}
	fmt.Fprintln(stdout, string(out))
	return exitOK
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return raw, nil
}

func buildParams(req input) (costsheet.GlobalParams, error) {
	regime := costsheet.RegimeRealProfit
	if req.Regime != "" {
		parsed, err := costsheet.ParseRegime(req.Regime)
		if err != nil {
			return costsheet.GlobalParams{}, costsheet.NewFieldError(costsheet.ErrInvalidConfiguration, "regime", err.Error())
		}
		regime = parsed
	}
	months := costsheet.DefaultContractMonths
	if req.ContractMonths != nil {
		months = *req.ContractMonths
	}

	params, err := costsheet.ParamsFor(regime, months)
	if err != nil {
		return costsheet.GlobalParams{}, err
	}
	if len(req.Rates) > 0 {
		overrides, err := costsheet.ParseRateOverrides(req.Rates)
		if err != nil {
			return costsheet.GlobalParams{}, err
		}
		if params.Rates, err = params.Rates.Override(overrides); err != nil {
			return costsheet.GlobalParams{}, err
		}
	}

	return params, errors.Join(costsheet.ValidateParams(params), costsheet.ValidateServices(req.Services))
}

func reportInvalid(w io.Writer, err error) {
	fields := costsheet.FieldErrors(err)
	if len(fields) == 0 {
		fmt.Fprintf(w, "costsheet: %v\n", err)
		return
	}
	for _, f := range fields {
		fmt.Fprintf(w, "costsheet: invalid %s: %s\n", f.Field, f.Reason)
	}
}
