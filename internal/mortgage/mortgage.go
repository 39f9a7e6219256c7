// Package mortgage computes monthly payment breakdowns for a home loan.
package mortgage

import (
	"errors"
	"fmt"
	"math"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

// ErrInvalidParameter is returned when loan parameters cannot produce a
// payment schedule, such as a zero loan term.
var ErrInvalidParameter = errors.New("invalid loan parameter")

// Default loan parameters shown before the user edits anything.
const (
	DefaultHomePrice         = 400000
	DefaultDownPayment       = 80000
	DefaultInterestRate      = 6.5
	DefaultLoanTermYears     = 30
	DefaultAnnualPropertyTax = 5000
	DefaultAnnualInsurance   = 1200
	DefaultMonthlyPMI        = 200
	DefaultMonthlyHOA        = 0
)

// DefaultParameters returns the calculator's starting inputs.
func DefaultParameters() models.LoanParameters {
	return models.LoanParameters{
		HomePrice:           DefaultHomePrice,
		DownPayment:         DefaultDownPayment,
		InterestRatePercent: DefaultInterestRate,
		LoanTermYears:       DefaultLoanTermYears,
		AnnualPropertyTax:   DefaultAnnualPropertyTax,
		AnnualInsurance:     DefaultAnnualInsurance,
		MonthlyPMI:          DefaultMonthlyPMI,
		MonthlyHOA:          DefaultMonthlyHOA,
	}
}

// ParameterError reports which input made a computation impossible.
// It matches ErrInvalidParameter with errors.Is.
type ParameterError struct {
	Param  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidParameter, e.Param, e.Reason)
}

func (e *ParameterError) Is(target error) bool { return target == ErrInvalidParameter }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// checkFinite returns a ParameterError for the first NaN or infinite input,
// named by its wire field.
func checkFinite(p models.LoanParameters) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"homePrice", p.HomePrice},
		{"downPayment", p.DownPayment},
		{"interestRate", p.InterestRatePercent},
		{"loanTerm", p.LoanTermYears},
		{"propertyTax", p.AnnualPropertyTax},
		{"insurance", p.AnnualInsurance},
		{"pmi", p.MonthlyPMI},
		{"hoa", p.MonthlyHOA},
	}
	for _, f := range fields {
		if !finite(f.value) {
			return &ParameterError{Param: f.name, Reason: "must be a finite number"}
		}
	}
	return nil
}

// Compute returns the payment breakdown for params.
//
// A zero interest rate amortizes the principal in equal installments.
// A non-positive principal is computed as-is and yields non-positive P&I.
// Non-finite inputs, a term with no payments, or amounts too large to
// represent return a *ParameterError.
func Compute(params models.LoanParameters) (models.PaymentBreakdown, error) {
	if err := checkFinite(params); err != nil {
		return models.PaymentBreakdown{}, err
	}

	numPayments := int(math.Round(params.LoanTermYears * 12))
	if numPayments <= 0 {
		return models.PaymentBreakdown{}, &ParameterError{
			Param:  "loanTerm",
			Reason: fmt.Sprintf("must produce at least one monthly payment, got %v years", params.LoanTermYears),
		}
	}

	principal := params.HomePrice - params.DownPayment
	monthlyRate := params.InterestRatePercent / 100 / 12
	n := float64(numPayments)

	// (1+r)^n - 1 via Expm1/Log1p stays accurate when r is tiny, where
	// math.Pow(1+r, n) - 1 collapses to zero.
	var monthlyPI float64
	growthMinusOne := math.Expm1(n * math.Log1p(monthlyRate))
	switch {
	case math.IsNaN(growthMinusOne):
		return models.PaymentBreakdown{}, &ParameterError{Param: "interestRate", Reason: "must be greater than -1200 percent"}
	case monthlyRate == 0 || growthMinusOne == 0:
		monthlyPI = principal / n
	case math.IsInf(growthMinusOne, 1):
		// growth/(growth-1) tends to 1: the payment is pure interest.
		monthlyPI = principal * monthlyRate
	default:
		monthlyPI = principal * monthlyRate * (growthMinusOne + 1) / growthMinusOne
	}

	b := models.PaymentBreakdown{
		Principal:                principal,
		NumPayments:              numPayments,
		MonthlyPrincipalInterest: monthlyPI,
		MonthlyTax:               params.AnnualPropertyTax / 12,
		MonthlyInsurance:         params.AnnualInsurance / 12,
		MonthlyPMI:               params.MonthlyPMI,
		MonthlyHOA:               params.MonthlyHOA,
	}
	b.TotalMonthlyPayment = b.MonthlyPrincipalInterest + b.MonthlyTax + b.MonthlyInsurance + b.MonthlyPMI + b.MonthlyHOA
	b.TotalInterest = monthlyPI*n - principal
	b.TotalPayment = b.TotalInterest + principal

	for _, v := range []float64{b.MonthlyPrincipalInterest, b.TotalMonthlyPayment, b.TotalInterest, b.TotalPayment} {
		if !finite(v) {
			return models.PaymentBreakdown{}, &ParameterError{Param: "homePrice", Reason: "amounts are too large to compute"}
		}
	}

	return b, nil
}
