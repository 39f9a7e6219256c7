package mortgage

import (
	"math"
	"testing"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_DefaultScenario(t *testing.T) {
	b, err := Compute(models.LoanParameters{
		HomePrice:           400000,
		DownPayment:         80000,
		InterestRatePercent: 6.5,
		LoanTermYears:       30,
		AnnualPropertyTax:   5000,
		AnnualInsurance:     1200,
		MonthlyPMI:          200,
		MonthlyHOA:          0,
	})
	require.NoError(t, err)

	assert.Equal(t, 320000.0, b.Principal)
	assert.Equal(t, 360, b.NumPayments)
	assert.InDelta(t, 2023.10, b.MonthlyPrincipalInterest, 0.5)
	assert.InDelta(t, 2022.6177, b.MonthlyPrincipalInterest, 0.001)
	assert.InDelta(t, 416.6667, b.MonthlyTax, 0.001)
	assert.InDelta(t, 100.0, b.MonthlyInsurance, 1e-9)
	assert.Equal(t, 200.0, b.MonthlyPMI)
	assert.Equal(t, 0.0, b.MonthlyHOA)
	assert.InDelta(t, 2739.77, b.TotalMonthlyPayment, 1)
	assert.InDelta(t, 408142.36, b.TotalInterest, 0.01)
	assert.InDelta(t, b.TotalInterest+b.Principal, b.TotalPayment, 1e-6)
}

func TestCompute_PMIAndHOAAreMonthly(t *testing.T) {
	params := DefaultParameters()
	params.MonthlyPMI = 150
	params.MonthlyHOA = 325

	b, err := Compute(params)
	require.NoError(t, err)

	assert.Equal(t, 150.0, b.MonthlyPMI)
	assert.Equal(t, 325.0, b.MonthlyHOA)
	sum := b.MonthlyPrincipalInterest + b.MonthlyTax + b.MonthlyInsurance + 150 + 325
	assert.InDelta(t, sum, b.TotalMonthlyPayment, 1e-9)
}

func TestCompute_ZeroInterestIsStraightLine(t *testing.T) {
	params := DefaultParameters()
	params.InterestRatePercent = 0
	params.LoanTermYears = 15

	b, err := Compute(params)
	require.NoError(t, err)

	assert.Equal(t, 320000.0/180.0, b.MonthlyPrincipalInterest)
	assert.False(t, math.IsNaN(b.TotalMonthlyPayment))
	assert.InDelta(t, 0, b.TotalInterest, 1e-6)
	assert.InDelta(t, 320000, b.TotalPayment, 1e-6)
}

func TestCompute_ZeroTermIsInvalid(t *testing.T) {
	for _, term := range []float64{0, -5, 0.01} {
		params := DefaultParameters()
		params.LoanTermYears = term

		_, err := Compute(params)
		assert.ErrorIs(t, err, ErrInvalidParameter, "term %v", term)
	}
}

func TestCompute_NonFiniteInputs(t *testing.T) {
	tests := []struct {
		name  string
		param string
		set   func(*models.LoanParameters)
	}{
		{"NaN rate", "interestRate", func(p *models.LoanParameters) { p.InterestRatePercent = math.NaN() }},
		{"infinite price", "homePrice", func(p *models.LoanParameters) { p.HomePrice = math.Inf(1) }},
		{"negative infinite down payment", "downPayment", func(p *models.LoanParameters) { p.DownPayment = math.Inf(-1) }},
		{"NaN term", "loanTerm", func(p *models.LoanParameters) { p.LoanTermYears = math.NaN() }},
		{"NaN HOA", "hoa", func(p *models.LoanParameters) { p.MonthlyHOA = math.NaN() }},
		{"overflowing price", "homePrice", func(p *models.LoanParameters) { p.HomePrice = math.MaxFloat64 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParameters()
			tt.set(&params)

			_, err := Compute(params)
			require.ErrorIs(t, err, ErrInvalidParameter)

			var pe *ParameterError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.param, pe.Param)
		})
	}
}

func TestCompute_ExtremeRatesStayFinite(t *testing.T) {
	tests := []struct {
		name   string
		rate   float64
		wantPI float64
	}{
		{"tiny positive rate", 1e-16, 320000.0 / 360},
		{"subnormal rate", 5e-324, 320000.0 / 360},
		{"tiny negative rate", -1e-16, 320000.0 / 360},
		{"huge rate is interest only", 1e6, 320000 * 1e6 / 100 / 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParameters()
			params.InterestRatePercent = tt.rate

			b, err := Compute(params)
			require.NoError(t, err)

			for _, v := range []float64{b.MonthlyPrincipalInterest, b.TotalMonthlyPayment, b.TotalInterest, b.TotalPayment} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "got %v", v)
			}
			assert.InEpsilon(t, tt.wantPI, b.MonthlyPrincipalInterest, 1e-9)
		})
	}
}

func TestCompute_NonPositivePrincipal(t *testing.T) {
	tests := []struct {
		name        string
		downPayment float64
		wantSign    float64
	}{
		{name: "zero principal", downPayment: 400000, wantSign: 0},
		{name: "negative principal", downPayment: 450000, wantSign: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParameters()
			params.DownPayment = tt.downPayment

			b, err := Compute(params)
			require.NoError(t, err)

			switch tt.wantSign {
			case 0:
				assert.Equal(t, 0.0, b.MonthlyPrincipalInterest)
			default:
				assert.Less(t, b.MonthlyPrincipalInterest, 0.0)
			}
			assert.InDelta(t, b.TotalInterest+b.Principal, b.TotalPayment, 1e-6)
		})
	}
}

func TestCompute_IsDeterministic(t *testing.T) {
	params := DefaultParameters()
	first, err := Compute(params)
	require.NoError(t, err)
	second, err := Compute(params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
