package mortgage

import (
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

// Calculator keeps loan parameters and their breakdown in sync: every setter
// recomputes before returning. When the current parameters are invalid the
// last error is kept and Breakdown returns the zero value.
type Calculator struct {
	params    models.LoanParameters
	breakdown models.PaymentBreakdown
	err       error
	onChange  func(models.PaymentBreakdown, error)
}

// NewCalculator creates a calculator initialised with DefaultParameters.
func NewCalculator() *Calculator {
	c := &Calculator{params: DefaultParameters()}
	c.recompute()
	return c
}

// OnChange registers fn to be called after every recomputation.
func (c *Calculator) OnChange(fn func(models.PaymentBreakdown, error)) {
	c.onChange = fn
}

// Params returns the current inputs.
func (c *Calculator) Params() models.LoanParameters { return c.params }

// Breakdown returns the result for the current inputs, zero when Err is set.
func (c *Calculator) Breakdown() models.PaymentBreakdown { return c.breakdown }

// Err returns why the current inputs cannot be computed, or nil.
func (c *Calculator) Err() error { return c.err }

// SetParams replaces all eight inputs at once.
func (c *Calculator) SetParams(p models.LoanParameters) {
	c.params = p
	c.recompute()
}

// Reset restores the default inputs.
func (c *Calculator) Reset() {
	c.SetParams(DefaultParameters())
}

// SetHomePrice sets the purchase price.
func (c *Calculator) SetHomePrice(v float64) {
	c.params.HomePrice = v
	c.recompute()
}

// SetDownPayment sets the down payment amount.
func (c *Calculator) SetDownPayment(v float64) {
	c.params.DownPayment = v
	c.recompute()
}

// SetInterestRate sets the annual rate in percent, e.g. 6.5.
func (c *Calculator) SetInterestRate(percent float64) {
	c.params.InterestRatePercent = percent
	c.recompute()
}

// SetLoanTerm sets the term in years.
func (c *Calculator) SetLoanTerm(years float64) {
	c.params.LoanTermYears = years
	c.recompute()
}

// SetPropertyTax sets the annual property tax.
func (c *Calculator) SetPropertyTax(annual float64) {
	c.params.AnnualPropertyTax = annual
	c.recompute()
}

// SetInsurance sets the annual homeowners insurance.
func (c *Calculator) SetInsurance(annual float64) {
	c.params.AnnualInsurance = annual
	c.recompute()
}

// SetPMI sets the monthly private mortgage insurance.
func (c *Calculator) SetPMI(monthly float64) {
	c.params.MonthlyPMI = monthly
	c.recompute()
}

// SetHOA sets the monthly HOA dues.
func (c *Calculator) SetHOA(monthly float64) {
	c.params.MonthlyHOA = monthly
	c.recompute()
}

func (c *Calculator) recompute() {
	c.breakdown, c.err = Compute(c.params)
	if c.onChange != nil {
		c.onChange(c.breakdown, c.err)
	}
}
