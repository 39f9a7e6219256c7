package handlers

import (
	"math"
	"net/http"

	apierrors "github.com/apper-canvas/homescout-pixel-alarm/internal/errors"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/formatters"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/mortgage"
	"github.com/gin-gonic/gin"
)

// MortgageHandler serves the mortgage calculator.
type MortgageHandler struct{}

// NewMortgageHandler creates a new MortgageHandler.
func NewMortgageHandler() *MortgageHandler {
	return &MortgageHandler{}
}

// MortgageDisplay holds the breakdown formatted for display.
type MortgageDisplay struct {
	MonthlyPrincipalInterest string `json:"monthlyPrincipalAndInterest"`
	MonthlyTax               string `json:"monthlyTax"`
	MonthlyInsurance         string `json:"monthlyInsurance"`
	MonthlyPMI               string `json:"monthlyPmi"`
	MonthlyHOA               string `json:"monthlyHoa"`
	TotalMonthlyPayment      string `json:"totalMonthlyPayment"`
	LoanAmount               string `json:"loanAmount"`
	TotalInterest            string `json:"totalInterest"`
	TotalPayment             string `json:"totalPayment"`
}

// MortgageResponse is the response for the mortgage endpoint.
type MortgageResponse struct {
	Parameters models.LoanParameters   `json:"parameters"`
	Breakdown  models.PaymentBreakdown `json:"breakdown"`
	Display    MortgageDisplay         `json:"display"`
}

// Calculate handles GET and POST /api/v1/mortgage. GET reads query
// parameters, POST a JSON body; missing fields keep the calculator defaults.
func (h *MortgageHandler) Calculate(c *gin.Context) {
	params := mortgage.DefaultParameters()

	var err error
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(&params)
	} else {
		err = c.ShouldBindJSON(&params)
	}
	if err != nil {
		apierrors.BadRequest(c, "Invalid loan parameters", map[string]interface{}{"reason": err.Error()})
		return
	}

	if name, reason, ok := invalidInput(params); ok {
		apierrors.InvalidParameter(c, name, reason)
		return
	}

	calc := mortgage.NewCalculator()
	calc.SetParams(params)
	if err := calc.Err(); err != nil {
		writeServiceError(c, err, "calculate mortgage")
		return
	}

	b := calc.Breakdown()
	c.JSON(http.StatusOK, MortgageResponse{
		Parameters: calc.Params(),
		Breakdown:  b,
		Display: MortgageDisplay{
			MonthlyPrincipalInterest: formatters.Currency(b.MonthlyPrincipalInterest),
			MonthlyTax:               formatters.Currency(b.MonthlyTax),
			MonthlyInsurance:         formatters.Currency(b.MonthlyInsurance),
			MonthlyPMI:               formatters.Currency(b.MonthlyPMI),
			MonthlyHOA:               formatters.Currency(b.MonthlyHOA),
			TotalMonthlyPayment:      formatters.Currency(b.TotalMonthlyPayment),
			LoanAmount:               formatters.Price(b.Principal),
			TotalInterest:            formatters.Price(b.TotalInterest),
			TotalPayment:             formatters.Price(b.TotalPayment),
		},
	})
}

// invalidInput returns the wire name of the first input that is not a
// finite, non-negative number, with the reason.
func invalidInput(p models.LoanParameters) (string, string, bool) {
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
		switch {
		case math.IsNaN(f.value) || math.IsInf(f.value, 0):
			return f.name, "Must be a finite number", true
		case f.value < 0:
			return f.name, "Must not be negative", true
		}
	}
	return "", "", false
}
