package models

// LoanParameters are the eight inputs of the mortgage calculator.
// PMI and HOA are monthly amounts; property tax and insurance are annual.
type LoanParameters struct {
	HomePrice           float64 `json:"homePrice" form:"homePrice"`
	DownPayment         float64 `json:"downPayment" form:"downPayment"`
	InterestRatePercent float64 `json:"interestRate" form:"interestRate"`
	LoanTermYears       float64 `json:"loanTerm" form:"loanTerm"`
	AnnualPropertyTax   float64 `json:"propertyTax" form:"propertyTax"`
	AnnualInsurance     float64 `json:"insurance" form:"insurance"`
	MonthlyPMI          float64 `json:"pmi" form:"pmi"`
	MonthlyHOA          float64 `json:"hoa" form:"hoa"`
}

// PaymentBreakdown is the full output of a mortgage computation.
// All amounts are unrounded currency values.
type PaymentBreakdown struct {
	Principal                float64 `json:"principal"`
	MonthlyPrincipalInterest float64 `json:"monthlyPrincipalAndInterest"`
	MonthlyTax               float64 `json:"monthlyTax"`
	MonthlyInsurance         float64 `json:"monthlyInsurance"`
	MonthlyPMI               float64 `json:"monthlyPmi"`
	MonthlyHOA               float64 `json:"monthlyHoa"`
	TotalMonthlyPayment      float64 `json:"totalMonthlyPayment"`
	TotalInterest            float64 `json:"totalInterest"`
	TotalPayment             float64 `json:"totalPayment"`
	NumPayments              int     `json:"numPayments"`
}
