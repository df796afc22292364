package company

import (
	"math"

	"github.com/google/uuid"
)

// LoanOffer is a standing credit line available to every company. The rate
// is the prevailing interest rate plus a fixed premium.
type LoanOffer struct {
	Amount   float64 `json:"amount"`
	TermDays int     `json:"term_days"`
}

// LoanRatePremium is added to the market interest rate on origination.
const LoanRatePremium = 0.01

// LoanOffers are the three standard credit lines.
var LoanOffers = []LoanOffer{
	{Amount: 500_000, TermDays: 365},
	{Amount: 2_000_000, TermDays: 730},
	{Amount: 10_000_000, TermDays: 1095},
}

// Loan is an amortized liability paid down daily.
type Loan struct {
	ID           string  `json:"id"`
	Principal    float64 `json:"principal"`
	Balance      float64 `json:"balance"`
	AnnualRate   float64 `json:"annual_rate"`
	TermDays     int     `json:"term_days"`
	DailyPayment float64 `json:"daily_payment"`
}

// NewLoan originates a loan at the given annual rate with standard daily
// amortization.
func NewLoan(amount, annualRate float64, termDays int) *Loan {
	return &Loan{
		ID:           uuid.NewString(),
		Principal:    amount,
		Balance:      amount,
		AnnualRate:   annualRate,
		TermDays:     termDays,
		DailyPayment: amortizedDailyPayment(amount, annualRate, termDays),
	}
}

// amortizedDailyPayment is the standard annuity formula at a daily rate.
func amortizedDailyPayment(principal, annualRate float64, termDays int) float64 {
	daily := annualRate / 365
	if daily <= 0 {
		return principal / float64(termDays)
	}
	return principal * daily / (1 - math.Pow(1+daily, -float64(termDays)))
}

// AccrueDay applies one day's payment, splitting it into interest and
// principal. Returns the interest portion and the cash paid out. The final
// payment is capped so the balance never goes negative.
func (l *Loan) AccrueDay() (interest, paid float64) {
	interest = l.Balance * l.AnnualRate / 365
	paid = l.DailyPayment
	principal := paid - interest
	if principal > l.Balance {
		principal = l.Balance
		paid = principal + interest
	}
	l.Balance -= principal
	return interest, paid
}

// Repay applies a lump-sum principal payment, capped at the balance.
// Returns the amount actually applied.
func (l *Loan) Repay(amount float64) float64 {
	if amount > l.Balance {
		amount = l.Balance
	}
	l.Balance -= amount
	return amount
}

// Settled reports whether the loan is fully paid off.
func (l *Loan) Settled() bool {
	return l.Balance <= 0.01
}
