package data

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrNeverRepaid means the EMI doesn't cover the monthly interest, so the
// balance never shrinks.
var ErrNeverRepaid = errors.New("emi does not cover monthly interest")

// Amortization is the outlook for a loan at its current EMI.
type Amortization struct {
	TenureMonths  int
	TotalPayable  float64
	TotalInterest float64
	Principal     float64
}

// Amortize computes the months left to clear outstanding at annualRate
// percent with a fixed monthly emi:
//
//	n = ceil(log(emi / (emi - outstanding*r)) / log(1+r)), r = annualRate/12/100
//
// Tenure is 0 when emi, rate or outstanding isn't positive.
func Amortize(outstanding, annualRate, emi float64) (Amortization, error) {
	a := Amortization{Principal: outstanding}
	r := annualRate / 12 / 100
	if emi <= 0 || r <= 0 || outstanding <= 0 {
		a.TotalInterest = -outstanding
		return a, nil
	}
	if emi <= outstanding*r {
		return a, ErrNeverRepaid
	}
	a.TenureMonths = int(math.Ceil(math.Log(emi/(emi-outstanding*r)) / math.Log(1+r)))
	a.TotalPayable = emi * float64(a.TenureMonths)
	a.TotalInterest = a.TotalPayable - outstanding
	return a, nil
}

// Loan is the set of inputs behind a loan task.
type Loan struct {
	Amount      float64
	Outstanding float64
	Rate        float64
	Emi         float64
}

// LoanOf pulls the loan fields off a task.
func LoanOf(t Task) Loan {
	return Loan{Amount: t.LoanAmount, Outstanding: t.LoanOutstanding, Rate: t.LoanInterestRate, Emi: t.LoanEmi}
}

// LoanDescription renders the two-line loan summary stored as the task
// description.
func LoanDescription(l Loan) string {
	a, err := Amortize(l.Outstanding, l.Rate, l.Emi)
	tenure := strconv.Itoa(a.TenureMonths) + "m"
	interest := fmt.Sprintf("%.2f", a.TotalInterest)
	if errors.Is(err, ErrNeverRepaid) {
		tenure = "never"
		interest = "n/a"
	}
	return fmt.Sprintf("Loan: %s | Outstanding: %s | Rate: %s%% | EMI: %s\nTenure: %s | Principal: %s | Interest: %s",
		num(l.Amount), num(l.Outstanding), num(l.Rate), num(l.Emi), tenure, num(a.Principal), interest)
}

var (
	loanAmountPattern  = regexp.MustCompile(`Loan:\s*([\d.]+)`)
	outstandingPattern = regexp.MustCompile(`Outstanding:\s*([\d.]+)`)
	ratePattern        = regexp.MustCompile(`Rate:\s*([\d.]+)`)
	emiPattern         = regexp.MustCompile(`EMI:\s*([\d.]+)`)
)

// ParseLoan reads loan inputs back out of a description. Fields that are
// absent stay zero; ok is false only if no field was found.
func ParseLoan(description string) (Loan, bool) {
	var l Loan
	found := false
	read := func(re *regexp.Regexp, dst *float64) {
		m := re.FindStringSubmatch(description)
		if m == nil {
			return
		}
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			*dst = v
			found = true
		}
	}
	read(loanAmountPattern, &l.Amount)
	read(outstandingPattern, &l.Outstanding)
	read(ratePattern, &l.Rate)
	read(emiPattern, &l.Emi)
	return l, found
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
