package domain

import "time"

// RepaymentTerm is the number of monthly installments of a loan.
type RepaymentTerm int

// Supported repayment terms.
const (
	TermTwelveMonths     RepaymentTerm = 12
	TermTwentyFourMonths RepaymentTerm = 24
)

// IsValid checks if the term is one of the supported month counts.
func (t RepaymentTerm) IsValid() bool {
	return t == TermTwelveMonths || t == TermTwentyFourMonths
}

// Loan represents an installment loan granted to a customer.
// RemainderInstallment tracks the total unsettled installment amount and
// starts at the loan principal. Settled transitions false to true exactly
// once, when the last unsettled installment clears.
type Loan struct {
	ID                   string
	ApplicantID          string
	BranchID             string
	Amount               int64
	Term                 RepaymentTerm
	RemainderInstallment int64
	Settled              bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Installment is one monthly repayment obligation of a loan.
type Installment struct {
	ID        string
	DebtorID  string
	LoanID    string
	Amount    int64
	DueDate   time.Time
	Settled   bool
	CreatedAt time.Time
}

// InstallmentAmount computes the per-installment amount for a loan,
// rounding half to even (see money.go).
func InstallmentAmount(amount int64, term RepaymentTerm) int64 {
	return RoundHalfEven(amount, int64(term))
}

// BuildInstallmentSchedule generates the installment records for a loan:
// exactly term installments, each due one calendar month after the previous,
// the first one month after createdAt. Day-of-month is clamped when the
// target month is shorter (Jan 31 -> Feb 28).
func BuildInstallmentSchedule(loan *Loan, createdAt time.Time) []*Installment {
	amount := InstallmentAmount(loan.Amount, loan.Term)

	installments := make([]*Installment, 0, int(loan.Term))
	due := createdAt
	for i := 0; i < int(loan.Term); i++ {
		due = addCalendarMonth(due)
		installments = append(installments, &Installment{
			DebtorID:  loan.ApplicantID,
			LoanID:    loan.ID,
			Amount:    amount,
			DueDate:   due,
			CreatedAt: createdAt,
		})
	}

	return installments
}

// addCalendarMonth advances t by one month, clamping the day to the last
// day of the target month instead of letting it spill over.
func addCalendarMonth(t time.Time) time.Time {
	year, month, day := t.Date()
	firstOfNext := time.Date(year, month+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())

	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
