package domain

import (
	"testing"
	"time"
)

func TestInstallmentAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		term     RepaymentTerm
		expected int64
	}{
		{
			name:     "even division",
			amount:   1200,
			term:     TermTwelveMonths,
			expected: 100,
		},
		{
			name:     "24 month term",
			amount:   2400,
			term:     TermTwentyFourMonths,
			expected: 100,
		},
		{
			name:     "halfway rounds to even - down",
			amount:   150, // 150/12 = 12.5
			term:     TermTwelveMonths,
			expected: 12,
		},
		{
			name:     "halfway rounds to even - up",
			amount:   42, // 42/12 = 3.5
			term:     TermTwelveMonths,
			expected: 4,
		},
		{
			name:     "non-halfway rounds nearest",
			amount:   1000, // 1000/24 = 41.666...
			term:     TermTwentyFourMonths,
			expected: 42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InstallmentAmount(tt.amount, tt.term)
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestBuildInstallmentSchedule(t *testing.T) {
	createdAt := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	loan := &Loan{
		ID:          "loan-1",
		ApplicantID: "user-1",
		Amount:      1200,
		Term:        TermTwelveMonths,
	}

	installments := BuildInstallmentSchedule(loan, createdAt)

	if len(installments) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(installments))
	}

	for i, inst := range installments {
		if inst.Amount != 100 {
			t.Errorf("installment %d: expected amount 100, got %d", i, inst.Amount)
		}

		if inst.DebtorID != "user-1" {
			t.Errorf("installment %d: expected debtor user-1, got %s", i, inst.DebtorID)
		}

		if inst.LoanID != "loan-1" {
			t.Errorf("installment %d: expected loan loan-1, got %s", i, inst.LoanID)
		}

		expectedDue := time.Date(2024, time.March+time.Month(i+1), 15, 10, 0, 0, 0, time.UTC)
		if !inst.DueDate.Equal(expectedDue) {
			t.Errorf("installment %d: expected due %s, got %s", i, expectedDue, inst.DueDate)
		}

		if inst.Settled {
			t.Errorf("installment %d: expected unsettled", i)
		}
	}
}

func TestBuildInstallmentSchedule_ClampsMonthEnd(t *testing.T) {
	// 2025 is not a leap year: Jan 31 + one month is Feb 28.
	createdAt := time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC)
	loan := &Loan{ID: "loan-1", ApplicantID: "user-1", Amount: 1200, Term: TermTwelveMonths}

	installments := BuildInstallmentSchedule(loan, createdAt)

	first := installments[0].DueDate
	if first.Month() != time.February || first.Day() != 28 {
		t.Errorf("expected first due date Feb 28, got %s", first)
	}

	second := installments[1].DueDate
	if second.Month() != time.March || second.Day() != 28 {
		t.Errorf("expected second due date Mar 28, got %s", second)
	}
}

func TestRepaymentTerm_IsValid(t *testing.T) {
	if !TermTwelveMonths.IsValid() || !TermTwentyFourMonths.IsValid() {
		t.Error("expected 12 and 24 month terms to be valid")
	}

	if RepaymentTerm(6).IsValid() {
		t.Error("expected 6 month term to be invalid")
	}
}
