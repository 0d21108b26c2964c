package domain

import "time"

// Account represents a customer account holding an integral credit balance.
// Balances are whole currency units (toman); fractional remainders never occur,
// rounding happens at computation time (see money.go).
type Account struct {
	ID        string
	Number    string
	OwnerID   string
	BranchID  string
	Credit    int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks if the account balance can be reduced by amount
// without falling below the configured floor.
func (a *Account) ValidateDebit(amount, minBalance int64) error {
	if a.Credit-amount < minBalance {
		return ErrMinBalanceLimit
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount int64) int64 {
	return a.Credit - amount
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount int64) int64 {
	return a.Credit + amount
}
