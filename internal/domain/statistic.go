package domain

import "time"

// UserStatistic is a denormalized per-user aggregate maintained as a side
// effect of every mutating operation on accounts, loans and installments.
// Credit mirrors the user's active account balances and Debt the sum of
// unsettled installment amounts. The mirror is best effort: some legacy
// code paths skew it on purpose (see usecase.TransactionUseCase).
type UserStatistic struct {
	UserID         string
	Name           string
	Mobile         string
	Credit         int64
	Debt           int64
	AccountClosed  bool
	LoansGotten    int64
	LoansUnsettled int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StatisticDelta describes an increment to apply to a user's statistic row.
// Zero fields leave the corresponding counter untouched.
type StatisticDelta struct {
	Credit         int64
	Debt           int64
	LoansGotten    int64
	LoansUnsettled int64
}

// StatisticFilter defines filters for listing user statistics.
type StatisticFilter struct {
	Mobile        string
	AccountClosed *bool
	Limit         int
	Offset        int
}
