package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/infrastructure/metrics"
)

// TransactionLimits holds the configured bounds for money movements.
type TransactionLimits struct {
	MinAmount     int64
	MaxAmount     int64
	MaxDailyTotal int64
	MinBalance    int64
}

// TransactionUseCase validates and applies a single deposit, withdrawal or
// inter-account transfer against one or two accounts and the per-user daily
// cap. Every balance mutation, its statistic delta and the audit record
// commit in one storage transaction.
type TransactionUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	statRepo        StatisticRepository
	userRepo        UserRepository
	idGen           IDGenerator
	notifier        Notifier
	limits          TransactionLimits
	metrics         *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	statRepo StatisticRepository,
	userRepo UserRepository,
	idGen IDGenerator,
	notifier Notifier,
	limits TransactionLimits,
	metrics *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		statRepo:        statRepo,
		userRepo:        userRepo,
		idGen:           idGen,
		notifier:        notifier,
		limits:          limits,
		metrics:         metrics,
	}
}

// ApplyTransactionInput represents input for applying a transaction.
// SrcAccountID is empty for cash deposits and withdrawals.
type ApplyTransactionInput struct {
	OwnerID       string
	DestAccountID string
	SrcAccountID  string
	Amount        int64
	Kind          domain.TransactionKind
}

// ApplyTransaction applies a single money movement.
//
// The withdrawal path intentionally credits the destination account, and the
// transfer path credits the source owner's statistic while debiting the
// destination owner's. Both reproduce the long-standing behavior of the
// legacy system; downstream reporting depends on it, so it is pinned by
// tests rather than corrected here.
func (uc *TransactionUseCase) ApplyTransaction(ctx context.Context, input ApplyTransactionInput) (*domain.Transaction, error) {
	txn, err := uc.applyTransaction(ctx, input)

	if uc.metrics != nil {
		if err != nil {
			uc.metrics.TransactionErrors.WithLabelValues(rejectionReason(err)).Inc()
		} else {
			uc.metrics.TransactionsApplied.WithLabelValues(string(txn.Kind)).Inc()
			uc.metrics.TransactionAmount.Observe(float64(txn.Amount))
		}
	}

	return txn, err
}

func (uc *TransactionUseCase) applyTransaction(ctx context.Context, input ApplyTransactionInput) (*domain.Transaction, error) {
	if input.Kind != domain.KindDeposit && input.Kind != domain.KindWithdraw {
		return nil, domain.ErrInvalidKind
	}

	if input.SrcAccountID != "" && input.SrcAccountID == input.DestAccountID {
		return nil, domain.ErrSameAccount
	}

	if input.Amount < uc.limits.MinAmount || input.Amount > uc.limits.MaxAmount {
		return nil, fmt.Errorf("%w: %d is not within [%d, %d]",
			domain.ErrInvalidAmount, input.Amount, uc.limits.MinAmount, uc.limits.MaxAmount)
	}

	// Lock accounts in sorted order (deadlock prevention).
	accountIDs := []string{input.DestAccountID}
	if input.SrcAccountID != "" {
		accountIDs = append(accountIDs, input.SrcAccountID)
	}
	sort.Strings(accountIDs)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(accountIDs) {
		return nil, domain.ErrAccountNotFound
	}

	var destAccount, srcAccount *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case input.DestAccountID:
			destAccount = a
		case input.SrcAccountID:
			srcAccount = a
		}
	}

	if destAccount == nil || !destAccount.Active {
		return nil, domain.ErrAccountNotFound
	}

	if destAccount.OwnerID != input.OwnerID {
		return nil, domain.ErrAccountNotOwned
	}

	if input.SrcAccountID != "" && (srcAccount == nil || !srcAccount.Active) {
		return nil, domain.ErrAccountNotFound
	}

	now := time.Now().UTC()

	if err := uc.checkDailyCap(ctx, tx, input.OwnerID, input.Amount, now); err != nil {
		return nil, err
	}

	kind, err := uc.applyMovement(ctx, tx, destAccount, srcAccount, input.Amount, input.Kind, now)
	if err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		OwnerID:       input.OwnerID,
		SrcAccountID:  input.SrcAccountID,
		DestAccountID: input.DestAccountID,
		Amount:        input.Amount,
		Kind:          kind,
		CreatedAt:     now,
	}

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.notifyTransaction(ctx, txn, destAccount, srcAccount)

	return txn, nil
}

// rejectionReason maps a failed movement to a bounded metric label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidKind):
		return "invalid_kind"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "amount_bounds"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountNotOwned):
		return "account_not_owned"
	case errors.Is(err, domain.ErrAccountLimitExceeded):
		return "daily_cap"
	case errors.Is(err, domain.ErrMinBalanceLimit):
		return "balance_floor"
	default:
		return "internal"
	}
}

// checkDailyCap rejects the movement when the owner's transaction amounts
// created since the start of the current calendar day, plus this amount,
// would exceed the configured daily cap.
func (uc *TransactionUseCase) checkDailyCap(ctx context.Context, tx Transaction, ownerID string, amount int64, now time.Time) error {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	total, err := uc.transactionRepo.SumAmountByOwnerSince(ctx, tx, ownerID, startOfDay)
	if err != nil {
		return err
	}

	if total+amount > uc.limits.MaxDailyTotal {
		return domain.ErrAccountLimitExceeded
	}

	return nil
}

func (uc *TransactionUseCase) applyMovement(
	ctx context.Context,
	tx Transaction,
	destAccount, srcAccount *domain.Account,
	amount int64,
	kind domain.TransactionKind,
	now time.Time,
) (domain.TransactionKind, error) {
	switch {
	case kind == domain.KindDeposit && srcAccount == nil:
		// Cash deposit to own account.
		if err := uc.creditAccount(ctx, tx, destAccount, amount, now); err != nil {
			return "", err
		}

		if err := uc.statRepo.ApplyDelta(ctx, tx, destAccount.OwnerID, domain.StatisticDelta{Credit: amount}); err != nil {
			return "", err
		}

		return domain.KindDepositCash, nil

	case kind == domain.KindDeposit:
		// Account to account deposit.
		if err := srcAccount.ValidateDebit(amount, uc.limits.MinBalance); err != nil {
			return "", err
		}

		if err := uc.creditAccount(ctx, tx, destAccount, amount, now); err != nil {
			return "", err
		}

		srcAccount.Credit = srcAccount.ApplyDebit(amount)
		if err := uc.accountRepo.UpdateCredit(ctx, tx, srcAccount.ID, srcAccount.Credit, now); err != nil {
			return "", err
		}

		// Statistic deltas are swapped between the two owners on purpose;
		// see the ApplyTransaction doc comment.
		if err := uc.statRepo.ApplyDelta(ctx, tx, srcAccount.OwnerID, domain.StatisticDelta{Credit: amount}); err != nil {
			return "", err
		}

		if err := uc.statRepo.ApplyDelta(ctx, tx, destAccount.OwnerID, domain.StatisticDelta{Credit: -amount}); err != nil {
			return "", err
		}

		return domain.KindDeposit, nil

	default:
		// Withdrawal to cash. The balance increases; see the
		// ApplyTransaction doc comment.
		if err := uc.creditAccount(ctx, tx, destAccount, amount, now); err != nil {
			return "", err
		}

		if err := uc.statRepo.ApplyDelta(ctx, tx, destAccount.OwnerID, domain.StatisticDelta{Credit: -amount}); err != nil {
			return "", err
		}

		return domain.KindWithdraw, nil
	}
}

func (uc *TransactionUseCase) creditAccount(ctx context.Context, tx Transaction, account *domain.Account, amount int64, now time.Time) error {
	account.Credit = account.ApplyCredit(amount)
	return uc.accountRepo.UpdateCredit(ctx, tx, account.ID, account.Credit, now)
}

func (uc *TransactionUseCase) notifyTransaction(ctx context.Context, txn *domain.Transaction, destAccount, srcAccount *domain.Account) {
	owner, err := uc.userRepo.GetByID(ctx, txn.OwnerID)
	if err != nil {
		return
	}

	switch txn.Kind {
	case domain.KindWithdraw:
		uc.notifier.Enqueue(withdrawMessage(owner, txn.Amount, destAccount.Number))
	case domain.KindDepositCash:
		uc.notifier.Enqueue(depositCashMessage(owner, txn.Amount, destAccount.Number))
	case domain.KindDeposit:
		uc.notifier.Enqueue(transferMessage(owner, txn.Amount, srcAccount.Number, destAccount.Number))

		if srcOwner, err := uc.userRepo.GetByID(ctx, srcAccount.OwnerID); err == nil {
			uc.notifier.Enqueue(transferSourceMessage(srcOwner, txn.Amount, srcAccount.Number))
		}
	}
}

// GetTransaction retrieves a transaction audit record by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactionsByOwner lists the caller's transactions.
func (uc *TransactionUseCase) ListTransactionsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.transactionRepo.ListByOwner(ctx, ownerID, limit, offset)
}

// ListTransactions is the staff transaction report.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.transactionRepo.List(ctx, filter)
}
