package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/usecase"
)

const accountColumns = `id, number, owner_id, branch_id, credit, active, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Number,
		account.OwnerID,
		account.BranchID,
		account.Credit,
		account.Active,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return domain.ErrEntityAlreadyExists
	}

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByNumber retrieves an account by its number.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE number = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, number))
}

// ExistsByNumber reports whether an account with the given number exists.
func (r *AccountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE number = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, number).Scan(&exists)
	return exists, err
}

// ExistsByOwnerAndBank reports whether the owner already holds an account at
// any branch of the given bank. Inactive accounts count: closing an account
// does not free the slot.
func (r *AccountRepository) ExistsByOwnerAndBank(ctx context.Context, ownerID, bankID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM accounts a
			JOIN branches b ON b.id = a.branch_id
			WHERE a.owner_id = $1 AND b.bank_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, ownerID, bankID).Scan(&exists)
	return exists, err
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	pgxTx := tx.(*Tx).PgxTx()
	return scanAccount(pgxTx.QueryRow(ctx, query, id))
}

// GetByIDsForUpdate retrieves multiple accounts by IDs with FOR UPDATE locks.
// The caller passes the IDs pre-sorted so concurrent movements lock rows in
// the same order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	pgxTx := tx.(*Tx).PgxTx()
	rows, err := pgxTx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// GetActiveByOwnerForUpdate locks the owner's single active account.
func (r *AccountRepository) GetActiveByOwnerForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner_id = $1 AND active
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE
	`

	pgxTx := tx.(*Tx).PgxTx()
	return scanAccount(pgxTx.QueryRow(ctx, query, ownerID))
}

// ListActiveByOwner lists the owner's active accounts.
func (r *AccountRepository) ListActiveByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner_id = $1 AND active
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// ListActive pages through all active accounts in a stable order.
func (r *AccountRepository) ListActive(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE active
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// UpdateCredit updates the balance of an account.
func (r *AccountRepository) UpdateCredit(ctx context.Context, tx usecase.Transaction, id string, credit int64, updatedAt time.Time) error {
	query := `UPDATE accounts SET credit = $2, updated_at = $3 WHERE id = $1`

	pgxTx := tx.(*Tx).PgxTx()
	tag, err := pgxTx.Exec(ctx, query, id, credit, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// Deactivate marks an account inactive.
func (r *AccountRepository) Deactivate(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	query := `UPDATE accounts SET active = FALSE, updated_at = $2 WHERE id = $1`

	pgxTx := tx.(*Tx).PgxTx()
	tag, err := pgxTx.Exec(ctx, query, id, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Number,
		&account.OwnerID,
		&account.BranchID,
		&account.Credit,
		&account.Active,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return &account, nil
}

func scanAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Number,
			&account.OwnerID,
			&account.BranchID,
			&account.Credit,
			&account.Active,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}

	return accounts, rows.Err()
}
