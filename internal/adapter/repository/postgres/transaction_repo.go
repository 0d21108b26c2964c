package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/usecase"
)

const transactionColumns = `id, owner_id, src_account_id, dest_account_id, amount, kind, created_at`

// TransactionRepository implements transaction audit persistence.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts an audit record inside the movement's transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.OwnerID,
		txn.SrcAccountID,
		txn.DestAccountID,
		txn.Amount,
		txn.Kind,
		txn.CreatedAt,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var txn domain.Transaction
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&txn.ID,
		&txn.OwnerID,
		&txn.SrcAccountID,
		&txn.DestAccountID,
		&txn.Amount,
		&txn.Kind,
		&txn.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// ListByOwner lists an owner's transactions, newest first.
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// List is the staff transaction report with optional filters.
func (r *TransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	query := `
		SELECT t.id, t.owner_id, t.src_account_id, t.dest_account_id, t.amount, t.kind, t.created_at
		FROM transactions t
	`

	var (
		conds []string
		args  []any
	)

	if filter.OwnerMobile != "" {
		args = append(args, filter.OwnerMobile)
		query += ` JOIN users u ON u.id = t.owner_id`
		conds = append(conds, fmt.Sprintf("u.mobile = $%d", len(args)))
	}
	if filter.SrcAccountID != "" {
		args = append(args, filter.SrcAccountID)
		conds = append(conds, fmt.Sprintf("t.src_account_id = $%d", len(args)))
	}
	if filter.DestAccountID != "" {
		args = append(args, filter.DestAccountID)
		conds = append(conds, fmt.Sprintf("t.dest_account_id = $%d", len(args)))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		conds = append(conds, fmt.Sprintf("t.kind = $%d", len(args)))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// SumAmountByOwnerSince returns the sum of the owner's transaction amounts
// created at or after the given instant. It runs inside the movement's
// transaction so the daily cap check sees a consistent snapshot.
func (r *TransactionRepository) SumAmountByOwnerSince(ctx context.Context, tx usecase.Transaction, ownerID string, since time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE owner_id = $1 AND created_at >= $2
	`

	pgxTx := tx.(*Tx).PgxTx()

	var total int64
	err := pgxTx.QueryRow(ctx, query, ownerID, since).Scan(&total)
	return total, err
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.OwnerID,
			&txn.SrcAccountID,
			&txn.DestAccountID,
			&txn.Amount,
			&txn.Kind,
			&txn.CreatedAt,
		); err != nil {
			return nil, err
		}
		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}
