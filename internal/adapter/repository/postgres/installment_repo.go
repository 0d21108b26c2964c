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

const installmentColumns = `id, debtor_id, loan_id, amount, due_date, settled, created_at`

// InstallmentRepository implements installment persistence.
type InstallmentRepository struct {
	pool *pgxpool.Pool
}

// NewInstallmentRepository creates a new InstallmentRepository.
func NewInstallmentRepository(pool *pgxpool.Pool) *InstallmentRepository {
	return &InstallmentRepository{pool: pool}
}

// CreateBatch inserts a loan's whole schedule inside the grant transaction.
func (r *InstallmentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, installments []*domain.Installment) error {
	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, inst := range installments {
		batch.Queue(query,
			inst.ID,
			inst.DebtorID,
			inst.LoanID,
			inst.Amount,
			inst.DueDate,
			inst.Settled,
			inst.CreatedAt,
		)
	}

	return pgxTx.SendBatch(ctx, batch).Close()
}

// ListByLoan lists a loan's installments in due-date order.
func (r *InstallmentRepository) ListByLoan(ctx context.Context, loanID string) ([]*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE loan_id = $1
		ORDER BY due_date
	`

	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInstallments(rows)
}

// ListDueUnsettled returns unsettled installments whose due date has passed.
func (r *InstallmentRepository) ListDueUnsettled(ctx context.Context, now time.Time, limit int) ([]*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE NOT settled AND due_date < $1
		ORDER BY due_date
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInstallments(rows)
}

// GetByIDForUpdate retrieves an installment by ID with a FOR UPDATE lock.
func (r *InstallmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE id = $1 FOR UPDATE`

	pgxTx := tx.(*Tx).PgxTx()

	var inst domain.Installment
	err := pgxTx.QueryRow(ctx, query, id).Scan(
		&inst.ID,
		&inst.DebtorID,
		&inst.LoanID,
		&inst.Amount,
		&inst.DueDate,
		&inst.Settled,
		&inst.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInstallmentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &inst, nil
}

// MarkSettled flips the settled flag, reporting false when it already was.
func (r *InstallmentRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	query := `UPDATE installments SET settled = TRUE WHERE id = $1 AND NOT settled`

	pgxTx := tx.(*Tx).PgxTx()
	tag, err := pgxTx.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// CountUnsettledByLoan counts a loan's open installments inside the
// closure transaction.
func (r *InstallmentRepository) CountUnsettledByLoan(ctx context.Context, tx usecase.Transaction, loanID string) (int64, error) {
	query := `SELECT COUNT(*) FROM installments WHERE loan_id = $1 AND NOT settled`

	pgxTx := tx.(*Tx).PgxTx()

	var count int64
	err := pgxTx.QueryRow(ctx, query, loanID).Scan(&count)
	return count, err
}

func scanInstallments(rows pgx.Rows) ([]*domain.Installment, error) {
	var installments []*domain.Installment
	for rows.Next() {
		var inst domain.Installment
		if err := rows.Scan(
			&inst.ID,
			&inst.DebtorID,
			&inst.LoanID,
			&inst.Amount,
			&inst.DueDate,
			&inst.Settled,
			&inst.CreatedAt,
		); err != nil {
			return nil, err
		}
		installments = append(installments, &inst)
	}

	return installments, rows.Err()
}
