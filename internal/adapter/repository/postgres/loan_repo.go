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

const loanColumns = `id, applicant_id, branch_id, amount, term, remainder_installment, settled, created_at, updated_at`

// LoanRepository implements loan persistence.
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

// Create inserts a loan inside the grant transaction.
func (r *LoanRepository) Create(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, query,
		loan.ID,
		loan.ApplicantID,
		loan.BranchID,
		loan.Amount,
		loan.Term,
		loan.RemainderInstallment,
		loan.Settled,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

// GetByID retrieves a loan by ID.
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	return scanLoan(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a loan by ID with a FOR UPDATE lock.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 FOR UPDATE`

	pgxTx := tx.(*Tx).PgxTx()
	return scanLoan(pgxTx.QueryRow(ctx, query, id))
}

// ListByApplicant lists an applicant's loans, newest first.
func (r *LoanRepository) ListByApplicant(ctx context.Context, applicantID string, limit, offset int) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE applicant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, applicantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLoans(rows)
}

// ListUnsettled lists open loans in a stable order.
func (r *LoanRepository) ListUnsettled(ctx context.Context, limit int) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE NOT settled
		ORDER BY id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLoans(rows)
}

// CountUnsettledByApplicant counts an applicant's open loans.
func (r *LoanRepository) CountUnsettledByApplicant(ctx context.Context, applicantID string) (int64, error) {
	query := `SELECT COUNT(*) FROM loans WHERE applicant_id = $1 AND NOT settled`

	var count int64
	err := r.pool.QueryRow(ctx, query, applicantID).Scan(&count)
	return count, err
}

// UpdateRemainder updates the loan's unsettled installment total.
func (r *LoanRepository) UpdateRemainder(ctx context.Context, tx usecase.Transaction, id string, remainder int64, updatedAt time.Time) error {
	query := `UPDATE loans SET remainder_installment = $2, updated_at = $3 WHERE id = $1`

	pgxTx := tx.(*Tx).PgxTx()
	tag, err := pgxTx.Exec(ctx, query, id, remainder, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}

	return nil
}

// MarkSettled flips the settled flag. The WHERE clause guards the
// transition so it happens exactly once even under concurrent sweeps.
func (r *LoanRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) (bool, error) {
	query := `UPDATE loans SET settled = TRUE, updated_at = $2 WHERE id = $1 AND NOT settled`

	pgxTx := tx.(*Tx).PgxTx()
	tag, err := pgxTx.Exec(ctx, query, id, updatedAt)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var loan domain.Loan
	err := row.Scan(
		&loan.ID,
		&loan.ApplicantID,
		&loan.BranchID,
		&loan.Amount,
		&loan.Term,
		&loan.RemainderInstallment,
		&loan.Settled,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func scanLoans(rows pgx.Rows) ([]*domain.Loan, error) {
	var loans []*domain.Loan
	for rows.Next() {
		var loan domain.Loan
		if err := rows.Scan(
			&loan.ID,
			&loan.ApplicantID,
			&loan.BranchID,
			&loan.Amount,
			&loan.Term,
			&loan.RemainderInstallment,
			&loan.Settled,
			&loan.CreatedAt,
			&loan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		loans = append(loans, &loan)
	}

	return loans, rows.Err()
}
