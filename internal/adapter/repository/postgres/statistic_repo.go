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

const statisticColumns = `user_id, name, mobile, credit, debt, account_closed, loans_gotten, loans_unsettled, created_at, updated_at`

// StatisticRepository implements per-user statistic persistence.
type StatisticRepository struct {
	pool *pgxpool.Pool
}

// NewStatisticRepository creates a new StatisticRepository.
func NewStatisticRepository(pool *pgxpool.Pool) *StatisticRepository {
	return &StatisticRepository{pool: pool}
}

// Create seeds a user's statistic row at registration.
func (r *StatisticRepository) Create(ctx context.Context, stat *domain.UserStatistic) error {
	query := `
		INSERT INTO user_statistics (` + statisticColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		stat.UserID,
		stat.Name,
		stat.Mobile,
		stat.Credit,
		stat.Debt,
		stat.AccountClosed,
		stat.LoansGotten,
		stat.LoansUnsettled,
		stat.CreatedAt,
		stat.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return domain.ErrEntityAlreadyExists
	}

	return err
}

// GetByUser retrieves one user's statistic row.
func (r *StatisticRepository) GetByUser(ctx context.Context, userID string) (*domain.UserStatistic, error) {
	query := `SELECT ` + statisticColumns + ` FROM user_statistics WHERE user_id = $1`

	var stat domain.UserStatistic
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&stat.UserID,
		&stat.Name,
		&stat.Mobile,
		&stat.Credit,
		&stat.Debt,
		&stat.AccountClosed,
		&stat.LoansGotten,
		&stat.LoansUnsettled,
		&stat.CreatedAt,
		&stat.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStatisticNotFound
	}
	if err != nil {
		return nil, err
	}

	return &stat, nil
}

// ApplyDelta adds the delta's counters to the user's row inside the same
// transaction as the entity writes it mirrors.
func (r *StatisticRepository) ApplyDelta(ctx context.Context, tx usecase.Transaction, userID string, delta domain.StatisticDelta) error {
	query := `
		UPDATE user_statistics
		SET credit = credit + $2,
		    debt = debt + $3,
		    loans_gotten = loans_gotten + $4,
		    loans_unsettled = loans_unsettled + $5,
		    updated_at = NOW()
		WHERE user_id = $1
	`

	pgxTx := tx.(*Tx).PgxTx()
	tag, err := pgxTx.Exec(ctx, query,
		userID,
		delta.Credit,
		delta.Debt,
		delta.LoansGotten,
		delta.LoansUnsettled,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrStatisticNotFound
	}

	return nil
}

// SetAccountClosed records whether the user closed an account.
func (r *StatisticRepository) SetAccountClosed(ctx context.Context, tx usecase.Transaction, userID string, closed bool, updatedAt time.Time) error {
	query := `UPDATE user_statistics SET account_closed = $2, updated_at = $3 WHERE user_id = $1`

	pgxTx := tx.(*Tx).PgxTx()
	tag, err := pgxTx.Exec(ctx, query, userID, closed, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrStatisticNotFound
	}

	return nil
}

// UpdateName keeps the display-name mirror in step with the user profile.
func (r *StatisticRepository) UpdateName(ctx context.Context, userID, name string) error {
	query := `UPDATE user_statistics SET name = $2, updated_at = NOW() WHERE user_id = $1`

	tag, err := r.pool.Exec(ctx, query, userID, name)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrStatisticNotFound
	}

	return nil
}

// List is the staff statistics report with optional filters.
func (r *StatisticRepository) List(ctx context.Context, filter domain.StatisticFilter) ([]*domain.UserStatistic, error) {
	query := `SELECT ` + statisticColumns + ` FROM user_statistics`

	var (
		conds []string
		args  []any
	)

	if filter.Mobile != "" {
		args = append(args, filter.Mobile)
		conds = append(conds, fmt.Sprintf("mobile = $%d", len(args)))
	}
	if filter.AccountClosed != nil {
		args = append(args, *filter.AccountClosed)
		conds = append(conds, fmt.Sprintf("account_closed = $%d", len(args)))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY user_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*domain.UserStatistic
	for rows.Next() {
		var stat domain.UserStatistic
		if err := rows.Scan(
			&stat.UserID,
			&stat.Name,
			&stat.Mobile,
			&stat.Credit,
			&stat.Debt,
			&stat.AccountClosed,
			&stat.LoansGotten,
			&stat.LoansUnsettled,
			&stat.CreatedAt,
			&stat.UpdatedAt,
		); err != nil {
			return nil, err
		}
		stats = append(stats, &stat)
	}

	return stats, rows.Err()
}
