package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/radkal2/bonusbank/internal/domain"
)

// BranchRepository implements branch persistence
type BranchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(pool *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{pool: pool}
}

// Create inserts a new branch
func (r *BranchRepository) Create(ctx context.Context, branch *domain.Branch) error {
	query := `
		INSERT INTO branches (id, name, bank_id, manager_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		branch.ID,
		branch.Name,
		branch.BankID,
		branch.ManagerID,
		branch.CreatedAt,
		branch.UpdatedAt,
	)

	return err
}

// GetByID retrieves a branch by ID
func (r *BranchRepository) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	query := `
		SELECT id, name, bank_id, manager_id, created_at, updated_at
		FROM branches
		WHERE id = $1
	`

	var branch domain.Branch
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&branch.ID,
		&branch.Name,
		&branch.BankID,
		&branch.ManagerID,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBranchNotFound
	}
	if err != nil {
		return nil, err
	}

	return &branch, nil
}

// ListByBank lists the branches of a bank
func (r *BranchRepository) ListByBank(ctx context.Context, bankID string, limit, offset int) ([]*domain.Branch, error) {
	query := `
		SELECT id, name, bank_id, manager_id, created_at, updated_at
		FROM branches
		WHERE bank_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, bankID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []*domain.Branch
	for rows.Next() {
		var branch domain.Branch
		if err := rows.Scan(
			&branch.ID,
			&branch.Name,
			&branch.BankID,
			&branch.ManagerID,
			&branch.CreatedAt,
			&branch.UpdatedAt,
		); err != nil {
			return nil, err
		}
		branches = append(branches, &branch)
	}

	return branches, rows.Err()
}
