package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/radkal2/bonusbank/internal/domain"
)

// BankRepository implements bank persistence
type BankRepository struct {
	pool *pgxpool.Pool
}

// NewBankRepository creates a new bank repository
func NewBankRepository(pool *pgxpool.Pool) *BankRepository {
	return &BankRepository{pool: pool}
}

// Create inserts a new bank
func (r *BankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	query := `
		INSERT INTO banks (id, name, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		bank.ID,
		bank.Name,
		bank.OwnerID,
		bank.CreatedAt,
		bank.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return domain.ErrEntityAlreadyExists
	}

	return err
}

// GetByID retrieves a bank by ID
func (r *BankRepository) GetByID(ctx context.Context, id string) (*domain.Bank, error) {
	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM banks
		WHERE id = $1
	`

	return r.scanBank(r.pool.QueryRow(ctx, query, id))
}

// GetByOwner retrieves the bank owned by the given user
func (r *BankRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Bank, error) {
	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM banks
		WHERE owner_id = $1
	`

	return r.scanBank(r.pool.QueryRow(ctx, query, ownerID))
}

func (r *BankRepository) scanBank(row pgx.Row) (*domain.Bank, error) {
	var bank domain.Bank
	err := row.Scan(
		&bank.ID,
		&bank.Name,
		&bank.OwnerID,
		&bank.CreatedAt,
		&bank.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBankNotFound
	}
	if err != nil {
		return nil, err
	}

	return &bank, nil
}
