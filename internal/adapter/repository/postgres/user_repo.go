package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/radkal2/bonusbank/internal/domain"
)

// UserRepository implements user persistence
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, mobile, first_name, last_name, hashed_password, role, staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Mobile,
		user.FirstName,
		user.LastName,
		user.HashedPassword,
		user.Role,
		user.Staff,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return domain.ErrEntityAlreadyExists
	}

	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, mobile, first_name, last_name, hashed_password, role, staff, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByMobile retrieves a user by mobile number
func (r *UserRepository) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	query := `
		SELECT id, mobile, first_name, last_name, hashed_password, role, staff, created_at, updated_at
		FROM users
		WHERE mobile = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, mobile))
}

// Update updates a user's mutable fields
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, hashed_password = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.HashedPassword,
		user.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// ListByRole lists users with the given role
func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.User, error) {
	query := `
		SELECT id, mobile, first_name, last_name, hashed_password, role, staff, created_at, updated_at
		FROM users
		WHERE role = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, role, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Mobile,
			&user.FirstName,
			&user.LastName,
			&user.HashedPassword,
			&user.Role,
			&user.Staff,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Mobile,
		&user.FirstName,
		&user.LastName,
		&user.HashedPassword,
		&user.Role,
		&user.Staff,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
