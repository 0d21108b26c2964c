package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/radkal2/bonusbank/internal/domain"
)

// UserUseCase handles registration, login and staff management.
type UserUseCase struct {
	userRepo UserRepository
	statRepo StatisticRepository
	idGen    IDGenerator
	notifier Notifier
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, statRepo StatisticRepository, idGen IDGenerator, notifier Notifier) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		statRepo: statRepo,
		idGen:    idGen,
		notifier: notifier,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Mobile    string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a regular user with a hashed password, seeds the user's
// statistic row and sends the welcome SMS.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	user, err := uc.createUser(ctx, input, domain.RoleUser, false)
	if err != nil {
		return nil, err
	}

	uc.notifier.Enqueue(welcomeMessage(user))

	return user, nil
}

// CreateStaff creates a branch manager. Staff accounts skip the welcome SMS.
func (uc *UserUseCase) CreateStaff(ctx context.Context, input RegisterInput) (*domain.User, error) {
	return uc.createUser(ctx, input, domain.RoleBranchManager, true)
}

func (uc *UserUseCase) createUser(ctx context.Context, input RegisterInput, role domain.Role, staff bool) (*domain.User, error) {
	if err := domain.ValidateMobile(input.Mobile); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	mobile := domain.NormalizeMobile(input.Mobile)

	existing, err := uc.userRepo.GetByMobile(ctx, mobile)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEntityAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Mobile:         mobile,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		HashedPassword: string(hashed),
		Role:           role,
		Staff:          staff,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	stat := &domain.UserStatistic{
		UserID:    user.ID,
		Name:      user.FullName(),
		Mobile:    user.Mobile,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.statRepo.Create(ctx, stat); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies mobile and password and returns the matching user.
func (uc *UserUseCase) Login(ctx context.Context, mobile, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByMobile(ctx, domain.NormalizeMobile(mobile))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidLogin
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, domain.ErrInvalidLogin
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// UpdateProfileInput represents input for updating a user's profile.
type UpdateProfileInput struct {
	UserID    string
	FirstName string
	LastName  string
}

// UpdateProfile updates the user's names and keeps the statistic name
// mirror in sync.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	if err := domain.ValidateName(input.FirstName); err != nil {
		return nil, err
	}

	if err := domain.ValidateName(input.LastName); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.statRepo.UpdateName(ctx, user.ID, user.FullName()); err != nil {
		return nil, err
	}

	return user, nil
}

// ListStaff lists branch managers.
func (uc *UserUseCase) ListStaff(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.userRepo.ListByRole(ctx, domain.RoleBranchManager, limit, offset)
}
