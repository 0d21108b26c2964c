package usecase_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/usecase"
	"github.com/radkal2/bonusbank/internal/usecase/mocks"
)

type userFixture struct {
	users    *mocks.MockUserRepository
	stats    *mocks.MockStatisticRepository
	notifier *mocks.MockNotifier
	uc       *usecase.UserUseCase
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:    mocks.NewMockUserRepository(),
		stats:    mocks.NewMockStatisticRepository(),
		notifier: mocks.NewMockNotifier(),
	}
	f.uc = usecase.NewUserUseCase(f.users, f.stats, mocks.NewMockIDGenerator(), f.notifier)
	return f
}

func TestUserUseCase_Register(t *testing.T) {
	f := newUserFixture()

	user, err := f.uc.Register(context.Background(), usecase.RegisterInput{
		Mobile:    "09121234567",
		Password:  "sup3rsecret",
		FirstName: "Sara",
		LastName:  "Tehrani",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Mobile != "+989121234567" {
		t.Errorf("expected normalized mobile +989121234567, got %q", user.Mobile)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("expected role %s, got %s", domain.RoleUser, user.Role)
	}
	if user.Staff {
		t.Error("regular users must not be staff")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("sup3rsecret")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}

	stat, err := f.stats.GetByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("expected a statistic row to be seeded: %v", err)
	}
	if stat.Name != "Sara Tehrani" {
		t.Errorf("expected statistic name %q, got %q", "Sara Tehrani", stat.Name)
	}
	if stat.Mobile != user.Mobile {
		t.Errorf("expected statistic mobile %q, got %q", user.Mobile, stat.Mobile)
	}

	if got := len(f.notifier.Sent()); got != 1 {
		t.Errorf("expected 1 welcome notification, got %d", got)
	}
}

func TestUserUseCase_RegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.RegisterInput
	}{
		{
			name:  "mobile not starting with 9",
			input: usecase.RegisterInput{Mobile: "08121234567", Password: "sup3rsecret"},
		},
		{
			name:  "mobile too short",
			input: usecase.RegisterInput{Mobile: "0912", Password: "sup3rsecret"},
		},
		{
			name:  "password too short",
			input: usecase.RegisterInput{Mobile: "09121234567", Password: "short"},
		},
		{
			name:  "password too long",
			input: usecase.RegisterInput{Mobile: "09121234567", Password: "01234567890123456"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture()
			if _, err := f.uc.Register(context.Background(), tt.input); err == nil {
				t.Error("expected a validation error, got nil")
			}
		})
	}
}

func TestUserUseCase_RegisterDuplicateMobile(t *testing.T) {
	f := newUserFixture()

	input := usecase.RegisterInput{
		Mobile:    "09121234567",
		Password:  "sup3rsecret",
		FirstName: "Sara",
		LastName:  "Tehrani",
	}
	if _, err := f.uc.Register(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The same number in a different written form is still a duplicate.
	input.Mobile = "+98 912 123 4567"
	if _, err := f.uc.Register(context.Background(), input); !errors.Is(err, domain.ErrEntityAlreadyExists) {
		t.Fatalf("expected ErrEntityAlreadyExists, got %v", err)
	}
}

func TestUserUseCase_CreateStaff(t *testing.T) {
	f := newUserFixture()

	user, err := f.uc.CreateStaff(context.Background(), usecase.RegisterInput{
		Mobile:    "09121234567",
		Password:  "sup3rsecret",
		FirstName: "Reza",
		LastName:  "Moradi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Role != domain.RoleBranchManager {
		t.Errorf("expected role %s, got %s", domain.RoleBranchManager, user.Role)
	}
	if !user.Staff {
		t.Error("expected staff flag to be set")
	}
	if got := len(f.notifier.Sent()); got != 0 {
		t.Errorf("staff creation must not send a welcome notification, got %d", got)
	}
}

func TestUserUseCase_Login(t *testing.T) {
	f := newUserFixture()

	if _, err := f.uc.Register(context.Background(), usecase.RegisterInput{
		Mobile:    "09121234567",
		Password:  "sup3rsecret",
		FirstName: "Sara",
		LastName:  "Tehrani",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The login mobile is normalized the same way as at registration.
	if _, err := f.uc.Login(context.Background(), "0912 123 4567", "sup3rsecret"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := f.uc.Login(context.Background(), "09121234567", "wrongpassword"); !errors.Is(err, domain.ErrInvalidLogin) {
		t.Errorf("expected ErrInvalidLogin for a wrong password, got %v", err)
	}

	if _, err := f.uc.Login(context.Background(), "09129999999", "sup3rsecret"); !errors.Is(err, domain.ErrInvalidLogin) {
		t.Errorf("expected ErrInvalidLogin for an unknown mobile, got %v", err)
	}
}

func TestUserUseCase_UpdateProfile(t *testing.T) {
	f := newUserFixture()

	user, err := f.uc.Register(context.Background(), usecase.RegisterInput{
		Mobile:    "09121234567",
		Password:  "sup3rsecret",
		FirstName: "Sara",
		LastName:  "Tehrani",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := f.uc.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		UserID:    user.ID,
		FirstName: "Sahar",
		LastName:  "Tehrani",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.FirstName != "Sahar" {
		t.Errorf("expected first name Sahar, got %q", updated.FirstName)
	}

	stat, err := f.stats.GetByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get statistic: %v", err)
	}
	if stat.Name != "Sahar Tehrani" {
		t.Errorf("expected the statistic name mirror to follow, got %q", stat.Name)
	}
}
