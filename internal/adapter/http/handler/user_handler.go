package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/radkal2/bonusbank/internal/adapter/http/dto"
	"github.com/radkal2/bonusbank/internal/adapter/http/middleware"
	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/infrastructure/auth"
	"github.com/radkal2/bonusbank/internal/usecase"
)

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	CreateStaff(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, mobile, password string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*domain.User, error)
	ListStaff(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// UserHandler handles user and authentication HTTP requests.
type UserHandler struct {
	userUC     UserService
	jwtManager *auth.JWTManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUC UserService, jwtManager *auth.JWTManager) *UserHandler {
	return &UserHandler{userUC: userUC, jwtManager: jwtManager}
}

// Register registers a new customer.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// CreateStaff registers a branch manager.
func (h *UserHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.CreateStaff(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create staff", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// Login authenticates a user and issues a JWT token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.Login(r.Context(), req.Mobile, req.Password)
	if err != nil {
		writeError(w, mapDomainError(err), "login failed", err.Error())
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	user, err := h.userUC.GetUser(r.Context(), caller.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// UpdateProfile updates the authenticated user's names.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.UpdateProfile(r.Context(), usecase.UpdateProfileInput{
		UserID:    caller.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update profile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// ListStaff lists staff users.
func (h *UserHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	users, err := h.userUC.ListStaff(r.Context(), limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list staff", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UsersFromDomain(users))
}
