package service

import (
	"context"
	"errors"
	"strings"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/logger"
	"equiplend-backend/internal/repository"
	"equiplend-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials deliberately does not reveal whether the email or
// the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, "", domain.NewValidationError("name", "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", domain.NewValidationError("email", "a valid email is required")
	}
	if len(password) < 8 {
		return nil, "", domain.NewValidationError("password", "password must be at least 8 characters")
	}
	if role == "" {
		role = string(domain.RoleStudent)
	}
	if !domain.ValidRole(role) || domain.Role(role) == domain.RoleAdmin {
		// Admin accounts are provisioned via bootstrap, never self-registered.
		return nil, "", domain.NewValidationError("role", "role must be student or staff")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.NewValidationError("email", "email is already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.Role(role),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies email and password. A non-empty role is an assertion: it
// must match the account's stored role or the login fails the same way a
// wrong password does.
func (s *authService) Login(ctx context.Context, email, password, role string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if role != "" && domain.Role(role) != user.Role {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// BootstrapAdmin creates the configured admin account if it does not exist
// yet, or promotes an existing account with that email. Safe to run on
// every startup.
func (s *authService) BootstrapAdmin(ctx context.Context, name, email, password string) error {
	if email == "" {
		return nil
	}
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role == domain.RoleAdmin {
			return nil
		}
		logger.Info("promoting bootstrap user to admin", "email", email)
		return s.userRepo.UpdateRole(ctx, existing.ID, domain.RoleAdmin)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("bootstrap admin created", "email", email)
	return nil
}
