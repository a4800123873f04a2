package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/taskboard/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrAllFieldsRequired is returned when a registration field is empty.
	ErrAllFieldsRequired = errors.New("all fields are required")
	// ErrInvalidCredentials is returned when login credentials are invalid.
	// An unknown email and a wrong password yield this same error so the
	// response cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthResult is the outcome of a successful register or login: the user
// plus a freshly issued token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService handles registration, login and token verification.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
	google GoogleVerifier
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager, google GoogleVerifier) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
		google: google,
	}
}

// Register creates a new local-password account and issues a token.
func (s *AuthService) Register(_ context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrAllFieldsRequired
	}

	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Provider:     domain.ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueFor(user)
}

// Login authenticates a user by email and password and issues a token.
func (s *AuthService) Login(_ context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueFor(user)
}

// GoogleLogin verifies a Google ID token and logs the user in, creating
// the account on first sight. A Google login against an email that was
// registered locally adopts that account: the verified email is treated
// as proof of ownership.
func (s *AuthService) GoogleLogin(ctx context.Context, tokenID string) (*AuthResult, error) {
	email, name, err := s.google.VerifyIDToken(ctx, tokenID)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}

		// First Google sign-in: create the account with a randomly
		// derived password hash that can never match a local login.
		randomHash, err := s.hasher.Hash(uuid.New().String())
		if err != nil {
			return nil, fmt.Errorf("failed to derive password hash: %w", err)
		}

		now := time.Now()
		user = &domain.User{
			ID:           uuid.New().String(),
			Name:         name,
			Email:        email,
			PasswordHash: randomHash,
			Provider:     domain.ProviderGoogle,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.repo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	return s.issueFor(user)
}

// VerifyToken verifies a session token and returns the acting identity.
func (s *AuthService) VerifyToken(_ context.Context, token string) (*domain.Claims, error) {
	userID, err := s.jwt.Verify(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{UserID: userID}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(_ context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(userID)
}

// issueFor issues a fresh token for the user.
func (s *AuthService) issueFor(user *domain.User) (*AuthResult, error) {
	token, err := s.jwt.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}
