package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"mahfaza/internal/connectivity"
	"mahfaza/internal/models"
	"mahfaza/internal/repositories"
	"mahfaza/internal/retry"
	"mahfaza/internal/utils"
	"mahfaza/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Config holds tunables for the auth service.
type Config struct {
	// Retry budget for account lookups. Only connection failures are
	// retried.
	RetryAttempts int
	// Base delay between retries; the actual delay grows linearly with
	// the attempt number.
	RetryDelay time.Duration
}

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
}

type service struct {
	userRepo   repositories.UserRepository
	walletRepo repositories.WalletRepository
	network    connectivity.Checker
	config     Config
}

func NewService(userRepo repositories.UserRepository, walletRepo repositories.WalletRepository, network connectivity.Checker, config Config) Service {
	if network == nil {
		network = connectivity.Always(true)
	}
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 2 * time.Second
	}
	return &service{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		network:    network,
		config:     config,
	}
}

// Login authenticates a user by email and password and issues a token pair.
// The account lookup is retried on connection failures only; a bad password
// fails immediately.
func (s *service) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	if !validation.IsValidEmail(email) {
		return nil, "", "", fmt.Errorf("a valid email address is required to log in: %w", ErrInvalidInput)
	}
	if password == "" {
		return nil, "", "", fmt.Errorf("a password is required to log in: %w", ErrInvalidInput)
	}
	if !s.network.IsConnected(ctx) {
		return nil, "", "", fmt.Errorf("logging in requires a network connection: %w", ErrConnection)
	}

	var user *models.User
	err := s.retryLookup(ctx, func() error {
		found, err := s.userRepo.GetByEmail(email)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return fmt.Errorf("the email or password is incorrect: %w", ErrInvalidCredentials)
			}
			if isConnectionError(err) {
				return fmt.Errorf("the account service could not be reached: %w", ErrConnection)
			}
			return fmt.Errorf("logging in failed: %v: %w", err, ErrAuthenticationFailed)
		}
		user = found
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConnection) {
			return nil, "", "", fmt.Errorf("could not log in after %d attempts: %w", s.config.RetryAttempts, ErrConnection)
		}
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("login failed: incorrect password for user %d", user.ID)
		return nil, "", "", fmt.Errorf("the email or password is incorrect: %w", ErrInvalidCredentials)
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		log.Printf("error generating tokens: %v", err)
		return nil, "", "", fmt.Errorf("logging in failed while issuing tokens: %w", ErrAuthenticationFailed)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		log.Printf("failed to record last login for user %d: %v", user.ID, err)
	}

	return user, accessToken, refreshToken, nil
}

// Register creates a user account and its wallet.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	v := validation.New()
	v.Required("name", input.Name)
	v.Email("email", input.Email)
	v.Phone("phone", input.Phone)
	v.Password("password", input.Password)
	if !v.Valid() {
		return nil, fmt.Errorf("%s: %w", v.First(), ErrInvalidInput)
	}
	if !s.network.IsConnected(ctx) {
		return nil, fmt.Errorf("registering requires a network connection: %w", ErrConnection)
	}

	// The duplicate check is idempotent, so it shares the lookup retry
	// budget. The create below stays single-attempt.
	err := s.retryLookup(ctx, func() error {
		existing, err := s.userRepo.GetByEmail(input.Email)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil
			}
			if isConnectionError(err) {
				return fmt.Errorf("the account service could not be reached: %w", ErrConnection)
			}
			return fmt.Errorf("registering failed: %v: %w", err, ErrAuthenticationFailed)
		}
		if existing != nil {
			return fmt.Errorf("an account with this email already exists: %w", ErrEmailTaken)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConnection) {
			return nil, fmt.Errorf("could not register after %d attempts: %w", s.config.RetryAttempts, ErrConnection)
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("registering failed while hashing the password: %w", ErrAuthenticationFailed)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		Status:   "active",
	}
	if err := s.userRepo.Create(user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, fmt.Errorf("an account with this email already exists: %w", ErrEmailTaken)
		case errors.Is(err, repositories.ErrDuplicatePhone):
			return nil, fmt.Errorf("an account with this phone number already exists: %w", ErrPhoneTaken)
		case isConnectionError(err):
			return nil, fmt.Errorf("the account service could not be reached: %w", ErrConnection)
		}
		return nil, fmt.Errorf("registering failed: %v: %w", err, ErrAuthenticationFailed)
	}

	wallet := &models.Wallet{
		UserID:   fmt.Sprintf("%d", user.ID),
		Balances: models.BalanceMap{},
		IsActive: true,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		log.Printf("failed to create wallet for user %d: %v", user.ID, err)
	}

	return user, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("the refresh token is not valid: %w", ErrInvalidCredentials)
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", fmt.Errorf("the refresh token does not match a known account: %w", ErrInvalidCredentials)
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", fmt.Errorf("the refresh token has been revoked: %w", ErrInvalidCredentials)
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	})
}

func (s *service) Logout(userID uint) error {
	return s.userRepo.IncrementTokenVersion(userID)
}

// retryLookup runs an idempotent account lookup under the shared retry
// helper, retrying connection failures only.
func (s *service) retryLookup(ctx context.Context, fn func() error) error {
	return retry.Do(ctx, s.config.RetryAttempts, s.config.RetryDelay, func(err error) bool {
		return errors.Is(err, ErrConnection)
	}, fn)
}

func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
