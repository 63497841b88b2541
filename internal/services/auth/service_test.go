package auth

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"mahfaza/internal/connectivity"
	"mahfaza/internal/models"
	"mahfaza/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(phone string) (*models.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementTokenVersion(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

type MockWalletRepo struct {
	repositories.WalletRepository
	mock.Mock
}

func (m *MockWalletRepo) Create(ctx context.Context, wallet *models.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func newTestAuth(users repositories.UserRepository, wallets repositories.WalletRepository, online bool) Service {
	return NewService(users, wallets, connectivity.Always(online),
		Config{RetryAttempts: 3, RetryDelay: time.Millisecond})
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_Validation(t *testing.T) {
	users := new(MockUserRepository)
	s := newTestAuth(users, nil, true)

	_, _, _, err := s.Login(context.Background(), "not-an-email", "secret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, _, err = s.Login(context.Background(), "user@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	users.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestLogin_Offline(t *testing.T) {
	users := new(MockUserRepository)
	s := newTestAuth(users, nil, false)

	_, _, _, err := s.Login(context.Background(), "user@example.com", "secret")

	assert.ErrorIs(t, err, ErrConnection)
	users.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestLogin_UnknownAccountFailsWithoutRetry(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", "user@example.com").Return(nil, repositories.ErrUserNotFound).Once()

	s := newTestAuth(users, nil, true)
	_, _, _, err := s.Login(context.Background(), "user@example.com", "secret")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertExpectations(t)
	users.AssertNumberOfCalls(t, "GetByEmail", 1)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", "user@example.com").Return(&models.User{
		Email:    "user@example.com",
		Password: hashPassword(t, "right-password"),
	}, nil)

	s := newTestAuth(users, nil, true)
	_, _, _, err := s.Login(context.Background(), "user@example.com", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{
		Email:    "user@example.com",
		Password: hashPassword(t, "secret-pass"),
		Role:     models.RoleUser,
	}
	users := new(MockUserRepository)
	users.On("GetByEmail", "user@example.com").Return(user, nil)
	users.On("Update", mock.MatchedBy(func(u *models.User) bool {
		return u.LastLoginAt != nil
	})).Return(nil)

	s := newTestAuth(users, nil, true)
	got, access, refresh, err := s.Login(context.Background(), "user@example.com", "secret-pass")

	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	users.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@b.com", Phone: "+12025550100", Password: "Str0ng!pass"}},
		{"bad email", RegisterInput{Name: "Amina", Email: "nope", Phone: "+12025550100", Password: "Str0ng!pass"}},
		{"bad phone", RegisterInput{Name: "Amina", Email: "a@b.com", Phone: "abc", Password: "Str0ng!pass"}},
		{"weak password", RegisterInput{Name: "Amina", Email: "a@b.com", Phone: "+12025550100", Password: "short"}},
		{"password too long", RegisterInput{Name: "Amina", Email: "a@b.com", Phone: "+12025550100", Password: strings.Repeat("a", 80) + "!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			s := newTestAuth(users, nil, true)

			_, err := s.Register(context.Background(), tt.input)

			assert.ErrorIs(t, err, ErrInvalidInput)
			users.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", "taken@example.com").Return(&models.User{Email: "taken@example.com"}, nil)

	s := newTestAuth(users, nil, true)
	_, err := s.Register(context.Background(), RegisterInput{
		Name:     "Amina",
		Email:    "taken@example.com",
		Phone:    "+12025550100",
		Password: "Str0ng!pass",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_SuccessCreatesWallet(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", "new@example.com").Return(nil, repositories.ErrUserNotFound)
	users.On("Create", mock.MatchedBy(func(u *models.User) bool {
		// The password must be stored hashed, never verbatim.
		return u.Email == "new@example.com" &&
			u.Role == models.RoleUser &&
			u.Password != "Str0ng!pass" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("Str0ng!pass")) == nil
	})).Return(nil)

	wallets := new(MockWalletRepo)
	wallets.On("Create", mock.Anything, mock.MatchedBy(func(w *models.Wallet) bool {
		return w.IsActive && w.Balances != nil
	})).Return(nil)

	s := newTestAuth(users, wallets, true)
	user, err := s.Register(context.Background(), RegisterInput{
		Name:     "Amina",
		Email:    "new@example.com",
		Phone:    "+12025550100",
		Password: "Str0ng!pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "active", user.Status)
	users.AssertExpectations(t)
	wallets.AssertExpectations(t)
}

func TestLogout_BumpsTokenVersion(t *testing.T) {
	users := new(MockUserRepository)
	users.On("IncrementTokenVersion", uint(7)).Return(nil)

	s := newTestAuth(users, nil, true)
	require.NoError(t, s.Logout(7))
	users.AssertExpectations(t)
}

func dialFailure() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
}

func TestLogin_RetriesConnectionFailures(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", "user@example.com").Return(nil, dialFailure())

	s := newTestAuth(users, nil, true)
	_, _, _, err := s.Login(context.Background(), "user@example.com", "secret")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
	assert.Contains(t, err.Error(), "3 attempts")
	users.AssertNumberOfCalls(t, "GetByEmail", 3)
}

func TestRegister_DuplicateCheckRetriesConnectionFailures(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", "new@example.com").Return(nil, dialFailure())

	s := newTestAuth(users, nil, true)
	_, err := s.Register(context.Background(), RegisterInput{
		Name:     "Amina",
		Email:    "new@example.com",
		Phone:    "+12025550100",
		Password: "Str0ng!pass",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
	assert.Contains(t, err.Error(), "3 attempts")
	users.AssertNumberOfCalls(t, "GetByEmail", 3)
	users.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_CreateConnectionFailureSingleAttempt(t *testing.T) {
	// Creating an account is not idempotent: a connection that drops after
	// the insert committed would retry into a duplicate-key failure. Only
	// the lookup consumes the retry budget; the create runs once.
	users := new(MockUserRepository)
	users.On("GetByEmail", "new@example.com").Return(nil, repositories.ErrUserNotFound)
	users.On("Create", mock.Anything).Return(dialFailure())

	s := newTestAuth(users, nil, true)
	_, err := s.Register(context.Background(), RegisterInput{
		Name:     "Amina",
		Email:    "new@example.com",
		Phone:    "+12025550100",
		Password: "Str0ng!pass",
	})

	assert.ErrorIs(t, err, ErrConnection)
	users.AssertNumberOfCalls(t, "Create", 1)
}
