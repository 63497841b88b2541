package wallet

import (
	"context"

	"mahfaza/internal/models"
	"mahfaza/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Update(ctx context.Context, wallet *models.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockWalletRepository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateTransactionStatus(ctx context.Context, transactionID, status string) error {
	args := m.Called(ctx, transactionID, status)
	return args.Error(0)
}

func (m *MockWalletRepository) Deposit(ctx context.Context, userID, currency string, amount decimal.Decimal, method, reference string) (*models.Transaction, error) {
	args := m.Called(ctx, userID, currency, amount, method, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockWalletRepository) Withdraw(ctx context.Context, userID, currency string, amount decimal.Decimal, method string, fee decimal.Decimal) (*models.Transaction, error) {
	args := m.Called(ctx, userID, currency, amount, method, fee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockWalletRepository) Exchange(ctx context.Context, req repositories.ExchangeRequest) (*models.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockWalletRepository) GetTodayWithdrawals(ctx context.Context, userID, currency string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockCardGateway struct {
	mock.Mock
}

func (m *MockCardGateway) ChargeCard(ctx context.Context, userID string, amount decimal.Decimal, currency string) (string, error) {
	args := m.Called(ctx, userID, amount, currency)
	return args.String(0), args.Error(1)
}

func (m *MockCardGateway) RefundCharge(ctx context.Context, chargeID string) error {
	args := m.Called(ctx, chargeID)
	return args.Error(0)
}
