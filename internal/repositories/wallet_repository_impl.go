package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mahfaza/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	if wallet.ID == "" {
		wallet.ID = uuid.NewString()
	}
	if wallet.Balances == nil {
		wallet.Balances = models.BalanceMap{}
	}
	result := r.db.WithContext(ctx).Create(wallet)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create wallet: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) Update(ctx context.Context, wallet *models.Wallet) error {
	result := r.db.WithContext(ctx).Save(wallet)
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) GetTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txs, nil
}

func (r *walletRepository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	result := r.db.WithContext(ctx).Create(tx)
	if result.Error != nil {
		return fmt.Errorf("failed to create transaction: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) UpdateTransactionStatus(ctx context.Context, transactionID, status string) error {
	updates := map[string]interface{}{"status": status}
	if status == models.TransactionStatusCompleted {
		now := time.Now().UTC()
		updates["completed_at"] = &now
	}
	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", transactionID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInvalidTransaction
	}
	return nil
}

// lockWallet loads a wallet row inside tx with a row lock so that the
// balance check and the balance write cannot interleave with a concurrent
// mutation of the same wallet.
func lockWallet(tx *gorm.DB, userID string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	if !wallet.IsActive {
		return nil, ErrWalletInactive
	}
	return &wallet, nil
}

func (r *walletRepository) Deposit(ctx context.Context, userID, currency string, amount decimal.Decimal, method, reference string) (*models.Transaction, error) {
	if reference == "" {
		reference = uuid.NewString()
	}
	var txn *models.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, userID)
		if err != nil {
			return err
		}

		next := wallet.WithBalance(currency, wallet.Balance(currency).Add(amount))
		if err := tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
			Updates(map[string]interface{}{"balances": next.Balances, "updated_at": next.UpdatedAt}).Error; err != nil {
			return fmt.Errorf("failed to apply deposit: %w", err)
		}

		now := time.Now().UTC()
		txn = &models.Transaction{
			ID:          uuid.NewString(),
			Type:        models.TransactionTypeDeposit,
			ReceiverID:  userID,
			Amount:      amount,
			Currency:    currency,
			Status:      models.TransactionStatusCompleted,
			Method:      method,
			ReferenceID: reference,
			CompletedAt: &now,
		}
		return tx.Create(txn).Error
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *walletRepository) Withdraw(ctx context.Context, userID, currency string, amount decimal.Decimal, method string, fee decimal.Decimal) (*models.Transaction, error) {
	total := amount.Add(fee)
	var txn *models.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, userID)
		if err != nil {
			return err
		}

		balance := wallet.Balance(currency)
		if balance.LessThan(total) {
			return ErrInsufficientFunds
		}

		next := wallet.WithBalance(currency, balance.Sub(total))
		if err := tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
			Updates(map[string]interface{}{"balances": next.Balances, "updated_at": next.UpdatedAt}).Error; err != nil {
			return fmt.Errorf("failed to apply withdrawal: %w", err)
		}

		now := time.Now().UTC()
		txn = &models.Transaction{
			ID:          uuid.NewString(),
			Type:        models.TransactionTypeWithdraw,
			SenderID:    userID,
			Amount:      amount,
			Currency:    currency,
			Fee:         fee,
			Status:      models.TransactionStatusCompleted,
			Method:      method,
			ReferenceID: uuid.NewString(),
			CompletedAt: &now,
		}
		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		// Record the fee as its own ledger entry, linked by reference.
		if fee.IsPositive() {
			feeTx := &models.Transaction{
				ID:          uuid.NewString(),
				Type:        models.TransactionTypeFee,
				SenderID:    userID,
				Amount:      fee,
				Currency:    currency,
				Status:      models.TransactionStatusCompleted,
				Notes:       "withdrawal fee",
				ReferenceID: txn.ReferenceID,
				CompletedAt: &now,
			}
			return tx.Create(feeTx).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *walletRepository) Exchange(ctx context.Context, req ExchangeRequest) (*models.Transaction, error) {
	total := req.FromAmount.Add(req.Fee)
	var txn *models.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, req.UserID)
		if err != nil {
			return err
		}

		fromBalance := wallet.Balance(req.FromCurrency)
		if fromBalance.LessThan(total) {
			return ErrInsufficientFunds
		}

		next := wallet.
			WithBalance(req.FromCurrency, fromBalance.Sub(total)).
			WithBalance(req.ToCurrency, wallet.Balance(req.ToCurrency).Add(req.ToAmount))
		if err := tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
			Updates(map[string]interface{}{"balances": next.Balances, "updated_at": next.UpdatedAt}).Error; err != nil {
			return fmt.Errorf("failed to apply exchange: %w", err)
		}

		now := time.Now().UTC()
		reference := uuid.NewString()
		exchange := &models.Exchange{
			ID:           uuid.NewString(),
			UserID:       req.UserID,
			FromCurrency: req.FromCurrency,
			ToCurrency:   req.ToCurrency,
			FromAmount:   req.FromAmount,
			ToAmount:     req.ToAmount,
			ExchangeRate: req.Rate,
			Fee:          req.Fee,
			Status:       models.TransactionStatusCompleted,
		}
		if err := tx.Create(exchange).Error; err != nil {
			return fmt.Errorf("failed to record exchange: %w", err)
		}

		txn = &models.Transaction{
			ID:          uuid.NewString(),
			Type:        models.TransactionTypeExchange,
			SenderID:    req.UserID,
			ReceiverID:  req.UserID,
			Amount:      req.FromAmount,
			Currency:    req.FromCurrency,
			Fee:         req.Fee,
			Status:      models.TransactionStatusCompleted,
			Notes:       fmt.Sprintf("exchanged %s %s to %s %s", req.FromAmount, req.FromCurrency, req.ToAmount, req.ToCurrency),
			ReferenceID: reference,
			CompletedAt: &now,
		}
		return tx.Create(txn).Error
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *walletRepository) GetTodayWithdrawals(ctx context.Context, userID, currency string) (decimal.Decimal, error) {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.Add(24 * time.Hour)

	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("sender_id = ? AND type = ? AND currency = ? AND status = ? AND created_at >= ? AND created_at < ?",
			userID, models.TransactionTypeWithdraw, currency, models.TransactionStatusCompleted, startOfDay, endOfDay).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum today's withdrawals: %w", err)
	}
	return total, nil
}
