package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tambola-games/tambola-backend/internal/models"
	"github.com/tambola-games/tambola-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

var (
	// ErrZeroAmount rejects balance movements of zero or negative size.
	ErrZeroAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientBalance rejects debits larger than the balance.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	// ErrWalletContended is returned when the optimistic retry budget runs
	// out without a successful write.
	ErrWalletContended = errors.New("wallet update contended, retries exhausted")
)

// RetryPolicy bounds the optimistic-concurrency loop around wallet writes.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetryPolicy matches production contention levels.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 32, Backoff: 5 * time.Millisecond}
}

// WalletService moves money between balances. Every successful movement
// writes exactly one ledger row; a failed movement writes none.
type WalletService struct {
	walletRepo repositories.WalletRepository
	txRepo     repositories.WalletTransactionRepository
	retry      RetryPolicy
}

// NewWalletService creates a new WalletService
func NewWalletService(walletRepo repositories.WalletRepository, txRepo repositories.WalletTransactionRepository, retry RetryPolicy) *WalletService {
	if retry.Attempts < 1 {
		retry = DefaultRetryPolicy()
	}
	return &WalletService{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		retry:      retry,
	}
}

// CreateWallet opens a zero-balance wallet for an owner
func (s *WalletService) CreateWallet(ctx context.Context, ownerType models.OwnerType, ownerID primitive.ObjectID) (*models.Wallet, error) {
	wallet := &models.Wallet{
		OwnerType: ownerType,
		OwnerID:   ownerID,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return wallet, nil
}

// Wallet returns an owner's wallet
func (s *WalletService) Wallet(ctx context.Context, ownerType models.OwnerType, ownerID primitive.ObjectID) (*models.Wallet, error) {
	return s.walletRepo.FindByOwner(ctx, ownerType, ownerID)
}

// Transactions pages through a wallet's ledger
func (s *WalletService) Transactions(ctx context.Context, walletID primitive.ObjectID, page, limit int) ([]*models.WalletTransaction, error) {
	return s.txRepo.FindByWallet(ctx, walletID, page, limit)
}

// AddBalance credits the main balance and appends a credit ledger row.
func (s *WalletService) AddBalance(ctx context.Context, walletID primitive.ObjectID, amount float64, txContext models.TransactionContext, entityID primitive.ObjectID) error {
	if amount <= 0 {
		return ErrZeroAmount
	}
	return s.occRun(ctx, walletID, func(w *models.Wallet) (float64, float64, error) {
		return w.Amount + amount, w.ReferralAmount, nil
	}, func(w *models.Wallet) *models.WalletTransaction {
		return &models.WalletTransaction{
			WalletID:         walletID,
			Context:          txContext,
			Type:             models.TransactionCredit,
			Amount:           amount,
			AvailableBalance: w.Amount + amount,
			EntityID:         entityID,
		}
	})
}

// SubtractBalance debits the main balance and appends a debit ledger row.
// The balance check runs against the freshly read document on every retry,
// so a concurrent spend cannot push the balance negative.
func (s *WalletService) SubtractBalance(ctx context.Context, walletID primitive.ObjectID, amount float64, txContext models.TransactionContext, entityID primitive.ObjectID) error {
	if amount <= 0 {
		return ErrZeroAmount
	}
	return s.occRun(ctx, walletID, func(w *models.Wallet) (float64, float64, error) {
		if w.Amount < amount {
			return 0, 0, ErrInsufficientBalance
		}
		return w.Amount - amount, w.ReferralAmount, nil
	}, func(w *models.Wallet) *models.WalletTransaction {
		return &models.WalletTransaction{
			WalletID:         walletID,
			Context:          txContext,
			Type:             models.TransactionDebit,
			Amount:           amount,
			AvailableBalance: w.Amount - amount,
			EntityID:         entityID,
		}
	})
}

// AddReferralBalance credits the referral balance.
func (s *WalletService) AddReferralBalance(ctx context.Context, walletID primitive.ObjectID, amount float64, txContext models.TransactionContext, entityID primitive.ObjectID) error {
	if amount <= 0 {
		return ErrZeroAmount
	}
	return s.occRun(ctx, walletID, func(w *models.Wallet) (float64, float64, error) {
		return w.Amount, w.ReferralAmount + amount, nil
	}, func(w *models.Wallet) *models.WalletTransaction {
		return &models.WalletTransaction{
			WalletID:         walletID,
			Context:          txContext,
			Type:             models.TransactionCredit,
			Amount:           amount,
			AvailableBalance: w.Amount,
			EntityID:         entityID,
		}
	})
}

// SubtractReferralBalance debits the referral balance.
func (s *WalletService) SubtractReferralBalance(ctx context.Context, walletID primitive.ObjectID, amount float64, txContext models.TransactionContext, entityID primitive.ObjectID) error {
	if amount <= 0 {
		return ErrZeroAmount
	}
	return s.occRun(ctx, walletID, func(w *models.Wallet) (float64, float64, error) {
		if w.ReferralAmount < amount {
			return 0, 0, ErrInsufficientBalance
		}
		return w.Amount, w.ReferralAmount - amount, nil
	}, func(w *models.Wallet) *models.WalletTransaction {
		return &models.WalletTransaction{
			WalletID:         walletID,
			Context:          txContext,
			Type:             models.TransactionDebit,
			Amount:           amount,
			AvailableBalance: w.Amount,
			EntityID:         entityID,
		}
	})
}

// occRun is the bounded optimistic loop: read the wallet, compute the new
// balances against what was read, write conditioned on the read version, and
// retry on conflict after a short backoff. The ledger row is appended only
// after the versioned write lands.
func (s *WalletService) occRun(
	ctx context.Context,
	walletID primitive.ObjectID,
	apply func(w *models.Wallet) (amount, referralAmount float64, err error),
	ledger func(w *models.Wallet) *models.WalletTransaction,
) error {
	for attempt := 1; attempt <= s.retry.Attempts; attempt++ {
		wallet, err := s.walletRepo.FindByID(ctx, walletID)
		if err != nil {
			return fmt.Errorf("failed to read wallet: %w", err)
		}

		amount, referralAmount, err := apply(wallet)
		if err != nil {
			return err
		}

		err = s.walletRepo.UpdateBalances(ctx, wallet.ID, wallet.Version, amount, referralAmount)
		if errors.Is(err, repositories.ErrConflict) {
			slog.Debug("Wallet write conflicted, retrying", "walletId", walletID.Hex(), "attempt", attempt)
			if s.retry.Backoff > 0 {
				select {
				case <-time.After(s.retry.Backoff):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to write wallet: %w", err)
		}

		if err := s.txRepo.Create(ctx, ledger(wallet)); err != nil {
			return fmt.Errorf("failed to append wallet transaction: %w", err)
		}
		return nil
	}
	slog.Error("Wallet update retries exhausted", "walletId", walletID.Hex(), "attempts", s.retry.Attempts)
	return ErrWalletContended
}
