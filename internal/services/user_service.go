package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tambola-games/tambola-backend/internal/models"
	"github.com/tambola-games/tambola-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// ErrEmailTaken rejects registering an email twice.
var ErrEmailTaken = errors.New("email already registered")

// UserService creates accounts and keeps each paired with a wallet.
type UserService struct {
	userRepo      repositories.UserRepository
	adminRepo     repositories.AdminRepository
	walletSvc     *WalletService
	txRunner      repositories.TxRunner
	referralBonus float64
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, adminRepo repositories.AdminRepository, walletSvc *WalletService, txRunner repositories.TxRunner, referralBonus float64) *UserService {
	return &UserService{
		userRepo:      userRepo,
		adminRepo:     adminRepo,
		walletSvc:     walletSvc,
		txRunner:      txRunner,
		referralBonus: referralBonus,
	}
}

// Register creates a user and a zero-balance wallet together. A non-zero
// referrer earns the signup bonus on their referral balance; a bad referrer
// id never blocks the signup itself.
func (s *UserService) Register(ctx context.Context, fullName, email string, referrer primitive.ObjectID) (*models.User, error) {
	if email != "" {
		_, err := s.userRepo.FindByEmail(ctx, email)
		if err == nil {
			return nil, ErrEmailTaken
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	user := &models.User{FullName: fullName, Email: email}
	err := s.txRunner.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		_, err := s.walletSvc.CreateWallet(txCtx, models.OwnerUser, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Info("User registered", "userId", user.ID.Hex())

	if !referrer.IsZero() && s.referralBonus > 0 {
		if err := s.payReferralBonus(ctx, referrer, user.ID); err != nil {
			slog.Warn("Referral bonus not paid", "referrer", referrer.Hex(), "userId", user.ID.Hex(), "error", err)
		}
	}
	return user, nil
}

func (s *UserService) payReferralBonus(ctx context.Context, referrer, newUserID primitive.ObjectID) error {
	if _, err := s.userRepo.FindByID(ctx, referrer); err != nil {
		return fmt.Errorf("failed to load referrer: %w", err)
	}
	wallet, err := s.walletSvc.Wallet(ctx, models.OwnerUser, referrer)
	if err != nil {
		return fmt.Errorf("failed to load referrer wallet: %w", err)
	}
	return s.walletSvc.AddReferralBalance(ctx, wallet.ID, s.referralBonus, models.ContextReferral, newUserID)
}

// User returns one user
func (s *UserService) User(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// EnsureHouseAccount creates the admin account and its wallet on first boot.
func (s *UserService) EnsureHouseAccount(ctx context.Context, email string) (*models.Admin, error) {
	admin, err := s.adminRepo.FindFirst(ctx)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up house account: %w", err)
	}

	admin = &models.Admin{Email: email}
	err = s.txRunner.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.adminRepo.Create(txCtx, admin); err != nil {
			return fmt.Errorf("failed to create house account: %w", err)
		}
		_, err := s.walletSvc.CreateWallet(txCtx, models.OwnerAdmin, admin.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Info("House account created", "adminId", admin.ID.Hex())
	return admin, nil
}
