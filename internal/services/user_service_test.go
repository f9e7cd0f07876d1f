package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tambola-games/tambola-backend/internal/models"
)

func newUserFixture(t *testing.T) (*UserService, *fakeWalletRepo) {
	t.Helper()
	walletRepo := newFakeWalletRepo()
	walletSvc := NewWalletService(walletRepo, newFakeWalletTxRepo(), RetryPolicy{Attempts: 4, Backoff: time.Millisecond})
	svc := NewUserService(newFakeUserRepo(), newFakeAdminRepo(), walletSvc, fakeTxRunner{}, 5)
	return svc, walletRepo
}

func TestRegisterCreatesUserWithWallet(t *testing.T) {
	svc, walletRepo := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", primitive.NilObjectID)
	require.NoError(t, err)
	require.False(t, user.ID.IsZero())

	wallet, err := walletRepo.FindByOwner(ctx, models.OwnerUser, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, wallet.Amount)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", primitive.NilObjectID)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Alice Again", "alice@example.com", primitive.NilObjectID)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// empty emails never collide
	_, err = svc.Register(ctx, "Anon One", "", primitive.NilObjectID)
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Anon Two", "", primitive.NilObjectID)
	require.NoError(t, err)
}

func TestRegisterPaysReferralBonus(t *testing.T) {
	svc, walletRepo := newUserFixture(t)
	ctx := context.Background()

	referrer, err := svc.Register(ctx, "Alice", "alice@example.com", primitive.NilObjectID)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Bob", "bob@example.com", referrer.ID)
	require.NoError(t, err)

	wallet, err := walletRepo.FindByOwner(ctx, models.OwnerUser, referrer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, wallet.Amount)
	assert.Equal(t, 5.0, wallet.ReferralAmount)
}

func TestRegisterSurvivesUnknownReferrer(t *testing.T) {
	svc, walletRepo := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Bob", "bob@example.com", primitive.NewObjectID())
	require.NoError(t, err)

	_, err = walletRepo.FindByOwner(ctx, models.OwnerUser, user.ID)
	require.NoError(t, err)
}

func TestEnsureHouseAccountIsIdempotent(t *testing.T) {
	svc, walletRepo := newUserFixture(t)
	ctx := context.Background()

	first, err := svc.EnsureHouseAccount(ctx, "house@example.com")
	require.NoError(t, err)

	second, err := svc.EnsureHouseAccount(ctx, "house@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = walletRepo.FindByOwner(ctx, models.OwnerAdmin, first.ID)
	require.NoError(t, err)
}
