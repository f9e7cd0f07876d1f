package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/tambola-games/tambola-backend/internal/models"
	"github.com/tambola-games/tambola-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WalletRepository implements the repositories.WalletRepository interface
type WalletRepository struct {
	collection *mongo.Collection
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *mongo.Database) repositories.WalletRepository {
	return &WalletRepository{
		collection: db.Collection("wallets"),
	}
}

// Create creates a new wallet at version zero
func (r *WalletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	wallet.CreatedAt = time.Now()
	wallet.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, wallet)
	if err != nil {
		return err
	}
	wallet.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByOwner finds a wallet by its owner
func (r *WalletRepository) FindByOwner(ctx context.Context, ownerType models.OwnerType, ownerID primitive.ObjectID) (*models.Wallet, error) {
	filter := bson.M{"ownerType": ownerType, "ownerId": ownerID}
	var wallet models.Wallet
	err := r.collection.FindOne(ctx, filter).Decode(&wallet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// FindByID finds a wallet by ID
func (r *WalletRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&wallet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// UpdateBalances writes new balances conditioned on the version the caller
// read. A matched count of zero means another writer advanced the document
// first; the caller re-reads and retries on ErrConflict.
func (r *WalletRepository) UpdateBalances(ctx context.Context, id primitive.ObjectID, version int64, amount, referralAmount float64) error {
	filter := bson.M{"_id": id, "version": version}
	update := bson.M{
		"$set": bson.M{
			"amount":         amount,
			"referralAmount": referralAmount,
			"updatedAt":      time.Now(),
		},
		"$inc": bson.M{"version": int64(1)},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrConflict
	}
	return nil
}
