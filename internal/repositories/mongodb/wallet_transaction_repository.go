package mongodb

import (
	"context"
	"time"

	"github.com/tambola-games/tambola-backend/internal/models"
	"github.com/tambola-games/tambola-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WalletTransactionRepository implements the
// repositories.WalletTransactionRepository interface. The collection is
// append-only; ledger rows are never updated or deleted.
type WalletTransactionRepository struct {
	collection *mongo.Collection
}

// NewWalletTransactionRepository creates a new WalletTransactionRepository
func NewWalletTransactionRepository(db *mongo.Database) repositories.WalletTransactionRepository {
	return &WalletTransactionRepository{
		collection: db.Collection("wallet_transactions"),
	}
}

// Create appends a ledger row
func (r *WalletTransactionRepository) Create(ctx context.Context, tx *models.WalletTransaction) error {
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now()
	}
	res, err := r.collection.InsertOne(ctx, tx)
	if err != nil {
		return err
	}
	tx.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByWallet pages through a wallet's ledger, newest first
func (r *WalletTransactionRepository) FindByWallet(ctx context.Context, walletID primitive.ObjectID, page, limit int) ([]*models.WalletTransaction, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"walletId": walletID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txs []*models.WalletTransaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []*models.WalletTransaction{}
	}
	return txs, nil
}
