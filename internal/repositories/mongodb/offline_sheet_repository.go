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

// OfflineSheetRepository implements the repositories.OfflineSheetRepository
// interface
type OfflineSheetRepository struct {
	collection *mongo.Collection
}

// NewOfflineSheetRepository creates a new OfflineSheetRepository
func NewOfflineSheetRepository(db *mongo.Database) repositories.OfflineSheetRepository {
	return &OfflineSheetRepository{
		collection: db.Collection("offline_sheets"),
	}
}

// CreateMany inserts a game's house sheets in one call
func (r *OfflineSheetRepository) CreateMany(ctx context.Context, sheets []*models.OfflineSheet) error {
	if len(sheets) == 0 {
		return nil
	}
	docs := make([]interface{}, len(sheets))
	now := time.Now()
	for i, s := range sheets {
		s.CreatedAt = now
		docs[i] = s
	}
	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, id := range res.InsertedIDs {
		sheets[i].ID = id.(primitive.ObjectID)
	}
	return nil
}

// FindByGame finds a game's house sheets in index order
func (r *OfflineSheetRepository) FindByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.OfflineSheet, error) {
	opts := options.Find().SetSort(bson.M{"idx": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"gameId": gameID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sheets []*models.OfflineSheet
	if err := cursor.All(ctx, &sheets); err != nil {
		return nil, err
	}
	if sheets == nil {
		sheets = []*models.OfflineSheet{}
	}
	return sheets, nil
}

// CountByGame counts the house sheets already generated for a game
func (r *OfflineSheetRepository) CountByGame(ctx context.Context, gameID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"gameId": gameID})
}
