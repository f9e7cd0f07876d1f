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

// ClaimPrizeRepository implements the repositories.ClaimPrizeRepository
// interface
type ClaimPrizeRepository struct {
	collection *mongo.Collection
}

// NewClaimPrizeRepository creates a new ClaimPrizeRepository
func NewClaimPrizeRepository(db *mongo.Database) repositories.ClaimPrizeRepository {
	return &ClaimPrizeRepository{
		collection: db.Collection("claim_prizes"),
	}
}

// CreateMany inserts a game's prize table in one call
func (r *ClaimPrizeRepository) CreateMany(ctx context.Context, prizes []*models.ClaimPrize) error {
	if len(prizes) == 0 {
		return nil
	}
	docs := make([]interface{}, len(prizes))
	now := time.Now()
	for i, p := range prizes {
		p.CreatedAt = now
		docs[i] = p
	}
	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, id := range res.InsertedIDs {
		prizes[i].ID = id.(primitive.ObjectID)
	}
	return nil
}

// FindByGameAndType finds the prize amount for one claim type
func (r *ClaimPrizeRepository) FindByGameAndType(ctx context.Context, gameID primitive.ObjectID, claimType models.ClaimType) (*models.ClaimPrize, error) {
	filter := bson.M{"gameId": gameID, "type": claimType, "isDeleted": false}
	var prize models.ClaimPrize
	err := r.collection.FindOne(ctx, filter).Decode(&prize)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &prize, nil
}

// FindByGame finds a game's full prize table
func (r *ClaimPrizeRepository) FindByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.ClaimPrize, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"gameId": gameID, "isDeleted": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prizes []*models.ClaimPrize
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	if prizes == nil {
		prizes = []*models.ClaimPrize{}
	}
	return prizes, nil
}

// SoftDeleteByGame retires a game's prize table when the game is cleaned up
func (r *ClaimPrizeRepository) SoftDeleteByGame(ctx context.Context, gameID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isDeleted": true}}
	_, err := r.collection.UpdateMany(ctx, bson.M{"gameId": gameID}, update)
	return err
}
