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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JoinGameRepository implements the repositories.JoinGameRepository interface
type JoinGameRepository struct {
	collection *mongo.Collection
}

// NewJoinGameRepository creates a new JoinGameRepository
func NewJoinGameRepository(db *mongo.Database) repositories.JoinGameRepository {
	return &JoinGameRepository{
		collection: db.Collection("join_games"),
	}
}

// Create creates a new participation row
func (r *JoinGameRepository) Create(ctx context.Context, join *models.JoinGame) error {
	join.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, join)
	if err != nil {
		return err
	}
	join.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByGameAndUser finds one user's participation row for a game
func (r *JoinGameRepository) FindByGameAndUser(ctx context.Context, gameID, userID primitive.ObjectID) (*models.JoinGame, error) {
	var join models.JoinGame
	err := r.collection.FindOne(ctx, bson.M{"gameId": gameID, "userId": userID}).Decode(&join)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &join, nil
}

// FindByGame finds a game's participants ordered by winnings, largest first
func (r *JoinGameRepository) FindByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.JoinGame, error) {
	opts := options.Find().SetSort(bson.M{"winAmount": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"gameId": gameID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var joins []*models.JoinGame
	if err := cursor.All(ctx, &joins); err != nil {
		return nil, err
	}
	if joins == nil {
		joins = []*models.JoinGame{}
	}
	return joins, nil
}

// Update updates a participation row
func (r *JoinGameRepository) Update(ctx context.Context, join *models.JoinGame) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": join.ID}, bson.M{"$set": join})
	return err
}

// AddWinAmount accumulates prize winnings onto a participation row
func (r *JoinGameRepository) AddWinAmount(ctx context.Context, gameID, userID primitive.ObjectID, amount float64) error {
	filter := bson.M{"gameId": gameID, "userId": userID}
	update := bson.M{"$inc": bson.M{"winAmount": amount}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
