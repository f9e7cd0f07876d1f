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

// ClaimRepository implements the repositories.ClaimRepository interface
type ClaimRepository struct {
	collection *mongo.Collection
}

// NewClaimRepository creates a new ClaimRepository
func NewClaimRepository(db *mongo.Database) repositories.ClaimRepository {
	return &ClaimRepository{
		collection: db.Collection("claims"),
	}
}

// Upsert records a winning claim keyed on (game, type, ticket). The first
// call creates the row; repeats only touch the timestamp, so the original
// claim time survives duplicate submissions.
func (r *ClaimRepository) Upsert(ctx context.Context, claim *models.Claim) error {
	now := time.Now()
	if claim.ClaimedOn.IsZero() {
		claim.ClaimedOn = now
	}
	filter := bson.M{"gameId": claim.GameID, "type": claim.Type, "ticketId": claim.TicketID}
	update := bson.M{
		"$set": bson.M{"timestamp": now},
		"$setOnInsert": bson.M{
			"gameId":    claim.GameID,
			"type":      claim.Type,
			"ticketId":  claim.TicketID,
			"numbers":   claim.Numbers,
			"isValid":   claim.IsValid,
			"claimedOn": claim.ClaimedOn,
		},
	}
	opts := options.Update().SetUpsert(true)
	res, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}
	if res.UpsertedID != nil {
		claim.ID = res.UpsertedID.(primitive.ObjectID)
	}
	claim.Timestamp = now
	return nil
}

// FindValidByGameAndType finds the winning claim of one type, if any; only
// one can exist per game
func (r *ClaimRepository) FindValidByGameAndType(ctx context.Context, gameID primitive.ObjectID, claimType models.ClaimType) (*models.Claim, error) {
	filter := bson.M{"gameId": gameID, "type": claimType, "isValid": true}
	var claim models.Claim
	err := r.collection.FindOne(ctx, filter, options.FindOne().SetSort(bson.M{"timestamp": 1})).Decode(&claim)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// FindValidByGame finds every winning claim of a game, earliest first
func (r *ClaimRepository) FindValidByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.Claim, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"gameId": gameID, "isValid": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var claims []*models.Claim
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, err
	}
	if claims == nil {
		claims = []*models.Claim{}
	}
	return claims, nil
}

// FindByGameAndTicket finds every claim a ticket made in a game
func (r *ClaimRepository) FindByGameAndTicket(ctx context.Context, gameID, ticketID primitive.ObjectID) ([]*models.Claim, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"gameId": gameID, "ticketId": ticketID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var claims []*models.Claim
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, err
	}
	if claims == nil {
		claims = []*models.Claim{}
	}
	return claims, nil
}
