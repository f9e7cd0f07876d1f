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

// GameRepository implements the repositories.GameRepository interface
type GameRepository struct {
	collection *mongo.Collection
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *mongo.Database) repositories.GameRepository {
	return &GameRepository{
		collection: db.Collection("games"),
	}
}

// Create creates a new game
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	game.CreatedAt = time.Now()
	game.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, game)
	if err != nil {
		return err
	}
	game.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a game by ID
func (r *GameRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error) {
	var game models.Game
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// Update updates a game
func (r *GameRepository) Update(ctx context.Context, game *models.Game) error {
	game.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": game.ID}, bson.M{"$set": game})
	return err
}

// FindAll finds games with pagination, newest first
func (r *GameRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Game, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.M{"startDate": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"isDeleted": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var games []*models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, err
	}
	if games == nil {
		games = []*models.Game{}
	}
	return games, nil
}

// FindActiveInWindow finds the active game whose start date falls in the window
func (r *GameRepository) FindActiveInWindow(ctx context.Context, start, end time.Time) (*models.Game, error) {
	filter := bson.M{
		"isActive":  true,
		"isDeleted": false,
		"isEnded":   false,
		"startDate": bson.M{"$gte": start, "$lt": end},
	}
	var game models.Game
	err := r.collection.FindOne(ctx, filter, options.FindOne().SetSort(bson.M{"startDate": 1})).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// FindRunning finds games that are started and not yet ended
func (r *GameRepository) FindRunning(ctx context.Context) ([]*models.Game, error) {
	return r.findList(ctx, bson.M{
		"isStarted": true,
		"isEnded":   false,
		"isDeleted": false,
	})
}

// FindResumable finds games flagged for resumption after a restart
func (r *GameRepository) FindResumable(ctx context.Context) ([]*models.Game, error) {
	return r.findList(ctx, bson.M{
		"resumable": true,
		"isEnded":   false,
		"isDeleted": false,
	})
}

// FindStaleBefore finds started-but-unfinished games scheduled before the
// cutoff; scheduled games that never started are not the sweep's business
func (r *GameRepository) FindStaleBefore(ctx context.Context, cutoff time.Time) ([]*models.Game, error) {
	return r.findList(ctx, bson.M{
		"isStarted": true,
		"isEnded":   false,
		"isDeleted": false,
		"startDate": bson.M{"$lt": cutoff},
	})
}

func (r *GameRepository) findList(ctx context.Context, filter bson.M) ([]*models.Game, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var games []*models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, err
	}
	if games == nil {
		games = []*models.Game{}
	}
	return games, nil
}

// SetDealt appends a dealt number and advances the deal cursor in one write,
// so a crash between deals never loses or repeats a number.
func (r *GameRepository) SetDealt(ctx context.Context, id primitive.ObjectID, number, lastDealIndex int) error {
	update := bson.M{
		"$push": bson.M{"dealtNumbers": number},
		"$set": bson.M{
			"lastDealIndex": lastDealIndex,
			"updatedAt":     time.Now(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// SetStopped flips the game's stop flag
func (r *GameRepository) SetStopped(ctx context.Context, id primitive.ObjectID, stopped bool) error {
	update := bson.M{"$set": bson.M{"isStopped": stopped, "updatedAt": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// SetEnded flips a game to its terminal state with a targeted field update,
// leaving the deal cursor written by the loop untouched
func (r *GameRepository) SetEnded(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"isEnded":   true,
		"isStarted": false,
		"isActive":  false,
		"updatedAt": time.Now(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// IncrementCollection atomically bumps the game's collected amount
func (r *GameRepository) IncrementCollection(ctx context.Context, id primitive.ObjectID, amount float64) error {
	update := bson.M{
		"$inc": bson.M{"collection": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// HaltFlags reads only the stop and end flags; the dealing loop polls this
// between numbers
func (r *GameRepository) HaltFlags(ctx context.Context, id primitive.ObjectID) (bool, bool, error) {
	var doc struct {
		IsStopped bool `bson:"isStopped"`
		IsEnded   bool `bson:"isEnded"`
	}
	opts := options.FindOne().SetProjection(bson.M{"isStopped": 1, "isEnded": 1})
	err := r.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, false, repositories.ErrNotFound
	}
	if err != nil {
		return false, false, err
	}
	return doc.IsStopped, doc.IsEnded, nil
}

// MarkRunningResumable flags every running game for resumption; called on
// graceful shutdown
func (r *GameRepository) MarkRunningResumable(ctx context.Context) (int64, error) {
	filter := bson.M{"isStarted": true, "isEnded": false, "isDeleted": false}
	update := bson.M{"$set": bson.M{"resumable": true, "updatedAt": time.Now()}}
	res, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SoftDelete marks a game deleted without removing its history
func (r *GameRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isDeleted": true, "isActive": false, "updatedAt": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
