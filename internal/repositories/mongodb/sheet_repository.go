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

// SheetRepository implements the repositories.SheetRepository interface
type SheetRepository struct {
	collection *mongo.Collection
}

// NewSheetRepository creates a new SheetRepository
func NewSheetRepository(db *mongo.Database) repositories.SheetRepository {
	return &SheetRepository{
		collection: db.Collection("sheets"),
	}
}

// Create creates a new sheet
func (r *SheetRepository) Create(ctx context.Context, sheet *models.Sheet) error {
	sheet.CreatedAt = time.Now()
	sheet.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, sheet)
	if err != nil {
		return err
	}
	sheet.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a sheet by ID
func (r *SheetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sheet, error) {
	var sheet models.Sheet
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}).Decode(&sheet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

// FindByUID finds a sheet by its fingerprint
func (r *SheetRepository) FindByUID(ctx context.Context, uid string) (*models.Sheet, error) {
	var sheet models.Sheet
	err := r.collection.FindOne(ctx, bson.M{"uid": uid, "isDeleted": false}).Decode(&sheet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

// FindByUser finds every sheet a user holds
func (r *SheetRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Sheet, error) {
	return r.findList(ctx, bson.M{"userId": userID, "isDeleted": false})
}

// FindByUserAndGame finds a user's sheets for one game
func (r *SheetRepository) FindByUserAndGame(ctx context.Context, userID, gameID primitive.ObjectID) ([]*models.Sheet, error) {
	return r.findList(ctx, bson.M{"userId": userID, "gameId": gameID, "isDeleted": false})
}

// FindByGame finds every sheet sold for a game
func (r *SheetRepository) FindByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.Sheet, error) {
	return r.findList(ctx, bson.M{"gameId": gameID, "isDeleted": false})
}

func (r *SheetRepository) findList(ctx context.Context, filter bson.M) ([]*models.Sheet, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sheets []*models.Sheet
	if err := cursor.All(ctx, &sheets); err != nil {
		return nil, err
	}
	if sheets == nil {
		sheets = []*models.Sheet{}
	}
	return sheets, nil
}

// CountByGame counts the sheets sold for a game
func (r *SheetRepository) CountByGame(ctx context.Context, gameID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"gameId": gameID, "isDeleted": false})
}

// CountByUserAndGame counts a user's sheets for a game; purchase limits are
// enforced against this
func (r *SheetRepository) CountByUserAndGame(ctx context.Context, userID, gameID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID, "gameId": gameID, "isDeleted": false})
}

// Update updates a sheet
func (r *SheetRepository) Update(ctx context.Context, sheet *models.Sheet) error {
	sheet.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": sheet.ID}, bson.M{"$set": sheet})
	return err
}
