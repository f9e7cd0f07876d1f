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

// TicketRepository implements the repositories.TicketRepository interface
type TicketRepository struct {
	collection *mongo.Collection
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *mongo.Database) repositories.TicketRepository {
	return &TicketRepository{
		collection: db.Collection("tickets"),
	}
}

// CreateMany inserts a sheet's tickets in one call
func (r *TicketRepository) CreateMany(ctx context.Context, tickets []*models.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	docs := make([]interface{}, len(tickets))
	now := time.Now()
	for i, t := range tickets {
		t.CreatedAt = now
		docs[i] = t
	}
	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, id := range res.InsertedIDs {
		tickets[i].ID = id.(primitive.ObjectID)
	}
	return nil
}

// FindByID finds a ticket by ID
func (r *TicketRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindBySheet finds a sheet's tickets in insertion order
func (r *TicketRepository) FindBySheet(ctx context.Context, sheetID primitive.ObjectID) ([]*models.Ticket, error) {
	return r.findList(ctx, bson.M{"sheetId": sheetID})
}

// FindBySheets finds the tickets of several sheets at once
func (r *TicketRepository) FindBySheets(ctx context.Context, sheetIDs []primitive.ObjectID) ([]*models.Ticket, error) {
	if len(sheetIDs) == 0 {
		return []*models.Ticket{}, nil
	}
	return r.findList(ctx, bson.M{"sheetId": bson.M{"$in": sheetIDs}})
}

func (r *TicketRepository) findList(ctx context.Context, filter bson.M) ([]*models.Ticket, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []*models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*models.Ticket{}
	}
	return tickets, nil
}
