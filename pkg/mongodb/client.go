// Package mongodb wraps the driver connection used by the repository layer.
package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Client holds the connection and the selected database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient connects, pings and selects the database. Transactions require
// a replica set; the game and wallet flows depend on them.
func NewClient(ctx context.Context, uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return &Client{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Database returns the selected database.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Mongo exposes the raw client for session-scoped work (transactions).
func (c *Client) Mongo() *mongo.Client {
	return c.client
}

// Disconnect closes the connection.
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
