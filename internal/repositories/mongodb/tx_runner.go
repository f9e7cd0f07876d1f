package mongodb

import (
	"context"

	"github.com/tambola-games/tambola-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner implements repositories.TxRunner on top of mongo sessions. Writes
// issued with the callback's session context commit together or not at all.
type TxRunner struct {
	client *mongo.Client
}

// NewTxRunner creates a new TxRunner
func NewTxRunner(client *mongo.Client) repositories.TxRunner {
	return &TxRunner{client: client}
}

// WithTransaction runs fn inside a mongo transaction. fn returning an error
// aborts; transient errors are retried by the driver.
func (t *TxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
