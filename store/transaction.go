package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type Transaction = func(sessCtx mongo.SessionContext) (interface{}, error)

type Transactor interface {
	WithTransaction(ctx context.Context, txn Transaction) (interface{}, error)
}

func WithTransaction(ctx context.Context, dbClient *mongo.Client, txn Transaction) (interface{}, error) {
	session, err := dbClient.StartSession()
	if err != nil {
		return nil, fmt.Errorf("unable to start sessions %w", err)
	}
	defer session.EndSession(ctx)

	wc := writeconcern.Majority()
	rc := readconcern.Snapshot()
	txnOpts := options.Transaction().SetWriteConcern(wc).SetReadConcern(rc)
	return session.WithTransaction(ctx, txn, txnOpts)
}

type mongoTransactor struct {
	client *mongo.Client
}

func NewTransactor(client *mongo.Client) Transactor {
	return &mongoTransactor{client: client}
}

func (m *mongoTransactor) WithTransaction(ctx context.Context, txn Transaction) (interface{}, error) {
	return WithTransaction(ctx, m.client, txn)
}
