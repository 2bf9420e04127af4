package test

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/labnet/testledger/store"
)

// PassthroughTransactor runs the transaction body without a session. It is
// meant for service tests where every repository is mocked.
type PassthroughTransactor struct {
	Calls int
}

func (p *PassthroughTransactor) WithTransaction(ctx context.Context, txn store.Transaction) (interface{}, error) {
	p.Calls++
	return txn(mongo.NewSessionContext(ctx, nil))
}
