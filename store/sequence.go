package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CountersCollectionName = "counters"

type counter struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"value"`
}

// NextSequence atomically increments and returns the named counter. Values are
// strictly increasing across all instances sharing the database.
func NextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result counter
	err := db.Collection(CountersCollectionName).FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		opts,
	).Decode(&result)
	if err != nil {
		return 0, fmt.Errorf("error incrementing %s sequence: %w", name, err)
	}

	return result.Value, nil
}
