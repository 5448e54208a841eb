package mongo

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes behind the application's query shapes.
// Call once during startup; failures are logged, not fatal.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	ensure(ctx, db.Collection("workoutSplits"), []mongo.IndexModel{
		{
			// Listing a user's splits, newest first
			Keys:    bson.D{{Key: parentField, Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// Finding the active split(s)
			Keys:    bson.D{{Key: parentField, Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index(),
		},
	})
	ensure(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: parentField, Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	ensure(ctx, db.Collection("completedWorkouts"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	})
	ensure(ctx, db.Collection("workoutHistory"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: parentField, Value: 1}, {Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			// Trend queries per exercise
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	})
	ensure(ctx, db.Collection("revokedSessions"), []mongo.IndexModel{
		{
			// Revocations are only needed until the token would have expired anyway
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
}

func ensure(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
