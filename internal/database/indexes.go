package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the uniqueness indexes the users collection
// depends on. The register handler also pre-checks for duplicates, but
// that check and the insert are two separate operations; these indexes
// are what actually guarantees no two records share an email or mobile
// when registrations race each other.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("uniq_email").
				SetUnique(true).
				SetPartialFilterExpression(existsFilter("email")),
		},
		{
			Keys: bson.D{{Key: "mobile", Value: 1}},
			Options: options.Index().
				SetName("uniq_mobile").
				SetUnique(true).
				SetPartialFilterExpression(existsFilter("mobile")),
		},
	}

	if _, err := users.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}
