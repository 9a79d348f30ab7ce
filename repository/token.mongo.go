package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RevokedTokensCollection = "revoked_tokens"

var _ TokenDenylist = (*MongoTokenDenylist)(nil)

// MongoTokenDenylist keeps one document per revoked token id. A TTL index on
// expiresAt lets Mongo drop entries once the token could no longer verify anyway.
type MongoTokenDenylist struct {
	collection *mongo.Collection
}

func NewMongoTokenDenylist(db *mongo.Database) *MongoTokenDenylist {
	return &MongoTokenDenylist{collection: db.Collection(RevokedTokensCollection)}
}

func (d *MongoTokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	_, err := d.collection.UpdateOne(ctx,
		bson.M{"_id": tokenID},
		bson.M{"$set": bson.M{"expiresAt": expiresAt}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

func (d *MongoTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.collection.CountDocuments(ctx, bson.M{"_id": tokenID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return n > 0, nil
}
