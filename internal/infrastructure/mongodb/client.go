package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the repositories.
const (
	colUsers         = "users"
	colAds           = "ads"
	colCategories    = "categories"
	colSubCategories = "sub_categories"
	colFreeCredits   = "free_credits"
	colPaidCredits   = "paid_credits"
	colFollowers     = "followers"
	colFollowing     = "following"
	colChatrooms     = "chatrooms"
	colMessages      = "messages"
)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	creditPair := mongo.IndexModel{
		Keys:    bson.D{{Key: "UID", Value: 1}, {Key: "category", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	type idx struct {
		col   string
		model mongo.IndexModel
	}
	models := []idx{
		{colUsers, unique("uid")},
		{colAds, unique("ad_id")},
		{colFollowers, unique("user_id")},
		{colFollowing, unique("user_id")},
		{colFreeCredits, creditPair},
		{colPaidCredits, creditPair},
	}
	for _, m := range models {
		if _, err := db.Collection(m.col).Indexes().CreateOne(ctx, m.model); err != nil {
			return err
		}
	}
	return nil
}
