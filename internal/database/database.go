package database

import (
	"context"
	"fmt"
	"time"

	"github.com/nartbayev/wishwell/internal/config"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes the Mongo connection and ensures the indexes the
// services rely on.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %v", err)
	}

	db := client.Database(cfg.DBName)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	logrus.WithField("database", cfg.DBName).Info("Connected to MongoDB")
	return db, nil
}

// ensureIndexes creates the unique and query indexes at startup:
//   - users: unique username and email (duplicate signup -> conflict);
//   - wishes: unique content tuple per owner, the storage-level backstop
//     against two concurrent copies of the same wish by one user;
//   - wishes: descending copied for the popular-wishes query;
//   - offers: wish_id for the raised-total lookups.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	wishIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "name", Value: 1},
				{Key: "link", Value: 1},
				{Key: "image", Value: 1},
				{Key: "price", Value: 1},
				{Key: "description", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "copied", Value: -1}, {Key: "created_at", Value: -1}},
		},
	}
	if _, err := db.Collection("wishes").Indexes().CreateMany(ctx, wishIndexes); err != nil {
		return fmt.Errorf("failed to create wish indexes: %v", err)
	}

	offerIndex := mongo.IndexModel{Keys: bson.D{{Key: "wish_id", Value: 1}}}
	if _, err := db.Collection("offers").Indexes().CreateOne(ctx, offerIndex); err != nil {
		return fmt.Errorf("failed to create offer index: %v", err)
	}

	return nil
}
