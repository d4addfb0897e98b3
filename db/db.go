package db

import (
	"context"
	"time"

	"storefront/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	Client             *mongo.Client
	UserCollection     *mongo.Collection
	ProductCollection  *mongo.Collection
	CategoryCollection *mongo.Collection
	OrderCollection    *mongo.Collection
)

// Connect establishes the MongoDB connection and binds the collection
// handles. Called once from main before any route is served.
func Connect(ctx context.Context, cfg *config.Config) error {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return err
	}

	Client = client
	database := client.Database(cfg.MongoDB)
	UserCollection = database.Collection("users")
	ProductCollection = database.Collection("products")
	CategoryCollection = database.Collection("categories")
	OrderCollection = database.Collection("orders")

	return nil
}

// Disconnect closes the MongoDB connection during shutdown.
func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
