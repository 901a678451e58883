package loaders

import (
	"context"
	"fmt"

	"github.com/pulseboard/data-ingestor/internal/config"
	"github.com/pulseboard/data-ingestor/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoClient wraps the driver client and the service database handle.
type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoClient(ctx context.Context, cfg *config.Config) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetAppName(cfg.ServiceName))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	utils.Zlog.Info("Connected to MongoDB",
		zap.String("database", cfg.MongoDatabase))

	return &MongoClient{
		client: client,
		db:     client.Database(cfg.MongoDatabase),
	}, nil
}

// Collection returns a handle into the service database.
func (m *MongoClient) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Ping verifies the server is still reachable. Used by the health endpoint.
func (m *MongoClient) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoClient) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
