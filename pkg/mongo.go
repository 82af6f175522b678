package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/quadrantlabs/assessment-tracking-service/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoPingTimeout = 5 * time.Second

func NewMongoDatabase(cfg *config.Config) (*mongo.Database, func(), error) {
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, mongoPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	disconnect := func() {
		_ = client.Disconnect(context.Background())
	}

	return client.Database(cfg.MongoDatabase), disconnect, nil
}
