package client

import (
	"context"
	"time"

	"actman/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client bundles the external collaborators a service wires at startup:
// the journey store's mongo connection and the upstream Activities API.
type Client struct {
	Mongo      *mongo.Client
	Activities *ActivitiesClient

	log *logger.Logger
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, connTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	c.Mongo = mongoClient
	c.log = log
}

func (c *Client) SetActivitiesAPI(log *logger.Logger, baseURL string, timeout time.Duration, regimeCacheSize int) {
	activities, err := NewActivitiesClient(baseURL, timeout, regimeCacheSize)
	if err != nil {
		log.Fatal("Failed to build Activities API client", "error", err, "base_url", baseURL)
	}
	log.Info("Activities API client configured", "base_url", baseURL, "regime_cache_size", regimeCacheSize)
	c.Activities = activities
	c.log = log
}

func (c *Client) GracefulShutdown() {
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.Mongo.Disconnect(ctx); err != nil && c.log != nil {
			c.log.Error("Failed to disconnect MongoDB client", "error", err)
		}
	}
}
