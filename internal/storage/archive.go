package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"otrscraper/internal/models"
)

// Archive mirrors persisted records to MongoDB. An archive built from an
// empty URI is a no-op, so the scraper runs file-only by default.
type Archive struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewArchive connects to MongoDB. With an empty uri it returns a no-op
// archive and performs no network activity.
func NewArchive(ctx context.Context, uri string) (*Archive, error) {
	if uri == "" {
		return &Archive{}, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	collection := client.Database("otrscraper").Collection("articles")

	// Each run starts from scratch, matching the output-directory reset.
	if _, err := collection.DeleteMany(ctx, bson.D{}); err != nil {
		return nil, fmt.Errorf("failed to reset archive collection: %w", err)
	}

	return &Archive{
		client:     client,
		collection: collection,
	}, nil
}

// Insert stores one article record. No-op archives accept and drop it.
func (a *Archive) Insert(ctx context.Context, article *models.Article) error {
	if a.client == nil {
		return nil
	}

	if _, err := a.collection.InsertOne(ctx, article); err != nil {
		return fmt.Errorf("failed to archive article %d: %w", article.ID, err)
	}

	return nil
}

// Close disconnects from MongoDB.
func (a *Archive) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}

	return a.client.Disconnect(ctx)
}
