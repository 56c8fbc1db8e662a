package cache

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultMongoDatabase   = "repolens"
	defaultMongoCollection = "cache"
)

// MongoCache stores entries as documents in a MongoDB collection.
//
// A TTL index on expires_at lets the server reap expired documents. The TTL
// monitor only runs periodically, so Get also checks expires_at and reports
// documents past their deadline as misses.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache connects to rawURL (mongodb:// or mongodb+srv://), pings the
// deployment and ensures the TTL index exists. The database is taken from
// the URL path and defaults to "repolens".
func NewMongoCache(ctx context.Context, rawURL string) (*MongoCache, error) {
	db, err := mongoDatabase(rawURL)
	if err != nil {
		return nil, err
	}

	opts := options.Client().ApplyURI(rawURL)
	if deadline, ok := ctx.Deadline(); ok {
		// Server selection otherwise waits 30s regardless of ctx.
		if d := time.Until(deadline); d > 0 {
			opts.SetServerSelectionTimeout(d).SetConnectTimeout(d)
		}
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: connect mongo: %v", ErrBackend, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping mongo: %v", ErrBackend, err)
	}

	coll := client.Database(db).Collection(defaultMongoCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: create ttl index: %v", ErrBackend, err)
	}

	return &MongoCache{client: client, coll: coll, now: time.Now}, nil
}

// Get retrieves a value by key.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: find %s: %v", ErrBackend, key, err)
	}
	if entry.ExpiresAt != nil && c.now().After(*entry.ExpiresAt) {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set upserts the document for key.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		exp := c.now().Add(ttl).UTC()
		entry.ExpiresAt = &exp
	}

	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, entry, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: upsert %s: %v", ErrBackend, key, err)
	}
	return nil
}

// Delete removes the document for key.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrBackend, key, err)
	}
	return nil
}

// Close disconnects the client.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// mongoDatabase extracts the database name from a MongoDB connection string.
func mongoDatabase(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse mongo url: %w", err)
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		return db, nil
	}
	return defaultMongoDatabase, nil
}

var _ Cache = (*MongoCache)(nil)
