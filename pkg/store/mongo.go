package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/slatedeck/slatedeck/pkg/slide"
)

// Default database and collection names for the Mongo store.
const (
	DefaultDatabase   = "slatedeck"
	DefaultCollection = "decks"
)

// MongoStore persists decks as documents in a MongoDB collection, one
// document per deck keyed by deck ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database name. Defaults to DefaultDatabase.
	Database string

	// Collection name. Defaults to DefaultCollection.
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves a deck by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (slide.Deck, error) {
	var d slide.Deck
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return slide.Deck{}, ErrNotFound
	}
	if err != nil {
		return slide.Deck{}, fmt.Errorf("find deck %s: %w", id, err)
	}
	return d, nil
}

// Put stores a deck, replacing any existing document with the same ID.
func (s *MongoStore) Put(ctx context.Context, d slide.Deck) error {
	if d.ID == "" {
		return fmt.Errorf("deck has no ID")
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"id": d.ID}, d, opts); err != nil {
		return fmt.Errorf("store deck %s: %w", d.ID, err)
	}
	return nil
}

// Delete removes a deck document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete deck %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns summaries of all stored decks, sorted by ID.
func (s *MongoStore) List(ctx context.Context) ([]DeckInfo, error) {
	opts := options.Find().SetSort(bson.M{"id": 1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer cur.Close(ctx)

	var infos []DeckInfo
	for cur.Next(ctx) {
		var d slide.Deck
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode deck: %w", err)
		}
		infos = append(infos, infoOf(d))
	}
	return infos, cur.Err()
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
