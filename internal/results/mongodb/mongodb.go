// Package mongodb provides a MongoDB-backed scan result store.
package mongodb

import (
	"context"
	"time"

	"github.com/reconvoy/reconvoy/pkg/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config holds MongoDB connection settings.
type Config struct {
	URL                    string `yaml:"url"`
	Database               string `yaml:"database"`
	ServerSelectionTimeout int    `yaml:"server_selection_timeout_ms"`
	MaxPoolSize            int    `yaml:"max_pool_size"`
}

// Store implements results.Store using MongoDB as the backend.
type Store struct {
	client *mongo.Client
	scans  *mongo.Collection
}

// New creates a new MongoDB store with the given configuration.
func New(cfg Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ServerSelectionTimeout)*time.Millisecond)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URL).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		scans:  client.Database(cfg.Database).Collection("scans"),
	}, nil
}

// Name returns the store identifier.
func (s *Store) Name() string { return "mongodb" }

// SaveScan upserts the scan document keyed by scan ID, so a re-submitted scan
// replaces its previous record.
func (s *Store) SaveScan(ctx context.Context, result *types.ScanResult) error {
	doc := bson.M{
		"_id":           result.ScanID,
		"target":        result.Target,
		"target_domain": result.TargetDomain,
		"results":       result.Results,
		"message":       result.Message,
		"status":        result.Status,
		"completed_at":  time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.scans.ReplaceOne(ctx, bson.M{"_id": result.ScanID}, doc, opts)
	return err
}

// Close disconnects from MongoDB.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}
