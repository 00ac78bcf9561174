// Package mongo backs the durable session tier and the account directory with
// MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	appName         = "steeldash"
	defaultTimeout  = 10 * time.Second
	defaultDatabase = "steel_dashboard"
)

// Config describes the deployment to dial. Database may be left empty when
// the URI carries one in its path.
type Config struct {
	URI         string
	Database    string
	MaxPoolSize uint64
	Timeout     time.Duration
}

func (cfg Config) timeout() time.Duration {
	if cfg.Timeout <= 0 {
		return defaultTimeout
	}
	return cfg.Timeout
}

// clientOptions turns cfg into driver options plus the database name to use.
// Explicit fields win over the matching URI parameters.
func clientOptions(cfg Config) (*options.ClientOptions, string, error) {
	cs, err := connstring.ParseAndValidate(cfg.URI)
	if err != nil {
		return nil, "", fmt.Errorf("mongo uri: %w", err)
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetConnectTimeout(cfg.timeout()).
		SetServerSelectionTimeout(cfg.timeout())
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if err := opts.Validate(); err != nil {
		return nil, "", fmt.Errorf("mongo options: %w", err)
	}

	database := cfg.Database
	if database == "" {
		database = cs.Database
	}
	if database == "" {
		database = defaultDatabase
	}
	return opts, database, nil
}

// Connect dials MongoDB and waits for the primary to answer a ping before
// handing back the client and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	opts, database, err := clientOptions(cfg)
	if err != nil {
		return nil, nil, err
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping %v: %w", opts.Hosts, err)
	}
	return client, client.Database(database), nil
}
