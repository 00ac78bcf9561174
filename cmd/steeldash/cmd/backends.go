package cmd

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
	"github.com/steeldetailing/pm-dashboard/internal/core/service"
	"github.com/steeldetailing/pm-dashboard/internal/infrastructure/config"
	"github.com/steeldetailing/pm-dashboard/internal/infrastructure/db/memory"
	mongodb "github.com/steeldetailing/pm-dashboard/internal/infrastructure/db/mongo"
	redisdb "github.com/steeldetailing/pm-dashboard/internal/infrastructure/db/redis"
	"github.com/steeldetailing/pm-dashboard/pkg/logger"
)

// backends holds the storage selected by configuration. Mongo and Redis are
// nil unless a tier or the account directory uses them.
type backends struct {
	mongo    *mongo.Database
	redis    *goredis.Client
	session  ports.SessionTier
	durable  ports.SessionTier
	accounts ports.AccountRepository
	store    *service.SessionStore
	auth     *service.AuthService
	secret   string

	closers []func(context.Context) error
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{}

	if cfg.UsesMongo() {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
			Timeout:     cfg.Mongo.Timeout,
		})
		if err != nil {
			return nil, err
		}
		b.mongo = db
		b.closers = append(b.closers, client.Disconnect)
		log.Info().Str("database", db.Name()).Msg("connected to mongodb")
	}

	if cfg.UsesRedis() {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			_ = b.Close(ctx)
			return nil, err
		}
		b.redis = rdb
		b.closers = append(b.closers, func(context.Context) error { return rdb.Close() })
		log.Info().Str("addr", rdb.Options().Addr).Msg("connected to redis")
	}

	switch cfg.Session.Backend {
	case config.BackendRedis:
		b.session = redisdb.NewSessionTier(b.redis, cfg.Session.TabTTL)
	default:
		b.session = memory.NewSessionTier("session")
	}

	switch cfg.Session.DurableBackend {
	case config.BackendMongo:
		b.durable = mongodb.NewSessionTier(b.mongo)
	default:
		b.durable = memory.NewSessionTier("durable")
	}

	switch cfg.Auth.Accounts {
	case config.BackendMongo:
		repo := mongodb.NewAccountRepository(b.mongo)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = b.Close(ctx)
			return nil, err
		}
		b.accounts = repo
	default:
		b.accounts = memory.NewAccountRepository()
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("JWT_SECRET not set; using a random secret, tokens will not survive a restart")
	}

	b.secret = secret
	b.store = service.NewSessionStore(b.session, b.durable, logger.For("session_store"))
	b.auth = service.NewAuthService(b.accounts, b.store, secret, cfg.Auth.TokenTTL, logger.For("auth"))

	log.Info().
		Str("session_tier", b.session.Name()).
		Str("durable_tier", b.durable.Name()).
		Str("accounts", cfg.Auth.Accounts).
		Msg("storage ready")
	return b, nil
}

// Close releases the connections in reverse order of opening.
func (b *backends) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i](ctx))
	}
	b.closers = nil
	return errors.Join(errs...)
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
