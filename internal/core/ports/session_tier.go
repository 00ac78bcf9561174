package ports

import (
	"context"
	"errors"
	"time"
)

// ErrTierMiss is returned by SessionTier.Get when no record exists for a key.
var ErrTierMiss = errors.New("session tier: no record")

// SessionTier is one retention tier of the session store. Both tiers hold the
// same serialized identity record under the same logical name.
type SessionTier interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ClientKeys identifies the client a session belongs to. Tab scopes the
// session-scoped tier and Device scopes the durable tier. Token is the id of
// the bearer token the request presented, if any.
type ClientKeys struct {
	Tab    string
	Device string
	Token  string
}

// StaleSweeper is implemented by tiers that can drop records last written
// before a cutoff.
type StaleSweeper interface {
	DeleteStale(ctx context.Context, before time.Time) (int, error)
}
