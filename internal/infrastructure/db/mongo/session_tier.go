package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

const sessionCollection = "session_records"

// recordCollection is the subset of *mongo.Collection the session tier uses.
type recordCollection interface {
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	DeleteMany(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// SessionTier is the durable tier: one document per record key, kept until
// cleared or swept as stale.
type SessionTier struct {
	coll recordCollection
	now  func() time.Time
}

func NewSessionTier(db *mongo.Database) *SessionTier {
	return newSessionTier(db.Collection(sessionCollection))
}

func newSessionTier(coll recordCollection) *SessionTier {
	return &SessionTier{coll: coll, now: time.Now}
}

// sessionDoc keeps the record as an opaque string so that whatever was
// written, readable or not, comes back unchanged.
type sessionDoc struct {
	Key       string    `bson:"_id"`
	Record    string    `bson:"record"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func byKey(key string) bson.M { return bson.M{"_id": key} }

// writtenBefore matches records whose last write is older than the cutoff.
func writtenBefore(cutoff time.Time) bson.M {
	return bson.M{"updated_at": bson.M{"$lt": cutoff.UTC()}}
}

func (t *SessionTier) Name() string { return "mongo" }

func (t *SessionTier) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sessionDoc
	if err := t.coll.FindOne(ctx, byKey(key)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrTierMiss
		}
		return nil, fmt.Errorf("find session record: %w", err)
	}
	return []byte(doc.Record), nil
}

func (t *SessionTier) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"record":     string(value),
		"updated_at": t.now().UTC(),
	}}
	_, err := t.coll.UpdateOne(ctx, byKey(key), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session record: %w", err)
	}
	return nil
}

func (t *SessionTier) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := t.coll.DeleteOne(ctx, byKey(key)); err != nil {
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}

// DeleteStale removes records last written before the cutoff.
func (t *SessionTier) DeleteStale(ctx context.Context, before time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := t.coll.DeleteMany(ctx, writtenBefore(before))
	if err != nil {
		return 0, fmt.Errorf("delete stale session records: %w", err)
	}
	return int(res.DeletedCount), nil
}
