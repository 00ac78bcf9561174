package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

const (
	// recordName is the logical name the identity is stored under in both tiers.
	recordName = "user"
	// tokenName prefixes issued bearer token ids in the durable tier.
	tokenName = "token"
)

var (
	ErrMissingClientKey = errors.New("missing client key")
	errCorruptRecord    = errors.New("corrupt session record")
)

// SessionStore holds at most one serialized identity per client, split across
// a session-scoped tier and a durable tier, plus the ids of issued bearer
// tokens. Save, SaveToken and Clear are its only mutators, apart from Load
// discarding records it cannot parse.
type SessionStore struct {
	session ports.SessionTier
	durable ports.SessionTier
	log     zerolog.Logger
}

func NewSessionStore(session, durable ports.SessionTier, log zerolog.Logger) *SessionStore {
	return &SessionStore{session: session, durable: durable, log: log}
}

func recordKey(clientKey string) string {
	return recordName + ":" + clientKey
}

func tokenKey(tokenID string) string {
	return tokenName + ":" + tokenID
}

// Save writes id to the session-scoped tier, and to the durable tier as well
// when persistent is set. A non-persistent save drops any durable record the
// client still holds so an older identity cannot come back after a restart.
func (s *SessionStore) Save(ctx context.Context, keys ports.ClientKeys, id *domain.Identity, persistent bool) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if keys.Tab == "" || (persistent && keys.Device == "") {
		return fmt.Errorf("save session: %w", ErrMissingClientKey)
	}

	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("save session: encode: %w", err)
	}

	if err := s.session.Set(ctx, recordKey(keys.Tab), data); err != nil {
		return fmt.Errorf("save session: %s tier: %w", s.session.Name(), err)
	}

	switch {
	case persistent:
		if err := s.durable.Set(ctx, recordKey(keys.Device), data); err != nil {
			return fmt.Errorf("save session: %s tier: %w", s.durable.Name(), err)
		}
	case keys.Device != "":
		if err := s.durable.Delete(ctx, recordKey(keys.Device)); err != nil {
			return fmt.Errorf("save session: %s tier: %w", s.durable.Name(), err)
		}
	}

	s.log.Debug().
		Str("email", id.Email).
		Str("role", id.Role.String()).
		Bool("persistent", persistent).
		Msg("session saved")
	return nil
}

// Load returns the identity bound to keys, reading the session-scoped tier
// first and falling back to the durable tier. A missing record is not an
// error: Load returns nil, nil. Records that fail to decode are deleted; if no
// valid identity is found after seeing one, both tiers are cleared.
func (s *SessionStore) Load(ctx context.Context, keys ports.ClientKeys) (*domain.Identity, error) {
	lookups := []struct {
		tier ports.SessionTier
		key  string
	}{
		{s.session, keys.Tab},
		{s.durable, keys.Device},
	}

	corrupt := false
	for _, l := range lookups {
		if l.key == "" {
			continue
		}
		id, err := s.read(ctx, l.tier, recordKey(l.key))
		switch {
		case err == nil:
			return id, nil
		case errors.Is(err, ports.ErrTierMiss):
			continue
		case errors.Is(err, errCorruptRecord):
			corrupt = true
			s.log.Warn().Err(err).Str("tier", l.tier.Name()).Msg("discarding unreadable session record")
			if delErr := l.tier.Delete(ctx, recordKey(l.key)); delErr != nil {
				s.log.Error().Err(delErr).Str("tier", l.tier.Name()).Msg("failed to delete unreadable session record")
			}
		default:
			return nil, fmt.Errorf("load session: %s tier: %w", l.tier.Name(), err)
		}
	}

	if corrupt {
		if err := s.Clear(ctx, ports.ClientKeys{Tab: keys.Tab, Device: keys.Device}); err != nil {
			s.log.Error().Err(err).Msg("failed to clear session after unreadable record")
		}
	}
	return nil, nil
}

// Clear removes the identity from both tiers and revokes keys.Token.
func (s *SessionStore) Clear(ctx context.Context, keys ports.ClientKeys) error {
	var errs []error
	if keys.Token != "" {
		if err := s.durable.Delete(ctx, tokenKey(keys.Token)); err != nil {
			errs = append(errs, fmt.Errorf("%s tier: %w", s.durable.Name(), err))
		}
	}
	if keys.Tab != "" {
		if err := s.session.Delete(ctx, recordKey(keys.Tab)); err != nil {
			errs = append(errs, fmt.Errorf("%s tier: %w", s.session.Name(), err))
		}
	}
	if keys.Device != "" {
		if err := s.durable.Delete(ctx, recordKey(keys.Device)); err != nil {
			errs = append(errs, fmt.Errorf("%s tier: %w", s.durable.Name(), err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// SaveToken records an issued bearer token so TokenActive accepts it until
// Clear revokes it. The record lives in the durable tier, next to remembered
// identities, and is pruned by the same sweep.
func (s *SessionStore) SaveToken(ctx context.Context, tokenID string, id *domain.Identity) error {
	if tokenID == "" {
		return fmt.Errorf("save token: %w", ErrMissingClientKey)
	}
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("save token: encode: %w", err)
	}
	if err := s.durable.Set(ctx, tokenKey(tokenID), data); err != nil {
		return fmt.Errorf("save token: %s tier: %w", s.durable.Name(), err)
	}
	return nil
}

// TokenActive reports whether tokenID was issued and has not been revoked.
func (s *SessionStore) TokenActive(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	if _, err := s.durable.Get(ctx, tokenKey(tokenID)); err != nil {
		if errors.Is(err, ports.ErrTierMiss) {
			return false, nil
		}
		return false, fmt.Errorf("token lookup: %s tier: %w", s.durable.Name(), err)
	}
	return true, nil
}

func (s *SessionStore) read(ctx context.Context, tier ports.SessionTier, key string) (*domain.Identity, error) {
	data, err := tier.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var id domain.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptRecord, err)
	}
	if err := id.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptRecord, err)
	}
	return &id, nil
}
