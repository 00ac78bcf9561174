package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

// SessionReader exposes the current identity to the rendering layer. It is
// built once at startup and handed to everything that needs the session.
type SessionReader struct {
	store *SessionStore
	log   zerolog.Logger
}

func NewSessionReader(store *SessionStore, log zerolog.Logger) *SessionReader {
	return &SessionReader{store: store, log: log}
}

// Begin returns the view a page starts with, before the load attempt.
func (r *SessionReader) Begin() domain.SessionView {
	return domain.SessionView{IsLoading: true}
}

// Read performs the single load attempt for a page visit. Store failures are
// logged and surface as an absent identity.
func (r *SessionReader) Read(ctx context.Context, keys ports.ClientKeys) domain.SessionView {
	id, err := r.store.Load(ctx, keys)
	if err != nil {
		r.log.Error().Err(err).Msg("session load failed")
		id = nil
	}
	return domain.SessionView{IsLoading: false, Identity: id}
}

// Logout clears the session from both tiers.
func (r *SessionReader) Logout(ctx context.Context, keys ports.ClientKeys) error {
	return r.store.Clear(ctx, keys)
}
