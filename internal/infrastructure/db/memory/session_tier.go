// Package memory holds in-process implementations of the storage ports, used
// for local development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

// SessionTier is a map-backed session tier safe for concurrent use.
type SessionTier struct {
	name    string
	mu      sync.RWMutex
	records map[string][]byte
	written map[string]time.Time
	now     func() time.Time
}

// NewSessionTier creates an empty tier reported under name.
func NewSessionTier(name string) *SessionTier {
	return &SessionTier{
		name:    name,
		records: make(map[string][]byte),
		written: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (t *SessionTier) Name() string { return t.name }

func (t *SessionTier) Get(_ context.Context, key string) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.records[key]
	if !ok {
		return nil, ports.ErrTierMiss
	}
	return append([]byte(nil), v...), nil
}

func (t *SessionTier) Set(_ context.Context, key string, value []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[key] = append([]byte(nil), value...)
	t.written[key] = t.now()
	return nil
}

func (t *SessionTier) Delete(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, key)
	delete(t.written, key)
	return nil
}

// DeleteStale drops records last written before the cutoff.
func (t *SessionTier) DeleteStale(_ context.Context, before time.Time) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for key, at := range t.written {
		if at.Before(before) {
			delete(t.records, key)
			delete(t.written, key)
			n++
		}
	}
	return n, nil
}

// Reset drops every record, the way a browser drops session storage on
// restart.
func (t *SessionTier) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = make(map[string][]byte)
	t.written = make(map[string]time.Time)
}
