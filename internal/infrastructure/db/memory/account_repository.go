package memory

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
)

// AccountRepository keeps accounts in a map keyed by lower-cased email.
type AccountRepository struct {
	mu    sync.RWMutex
	byKey map[string]*domain.Account
	seq   int
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{byKey: make(map[string]*domain.Account)}
}

func (r *AccountRepository) Create(_ context.Context, acct *domain.Account) (*domain.Account, error) {
	key := strings.ToLower(acct.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byKey[key]; exists {
		return nil, domain.ErrAccountExists
	}
	r.seq++
	clone := *acct
	clone.ID = strconv.Itoa(r.seq)
	r.byKey[key] = &clone

	out := clone
	return &out, nil
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.byKey[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *acct
	return &clone, nil
}
