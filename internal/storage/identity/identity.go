// Package identity is the registry of accounts kept in the durable key-value
// store under the registeredUsers key. Every registration writes the whole
// list through before returning.
package identity

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AMULYA007-hub/campus-hire/internal/durable"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/password"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

// Store is the durable backed identity store.
type Store struct {
	mu       sync.RWMutex
	durable  durable.Store
	accounts []models.Account
	now      func() time.Time
}

// Open loads the registered accounts from store.
func Open(ctx context.Context, store durable.Store) (*Store, error) {
	const op = "identity.Open"

	var accounts []models.Account
	if _, err := store.Get(ctx, durable.KeyRegisteredUsers, &accounts); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{
		durable:  store,
		accounts: accounts,
		now:      time.Now,
	}, nil
}

// FindByCredentials returns the account matching all three fields. Any
// mismatch yields storage.ErrAccountNotFound.
func (s *Store) FindByCredentials(ctx context.Context, email, pass string, role models.Role) (*models.Account, error) {
	const op = "identity.FindByCredentials"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	idx := slices.IndexFunc(s.accounts, func(a models.Account) bool { return a.Email == email })
	var acc models.Account
	if idx >= 0 {
		acc = s.accounts[idx]
	}
	s.mu.RUnlock()

	if idx < 0 {
		password.BurnCompare(pass)
		return nil, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}
	if err := password.CompareHash(acc.PasswordHash, pass); err != nil || acc.Role != role {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}
	acc.RoleProfile = acc.RoleProfile.Clone()
	return &acc, nil
}

// Register appends acc with a fresh id and persists the list.
func (s *Store) Register(ctx context.Context, acc models.Account) (*models.Account, error) {
	const op = "identity.Register"

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.accounts, func(a models.Account) bool { return a.Email == acc.Email }) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrDuplicateEmail)
	}

	acc.ID = uuid.NewString()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = s.now().UTC()
	}

	next := append(slices.Clip(s.accounts), acc)
	if err := s.durable.Set(ctx, durable.KeyRegisteredUsers, next); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.accounts = next

	stored := acc
	stored.RoleProfile = acc.RoleProfile.Clone()
	return &stored, nil
}

// Len returns the number of registered accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
