package identity_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AMULYA007-hub/campus-hire/internal/durable"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/password"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
	"github.com/AMULYA007-hub/campus-hire/internal/storage/identity"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	m.Run()
}

type failingStore struct {
	durable.Store
	setErr error
}

func (f *failingStore) Set(ctx context.Context, key string, value any) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

func account(t *testing.T, email, pass string, role models.Role) models.Account {
	t.Helper()
	hash, err := password.GetHash(pass)
	require.NoError(t, err)
	return models.Account{
		Name:         "A",
		Email:        email,
		Phone:        "9999999999",
		PasswordHash: hash,
		Role:         role,
		RoleProfile:  models.DefaultRoleProfile(role, email),
	}
}

func openStore(t *testing.T, d durable.Store) *identity.Store {
	t.Helper()
	s, err := identity.Open(context.Background(), d)
	require.NoError(t, err)
	return s
}

func TestRegister_AssignsIDAndPersists(t *testing.T) {
	ctx := context.Background()
	backing := durable.NewMemory()
	s := openStore(t, backing)

	stored, err := s.Register(ctx, account(t, "a@x.com", "secret1", models.RoleStudent))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())

	var persisted []models.Account
	found, err := backing.Get(ctx, durable.KeyRegisteredUsers, &persisted)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, persisted, 1)
	assert.Equal(t, stored.ID, persisted[0].ID)
	assert.NotEqual(t, "secret1", persisted[0].PasswordHash)

	reopened := openStore(t, backing)
	assert.Equal(t, 1, reopened.Len())
	got, err := reopened.FindByCredentials(ctx, "a@x.com", "secret1", models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, durable.NewMemory())

	_, err := s.Register(ctx, account(t, "a@x.com", "secret1", models.RoleStudent))
	require.NoError(t, err)

	other := account(t, "a@x.com", "another", models.RoleEmployer)
	other.Name = "Someone else"
	_, err = s.Register(ctx, other)
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
	assert.Equal(t, 1, s.Len())
}

func TestRegister_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, durable.NewMemory())

	a, err := s.Register(ctx, account(t, "a@x.com", "secret1", models.RoleStudent))
	require.NoError(t, err)
	b, err := s.Register(ctx, account(t, "b@x.com", "secret1", models.RoleStudent))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRegister_PersistFailureLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	backing := &failingStore{Store: durable.NewMemory(), setErr: errors.New("disk full")}
	s := openStore(t, backing)

	_, err := s.Register(ctx, account(t, "a@x.com", "secret1", models.RoleStudent))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 0, s.Len())

	backing.setErr = nil
	_, err = s.Register(ctx, account(t, "a@x.com", "secret1", models.RoleStudent))
	assert.NoError(t, err)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, durable.NewMemory())
	acc := account(t, "race@x.com", "secret1", models.RoleStudent)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Register(ctx, acc)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, s.Len())
}

func TestFindByCredentials_Mismatch(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, durable.NewMemory())
	_, err := s.Register(ctx, account(t, "a@x.com", "secret1", models.RoleStudent))
	require.NoError(t, err)

	tests := []struct {
		name  string
		email string
		pass  string
		role  models.Role
	}{
		{name: "unknown email", email: "b@x.com", pass: "secret1", role: models.RoleStudent},
		{name: "wrong password", email: "a@x.com", pass: "secret2", role: models.RoleStudent},
		{name: "wrong role", email: "a@x.com", pass: "secret1", role: models.RoleEmployer},
		{name: "email case differs", email: "A@x.com", pass: "secret1", role: models.RoleStudent},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := s.FindByCredentials(ctx, tt.email, tt.pass, tt.role)
			assert.Nil(t, acc)
			require.ErrorIs(t, err, storage.ErrAccountNotFound)
			messages = append(messages, err.Error())
		})
	}
	for _, m := range messages {
		assert.Equal(t, messages[0], m)
	}
}

func TestFindByCredentials_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, durable.NewMemory())
	_, err := s.Register(ctx, account(t, "a@x.com", "secret1", models.RoleStudent))
	require.NoError(t, err)

	got, err := s.FindByCredentials(ctx, "a@x.com", "secret1", models.RoleStudent)
	require.NoError(t, err)
	got.RoleProfile.Student.Skills[0] = "changed"

	again, err := s.FindByCredentials(ctx, "a@x.com", "secret1", models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "React", again.RoleProfile.Student.Skills[0])
}

func TestFindByCredentials_CanceledContext(t *testing.T) {
	s := openStore(t, durable.NewMemory())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FindByCredentials(ctx, "a@x.com", "secret1", models.RoleStudent)
	assert.ErrorIs(t, err, context.Canceled)
}
